// Package server exposes the Starlight forward pass over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/starlight-ml/starlight/internal/logger"
	"github.com/starlight-ml/starlight/internal/model"
	"github.com/starlight-ml/starlight/internal/version"
)

// maxBodyBytes bounds a forward request body.
const maxBodyBytes = 8 << 20

// Model is the part of model.Starlight the server needs.
type Model interface {
	Config() model.Config
	NumParameters() int
	Fingerprint() uint64
	Run(rows [][]int32) (*model.Result, error)
}

// Server handles the HTTP API. Handlers may run concurrently; Model must
// tolerate concurrent Run calls.
type Server struct {
	model Model
	info  ModelInfo
	log   logger.Logger
	newID func() string
}

// New creates a Server. The model fingerprint is computed once here.
func New(m Model, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		model: m,
		info: ModelInfo{
			Config:      m.Config(),
			Parameters:  m.NumParameters(),
			Fingerprint: model.FormatHash(m.Fingerprint()),
			Version:     version.String(),
		},
		log:   log,
		newID: func() string { return "fwd_" + uuid.NewString() },
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/model", s.handleModel)
	e.POST("/v1/forward", s.handleForward)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModel(c *echo.Context) error {
	return c.JSON(http.StatusOK, s.info)
}

func (s *Server) handleForward(c *echo.Context) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes)
	req, err := decodeJSON[ForwardRequest](body)
	if err != nil {
		return writeBadRequest(c, "invalid request body: "+err.Error())
	}
	// Report bad tokens as 400s before they reach the embedding lookup.
	if err := s.info.Config.CheckTokens(req.Tokens); err != nil {
		return writeBadRequest(c, err.Error())
	}

	start := time.Now()
	res, err := s.model.Run(req.Tokens)
	if err != nil {
		if isInputError(err) {
			return writeBadRequest(c, err.Error())
		}
		s.log.Error("forward failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}

	resp := ForwardResponse{
		ID:     s.newID(),
		Shape:  res.Shape,
		Scores: res.Scores,
		Digest: model.FormatHash(res.Digest),
	}
	s.log.Info("forward", "id", resp.ID, "batch", len(req.Tokens), "digest", resp.Digest, "took", time.Since(start))
	return c.JSON(http.StatusOK, resp)
}

func isInputError(err error) bool {
	return errors.Is(err, model.ErrInputShape) ||
		errors.Is(err, model.ErrSequenceLength) ||
		errors.Is(err, model.ErrTokenRange)
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	if dec.More() {
		return out, fmt.Errorf("unexpected data after JSON object")
	}
	return out, nil
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
		},
	})
}
