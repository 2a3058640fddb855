package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlight-ml/starlight/internal/backend/cpu"
	"github.com/starlight-ml/starlight/internal/model"
)

func tinyConfig() model.Config {
	return model.Config{
		DModel:  8,
		DFF:     8,
		DEmbd:   2,
		NSeq:    3,
		NLayer:  2,
		NVocab:  5,
		NOutput: 4,
		NormEps: 1e-6,
	}
}

type failingModel struct {
	cfg model.Config
}

func (f failingModel) Config() model.Config { return f.cfg }
func (f failingModel) NumParameters() int   { return 0 }
func (f failingModel) Fingerprint() uint64  { return 1 }
func (f failingModel) Run([][]int32) (*model.Result, error) {
	return nil, errors.New("backend exploded")
}

func newTestEcho(t *testing.T, m Model) *echo.Echo {
	t.Helper()
	s := New(m, nil)
	s.newID = func() string { return "fwd_test" }
	e := echo.New()
	s.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body struct {
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t, model.New(tinyConfig(), cpu.New()))

	rec := doJSON(t, e, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestModelInfo(t *testing.T) {
	t.Parallel()
	m := model.New(tinyConfig(), cpu.New())
	e := newTestEcho(t, m)

	rec := doJSON(t, e, http.MethodGet, "/v1/model", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, tinyConfig(), info.Config)
	assert.Equal(t, m.NumParameters(), info.Parameters)
	assert.Equal(t, model.FormatHash(m.Fingerprint()), info.Fingerprint)
	assert.NotEmpty(t, info.Version)
}

func TestForward(t *testing.T) {
	t.Parallel()
	m := model.New(tinyConfig(), cpu.New())
	e := newTestEcho(t, m)

	rec := doJSON(t, e, http.MethodPost, "/v1/forward", `{"tokens":[[1,2,3],[4,0,1]]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ForwardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fwd_test", resp.ID)
	assert.Equal(t, []int{2, 4}, resp.Shape)
	require.Len(t, resp.Scores, 2)
	assert.Len(t, resp.Scores[0], 4)

	want, err := m.Run([][]int32{{1, 2, 3}, {4, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, want.Scores, resp.Scores)
	assert.Equal(t, model.FormatHash(want.Digest), resp.Digest)
}

func TestForward_IDsAreUnique(t *testing.T) {
	t.Parallel()
	s := New(model.New(tinyConfig(), cpu.New()), nil)
	e := echo.New()
	s.Register(e)

	var a, b ForwardResponse
	require.NoError(t, json.Unmarshal(doJSON(t, e, http.MethodPost, "/v1/forward", `{"tokens":[[1,1,1]]}`).Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(doJSON(t, e, http.MethodPost, "/v1/forward", `{"tokens":[[1,1,1]]}`).Body.Bytes(), &b))

	assert.True(t, strings.HasPrefix(a.ID, "fwd_"))
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Digest, b.Digest)
}

func TestForward_BadRequests(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t, model.New(tinyConfig(), cpu.New()))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"tokens":`, "invalid request body"},
		{"unknown field", `{"tokens":[[1,1,1]],"temperature":1}`, "invalid request body"},
		{"empty batch", `{"tokens":[]}`, "empty batch"},
		{"short row", `{"tokens":[[1,1]]}`, "sequence length mismatch"},
		{"ragged", `{"tokens":[[1,1,1],[1]]}`, "row 1 has 1 tokens"},
		{"out of vocabulary", `{"tokens":[[1,5,1]]}`, "token out of vocabulary range"},
		{"negative", `{"tokens":[[-1,1,1]]}`, "token -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/v1/forward", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decodeError(t, rec)
			assert.Equal(t, "invalid_request_error", body.Type)
			assert.Contains(t, body.Message, tt.want)
		})
	}
}

func TestForward_ModelFailure(t *testing.T) {
	t.Parallel()
	e := newTestEcho(t, failingModel{cfg: tinyConfig()})

	rec := doJSON(t, e, http.MethodPost, "/v1/forward", `{"tokens":[[1,1,1]]}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "server_error", body.Type)
	assert.Equal(t, "backend exploded", body.Message)
}
