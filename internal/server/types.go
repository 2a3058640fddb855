package server

import "github.com/starlight-ml/starlight/internal/model"

// ForwardRequest is the body of POST /v1/forward.
type ForwardRequest struct {
	Tokens [][]int32 `json:"tokens"`
}

// ForwardResponse is returned by POST /v1/forward.
type ForwardResponse struct {
	ID     string      `json:"id"`
	Shape  []int       `json:"shape"`
	Scores [][]float32 `json:"scores"`
	Digest string      `json:"digest"`
}

// ModelInfo is returned by GET /v1/model.
type ModelInfo struct {
	Config      model.Config `json:"config"`
	Parameters  int          `json:"parameters"`
	Fingerprint string       `json:"fingerprint"`
	Version     string       `json:"version"`
}

// ErrorBody is the payload under "error" for non-2xx responses.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
