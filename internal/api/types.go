// File path: internal/api/types.go
package api

import "encoding/json"

type runRequest struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

type agentRequest struct {
	Goal string `json:"goal"`
}

type statusResponse struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}
