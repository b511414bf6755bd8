package models

type SessionCreateRequest struct {
	UserIdentifier string `json:"user_identifier,omitempty"`
}

type SessionCreateResponse struct {
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorBody is the backend's error envelope.
type ErrorBody struct {
	Detail string `json:"detail"`
}
