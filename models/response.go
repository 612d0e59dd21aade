package models

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	// Error is a human-readable message.
	Error string `json:"error"`

	// Code is the machine-readable error code (see ErrCode* constants).
	Code string `json:"code,omitempty"`
}

// HealthResponse is the response for GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
