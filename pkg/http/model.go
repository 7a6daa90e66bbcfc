package http

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

// SuccessBody acknowledges mutations that have nothing else to return.
type SuccessBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string `json:"field,omitempty" example:"email"`
	Message string `json:"message,omitempty" example:"email is required"`
}
