package dtos

// APIResponse is the standard JSON envelope for every endpoint.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// FieldError is one validation failure surfaced to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
