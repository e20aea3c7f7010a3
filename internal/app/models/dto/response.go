package dto

import "time"

// APIResponse is the standard success envelope for API endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps payload data in the standard envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}
