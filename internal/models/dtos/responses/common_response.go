package responses

import (
	"time"

	"acme-ice-cream/flavors/internal/constants"
)

// ErrorResponse is the body written on every failed request.
type ErrorResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewErrorResponse(message, requestID string) ErrorResponse {
	return ErrorResponse{
		Status:    string(constants.APIStatusError),
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}
}
