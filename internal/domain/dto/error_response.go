package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx API response.
//
// Fields:
//   - Message: short human readable summary.
//   - ErrorDetails: the underlying error text, if any.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"market data unavailable"`
	ErrorDetails string    `json:"error,omitempty" example:"polygon status 403"`
	Timestamp    time.Time `json:"timestamp" example:"2025-09-12T14:30:00Z"`
}

// Error implements the error interface so an ErrorResponse can travel
// through gin's c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
