package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
//
// Fields:
//   - Message: short, client-facing description of what failed.
//   - ErrorDetails: the underlying error text, when there is one.
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid request body"`
	ErrorDetails string    `json:"error_details,omitempty" example:"invalid input: participation rate must be in (0, 1]"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through c.Error and be rendered by the error middleware.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse. err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
