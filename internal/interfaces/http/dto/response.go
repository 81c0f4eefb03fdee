package dto

// ErrorResponse is the body of every failed request. Detail is a message
// string, or a list of ValidationDetail for binding failures.
type ErrorResponse struct {
	Detail    any    `json:"detail"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Detail: message, Code: code}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Detail: message, Code: code, RequestID: requestID}
}

// NewValidationErrorResponse creates a 422 body listing the rejected fields
func NewValidationErrorResponse(requestID string, details []ValidationDetail) ErrorResponse {
	if details == nil {
		details = []ValidationDetail{}
	}
	return ErrorResponse{Detail: details, Code: ErrCodeValidation, RequestID: requestID}
}

// OKResponse acknowledges a mutation that returns no resource
type OKResponse struct {
	OK bool `json:"ok"`
}

// OK is the {"ok": true} body
var OK = OKResponse{OK: true}

// StatusResponse is the body of the root and health endpoints
type StatusResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
