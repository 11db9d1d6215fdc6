package errors

// ErrorResponse is the envelope every failed request answers with:
//
//	{"error": {"code": "...", "message": "...", "details": [...], "trace_id": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

type ErrorOption func(*ErrorDetail)

func WithDetails(details ...string) ErrorOption {
	return func(d *ErrorDetail) {
		d.Details = details
	}
}

// WithMessage replaces the code's default message
func WithMessage(message string) ErrorOption {
	return func(d *ErrorDetail) {
		d.Message = message
	}
}

// NewErrorResponse builds the envelope for code with its default message
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	detail := ErrorDetail{
		Code:    string(code),
		Message: code.Message(),
		TraceID: traceID,
	}
	for _, opt := range opts {
		opt(&detail)
	}
	return &ErrorResponse{Error: detail}
}

// NewValidationErrorFromList reports failed field checks under VALIDATION_001
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// StatusCode is the HTTP status the envelope is sent with
func (er *ErrorResponse) StatusCode() int {
	return ErrorCode(er.Error.Code).HTTPStatus()
}
