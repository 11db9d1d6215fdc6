package errors

import "net/http"

// ErrorCode is the stable code carried by every error envelope
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidType   ErrorCode = "TRANSACTION_003"
	TransactionCreateFailed  ErrorCode = "TRANSACTION_004"
)

// Provider error codes (PROVIDER_*)
const (
	ProviderNotInScope ErrorCode = "PROVIDER_001"
	ProviderNotReady   ErrorCode = "PROVIDER_002"
)

// Upstream error codes (UPSTREAM_*) for calls to the transactions API
const (
	UpstreamUnavailable ErrorCode = "UPSTREAM_001"
	UpstreamRejected    ErrorCode = "UPSTREAM_002"
	UpstreamBadResponse ErrorCode = "UPSTREAM_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
	SystemRouteNotFound      ErrorCode = "SYSTEM_006"
	SystemForbidden          ErrorCode = "SYSTEM_007"
)

type codeInfo struct {
	status  int
	message string
}

var registry = map[ErrorCode]codeInfo{
	AuthMissingToken:       {http.StatusUnauthorized, "Authorization token is required"},
	AuthExpiredToken:       {http.StatusUnauthorized, "Authorization token has expired"},
	AuthInvalidTokenFormat: {http.StatusUnauthorized, "Invalid authorization token format"},

	ValidationGeneral:       {http.StatusBadRequest, "Validation failed"},
	ValidationRequiredField: {http.StatusBadRequest, "Required field is missing"},
	ValidationInvalidFormat: {http.StatusBadRequest, "Invalid field format"},
	ValidationOutOfRange:    {http.StatusBadRequest, "Field value is out of allowed range"},
	ValidationInvalidDate:   {http.StatusBadRequest, "Invalid date format"},

	TransactionNotFound:      {http.StatusNotFound, "Transaction not found"},
	TransactionInvalidAmount: {http.StatusUnprocessableEntity, "Invalid transaction amount"},
	TransactionInvalidType:   {http.StatusUnprocessableEntity, "Invalid transaction type"},
	TransactionCreateFailed:  {http.StatusInternalServerError, "Transaction could not be created"},

	ProviderNotInScope: {http.StatusInternalServerError, "Transactions are not available for this request"},
	ProviderNotReady:   {http.StatusServiceUnavailable, "Transactions have not been loaded"},

	UpstreamUnavailable: {http.StatusServiceUnavailable, "Transactions service is unavailable"},
	UpstreamRejected:    {http.StatusUnprocessableEntity, "Transactions service rejected the request"},
	UpstreamBadResponse: {http.StatusBadGateway, "Transactions service returned an unexpected response"},

	SystemInternalError:      {http.StatusInternalServerError, "An unexpected error occurred. Please contact support with trace ID"},
	SystemDatabaseError:      {http.StatusInternalServerError, "Database connection error"},
	SystemServiceUnavailable: {http.StatusServiceUnavailable, "Service temporarily unavailable"},
	SystemUnexpectedError:    {http.StatusInternalServerError, "An unexpected error occurred"},
	SystemRateLimitExceeded:  {http.StatusTooManyRequests, "Rate limit exceeded. Please try again later"},
	SystemRouteNotFound:      {http.StatusNotFound, "Resource not found"},
	SystemForbidden:          {http.StatusForbidden, "Operation not permitted"},
}

// Message returns the default client-facing message of the code
func (c ErrorCode) Message() string {
	if info, ok := registry[c]; ok {
		return info.message
	}
	return "An error occurred"
}

// HTTPStatus returns the status the code is sent with. Unregistered codes are 500.
func (c ErrorCode) HTTPStatus() int {
	if info, ok := registry[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
