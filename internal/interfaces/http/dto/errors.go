package dto

import "net/http"

// Error codes used directly by the HTTP layer. Domain errors carry their
// own codes and pass through untouched.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps error codes, including those raised by the domain
// layer, to HTTP status codes.
var statusByCode = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"USER_NOT_FOUND":      http.StatusUnauthorized,

	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_PENDING":     http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	"ACCOUNT_LOCKED": http.StatusLocked,

	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":          http.StatusConflict,
	"CONCURRENT_MODIFICATION": http.StatusConflict,
	"LOT_ALREADY_OCCUPIED":    http.StatusConflict,

	"INVALID_STATE":            http.StatusUnprocessableEntity,
	"INVALID_STATE_TRANSITION": http.StatusUnprocessableEntity,
	"NO_ACTIVE_RATE":           http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to
// 500 for codes the map does not know
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
