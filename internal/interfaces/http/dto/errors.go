package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the HTTP layer itself. Domain errors keep their own
// codes (DUPLICATE_SLUG, TAG_IN_USE, ...) in the envelope.
const (
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// http layer
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"USER_NOT_FOUND":       http.StatusNotFound,
	"UPLOAD_NOT_FOUND":     http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_SLUG":       http.StatusConflict,
	"DUPLICATE_EMAIL":      http.StatusConflict,
	"DUPLICATE_ORDER":      http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Input errors
	"INVALID_INPUT":   http.StatusBadRequest,
	"VALIDATION":      http.StatusBadRequest,
	"IN_USE":          http.StatusBadRequest,
	"TAG_IN_USE":      http.StatusBadRequest,
	"CATEGORY_IN_USE": http.StatusBadRequest,
	"REASON_REQUIRED": http.StatusBadRequest,
	"MISSING_PAGE_ID": http.StatusBadRequest,
	"TENANT_REQUIRED": http.StatusBadRequest,
	"FILE_TOO_LARGE":  http.StatusBadRequest,
	"MANAGED_SECTION": http.StatusBadRequest,

	"DISALLOWED_CONTENT_TYPE": http.StatusBadRequest,

	// State errors
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":     http.StatusUnprocessableEntity,
	"PAGE_NOT_PUBLISHED":     http.StatusUnprocessableEntity,
	"PARTNER_NOT_ACTIVE":     http.StatusUnprocessableEntity,
	"MEDIA_NOT_UPLOADED":     http.StatusUnprocessableEntity,
	"ALREADY_CONFIRMED":      http.StatusUnprocessableEntity,
	"ALREADY_DELETED":        http.StatusUnprocessableEntity,
	"CANNOT_CONFIRM_DELETED": http.StatusUnprocessableEntity,
	"CANNOT_UPDATE_DELETED":  http.StatusUnprocessableEntity,

	// Auth errors
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"TENANT_INACTIVE":     http.StatusForbidden,

	// Upstream storage
	"UPLOAD_URL_FAILED":    http.StatusBadGateway,
	"DOWNLOAD_URL_FAILED":  http.StatusBadGateway,
	"STORAGE_CHECK_FAILED": http.StatusBadGateway,
	"CODE_EXHAUSTED":       http.StatusServiceUnavailable,
	"INTERNAL_ERROR":       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes missing from
// the table fall back on their naming: INVALID_* is a 400, *_NOT_FOUND a 404,
// DUPLICATE_* a 409. Anything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	case strings.HasSuffix(code, "_IN_USE"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
