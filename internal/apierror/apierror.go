// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Code carries a machine-readable reason (NO_TOKEN, INVALID_TOKEN, ...) so
// clients can distinguish remediation paths without parsing Detail.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(msg, code string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// PermissionError is the 403 envelope. It always echoes back the permission(s)
// the caller would need, and on an all-of check names the first missing one.
type PermissionError struct {
	Detail              string   `json:"detail"`
	Code                string   `json:"code"`
	RequiredPermission  string   `json:"requiredPermission,omitempty"`
	RequiredPermissions []string `json:"requiredPermissions,omitempty"`
	MissingPermission   string   `json:"missingPermission,omitempty"`
}

func PermissionDenied(required string) *PermissionError {
	return &PermissionError{
		Detail:             "No tiene los permisos necesarios para esta accion",
		Code:               "INSUFFICIENT_PERMISSIONS",
		RequiredPermission: required,
	}
}

func AnyPermissionDenied(required []string) *PermissionError {
	return &PermissionError{
		Detail:              "No tiene los permisos necesarios para esta accion",
		Code:                "INSUFFICIENT_PERMISSIONS",
		RequiredPermissions: required,
	}
}

func AllPermissionsDenied(required []string, missing string) *PermissionError {
	return &PermissionError{
		Detail:              "No tiene los permisos necesarios para esta accion",
		Code:                "INSUFFICIENT_PERMISSIONS",
		RequiredPermissions: required,
		MissingPermission:   missing,
	}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
