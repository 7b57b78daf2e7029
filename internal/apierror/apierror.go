// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Success is always false; the handler helpers emit the matching success
// envelope {success:true, message, data} for 2xx responses.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Success: false, Message: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Success: false, Message: "Error de validación", Fields: fields}
}

// ForbiddenError discloses the caller's role and the required role so the
// front end can render a useful message. Server-side enforcement still applies.
type ForbiddenError struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RolActual    string `json:"rol_actual"`
	RolRequerido string `json:"rol_requerido"`
}

func NewForbidden(actual, requerido string) *ForbiddenError {
	return &ForbiddenError{
		Success:      false,
		Message:      "Permisos insuficientes",
		RolActual:    actual,
		RolRequerido: requerido,
	}
}
