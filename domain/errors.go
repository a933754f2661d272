package domain

import "fmt"

// ErrorCode representa un código de error del dominio del bridge.
type ErrorCode string

// Códigos de error estándar
const (
	// ErrNoError indica éxito (sin error)
	ErrNoError ErrorCode = "NO_ERROR"

	// Errores de validación (recuperables, 4xx en el boundary)
	ErrMalformedInput  ErrorCode = "MALFORMED_INPUT"
	ErrMissingFields   ErrorCode = "MISSING_FIELDS"
	ErrInvalidAction   ErrorCode = "INVALID_ACTION"
	ErrInvalidQuantity ErrorCode = "INVALID_QUANTITY"
	ErrInvalidPrice    ErrorCode = "INVALID_PRICE"

	// Errores de sistema (5xx en el boundary)
	ErrInternalTransform ErrorCode = "INTERNAL_TRANSFORM"
	ErrUnknown           ErrorCode = "UNKNOWN"
)

// BridgeError representa un error del dominio del bridge con contexto.
type BridgeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implementa la interfaz error.
func (e *BridgeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implementa la interfaz errors.Unwrap.
func (e *BridgeError) Unwrap() error {
	return e.Wrapped
}

// WithDetail agrega un detalle al error.
func (e *BridgeError) WithDetail(key string, value interface{}) *BridgeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsValidation indica si el error es de validación (mapeable a 400).
func (e *BridgeError) IsValidation() bool {
	switch e.Code {
	case ErrMalformedInput, ErrMissingFields, ErrInvalidAction, ErrInvalidQuantity, ErrInvalidPrice:
		return true
	}
	return false
}

// NewError crea un nuevo BridgeError.
//
// Example:
//
//	err := domain.NewError(domain.ErrInvalidAction, "Invalid action: HOLD")
func NewError(code ErrorCode, message string) *BridgeError {
	return &BridgeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError envuelve un error existente con contexto del bridge.
func WrapError(code ErrorCode, message string, wrapped error) *BridgeError {
	return &BridgeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}
