package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation           = errors.New("datos inválidos")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrReferentialIntegrity = errors.New("el recurso está referenciado por otros registros")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInfrastructure       = errors.New("error interno de infraestructura")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInvalidCredentials   = errors.New("usuario o contraseña incorrectos")
)

// FieldError es un problema puntual de un campo de entrada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los campos inválidos de una petición. errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add agrega un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors indica si hay algún campo inválido.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError identifica el producto que no alcanza para la cantidad pedida.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q (id %d): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NotFound envuelve ErrNotFound con el recurso y su id.
func NotFound(resource string, id int64) error {
	return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
}

// ReferencedBy envuelve ErrReferentialIntegrity con un detalle legible.
func ReferencedBy(detail string) error {
	return fmt.Errorf("%w: %s", ErrReferentialIntegrity, detail)
}

// Infrastructure envuelve un error técnico (conexión, commit...) como ErrInfrastructure conservando la causa.
func Infrastructure(op string, cause error) error {
	return &infraError{op: op, cause: cause}
}

type infraError struct {
	op    string
	cause error
}

func (e *infraError) Error() string        { return e.op + ": " + e.cause.Error() }
func (e *infraError) Unwrap() error        { return e.cause }
func (e *infraError) Is(target error) bool { return target == ErrInfrastructure }
