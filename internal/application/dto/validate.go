package dto

import (
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/pkg/validator"
)

// Validate aplica las etiquetas `validate` del DTO y devuelve un *domain.ValidationError si algo falla.
func Validate(in interface{}) error {
	errs := validator.ValidateStruct(in)
	if len(errs) == 0 {
		return nil
	}
	verr := &domain.ValidationError{}
	for _, e := range errs {
		verr.Add(e.FailedField, e.Message())
	}
	return verr
}
