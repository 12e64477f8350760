package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrorResponse describe un campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Nombres de campo según la etiqueta json, que es lo que ve el cliente.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// decimal.Decimal se valida como número: `validate:"gte=0"`.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// ValidateStruct valida data según sus etiquetas `validate` y devuelve los campos fallidos.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
	}
	for _, fe := range verrs {
		errors = append(errors, &ErrorResponse{
			FailedField: fieldPath(fe.Namespace()),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return errors
}

// fieldPath quita el nombre del struct raíz: "CreateSaleRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Message traduce la etiqueta fallida a un texto corto.
func (e *ErrorResponse) Message() string {
	switch e.Tag {
	case "required", "notblank":
		return "es obligatorio"
	case "gt":
		return "debe ser mayor que " + e.Value
	case "gte", "min":
		return "debe ser al menos " + e.Value
	case "max":
		return "excede el máximo de " + e.Value
	case "oneof":
		return "debe ser uno de: " + e.Value
	case "dive":
		return "contiene elementos inválidos"
	default:
		return "no es válido (" + e.Tag + ")"
	}
}
