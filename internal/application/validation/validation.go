// Package validation valida los DTOs de entrada usando los tags `validate` y devuelve
// todas las violaciones encontradas, sin tocar la persistencia.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Instancia global reutilizable (validator cachea la metadata de cada struct).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Los nombres de campo en las violaciones son los del JSON, no los del struct.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: registrar notblank: %v", err))
	}
	// Reglas de decimal.Decimal comparadas en precisión arbitraria.
	if err := v.RegisterValidation("dpos", decimalPositive); err != nil {
		panic(fmt.Sprintf("validation: registrar dpos: %v", err))
	}
	if err := v.RegisterValidation("dnonneg", decimalNonNegative); err != nil {
		panic(fmt.Sprintf("validation: registrar dnonneg: %v", err))
	}
	return v
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}

// Violations valida el struct y devuelve una violación por campo inválido.
// Un struct válido devuelve nil.
func Violations(in any) []domain.FieldViolation {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldViolation{{Field: "body", Message: err.Error()}}
	}
	out := make([]domain.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldViolation{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// Validate es Violations envuelto como error de dominio (*domain.ValidationError).
func Validate(in any) error {
	return domain.NewValidationError(Violations(in))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "e164":
		return "debe ser un teléfono internacional (formato E.164, ej. +15551234567)"
	case "dpos":
		return "debe ser mayor que 0"
	case "dnonneg":
		return "debe ser mayor o igual que 0"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}
