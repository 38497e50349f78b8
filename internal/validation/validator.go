package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Validate(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range verrs {
		msg := fmt.Sprintf("field must satisfy %s constraint", fe.Tag())
		if fe.Tag() == "required" {
			msg = "field is required"
		} else if fe.Param() != "" {
			msg = fmt.Sprintf("field must satisfy %s=%s", fe.Tag(), fe.Param())
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// Struct validates data and returns a 400 AppError listing the failing fields.
func Struct(data interface{}) error {
	errs := Validate(data)
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return apperror.Validation("invalid request", strings.Join(parts, "; "))
}
