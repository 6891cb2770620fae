package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"techguide/backend/models"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(fl.Field().String())
	})
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDifficulty(fl.Field().String())
		return ok
	})
	return v
}

// ValidationErrors maps each failing field to a readable message.
func ValidationErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["body"] = err.Error()
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = field + " is required"
		case "email":
			out[field] = "invalid email format"
		case "min":
			out[field] = field + " must be at least " + fe.Param() + " characters"
		case "max":
			out[field] = field + " must be at most " + fe.Param() + " characters"
		case "role":
			out[field] = field + " must be one of: student, instructor, admin"
		case "difficulty":
			out[field] = field + " must be one of: Beginner, Intermediate, Advanced"
		default:
			out[field] = field + " is invalid"
		}
	}
	return out
}
