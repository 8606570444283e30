package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/invigilate/internal/app/models"
	"github.com/yigit/invigilate/internal/pkg/schedule"
)

// customValidators are the tags request DTOs use on top of validator's
// built-in set.
var customValidators = map[string]validator.Func{
	"clock": func(fl validator.FieldLevel) bool {
		return schedule.ValidClock(fl.Field().String())
	},
	"examdate": func(fl validator.FieldLevel) bool {
		_, err := schedule.ParseDate(fl.Field().String())
		return err == nil
	},
	"facultyrole": func(fl validator.FieldLevel) bool {
		return models.FacultyRole(fl.Field().String()).Valid()
	},
}

// RegisterValidators adds the custom tags to v.
func RegisterValidators(v *validator.Validate) error {
	for tag, fn := range customValidators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return nil
}

// RegisterBindingValidators installs the custom tags on gin's default
// validator so ShouldBindJSON enforces them.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return RegisterValidators(v)
}

// HandleValidationError turns a binding error into an error detail listing
// each failing field.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := NewValidationErrors()
		for _, fe := range verrs {
			fields.AddError(fe.Field(), formatFieldError(fe))
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields.Errors)
		if len(verrs) == 1 {
			detail.WithField(verrs[0].Field())
		}
		return detail
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return NewErrorDetail(ErrorCodeValidationFailed, "Malformed JSON body").
			WithDetails(fmt.Sprintf("syntax error at offset %d", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid field type").
			WithField(typeErr.Field).
			WithDetails(fmt.Sprintf("expected %s", typeErr.Type))
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "clock":
		return fe.Field() + " must be a 24-hour HH:MM time"
	case "examdate":
		return fe.Field() + " must be a YYYY-MM-DD date"
	case "facultyrole":
		return fe.Field() + " is not a known faculty role"
	default:
		return fe.Field() + " validation failed: " + fe.Tag()
	}
}
