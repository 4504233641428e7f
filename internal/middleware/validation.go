package middleware

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	"jarvisgw/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("persona", func(fl validator.FieldLevel) bool {
		return models.IsPersona(fl.Field().String())
	})
}

// ValidationError is a request that is missing or has malformed fields.
type ValidationError struct {
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

// SanitizeString removes control characters except newlines and tabs and trims whitespace.
func SanitizeString(input string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(input, ""))
}

// BindJSON decodes the request body into v and validates its `validate` tags.
// An empty body decodes as the zero value so required-field rules report
// the missing field rather than a parse error.
func BindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return &ValidationError{Message: "Invalid JSON format", Details: err.Error()}
	}
	return ValidateStruct(v)
}

// ValidateStruct runs struct validation and converts failures to a ValidationError.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: "Validation failed", Details: err.Error()}
	}
	fe := fieldErrs[0]
	return &ValidationError{Message: fieldMessage(fe), Details: err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "persona":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(models.Personas, ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
