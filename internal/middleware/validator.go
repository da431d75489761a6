package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bryanwahyu/venture-studio/internal/domain/apperr"
	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
)

// Input validation for auth, project and billing request bodies

var (
	validate      = newValidate()
	sectionNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names, not Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || projects.ValidStage(projects.Stage(s))
	})
	_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
		return sectionNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks s against its validate tags. The first failing field is
// reported as an apperr.ValidationError.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(formatFieldError(verrs[0]))
	}
	return apperr.Validation("Invalid request body")
}

// ValidateSection checks a project_data section name.
func ValidateSection(name string) error {
	if !sectionNameRe.MatchString(name) {
		return apperr.Validation("Invalid section name")
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "stage":
		return fmt.Sprintf("%s is not a known project stage", field)
	case "section":
		return "Invalid section name"
	}
	return fmt.Sprintf("%s is invalid", field)
}
