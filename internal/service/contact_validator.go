package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/buildright/backend/internal/model"
	"github.com/go-playground/validator/v10"
)

// contactFields is the JSON key order used when reporting field errors.
var contactFields = []string{"name", "email", "phone", "projectType", "budget", "message"}

var contactLabels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"phone":       "Phone",
	"projectType": "Project type",
	"budget":      "Budget",
	"message":     "Message",
}

// ValidationError lists every field of a submission that failed validation.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.FieldNames(), ", ")
}

// FieldNames returns the rejected field keys in report order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// Validator checks untyped contact form payloads.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator whose errors are keyed by JSON field name.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate normalizes raw into a ContactInput. Every known key must be a
// string or absent; null counts as absent and unknown keys are ignored.
// On failure it returns a *ValidationError covering all failing fields.
func (v *Validator) Validate(raw map[string]any) (*model.ContactInput, error) {
	var fieldErrs []model.FieldError
	badType := make(map[string]bool)

	str := func(key string) string {
		val, ok := raw[key]
		if !ok || val == nil {
			return ""
		}
		s, ok := val.(string)
		if !ok {
			badType[key] = true
			fieldErrs = append(fieldErrs, model.FieldError{
				Field:   key,
				Code:    model.CodeInvalidType,
				Message: contactLabels[key] + " must be a string",
			})
			return ""
		}
		return strings.TrimSpace(s)
	}

	in := &model.ContactInput{
		Name:        str("name"),
		Email:       str("email"),
		Phone:       str("phone"),
		ProjectType: model.ProjectType(str("projectType")),
		Budget:      str("budget"),
		Message:     str("message"),
	}

	if err := v.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			if badType[fe.Field()] {
				continue
			}
			fieldErrs = append(fieldErrs, toFieldError(fe))
		}
	}

	if len(fieldErrs) > 0 {
		sort.SliceStable(fieldErrs, func(i, j int) bool {
			return fieldOrder(fieldErrs[i].Field) < fieldOrder(fieldErrs[j].Field)
		})
		return nil, &ValidationError{Fields: fieldErrs}
	}
	return in, nil
}

func toFieldError(fe validator.FieldError) model.FieldError {
	field := fe.Field()
	label := contactLabels[field]
	switch fe.Tag() {
	case "required":
		return model.FieldError{Field: field, Code: model.CodeRequired, Message: label + " is required"}
	case "email":
		return model.FieldError{Field: field, Code: model.CodeInvalidMail, Message: "Please enter a valid email address"}
	case "oneof":
		return model.FieldError{
			Field:   field,
			Code:    model.CodeInvalidEnum,
			Message: fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", ")),
		}
	case "min":
		return model.FieldError{
			Field:   field,
			Code:    model.CodeTooShort,
			Message: fmt.Sprintf("%s must be at least %s characters", label, fe.Param()),
		}
	case "max":
		return model.FieldError{
			Field:   field,
			Code:    model.CodeTooLong,
			Message: fmt.Sprintf("%s must be at most %s characters", label, fe.Param()),
		}
	}
	return model.FieldError{Field: field, Code: fe.Tag(), Message: label + " is invalid"}
}

func fieldOrder(field string) int {
	for i, f := range contactFields {
		if f == field {
			return i
		}
	}
	return len(contactFields)
}
