// Package validator adapts go-playground/validator to echo and to the domain ValidationError.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	domainerrors "ridehail/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// labelTag names a field in user-facing messages, e.g. `label:"First name"`.
const labelTag = "label"

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
	labels   sync.Map // reflect.Type -> map[string]string
}

// New creates a Validator that reports fields by their JSON path.
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	return &Validator{validate: validate}
}

// Validate checks i and returns a *domainerrors.ValidationError listing every failed field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	labels := v.labelsFor(reflect.TypeOf(i))
	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		path := fieldPath(fe.Namespace())
		label, ok := labels[path]
		if !ok {
			label = fe.Field()
		}
		fields = append(fields, domainerrors.FieldError{
			Field:   path,
			Message: message(label, fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

func (v *Validator) labelsFor(t reflect.Type) map[string]string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if cached, ok := v.labels.Load(t); ok {
		return cached.(map[string]string)
	}

	labels := make(map[string]string)
	collectLabels(t, "", labels)
	v.labels.Store(t, labels)

	return labels
}

func collectLabels(t reflect.Type, prefix string, labels map[string]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := range t.NumField() {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if label := field.Tag.Get(labelTag); label != "" {
			labels[path] = label
		}
		collectLabels(field.Type, path, labels)
	}
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}

	return namespace
}

func message(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		if fe.Param() == "1" {
			return label + " must be a positive integer"
		}

		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", label, fe.Param())
		}

		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return label + " is invalid"
	}
}
