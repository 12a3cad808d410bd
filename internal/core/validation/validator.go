package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// Validator checks record payloads against JSON schemas and request
// structs against their `validate` tags.
type Validator struct {
	structs *playground.Validate
}

func NewValidator() *Validator {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{structs: v}
}

// Validate checks data against a JSON schema. Errors are sorted by field;
// a missing required key is reported under its own name.
func (v *Validator) Validate(data map[string]interface{}, schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate against schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
			}
		}
		errs = append(errs, ValidationError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationErrors{Errors: errs}
}

// ValidateStruct reports failed `validate` tags as ValidationErrors keyed by
// the form or json field name.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.structs.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var validationErrors []ValidationError
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return &ValidationErrors{Errors: validationErrors}
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("value %q not recognized, only support \"%s\"", fmt.Sprint(fe.Value()), fe.Param())
	case "gte":
		return fmt.Sprintf("cannot be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("cannot be greater than %s", fe.Param())
	case "max":
		return fmt.Sprintf("cannot be longer than %s", fe.Param())
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}

func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
