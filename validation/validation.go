package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/diascribe/errors"
)

// FieldError pinpoints one invalid field in a request payload. Field
// holds the wire name (the json tag), not the Go field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	v10  *validator.Validate
	once sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		v10 = validator.New(validator.WithRequiredStructEnabled())
		v10.RegisterTagNameFunc(wireName)
	})
	return v10
}

// wireName resolves a struct field to the name clients sent it under.
func wireName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(fld.Name)
	}
	return name
}

// Validate checks a request struct against its validate tags. On failure
// it returns an AppError carrying every failed field under the "fields"
// detail key, so API clients can highlight all problems at once.
func Validate(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Struct(s) only returns a non-ValidationErrors error when s is
		// not a struct, which is a programming error on our side.
		return errors.Validation("validation failed: " + err.Error())
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return invalidFields(fields)
}

// invalidFields folds field errors into a single AppError whose message
// lists every problem.
func invalidFields(fields []FieldError) *errors.AppError {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + " " + f.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).
		WithDetail("fields", fields)
}

// fixedMessages covers tags whose message needs no parameter.
var fixedMessages = map[string]string{
	"required":           "is required",
	"bcp47_language_tag": "must be a valid language tag",
	"url":                "must be a valid URL",
	"uuid":               "must be a valid UUID",
}

// messageFor renders a validator tag failure as a reader-facing message.
// Numeric fields get plain bound wording rather than "characters" so the
// same tags read correctly on counts and strings alike.
func messageFor(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return "is invalid"
}
