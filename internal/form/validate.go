// Package form holds the client-side logic of the feedback form: field
// validation, the state reducer and the store that owns its state, the
// submission controller, and the modal derived from state.
//
// Nothing here renders anything. internal/tui draws the state and feeds
// key presses back in as actions.
package form

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Field names a form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the inputs in display (and focus) order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// FormData is what the user has typed so far.
type FormData struct {
	Name    string `json:"name"    validate:"notblank"`
	Email   string `json:"email"   validate:"notblank,simpleemail"`
	Message string `json:"message" validate:"notblank"`
}

// Get returns the value of field.
func (d FormData) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldMessage:
		return d.Message
	}
	return ""
}

// With returns a copy of d with field set to value. Unknown fields leave
// d unchanged.
func (d FormData) With(field Field, value string) FormData {
	switch field {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldMessage:
		d.Message = value
	}
	return d
}

// Errors maps a field to the message shown under it. Empty means valid.
type Errors map[Field]string

// simpleEmail needs something, an @, something, a dot, something. It is
// deliberately loose; the server applies the strict check.
var simpleEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

// fieldMessages is keyed by field, then by the validator tag that failed.
var fieldMessages = map[Field]map[string]string{
	FieldName: {
		"notblank": "Name is required.",
	},
	FieldEmail: {
		"notblank":    "Email is required.",
		"simpleemail": "Email is invalid.",
	},
	FieldMessage: {
		"notblank": "Message is required.",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	// validators.NotBlank trims whitespace before checking for emptiness,
	// unlike the built-in "required".
	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return simpleEmail.MatchString(fl.Field().String())
	})

	return v
}

// Validate checks every field and returns the failures. The first failing
// rule of a field wins, so a blank email reports "required", not "invalid".
func Validate(data FormData) Errors {
	errs := Errors{}

	err := validate.Struct(data)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable with a broken tag definition.
		panic(err)
	}

	for _, fe := range fieldErrs {
		field := Field(fe.Field())
		msg, ok := fieldMessages[field][fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		errs[field] = msg
	}

	return errs
}
