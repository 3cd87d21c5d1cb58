// Package validation holds the explicit field validations run before
// persistence. Each validator returns the failures in a stable order.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength     = 3
	NameMaxLength     = 50
	PasswordMinLength = 6
	PasswordMaxLength = 128
)

const (
	msgBlank       = "can't be blank"
	msgTaken       = "has already been taken"
	msgInvalid     = "is invalid"
	msgNotIncluded = "is not included in the list"
	msgTooShort    = "is too short (minimum is %d characters)"
	msgTooLong     = "is too long (maximum is %d characters)"
)

var validate = validator.New()

// FieldError is a single failed check on a named attribute.
type FieldError struct {
	Field   string
	Message string
}

// FullMessage returns the message prefixed with its field name.
func (f FieldError) FullMessage() string {
	return f.Field + " " + f.Message
}

// Errors is an ordered list of field errors.
type Errors []FieldError

func (e Errors) Error() string {
	return strings.Join(e.Messages(), ", ")
}

// Messages returns the full messages in order.
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.FullMessage())
	}
	return out
}

// Add appends a failure for field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Registration is the input of a sign-up.
type Registration struct {
	Email    string
	Name     string
	Password string
	// PasswordConfirmation is only checked when supplied.
	PasswordConfirmation *string
}

// NormalizeEmail trims and lower-cases an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateRegistration checks a normalized registration. emailTaken reports
// whether another user already holds the email.
func ValidateRegistration(r Registration, emailTaken bool) Errors {
	var errs Errors

	if isBlank(r.Email) {
		errs.Add("Email", msgBlank)
	} else {
		if emailTaken {
			errs.Add("Email", msgTaken)
		}
		if !ValidEmail(r.Email) {
			errs.Add("Email", msgInvalid)
		}
	}

	if isBlank(r.Password) {
		errs.Add("Password", msgBlank)
	}
	if r.PasswordConfirmation != nil && *r.PasswordConfirmation != r.Password {
		errs.Add("Password confirmation", "doesn't match Password")
	}
	if !isBlank(r.Password) {
		checkLength(&errs, "Password", r.Password, PasswordMinLength, PasswordMaxLength)
	}

	if isBlank(r.Name) {
		errs.Add("Name", msgBlank)
	}
	checkLength(&errs, "Name", r.Name, NameMinLength, NameMaxLength)

	return errs
}

// ValidateTodo checks the attributes of a todo about to be saved.
// completedValid is false when the completed attribute was given a value
// that is not a boolean.
func ValidateTodo(title string, completedValid bool) Errors {
	var errs Errors
	if !completedValid {
		errs.Add("Completed", msgNotIncluded)
	}
	if isBlank(title) {
		errs.Add("Title", msgBlank)
	}
	return errs
}

// EmailTakenError returns the failure reported when a unique-index race
// rejects an email that passed the existence check.
func EmailTakenError() Errors {
	return Errors{{Field: "Email", Message: msgTaken}}
}

// ValidEmail reports whether email is a syntactically valid address.
func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func checkLength(errs *Errors, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min:
		errs.Add(field, fmt.Sprintf(msgTooShort, min))
	case n > max:
		errs.Add(field, fmt.Sprintf(msgTooLong, max))
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
