// Package validation checks write forms before anything is sent upstream.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"prop-server/models"
)

// Field keys reported in a Failure come from the `field` struct tag, falling
// back to the json name.
var validate = newValidator()

// messages maps a field key and the failed tag to a user-facing message. The
// empty tag is the field's fallback. %s is replaced with the tag parameter.
var messages = map[string]map[string]string{
	"fullName": {
		"required": "Full name is required",
		"min":      "Full name must be at least %s characters",
	},
	"username": {
		"required": "Username is required",
		"min":      "Username must be at least %s characters",
	},
	"email": {
		"required": "Email is required",
		"":         "Please enter a valid email address",
	},
	"phoneNumber": {
		"required": "Phone number is required",
		"":         "Phone number must be 10 digits",
	},
	"propertyId":      {"": "Property is required"},
	"password":        {"": "Password must be at least %s characters"},
	"confirmPassword": {"": "Passwords do not match"},
	"terms":           {"": "You must agree to the terms and conditions"},
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// accepted is a checkbox that must be ticked.
	_ = v.RegisterValidation("accepted", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	return v
}

// Failure maps form field names to a user-facing message.
type Failure struct {
	Fields map[string]string `json:"errors"`
}

func (f *Failure) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, f.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFailure unwraps a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}

func check(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return &Failure{Fields: fields}
}

func message(fe validator.FieldError) string {
	byTag := messages[fe.Field()]
	msg, ok := byTag[fe.Tag()]
	if !ok {
		msg, ok = byTag[""]
	}
	if !ok {
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}

func ValidateInquiry(f models.InquiryForm) error {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	return check(f)
}

func ValidateUserRegistration(f models.UserRegistrationForm) error {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	return check(f)
}

func ValidateAgentRegistration(f models.AgentRegistrationForm) error {
	f.Username = strings.TrimSpace(f.Username)
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	return check(f)
}

// PasswordStrength grades a password as weak, medium or strong by length.
func PasswordStrength(password string) string {
	switch n := len(password); {
	case n < 6:
		return "weak"
	case n < 8:
		return "medium"
	}
	return "strong"
}
