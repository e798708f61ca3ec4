// Package validate holds the field checks shared by the domain services.
// Errors it returns are reported to clients as 400.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func Errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Required fails when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Errorf("%s is required", field)
	}
	return nil
}

// OneOf fails when value is not one of allowed. An empty value passes; pair
// with Required when the field is mandatory.
func OneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return Errorf("%s must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}

// ClockTime normalises "H:MM" or "HH:MM" to "HH:MM".
func ClockTime(field, value string) (string, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", Errorf("%s must be HH:MM, got %q", field, value)
	}
	return t.Format("15:04"), nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
