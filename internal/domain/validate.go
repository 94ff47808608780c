package domain

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

var (
	ErrHalfOpenWindow = errors.New("start and end time must be set together")
	ErrClosedHasTimes = errors.New("a closed day must not carry open/close times")
)

// validateTimeWindow enforces the both-or-neither rule for optional time
// windows and checks HH:MM / HH:MM:SS format on whichever values are present.
func validateTimeWindow(start, end *string) error {
	if (start == nil) != (end == nil) {
		return ErrHalfOpenWindow
	}

	if start == nil {
		return nil
	}

	if err := validation.Validate(*start, validation.Match(timeRe).Error("must be HH:MM")); err != nil {
		return err
	}

	return validation.Validate(*end, validation.Match(timeRe).Error("must be HH:MM"))
}

// validateOpenWindow checks operating-hours rows: open days need a well-formed
// window, closed days must omit both times.
func validateOpenWindow(isOpen bool, open, close *string) error {
	if !isOpen {
		if open != nil || close != nil {
			return ErrClosedHasTimes
		}

		return nil
	}

	if open == nil || close == nil {
		return ErrHalfOpenWindow
	}

	return validateTimeWindow(open, close)
}
