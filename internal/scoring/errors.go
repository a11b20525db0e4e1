package scoring

import (
	"errors"
	"fmt"
)

// ErrUnknownQuestion is returned when a phase tag does not name a
// question of the catalog. Like UnrecognizedOptionError it means the
// caller is out of contract.
var ErrUnknownQuestion = errors.New("unknown question")

// ValidationError reports a user-correctable problem with a selection:
// duplicate ranks, a placeholder still selected, a slider value off the
// scale. The caller should re-prompt. Nothing was recorded.
type ValidationError struct {
	Question string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.Question, e.Reason)
}

// UnrecognizedOptionError reports an option identifier outside the
// declared domain of a rule. This is a programming error in the caller,
// not a recoverable user condition.
type UnrecognizedOptionError struct {
	Question string
	Option   string
}

func (e *UnrecognizedOptionError) Error() string {
	return fmt.Sprintf("unrecognized option %q for %s", e.Option, e.Question)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsUnrecognized reports whether err is (or wraps) an UnrecognizedOptionError.
func IsUnrecognized(err error) bool {
	var u *UnrecognizedOptionError
	return errors.As(err, &u)
}
