package constraint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrInvalidArgument reports a malformed input: a bad property name, an
	// out-of-range parameter index, inconsistent constraint attributes.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState reports an operation attempted in a state that forbids it,
	// such as using a violation builder after it was finalized.
	ErrIllegalState = errors.New("illegal state")
	// ErrValidatorResolution reports that no single validator could be selected.
	ErrValidatorResolution = errors.New("validator resolution failed")
	// ErrValidationFailure reports an unexpected failure of the validation process.
	ErrValidationFailure = errors.New("validation process failed")
)

// ResolutionError describes why a constraint kind could not be mapped to
// exactly one validator for a runtime type.
type ResolutionError struct {
	Kind       string
	Type       reflect.Type
	Candidates []string
}

func (e *ResolutionError) Error() string {
	switch {
	case e.Type == nil:
		return fmt.Sprintf("no validators registered for constraint %q", e.Kind)
	case len(e.Candidates) > 1:
		return fmt.Sprintf("ambiguous validators for constraint %q and type %s: %s",
			e.Kind, e.Type, strings.Join(e.Candidates, ", "))
	default:
		return fmt.Sprintf("no validator for constraint %q accepts type %s", e.Kind, e.Type)
	}
}

func (e *ResolutionError) Unwrap() error { return ErrValidatorResolution }

// IsResolutionError reports whether err carries a *ResolutionError.
func IsResolutionError(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func illegalState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, fmt.Sprintf(format, args...))
}
