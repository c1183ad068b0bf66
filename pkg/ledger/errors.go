package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error classes returned by every engine operation. Use errors.Is.
var (
	// ErrValidation: missing or malformed input. Nothing was written.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: the referenced student or journal entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a uniqueness rule was violated.
	ErrConflict = errors.New("conflict")
	// ErrInternal: the store failed; the operation was rolled back.
	ErrInternal = errors.New("internal error")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// classify leaves already classified errors untouched and marks
// everything else as internal.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, class := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrInternal} {
		if errors.Is(err, class) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// fromValidator turns validator output into an ErrValidation.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidf("%v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return invalidf("%s", strings.Join(msgs, "; "))
}
