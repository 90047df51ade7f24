package slot

import (
	"errors"
	"fmt"
)

// Error kinds raised by slot operations. Use [errors.Is] to classify:
//
//	if _, err := slot.Get[int](s, "hp"); errors.Is(err, slot.ErrNotFound) {
//	    // no such attribute
//	}
var (
	// ErrNullAccess is returned when an attribute or method operation is
	// attempted on a slot that holds no value.
	ErrNullAccess = errors.New("slot: null access")

	// ErrNotFound is returned when an attribute or method name is absent.
	ErrNotFound = errors.New("slot: not found")

	// ErrTypeMismatch is returned when a stored value, argument or result
	// does not have exactly the requested type.
	ErrTypeMismatch = errors.New("slot: type mismatch")

	// ErrArityMismatch is returned when a method is invoked with the wrong
	// number of arguments.
	ErrArityMismatch = errors.New("slot: wrong # args")

	// ErrUnsupported is returned when the held type offers none of the
	// capabilities an operation needs.
	ErrUnsupported = errors.New("slot: unsupported operation")

	// ErrNoValue is returned when extracting a value from a void result.
	ErrNoValue = errors.New("slot: no value")
)

// TypeError reports a value whose dynamic type differs from the one requested.
type TypeError struct {
	// Arg is the 1-based argument position, or 0 when the error is not
	// about a method argument.
	Arg  int
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	if e.Arg > 0 {
		return fmt.Sprintf("argument %d: expected %s but got %s", e.Arg, e.Want, e.Got)
	}
	return fmt.Sprintf("expected %s but got %s", e.Want, e.Got)
}

// Is makes TypeError match ErrTypeMismatch.
func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// ArityError reports a method call with the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: wrong # args: expected %d, got %d", e.Name, e.Want, e.Got)
}

// Is makes ArityError match ErrArityMismatch.
func (e *ArityError) Is(target error) bool { return target == ErrArityMismatch }
