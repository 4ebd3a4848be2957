package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrAttributeNotFound   = errors.New("attribute not found")
	ErrOperationNotFound   = errors.New("operation not found")
	ErrNotReadable         = errors.New("not readable")
	ErrNotWritable         = errors.New("not writable")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrAmbiguousSignature  = errors.New("ambiguous signature")
	ErrUnknownAccess       = errors.New("unknown access")
	ErrNilType             = errors.New("nil type")
)

// InvocationError wraps a failure raised by managed code: an error returned by a
// getter, setter or operation, or a panic inside one.
type InvocationError struct {
	Member string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking '%s': %v", e.Member, e.Err)
}

// Unwrap returns the failure of the managed code.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

func invocationError(member string, err error) error {
	if err == nil {
		return nil
	}
	return &InvocationError{Member: member, Err: err}
}
