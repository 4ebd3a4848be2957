package reflectx

import "errors"

// Error types.
var (
	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
	ErrNotAssignable          = errors.New("value is not assignable")
	ErrPanic                  = errors.New("call panicked")
)
