package introspect

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoAccessor       = errors.New("property has no accessor")
	ErrAccessorMismatch = errors.New("getter and setter types differ")
	ErrNotReadable      = errors.New("property has no read accessor")
	ErrNotWritable      = errors.New("property has no write accessor")
	ErrNotSettable      = errors.New("field is not settable")
	ErrNilReceiver      = errors.New("nil receiver")
)

// MissingMethodError is returned when a receiver does not carry a method its
// described type declares, which happens when a proxy does not forward it.
type MissingMethodError struct {
	Method string
	Type   reflect.Type
}

func (e *MissingMethodError) Error() string {
	return fmt.Sprintf("method '%s' not found on '%s'", e.Method, e.Type)
}
