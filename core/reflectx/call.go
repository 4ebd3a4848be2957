package reflectx

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ErrorType returns the reflect.Type of the error interface.
func ErrorType() reflect.Type {
	return errorType
}

// Call invokes fn with in and recovers from any panic raised by the callee.
// A panic is reported as an error wrapping ErrPanic; when the panic value is itself
// an error it is wrapped too, so errors.Is and errors.As reach it.
func Call(fn reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cause, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, cause)
				return
			}
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if fn.Type().IsVariadic() {
		return fn.CallSlice(in), nil
	}

	return fn.Call(in), nil
}

// SplitError separates a trailing error result from the other results.
// The returned error is nil when the function does not return one or returned nil.
func SplitError(fnType reflect.Type, out []reflect.Value) ([]reflect.Value, error) {
	if !ReturnsError(fnType) || len(out) == 0 {
		return out, nil
	}

	last := out[len(out)-1]
	out = out[:len(out)-1]
	if last.IsNil() {
		return out, nil
	}

	return out, last.Interface().(error) //nolint:forcetypeassert
}

// ReturnsError reports whether the last result of the function type is error.
func ReturnsError(fnType reflect.Type) bool {
	n := fnType.NumOut()
	return n > 0 && fnType.Out(n-1) == errorType
}

// Results converts call results to a single value: nil for none, the value itself for one
// and a []any for several.
func Results(out []reflect.Value) any {
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0].Interface()
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values
	}
}
