package reflectx

import "reflect"

// Validator is an interface that can be implemented by types that can validate themselves.
type Validator interface {
	Validate() error
}

// Validate calls Validate on v when v, or a pointer to it, implements Validator.
func Validate(v reflect.Value) error {
	if !v.IsValid() {
		return nil
	}

	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}

	if validator, ok := v.Interface().(Validator); ok {
		return validator.Validate()
	}

	if v.CanAddr() {
		if validator, ok := v.Addr().Interface().(Validator); ok {
			return validator.Validate()
		}
	}

	return nil
}
