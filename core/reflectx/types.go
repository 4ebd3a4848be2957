package reflectx

import (
	"fmt"
	"reflect"
)

// Indirect returns the element type of a pointer type and t itself otherwise.
func Indirect(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// QualifiedName renders t like reflect.Type.String, with every named type spelled
// by its full package path. Distinct named types never share a qualified name.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() { //nolint:exhaustive
	case reflect.Pointer:
		return "*" + QualifiedName(t.Elem())
	case reflect.Slice:
		return "[]" + QualifiedName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), QualifiedName(t.Elem()))
	case reflect.Map:
		return "map[" + QualifiedName(t.Key()) + "]" + QualifiedName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + QualifiedName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + QualifiedName(t.Elem())
		default:
			return "chan " + QualifiedName(t.Elem())
		}
	default:
		return t.String()
	}
}

// Nillable reports whether values of kind k can be nil.
func Nillable(k reflect.Kind) bool {
	switch k { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice,
		reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// ArgValue converts x to a reflect.Value usable where a t is expected.
// A nil x yields the zero value of t for nillable types only. No conversions are
// attempted: the dynamic type of x must be assignable to t.
func ArgValue(x any, t reflect.Type) (reflect.Value, error) {
	if x == nil {
		if Nillable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil to '%s'", ErrNotAssignable, t.String())
	}

	v := reflect.ValueOf(x)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: '%s' to '%s'", ErrNotAssignable, v.Type().String(), t.String())
	}

	return v, nil
}
