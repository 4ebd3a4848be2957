package introspect

import (
	"reflect"

	"github.com/anoideaopen/mx/core/memo"
	"github.com/anoideaopen/mx/core/reflectx"
)

// Method is an exported method of a type with the receiver stripped from its signature.
type Method struct {
	Name string
	Type reflect.Type
}

// In returns the parameter types.
func (m Method) In() []reflect.Type {
	in := make([]reflect.Type, m.Type.NumIn())
	for i := range in {
		in[i] = m.Type.In(i)
	}
	return in
}

// Out returns the result types without a trailing error.
func (m Method) Out() []reflect.Type {
	n := m.Type.NumOut()
	if reflectx.ReturnsError(m.Type) {
		n--
	}

	out := make([]reflect.Type, n)
	for i := range out {
		out[i] = m.Type.Out(i)
	}
	return out
}

// ReturnsError reports whether the last result is an error.
func (m Method) ReturnsError() bool {
	return reflectx.ReturnsError(m.Type)
}

// Bind returns the method bound to recv.
func (m Method) Bind(recv reflect.Value) reflect.Value {
	return recv.MethodByName(m.Name)
}

// Call invokes the method on recv. A trailing error result, and any panic, is returned as err.
func (m Method) Call(recv reflect.Value, in []reflect.Value) ([]reflect.Value, error) {
	fn := m.Bind(recv)
	if !fn.IsValid() {
		return nil, &MissingMethodError{Method: m.Name, Type: recv.Type()}
	}

	out, err := reflectx.Call(fn, in)
	if err != nil {
		return nil, err
	}

	return reflectx.SplitError(fn.Type(), out)
}

var methodCache memo.Cache[reflect.Type, []Method]

// Methods returns the exported method set of t in name order. Promoted methods are
// included; a method declared on the outer type shadows the promoted one.
func Methods(t reflect.Type) []Method {
	if t == nil {
		return nil
	}

	return methodCache.Get(t, func(t reflect.Type) []Method {
		methods := make([]Method, 0, t.NumMethod())
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			if !m.IsExported() {
				continue
			}
			methods = append(methods, Method{Name: m.Name, Type: funcType(t, m)})
		}
		return methods
	})
}

// FindMethod looks up an exported method of t by name.
func FindMethod(t reflect.Type, name string) (Method, bool) {
	for _, m := range Methods(t) {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

func funcType(owner reflect.Type, m reflect.Method) reflect.Type {
	if owner.Kind() == reflect.Interface {
		return m.Type
	}

	ft := m.Type
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}

	out := make([]reflect.Type, ft.NumOut())
	for i := range out {
		out[i] = ft.Out(i)
	}

	return reflect.FuncOf(in, out, ft.IsVariadic())
}
