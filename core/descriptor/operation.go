package descriptor

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/reflectx"
)

// Parameter describes one positional parameter of an operation.
type Parameter struct {
	Name        string
	Description string
	Type        reflect.Type
}

// Operation is an invocable method of a managed resource. Operations are part of an
// immutable Descriptor and must not be modified.
type Operation struct {
	Name        string
	Description string
	Params      []Parameter
	Results     []reflect.Type
	Role        Role
	Fields      Fields
	Signature   Signature

	method introspect.Method
}

// NewOperation describes method m exported under name.
func NewOperation(m introspect.Method, name, description string, params []Parameter, role Role, fields Fields) *Operation {
	types := make([]reflect.Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}

	return &Operation{
		Name:        name,
		Description: description,
		Params:      params,
		Results:     m.Out(),
		Role:        role,
		Fields:      fields,
		Signature:   NewSignature(name, types...),
		method:      m,
	}
}

// Method returns the name of the backing method.
func (o *Operation) Method() string {
	return o.method.Name
}

func (o *Operation) key() string {
	return operationKey(o.Name, o.ParamTypes()...)
}

// ParamTypes returns the parameter types in order.
func (o *Operation) ParamTypes() []reflect.Type {
	types := make([]reflect.Type, len(o.Params))
	for i, p := range o.Params {
		types[i] = p.Type
	}
	return types
}

// Invoke calls the operation on recv. Every argument's dynamic type must be assignable
// to the matching parameter type. The result is nil for operations returning nothing,
// the value itself for a single result and a []any otherwise.
func (o *Operation) Invoke(recv reflect.Value, args []any) (any, error) {
	if len(args) != len(o.Params) {
		return nil, fmt.Errorf(
			"%w: operation '%s': found %d but expected %d",
			reflectx.ErrIncorrectArgumentCount, o.Signature, len(args), len(o.Params),
		)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := reflectx.ArgValue(arg, o.Params[i].Type)
		if err != nil {
			return nil, fmt.Errorf("%w: operation '%s', argument %d: %w", ErrTypeMismatch, o.Signature, i, err)
		}
		in[i] = v
	}

	return o.call(recv, in)
}

// InvokeEncoded decodes the string arguments into the parameter types and calls the operation.
func (o *Operation) InvokeEncoded(recv reflect.Value, args []string) (any, error) {
	in, err := reflectx.ValuesOf(args, o.ParamTypes())
	if err != nil {
		return nil, fmt.Errorf("%w: operation '%s': %w", ErrTypeMismatch, o.Signature, err)
	}

	return o.call(recv, in)
}

func (o *Operation) call(recv reflect.Value, in []reflect.Value) (any, error) {
	out, err := o.method.Call(recv, in)
	if err != nil {
		return nil, invocationError(o.Name, err)
	}

	return reflectx.Results(out), nil
}
