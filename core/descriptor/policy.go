package descriptor

import (
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
)

// Policy decides which members of a type are managed and how they are named,
// described and qualified. Every method receives the type being described.
type Policy interface {
	// Prepare is called once before a type is assembled and may reject it.
	Prepare(t reflect.Type) error
	Description(t reflect.Type) string

	IncludeField(t reflect.Type, f introspect.Field) bool
	FieldName(t reflect.Type, f introspect.Field) string
	FieldDescription(t reflect.Type, f introspect.Field) string
	FieldAccess(t reflect.Type, f introspect.Field) Access
	PopulateField(t reflect.Type, f introspect.Field, fields Fields)

	// IncludeProperty may demote p by clearing its accessors.
	IncludeProperty(t reflect.Type, p *introspect.Property) bool
	PropertyName(t reflect.Type, p *introspect.Property) string
	PropertyDescription(t reflect.Type, p *introspect.Property) string
	PropertyAccess(t reflect.Type, p *introspect.Property) Access
	PopulateProperty(t reflect.Type, p *introspect.Property, fields Fields)

	IncludeMethod(t reflect.Type, m introspect.Method) bool
	MethodName(t reflect.Type, m introspect.Method) string
	MethodDescription(t reflect.Type, m introspect.Method) string
	ParameterName(t reflect.Type, m introspect.Method, index int) (string, error)
	ParameterDescription(t reflect.Type, m introspect.Method, index int) (string, error)
	PopulateMethod(t reflect.Type, m introspect.Method, fields Fields)
}

// Selector chooses the Policy used for a type.
type Selector interface {
	Select(t reflect.Type) (Policy, error)
}

// Fixed selects the same policy for every type.
type Fixed struct {
	Policy
}

// Select implements Selector.
func (f Fixed) Select(reflect.Type) (Policy, error) {
	return f.Policy, nil
}

// Revisioned is implemented by mutable policies. A changed revision invalidates the
// descriptors cached for the policy.
type Revisioned interface {
	Revision() uint64
}
