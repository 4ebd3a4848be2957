package policy

import (
	"reflect"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/stringsx"
)

// DefaultVisibility is the visibility of members that are not property accessors.
const DefaultVisibility = 1

// Skeleton implements the default naming, description, access and metadata rules
// and includes nothing. Policies embed it and override what they decide differently.
type Skeleton struct{}

func (Skeleton) Prepare(reflect.Type) error { return nil }

func (Skeleton) Description(t reflect.Type) string { return t.String() }

func (Skeleton) IncludeField(reflect.Type, introspect.Field) bool { return false }

func (Skeleton) FieldName(_ reflect.Type, f introspect.Field) string { return f.Name }

func (Skeleton) FieldDescription(reflect.Type, introspect.Field) string { return "" }

// FieldAccess is read-write; fields of resources held by value lose write access
// when assembled.
func (Skeleton) FieldAccess(reflect.Type, introspect.Field) descriptor.Access {
	return descriptor.AccessReadWrite
}

func (Skeleton) PopulateField(_ reflect.Type, f introspect.Field, fields descriptor.Fields) {
	fields[descriptor.FieldEnabled] = true
	fields[descriptor.FieldDisplayName] = f.Name
	fields[descriptor.FieldVisibility] = DefaultVisibility
}

func (Skeleton) IncludeProperty(reflect.Type, *introspect.Property) bool { return false }

// PropertyName capitalizes the property name: size is exported as Size.
func (Skeleton) PropertyName(_ reflect.Type, p *introspect.Property) string {
	return stringsx.UpperFirstChar(p.Name())
}

func (Skeleton) PropertyDescription(reflect.Type, *introspect.Property) string { return "" }

// PropertyAccess follows the accessors present.
func (Skeleton) PropertyAccess(_ reflect.Type, p *introspect.Property) descriptor.Access {
	access := descriptor.AccessNone
	if p.Readable() {
		access |= descriptor.AccessRead
	}
	if p.Writable() {
		access |= descriptor.AccessWrite
	}
	return access
}

func (Skeleton) PopulateProperty(_ reflect.Type, p *introspect.Property, fields descriptor.Fields) {
	fields[descriptor.FieldEnabled] = true
	fields[descriptor.FieldDisplayName] = stringsx.UpperFirstChar(p.Name())
	fields[descriptor.FieldVisibility] = DefaultVisibility
	if read, ok := p.ReadMethod(); ok {
		fields[descriptor.FieldGetMethod] = read.Name
	}
	if write, ok := p.WriteMethod(); ok {
		fields[descriptor.FieldSetMethod] = write.Name
	}
}

func (Skeleton) IncludeMethod(reflect.Type, introspect.Method) bool { return false }

func (Skeleton) MethodName(_ reflect.Type, m introspect.Method) string { return m.Name }

func (Skeleton) MethodDescription(reflect.Type, introspect.Method) string { return "" }

// ParameterName is the name of the parameter type, e.g. Duration or []string.
func (Skeleton) ParameterName(_ reflect.Type, m introspect.Method, index int) (string, error) {
	return typeName(m.Type.In(index)), nil
}

func (Skeleton) ParameterDescription(reflect.Type, introspect.Method, int) (string, error) {
	return "", nil
}

// PopulateMethod marks property accessors with their role and raises their visibility.
func (Skeleton) PopulateMethod(t reflect.Type, m introspect.Method, fields descriptor.Fields) {
	fields[descriptor.FieldEnabled] = true
	fields[descriptor.FieldDisplayName] = m.Name
	fields[descriptor.FieldVisibility] = DefaultVisibility
	fields[descriptor.FieldRole] = string(descriptor.RoleOperation)

	if role := descriptor.RoleOf(t, m); role != descriptor.RoleOperation {
		fields[descriptor.FieldRole] = string(role)
		fields[descriptor.FieldVisibility] = descriptor.VisibilityAccessor
	}
}

func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
