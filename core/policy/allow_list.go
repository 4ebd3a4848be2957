package policy

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
)

type fieldKey struct {
	owner reflect.Type
	name  string
}

type methodKey struct {
	name string
	typ  reflect.Type
}

type propertyKey struct {
	name string
	typ  reflect.Type
}

// AllowList manages exactly the members added to it. Members are looked up on the
// type when added, so a typo fails early with ErrMemberNotFound. The accessors of
// an allowed property are also managed as operations.
//
// An AllowList must not be modified while descriptors are being built from it.
type AllowList struct {
	Skeleton

	fields     map[fieldKey]struct{}
	methods    map[methodKey]struct{}
	properties map[propertyKey]struct{}
	revision   uint64
}

// NewAllowList returns an empty AllowList.
func NewAllowList() *AllowList {
	return &AllowList{
		fields:     make(map[fieldKey]struct{}),
		methods:    make(map[methodKey]struct{}),
		properties: make(map[propertyKey]struct{}),
	}
}

// Revision counts the modifications of the list.
func (a *AllowList) Revision() uint64 {
	return a.revision
}

// AddField allows the field of t with the given name.
func (a *AllowList) AddField(t reflect.Type, name string) error {
	f, ok := introspect.FindField(t, name)
	if !ok {
		return fmt.Errorf("%w: field '%s' on '%s'", ErrMemberNotFound, name, t)
	}
	a.fields[fieldKey{owner: f.Owner, name: f.Name}] = struct{}{}
	a.revision++
	return nil
}

// AddFieldOfType is AddField also requiring the field type.
func (a *AllowList) AddFieldOfType(t reflect.Type, name string, typ reflect.Type) error {
	f, ok := introspect.FindField(t, name)
	if !ok || f.Type != typ {
		return fmt.Errorf("%w: field '%s %s' on '%s'", ErrMemberNotFound, name, typ, t)
	}
	a.fields[fieldKey{owner: f.Owner, name: f.Name}] = struct{}{}
	a.revision++
	return nil
}

// AddMethod allows the method of t with the given name.
func (a *AllowList) AddMethod(t reflect.Type, name string) error {
	m, ok := introspect.FindMethod(t, name)
	if !ok {
		return fmt.Errorf("%w: method '%s' on '%s'", ErrMemberNotFound, name, t)
	}
	a.methods[methodKey{name: m.Name, typ: m.Type}] = struct{}{}
	a.revision++
	return nil
}

// AddMethodOfType is AddMethod also requiring the parameter types.
func (a *AllowList) AddMethodOfType(t reflect.Type, name string, in ...reflect.Type) error {
	m, ok := introspect.FindMethod(t, name)
	if !ok || !sameTypes(m.In(), in) {
		return fmt.Errorf("%w: method '%s%v' on '%s'", ErrMemberNotFound, name, in, t)
	}
	a.methods[methodKey{name: m.Name, typ: m.Type}] = struct{}{}
	a.revision++
	return nil
}

// AddProperty allows the property of t with the given name.
func (a *AllowList) AddProperty(t reflect.Type, name string) error {
	p, ok := introspect.FindProperty(t, name)
	if !ok {
		return fmt.Errorf("%w: property '%s' on '%s'", ErrMemberNotFound, name, t)
	}
	a.properties[propertyKey{name: p.Name(), typ: p.Type()}] = struct{}{}
	a.revision++
	return nil
}

// AddPropertyOfType is AddProperty also requiring the property type.
func (a *AllowList) AddPropertyOfType(t reflect.Type, name string, typ reflect.Type) error {
	p, ok := introspect.FindPropertyOfType(t, name, typ)
	if !ok {
		return fmt.Errorf("%w: property '%s %s' on '%s'", ErrMemberNotFound, name, typ, t)
	}
	a.properties[propertyKey{name: p.Name(), typ: p.Type()}] = struct{}{}
	a.revision++
	return nil
}

func (a *AllowList) IncludeField(_ reflect.Type, f introspect.Field) bool {
	_, ok := a.fields[fieldKey{owner: f.Owner, name: f.Name}]
	return ok
}

func (a *AllowList) IncludeProperty(_ reflect.Type, p *introspect.Property) bool {
	_, ok := a.properties[propertyKey{name: p.Name(), typ: p.Type()}]
	return ok
}

func (a *AllowList) IncludeMethod(t reflect.Type, m introspect.Method) bool {
	if _, ok := a.methods[methodKey{name: m.Name, typ: m.Type}]; ok {
		return true
	}

	for _, p := range introspect.Properties(t) {
		if a.IncludeProperty(t, p) && p.IsAccessor(m.Name) {
			return true
		}
	}

	return false
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
