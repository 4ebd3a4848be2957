package descriptor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/reflectx"
)

// Attribute is a named value of a managed resource, backed by a struct field or a
// property. Attributes are part of an immutable Descriptor and must not be modified.
type Attribute struct {
	Name        string
	Description string
	Type        reflect.Type
	Access      Access
	Fields      Fields

	source source
}

type source interface {
	kind() string
	member() string
	get(recv reflect.Value) (reflect.Value, error)
	set(recv reflect.Value, x reflect.Value) error
}

type fieldSource struct{ introspect.Field }

func (s fieldSource) kind() string   { return "attribute" }
func (s fieldSource) member() string { return s.Name }

func (s fieldSource) get(recv reflect.Value) (reflect.Value, error) {
	return s.Get(recv)
}

func (s fieldSource) set(recv reflect.Value, x reflect.Value) error {
	return s.Set(recv, x)
}

type propertySource struct{ *introspect.Property }

func (s propertySource) kind() string   { return "property" }
func (s propertySource) member() string { return s.Name() }

func (s propertySource) get(recv reflect.Value) (reflect.Value, error) {
	return s.Get(recv)
}

func (s propertySource) set(recv reflect.Value, x reflect.Value) error {
	return s.Set(recv, x)
}

// NewFieldAttribute describes a struct field.
func NewFieldAttribute(f introspect.Field, name, description string, access Access, fields Fields) *Attribute {
	return &Attribute{
		Name:        name,
		Description: description,
		Type:        f.Type,
		Access:      access,
		Fields:      fields,
		source:      fieldSource{f},
	}
}

// NewPropertyAttribute describes a property. The access is narrowed to the
// accessors the property still has.
func NewPropertyAttribute(p *introspect.Property, name, description string, access Access, fields Fields) *Attribute {
	if !p.Readable() {
		access &^= AccessRead
	}
	if !p.Writable() {
		access &^= AccessWrite
	}

	return &Attribute{
		Name:        name,
		Description: description,
		Type:        p.Type(),
		Access:      access,
		Fields:      fields,
		source:      propertySource{p},
	}
}

// Readable reports whether Get may succeed.
func (a *Attribute) Readable() bool {
	return a.Access.CanRead()
}

// Writable reports whether Set may succeed.
func (a *Attribute) Writable() bool {
	return a.Access.CanWrite()
}

// IsProperty reports whether the attribute is backed by accessor methods.
func (a *Attribute) IsProperty() bool {
	_, ok := a.source.(propertySource)
	return ok
}

// Member returns the name of the backing field or property.
func (a *Attribute) Member() string {
	return a.source.member()
}

// Get reads the attribute from recv.
func (a *Attribute) Get(recv reflect.Value) (any, error) {
	if !a.Readable() {
		return nil, fmt.Errorf("%w: %s '%s'", ErrNotReadable, a.source.kind(), a.Name)
	}

	v, err := a.source.get(recv)
	if err != nil {
		return nil, invocationError(a.Name, err)
	}

	return v.Interface(), nil
}

// Set writes x into the attribute of recv. The dynamic type of x must be assignable to
// the attribute type; nil is accepted for nillable types.
func (a *Attribute) Set(recv reflect.Value, x any) error {
	if !a.Writable() {
		return fmt.Errorf("%w: %s '%s'", ErrNotWritable, a.source.kind(), a.Name)
	}

	v, err := reflectx.ArgValue(x, a.Type)
	if err != nil {
		return fmt.Errorf("%w: attribute '%s': %w", ErrTypeMismatch, a.Name, err)
	}

	return a.assign(recv, v)
}

// SetEncoded decodes raw into the attribute type and writes it.
func (a *Attribute) SetEncoded(recv reflect.Value, raw string) error {
	if !a.Writable() {
		return fmt.Errorf("%w: %s '%s'", ErrNotWritable, a.source.kind(), a.Name)
	}

	v, err := reflectx.ValueOf(raw, a.Type)
	if err != nil {
		return fmt.Errorf("%w: attribute '%s': %w", ErrTypeMismatch, a.Name, err)
	}

	return a.assign(recv, v)
}

func (a *Attribute) assign(recv reflect.Value, v reflect.Value) error {
	err := a.source.set(recv, v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, introspect.ErrNotSettable):
		return fmt.Errorf("%w: %s '%s'", ErrNotWritable, a.source.kind(), a.Name)
	default:
		return invocationError(a.Name, err)
	}
}
