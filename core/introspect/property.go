package introspect

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/anoideaopen/mx/core/memo"
	"github.com/anoideaopen/mx/core/reflectx"
	"github.com/anoideaopen/mx/core/stringsx"
)

// Accessor name prefixes.
const (
	PrefixGet = "Get"
	PrefixIs  = "Is"
	PrefixSet = "Set"
)

// Property is a named, typed value reachable through a getter, a setter or both.
// Two properties are equal when their name and type are.
type Property struct {
	name  string
	typ   reflect.Type
	read  *Method
	write *Method
}

// NewProperty builds a property from its accessors. At least one accessor is required
// and, when both are given, the getter result type must equal the setter parameter type.
func NewProperty(name string, read, write *Method) (*Property, error) {
	var typ reflect.Type
	switch {
	case read == nil && write == nil:
		return nil, fmt.Errorf("%w: '%s'", ErrNoAccessor, name)
	case read != nil && write != nil:
		if read.Type.Out(0) != write.Type.In(0) {
			return nil, fmt.Errorf(
				"%w: '%s': get '%s', set '%s'",
				ErrAccessorMismatch, name, read.Type.Out(0), write.Type.In(0),
			)
		}
		typ = read.Type.Out(0)
	case read != nil:
		typ = read.Type.Out(0)
	default:
		typ = write.Type.In(0)
	}

	return &Property{name: name, typ: typ, read: read, write: write}, nil
}

func (p *Property) Name() string       { return p.name }
func (p *Property) Type() reflect.Type { return p.typ }
func (p *Property) Readable() bool     { return p.read != nil }
func (p *Property) Writable() bool     { return p.write != nil }

// ReadMethod returns the getter, if any.
func (p *Property) ReadMethod() (Method, bool) {
	if p.read == nil {
		return Method{}, false
	}
	return *p.read, true
}

// WriteMethod returns the setter, if any.
func (p *Property) WriteMethod() (Method, bool) {
	if p.write == nil {
		return Method{}, false
	}
	return *p.write, true
}

// ClearReadable removes the getter.
func (p *Property) ClearReadable() { p.read = nil }

// ClearWritable removes the setter.
func (p *Property) ClearWritable() { p.write = nil }

// IsAccessor reports whether the named method is one of the property's accessors.
func (p *Property) IsAccessor(method string) bool {
	return (p.read != nil && p.read.Name == method) || (p.write != nil && p.write.Name == method)
}

// Equal compares name and type.
func (p *Property) Equal(o *Property) bool {
	return o != nil && p.name == o.name && p.typ == o.typ
}

// Clone returns an independent copy.
func (p *Property) Clone() *Property {
	c := *p
	return &c
}

func (p *Property) String() string {
	return p.name + " " + p.typ.String()
}

// Get calls the getter on recv.
func (p *Property) Get(recv reflect.Value) (reflect.Value, error) {
	if p.read == nil {
		return reflect.Value{}, fmt.Errorf("%w: '%s'", ErrNotReadable, p.name)
	}

	out, err := p.read.Call(recv, nil)
	if err != nil {
		return reflect.Value{}, err
	}

	return out[0], nil
}

// Set calls the setter on recv.
func (p *Property) Set(recv reflect.Value, x reflect.Value) error {
	if p.write == nil {
		return fmt.Errorf("%w: '%s'", ErrNotWritable, p.name)
	}

	_, err := p.write.Call(recv, []reflect.Value{x})
	return err
}

var propertyCache memo.Cache[reflect.Type, []*Property]

// Properties returns copies of the properties of t in name order. Accessors whose
// getter and setter types disagree produce no property.
func Properties(t reflect.Type) []*Property {
	if t == nil {
		return nil
	}

	cached := propertyCache.Get(t, resolveProperties)

	out := make([]*Property, len(cached))
	for i, p := range cached {
		out[i] = p.Clone()
	}
	return out
}

// FindProperty looks up a property by name. The case of the first letter is ignored.
func FindProperty(t reflect.Type, name string) (*Property, bool) {
	for _, p := range Properties(t) {
		if stringsx.EqualFold1(p.name, name) {
			return p, true
		}
	}
	return nil, false
}

// FindPropertyOfType is FindProperty that also requires the property type to be typ.
func FindPropertyOfType(t reflect.Type, name string, typ reflect.Type) (*Property, bool) {
	p, ok := FindProperty(t, name)
	if !ok || p.typ != typ {
		return nil, false
	}
	return p, true
}

type accessors struct {
	get, is, set *Method
}

func resolveProperties(t reflect.Type) []*Property {
	candidates := make(map[string]*accessors)
	candidate := func(name string) *accessors {
		a, ok := candidates[name]
		if !ok {
			a = &accessors{}
			candidates[name] = a
		}
		return a
	}

	for _, m := range Methods(t) {
		m := m
		switch {
		case isGetter(m):
			candidate(propertyName(m.Name, PrefixGet)).get = &m
		case isBoolGetter(m):
			candidate(propertyName(m.Name, PrefixIs)).is = &m
		case isSetter(m):
			candidate(propertyName(m.Name, PrefixSet)).set = &m
		}
	}

	properties := make([]*Property, 0, len(candidates))
	for name, a := range candidates {
		read := a.get
		if read == nil {
			read = a.is
		}

		p, err := NewProperty(name, read, a.set)
		if err != nil {
			continue
		}
		properties = append(properties, p)
	}

	sort.Slice(properties, func(i, j int) bool {
		return properties[i].name < properties[j].name
	})

	return properties
}

func propertyName(method, prefix string) string {
	return stringsx.LowerFirstChar(stringsx.TrimFirstPrefix(method, prefix))
}

func accessorName(name, prefix string) bool {
	return stringsx.HasPrefix(name, prefix) && stringsx.StartsUpper(name[len(prefix):])
}

func readerShape(m Method) bool {
	ft := m.Type
	if ft.NumIn() != 0 {
		return false
	}

	switch ft.NumOut() {
	case 1:
		return ft.Out(0) != reflectx.ErrorType()
	case 2:
		return reflectx.ReturnsError(ft)
	default:
		return false
	}
}

func isGetter(m Method) bool {
	return accessorName(m.Name, PrefixGet) && readerShape(m)
}

func isBoolGetter(m Method) bool {
	return accessorName(m.Name, PrefixIs) && readerShape(m) && m.Type.Out(0).Kind() == reflect.Bool
}

func isSetter(m Method) bool {
	ft := m.Type
	if !accessorName(m.Name, PrefixSet) || ft.NumIn() != 1 || ft.IsVariadic() {
		return false
	}

	return ft.NumOut() == 0 || (ft.NumOut() == 1 && reflectx.ReturnsError(ft))
}
