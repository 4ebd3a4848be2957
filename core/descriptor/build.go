package descriptor

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/memo"
)

// Build assembles the descriptor of t under p. Properties come first, then fields,
// then methods; a duplicate attribute name or operation signature fails the build.
func Build(t reflect.Type, p Policy) (*Descriptor, error) {
	if t == nil {
		return nil, ErrNilType
	}

	if err := p.Prepare(t); err != nil {
		return nil, err
	}

	var attributes []*Attribute
	for _, prop := range introspect.Properties(t) {
		if !p.IncludeProperty(t, prop) {
			continue
		}

		fields := make(Fields)
		p.PopulateProperty(t, prop, fields)
		attributes = append(attributes, NewPropertyAttribute(
			prop,
			p.PropertyName(t, prop),
			p.PropertyDescription(t, prop),
			p.PropertyAccess(t, prop),
			fields,
		))
	}

	for _, f := range introspect.Fields(t) {
		if !p.IncludeField(t, f) {
			continue
		}

		access := p.FieldAccess(t, f)
		if t.Kind() != reflect.Pointer {
			access &^= AccessWrite
		}

		fields := make(Fields)
		p.PopulateField(t, f, fields)
		attributes = append(attributes, NewFieldAttribute(
			f,
			p.FieldName(t, f),
			p.FieldDescription(t, f),
			access,
			fields,
		))
	}

	var operations []*Operation
	for _, m := range introspect.Methods(t) {
		if !p.IncludeMethod(t, m) {
			continue
		}

		params := make([]Parameter, m.Type.NumIn())
		for i := range params {
			name, err := p.ParameterName(t, m, i)
			if err != nil {
				return nil, fmt.Errorf("operation '%s': %w", m.Name, err)
			}
			description, err := p.ParameterDescription(t, m, i)
			if err != nil {
				return nil, fmt.Errorf("operation '%s': %w", m.Name, err)
			}
			params[i] = Parameter{Name: name, Description: description, Type: m.Type.In(i)}
		}

		fields := make(Fields)
		p.PopulateMethod(t, m, fields)

		role := Role(fields.String(FieldRole))
		if role == "" {
			role = RoleOperation
		}

		operations = append(operations, NewOperation(
			m,
			p.MethodName(t, m),
			p.MethodDescription(t, m),
			params,
			role,
			fields,
		))
	}

	return New(t, p.Description(t), attributes, operations)
}

// RoleOf tells whether m is the getter or setter of one of the properties of t.
func RoleOf(t reflect.Type, m introspect.Method) Role {
	for _, prop := range introspect.Properties(t) {
		if read, ok := prop.ReadMethod(); ok && read.Name == m.Name {
			return RoleGetter
		}
		if write, ok := prop.WriteMethod(); ok && write.Name == m.Name {
			return RoleSetter
		}
	}
	return RoleOperation
}

type cacheKey struct {
	t        reflect.Type
	policy   Policy
	revision uint64
}

// Cache memoizes descriptors per type and policy. Policies that are not comparable
// are built on every call.
type Cache struct {
	descriptors memo.Cache[cacheKey, *Descriptor]
}

// Get returns the descriptor of t under p, building it on first use.
func (c *Cache) Get(t reflect.Type, p Policy) (*Descriptor, error) {
	if !reflect.ValueOf(p).Comparable() {
		return Build(t, p)
	}

	key := cacheKey{t: t, policy: p}
	if r, ok := p.(Revisioned); ok {
		key.revision = r.Revision()
	}

	return c.descriptors.TryGet(key, func(k cacheKey) (*Descriptor, error) {
		return Build(k.t, k.policy)
	})
}

// Len counts the cached descriptors.
func (c *Cache) Len() int {
	return c.descriptors.Len()
}

var defaultCache Cache

// Of returns the descriptor of t under p from the process wide cache.
func Of(t reflect.Type, p Policy) (*Descriptor, error) {
	return defaultCache.Get(t, p)
}
