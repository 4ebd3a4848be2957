// Package descriptor models what a managed resource exposes: its attributes and
// operations, and builds that model from a type under an inclusion Policy.
package descriptor

import (
	"fmt"
	"reflect"
	"sort"
)

// Descriptor is the immutable description of a managed type. Attribute names and
// operation signatures are unique.
type Descriptor struct {
	typ         reflect.Type
	description string

	attributes []*Attribute
	operations []*Operation
	byName     map[string]*Attribute
	byKey      map[string]*Operation
	bySig      map[Signature][]*Operation
}

// New assembles a descriptor, failing with ErrDuplicateDefinition when two attributes
// share a name or two operations share a name and parameter types.
func New(t reflect.Type, description string, attributes []*Attribute, operations []*Operation) (*Descriptor, error) {
	d := &Descriptor{
		typ:         t,
		description: description,
		attributes:  make([]*Attribute, 0, len(attributes)),
		operations:  make([]*Operation, 0, len(operations)),
		byName:      make(map[string]*Attribute, len(attributes)),
		byKey:       make(map[string]*Operation, len(operations)),
		bySig:       make(map[Signature][]*Operation, len(operations)),
	}

	for _, a := range attributes {
		if _, ok := d.byName[a.Name]; ok {
			return nil, fmt.Errorf("%w: attribute '%s' on '%s'", ErrDuplicateDefinition, a.Name, t)
		}
		d.byName[a.Name] = a
		d.attributes = append(d.attributes, a)
	}

	for _, o := range operations {
		key := o.key()
		if _, ok := d.byKey[key]; ok {
			return nil, fmt.Errorf("%w: operation '%s' on '%s'", ErrDuplicateDefinition, o.Signature, t)
		}
		d.byKey[key] = o
		d.bySig[o.Signature] = append(d.bySig[o.Signature], o)
		d.operations = append(d.operations, o)
	}

	return d, nil
}

// Type returns the described type.
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// TypeName returns the name of the described type.
func (d *Descriptor) TypeName() string {
	if d.typ == nil {
		return ""
	}
	return d.typ.String()
}

// Description returns the human readable description of the type.
func (d *Descriptor) Description() string {
	return d.description
}

// Attributes returns the attributes in assembly order.
func (d *Descriptor) Attributes() []*Attribute {
	out := make([]*Attribute, len(d.attributes))
	copy(out, d.attributes)
	return out
}

// Operations returns the operations in assembly order.
func (d *Descriptor) Operations() []*Operation {
	out := make([]*Operation, len(d.operations))
	copy(out, d.operations)
	return out
}

// Attribute looks up an attribute by export name.
func (d *Descriptor) Attribute(name string) (*Attribute, error) {
	a, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' on '%s'", ErrAttributeNotFound, name, d.TypeName())
	}
	return a, nil
}

// Operation looks up an operation by name and parameter types.
func (d *Descriptor) Operation(name string, params ...reflect.Type) (*Operation, error) {
	o, ok := d.byKey[operationKey(name, params...)]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' on '%s'", ErrOperationNotFound, NewSignature(name, params...), d.TypeName())
	}
	return o, nil
}

// OperationBySignature looks up an operation by signature. It fails with
// ErrAmbiguousSignature when parameter types from different packages print alike.
func (d *Descriptor) OperationBySignature(sig Signature) (*Operation, error) {
	switch ops := d.bySig[sig]; len(ops) {
	case 0:
		return nil, fmt.Errorf("%w: '%s' on '%s'", ErrOperationNotFound, sig, d.TypeName())
	case 1:
		return ops[0], nil
	default:
		return nil, fmt.Errorf("%w: '%s' on '%s' matches %d operations", ErrAmbiguousSignature, sig, d.TypeName(), len(ops))
	}
}

// OperationsNamed returns every operation exported under name.
func (d *Descriptor) OperationsNamed(name string) []*Operation {
	var out []*Operation
	for _, o := range d.operations {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

// Types returns every type referenced by the attributes and operations, sorted by name.
func (d *Descriptor) Types() []reflect.Type {
	seen := make(map[reflect.Type]struct{})
	add := func(t reflect.Type) {
		if t != nil {
			seen[t] = struct{}{}
		}
	}

	add(d.typ)
	for _, a := range d.attributes {
		add(a.Type)
	}
	for _, o := range d.operations {
		for _, p := range o.Params {
			add(p.Type)
		}
		for _, r := range o.Results {
			add(r)
		}
	}

	types := make([]reflect.Type, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})

	return types
}
