package introspect

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/memo"
	"github.com/anoideaopen/mx/core/reflectx"
)

// Field is an exported struct field visible on a type, possibly promoted from an
// embedded struct.
type Field struct {
	reflect.StructField

	// Root is the struct type the field was collected from.
	Root reflect.Type
	// Owner is the struct type declaring the field.
	Owner reflect.Type
}

// Depth is the embedding depth of the field, 0 for fields declared on Root.
func (f Field) Depth() int {
	return len(f.Index) - 1
}

func (f Field) locate(recv reflect.Value) (reflect.Value, error) {
	for recv.Kind() == reflect.Pointer || recv.Kind() == reflect.Interface {
		if recv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: field '%s'", ErrNilReceiver, f.Name)
		}
		recv = recv.Elem()
	}

	if recv.Type() == f.Root {
		return recv.FieldByIndexErr(f.Index)
	}

	v := recv.FieldByName(f.Name)
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("field '%s' not found on '%s'", f.Name, recv.Type())
	}
	return v, nil
}

// Get reads the field from recv.
func (f Field) Get(recv reflect.Value) (reflect.Value, error) {
	return f.locate(recv)
}

// Set writes x into the field of recv. recv must be addressable, usually a pointer.
func (f Field) Set(recv reflect.Value, x reflect.Value) error {
	v, err := f.locate(recv)
	if err != nil {
		return err
	}

	if !v.CanSet() {
		return fmt.Errorf("%w: '%s'", ErrNotSettable, f.Name)
	}

	v.Set(x)
	return nil
}

var fieldCache memo.Cache[reflect.Type, []Field]

// Fields returns the exported, non-embedded fields visible on t or on the struct t
// points to, in declaration order. Embedded fields themselves are not returned but
// their promoted fields are.
func Fields(t reflect.Type) []Field {
	s := reflectx.Indirect(t)
	if s == nil || s.Kind() != reflect.Struct {
		return nil
	}

	return fieldCache.Get(s, func(s reflect.Type) []Field {
		var fields []Field
		for _, sf := range reflect.VisibleFields(s) {
			if sf.Anonymous || !sf.IsExported() {
				continue
			}
			fields = append(fields, Field{
				StructField: sf,
				Root:        s,
				Owner:       owner(s, sf.Index),
			})
		}
		return fields
	})
}

// FindField looks up a field of t by name.
func FindField(t reflect.Type, name string) (Field, bool) {
	for _, f := range Fields(t) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func owner(root reflect.Type, index []int) reflect.Type {
	t := root
	for _, i := range index[:len(index)-1] {
		t = reflectx.Indirect(t.Field(i).Type)
	}
	return t
}
