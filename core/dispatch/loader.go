package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/anoideaopen/mx/core/reflectx"
)

var builtins = []reflect.Type{
	reflect.TypeOf(false),
	reflect.TypeOf(""),
	reflect.TypeOf(0),
	reflect.TypeOf(int8(0)),
	reflect.TypeOf(int16(0)),
	reflect.TypeOf(int32(0)),
	reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)),
	reflect.TypeOf(uint8(0)),
	reflect.TypeOf(uint16(0)),
	reflect.TypeOf(uint32(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(uintptr(0)),
	reflect.TypeOf(float32(0)),
	reflect.TypeOf(float64(0)),
	reflect.TypeOf(complex64(0)),
	reflect.TypeOf(complex128(0)),
	reflect.TypeOf([]byte(nil)),
	reflect.TypeOf([]string(nil)),
	reflect.TypeOf((*any)(nil)).Elem(),
	reflect.TypeOf((*error)(nil)).Elem(),
}

var aliases = map[string]string{
	"byte":   "uint8",
	"rune":   "int32",
	"any":    "interface {}",
	"[]any":  "[]interface {}",
	"[]rune": "[]int32",
	"[]byte": "[]uint8",
}

// Loader resolves type names to types. A name is either printed by
// reflect.Type.String or qualified by reflectx.QualifiedName; the qualified form
// tells apart types whose short names collide. Each managed resource has its own
// loader knowing the types its descriptor mentions.
type Loader struct {
	types   map[string]reflect.Type
	byShort map[string][]reflect.Type
}

// NewLoader returns a loader knowing the predeclared types and the given ones.
func NewLoader(types ...reflect.Type) *Loader {
	l := &Loader{
		types:   make(map[string]reflect.Type, len(builtins)+len(types)),
		byShort: make(map[string][]reflect.Type, len(builtins)+len(types)),
	}
	for _, t := range builtins {
		l.add(t)
	}
	for _, t := range types {
		l.add(t)
	}
	return l
}

func (l *Loader) add(t reflect.Type) {
	if t == nil {
		return
	}
	key := reflectx.QualifiedName(t)
	if _, ok := l.types[key]; ok {
		return
	}
	l.types[key] = t
	l.byShort[t.String()] = append(l.byShort[t.String()], t)

	switch t.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		l.add(t.Elem())
	case reflect.Map:
		l.add(t.Key())
		l.add(t.Elem())
	}
}

// Load resolves a type name. A short name shared by several known types fails
// with ErrAmbiguousType.
func (l *Loader) Load(name string) (reflect.Type, error) {
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	if t, ok := l.types[name]; ok {
		return t, nil
	}

	switch types := l.byShort[name]; len(types) {
	case 0:
		return nil, fmt.Errorf("%w: '%s'", ErrTypeNotFound, name)
	case 1:
		return types[0], nil
	default:
		return nil, fmt.Errorf("%w: '%s' names %d types, use the package path", ErrAmbiguousType, name, len(types))
	}
}

// LoadAll resolves type names in order.
func (l *Loader) LoadAll(names []string) ([]reflect.Type, error) {
	types := make([]reflect.Type, len(names))
	for i, name := range names {
		t, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

// Names returns the known type names, sorted. Types sharing a short name are
// listed by qualified name.
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.types))
	for short, types := range l.byShort {
		if len(types) == 1 {
			names = append(names, short)
			continue
		}
		for _, t := range types {
			names = append(names, reflectx.QualifiedName(t))
		}
	}
	sort.Strings(names)
	return names
}

type loaderKey struct{}

// WithLoader returns a context resolving type names through l.
func WithLoader(ctx context.Context, l *Loader) context.Context {
	return context.WithValue(ctx, loaderKey{}, l)
}

// LoaderFrom returns the loader installed in ctx.
func LoaderFrom(ctx context.Context) (*Loader, bool) {
	l, ok := ctx.Value(loaderKey{}).(*Loader)
	return l, ok
}
