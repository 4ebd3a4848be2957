package introspect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

type base struct {
	Shared string
	hidden int
}

func (b *base) Reset() { b.Shared = "" }

type pool struct {
	base
	Name    string
	Max     int
	unnamed bool

	size    int
	enabled bool
	label   string
}

func (p *pool) GetSize() int      { return p.size }
func (p *pool) SetSize(v int)     { p.size = v }
func (p *pool) IsEnabled() bool   { return p.enabled }
func (p *pool) SetEnabled(v bool) { p.enabled = v }
func (p *pool) GetLabel() (string, error) {
	if p.label == "" {
		return "", errClosed
	}
	return p.label, nil
}
func (p *pool) SetTimeout(seconds int) error { return nil }
func (p *pool) GetMismatch() string          { return "" }
func (p *pool) SetMismatch(int)              {}
func (p *pool) IsCount() int                 { return 0 }
func (p *pool) Getaway() string              { return "" }
func (p *pool) GetErr() error                { return nil }
func (p *pool) Settle(x int)                 {}
func (p *pool) Flush(force bool) (int, error) {
	return 0, nil
}

func names(props []*Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name()
	}
	return out
}

func TestProperties(t *testing.T) {
	props := Properties(reflect.TypeOf(&pool{}))
	require.Equal(t, []string{"enabled", "label", "size", "timeout"}, names(props))

	byName := make(map[string]*Property)
	for _, p := range props {
		byName[p.Name()] = p
	}

	tests := []struct {
		name     string
		typ      reflect.Type
		readable bool
		writable bool
	}{
		{name: "size", typ: reflect.TypeOf(0), readable: true, writable: true},
		{name: "enabled", typ: reflect.TypeOf(false), readable: true, writable: true},
		{name: "label", typ: reflect.TypeOf(""), readable: true},
		{name: "timeout", typ: reflect.TypeOf(0), writable: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := byName[tc.name]
			require.NotNil(t, p)
			require.Equal(t, tc.typ, p.Type())
			require.Equal(t, tc.readable, p.Readable())
			require.Equal(t, tc.writable, p.Writable())
		})
	}
}

func TestPropertiesOfValueTypeHaveNoPointerMethods(t *testing.T) {
	require.Empty(t, Properties(reflect.TypeOf(pool{})))
}

func TestPropertiesAreCopies(t *testing.T) {
	typ := reflect.TypeOf(&pool{})

	p, ok := FindProperty(typ, "Size")
	require.True(t, ok)
	p.ClearReadable()
	p.ClearWritable()

	again, ok := FindProperty(typ, "size")
	require.True(t, ok)
	require.True(t, again.Readable())
	require.True(t, again.Writable())
	require.True(t, p.Equal(again))
}

func TestFindPropertyOfType(t *testing.T) {
	typ := reflect.TypeOf(&pool{})

	_, ok := FindPropertyOfType(typ, "size", reflect.TypeOf(0))
	require.True(t, ok)

	_, ok = FindPropertyOfType(typ, "size", reflect.TypeOf(""))
	require.False(t, ok)

	_, ok = FindProperty(typ, "mismatch")
	require.False(t, ok)
}

func TestPropertyAccess(t *testing.T) {
	typ := reflect.TypeOf(&pool{})
	v := &pool{}
	recv := reflect.ValueOf(v)

	size, _ := FindProperty(typ, "size")
	require.NoError(t, size.Set(recv, reflect.ValueOf(7)))
	got, err := size.Get(recv)
	require.NoError(t, err)
	require.Equal(t, 7, got.Interface())

	label, _ := FindProperty(typ, "label")
	_, err = label.Get(recv)
	require.ErrorIs(t, err, errClosed)
	require.ErrorIs(t, label.Set(recv, reflect.ValueOf("x")), ErrNotWritable)

	timeout, _ := FindProperty(typ, "timeout")
	_, err = timeout.Get(recv)
	require.ErrorIs(t, err, ErrNotReadable)

	require.True(t, size.IsAccessor("GetSize"))
	require.True(t, size.IsAccessor("SetSize"))
	require.False(t, size.IsAccessor("Flush"))
}

func TestNewProperty(t *testing.T) {
	get, _ := FindMethod(reflect.TypeOf(&pool{}), "GetMismatch")
	set, _ := FindMethod(reflect.TypeOf(&pool{}), "SetMismatch")

	_, err := NewProperty("mismatch", &get, &set)
	require.ErrorIs(t, err, ErrAccessorMismatch)

	_, err = NewProperty("none", nil, nil)
	require.ErrorIs(t, err, ErrNoAccessor)

	p, err := NewProperty("mismatch", nil, &set)
	require.NoError(t, err)
	require.Equal(t, reflect.TypeOf(0), p.Type())
}

func TestMethods(t *testing.T) {
	methods := Methods(reflect.TypeOf(&pool{}))

	var got []string
	for _, m := range methods {
		got = append(got, m.Name)
	}
	require.Contains(t, got, "Reset")
	require.Contains(t, got, "Flush")
	require.IsIncreasing(t, got)

	flush, ok := FindMethod(reflect.TypeOf(&pool{}), "Flush")
	require.True(t, ok)
	require.Equal(t, []reflect.Type{reflect.TypeOf(false)}, flush.In())
	require.Equal(t, []reflect.Type{reflect.TypeOf(0)}, flush.Out())
	require.True(t, flush.ReturnsError())
}

func TestMethodsOfInterface(t *testing.T) {
	type resetter interface {
		Reset()
		Count() int
	}

	methods := Methods(reflect.TypeOf((*resetter)(nil)).Elem())
	require.Len(t, methods, 2)
	require.Equal(t, "Count", methods[0].Name)
	require.Equal(t, 0, methods[0].Type.NumIn())
}

func TestMethodCallOnProxyWithoutMethod(t *testing.T) {
	m, _ := FindMethod(reflect.TypeOf(&pool{}), "Reset")
	_, err := m.Call(reflect.ValueOf(struct{}{}), nil)

	var missing *MissingMethodError
	require.ErrorAs(t, err, &missing)
}

func TestFields(t *testing.T) {
	fields := Fields(reflect.TypeOf(&pool{}))

	var got []string
	for _, f := range fields {
		got = append(got, f.Name)
	}
	require.Equal(t, []string{"Shared", "Name", "Max"}, got)

	shared, ok := FindField(reflect.TypeOf(pool{}), "Shared")
	require.True(t, ok)
	require.Equal(t, reflect.TypeOf(base{}), shared.Owner)
	require.Equal(t, reflect.TypeOf(pool{}), shared.Root)
	require.Equal(t, 1, shared.Depth())
}

func TestFieldAccess(t *testing.T) {
	v := &pool{Name: "main"}
	name, _ := FindField(reflect.TypeOf(v), "Name")
	shared, _ := FindField(reflect.TypeOf(v), "Shared")

	got, err := name.Get(reflect.ValueOf(v))
	require.NoError(t, err)
	require.Equal(t, "main", got.Interface())

	require.NoError(t, shared.Set(reflect.ValueOf(v), reflect.ValueOf("s")))
	require.Equal(t, "s", v.Shared)

	err = name.Set(reflect.ValueOf(*v), reflect.ValueOf("x"))
	require.ErrorIs(t, err, ErrNotSettable)

	_, err = name.Get(reflect.ValueOf((*pool)(nil)))
	require.ErrorIs(t, err, ErrNilReceiver)
}

func TestFieldAccessThroughEmbeddingWrapper(t *testing.T) {
	type wrapper struct {
		*pool
	}

	w := wrapper{pool: &pool{Max: 3}}
	maxField, _ := FindField(reflect.TypeOf(&pool{}), "Max")

	got, err := maxField.Get(reflect.ValueOf(w))
	require.NoError(t, err)
	require.Equal(t, 3, got.Interface())
}

func TestFieldsOfNonStruct(t *testing.T) {
	require.Nil(t, Fields(reflect.TypeOf(0)))
	require.Nil(t, Fields(nil))
}
