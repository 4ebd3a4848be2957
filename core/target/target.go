// Package target finds the type that should be introspected for a managed value.
// Wrappers around a value (proxies) are looked through so that the wrapped type,
// not the wrapper, is described.
package target

import "reflect"

// TargetTypeAware is implemented by wrappers that know the type they stand for.
type TargetTypeAware interface {
	TargetType() reflect.Type
}

// Opaque is implemented by wrappers that do not expose what they wrap.
// Such values are recognized as proxies but described by their own type.
type Opaque interface {
	OpaqueProxy()
}

// Proxy marks a struct as an embedding proxy. The first other embedded field of the
// struct is the proxied value:
//
//	type tracedCache struct {
//	    target.Proxy
//	    *Cache
//	}
type Proxy struct{}

// Detector is one step of the resolution chain. It returns the target type and
// whether the value was recognized. A recognized value may still yield a nil type,
// in which case resolution moves on.
type Detector interface {
	Detect(v any) (reflect.Type, bool)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(v any) (reflect.Type, bool)

// Detect implements Detector.
func (f DetectorFunc) Detect(v any) (reflect.Type, bool) {
	return f(v)
}

var proxyType = reflect.TypeOf(Proxy{})

var detectors = []Detector{
	DetectorFunc(detectAware),
	DetectorFunc(detectEmbedding),
	DetectorFunc(detectOpaque),
}

// Detectors returns the resolution chain in evaluation order.
func Detectors() []Detector {
	out := make([]Detector, len(detectors))
	copy(out, detectors)
	return out
}

// Resolve returns the type to introspect for v. The first detector that recognizes v
// and yields a type wins; otherwise the type of v itself is returned.
// Resolve(nil) is nil.
func Resolve(v any) reflect.Type {
	if v == nil {
		return nil
	}

	for _, d := range detectors {
		if t, ok := d.Detect(v); ok && t != nil {
			return t
		}
	}

	return reflect.TypeOf(v)
}

// IsProxy reports whether any detector recognizes v.
func IsProxy(v any) bool {
	if v == nil {
		return false
	}

	for _, d := range detectors {
		if _, ok := d.Detect(v); ok {
			return true
		}
	}

	return false
}

func detectAware(v any) (reflect.Type, bool) {
	aware, ok := v.(TargetTypeAware)
	if !ok {
		return nil, false
	}

	return aware.TargetType(), true
}

func detectEmbedding(v any) (reflect.Type, bool) {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}

	var (
		marked bool
		inner  reflect.Type
	)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if f.Type == proxyType {
			marked = true
			continue
		}
		if inner == nil {
			inner = f.Type
		}
	}

	if !marked {
		return nil, false
	}

	return inner, true
}

func detectOpaque(v any) (reflect.Type, bool) {
	_, ok := v.(Opaque)
	return nil, ok
}
