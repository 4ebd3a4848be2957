package naming

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/marker"
	"github.com/anoideaopen/mx/core/reflectx"
	"github.com/anoideaopen/mx/core/target"
)

// SelfNaming is implemented by resources that name themselves.
type SelfNaming interface {
	ObjectName() (ObjectName, error)
}

// Strategy names resources.
type Strategy interface {
	ObjectName(v any) (ObjectName, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(v any) (ObjectName, error)

// ObjectName implements Strategy.
func (f StrategyFunc) ObjectName(v any) (ObjectName, error) {
	return f(v)
}

// DefaultDomain is used for types declared outside any package, such as
// unnamed struct types.
const DefaultDomain = "go"

// TypeKey is the key property of default names.
const TypeKey = "type"

// Default names a resource, in order of preference, by its SelfNaming method, the
// objectName tag of its bean marker, the mx shorthand tag of its bean marker, and
// finally package path and type name: "<pkg>:type=<Name>". Proxies are looked through
// for the marker and the type.
type Default struct{}

// ObjectName implements Strategy.
func (Default) ObjectName(v any) (ObjectName, error) {
	if v == nil {
		return ObjectName{}, fmt.Errorf("%w: nil resource", ErrMalformedName)
	}

	if self, ok := v.(SelfNaming); ok {
		return self.ObjectName()
	}

	t := target.Resolve(v)
	if bean, ok := marker.BeanOf(t); ok {
		switch {
		case bean.ObjectName != "":
			return Parse(bean.ObjectName)
		case bean.Value != "":
			return Parse(bean.Value)
		}
	}

	return TypeName(t)
}

// TypeName returns the default name of type t.
func TypeName(t reflect.Type) (ObjectName, error) {
	t = reflectx.Indirect(t)

	domain := t.PkgPath()
	if domain == "" {
		domain = DefaultDomain
	}

	name := t.Name()
	if name == "" {
		name = t.Kind().String()
	}

	return New(domain, TypeKey, name)
}
