package policy

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/marker"
	"github.com/anoideaopen/mx/core/memo"
)

// Names of the built-in policies.
const (
	NamePublic = "public"
	NameMarker = "marker"
)

// Factory creates a policy.
type Factory func() descriptor.Policy

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{
		NamePublic: func() descriptor.Policy { return NewPublic() },
		NameMarker: func() descriptor.Policy { return NewMarker() },
	}
)

// Register makes a policy available to bean markers under name. Registering a name
// again replaces the factory for Delegating selectors created afterwards.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[name] = factory
}

// Registered returns the registered policy names, sorted.
func Registered() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the policy registered under name.
func New(name string) (descriptor.Policy, error) {
	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPolicy, name)
	}
	return factory(), nil
}

// Delegating selects the policy of a type from its bean marker: the policy named by
// the `policy` tag, Marker when the tag is absent, and Public for types without a
// bean marker. Named policies are created once per selector.
type Delegating struct {
	public    descriptor.Policy
	instances memo.Cache[string, descriptor.Policy]
}

// NewDelegating returns a Delegating selector.
func NewDelegating() *Delegating {
	return &Delegating{public: NewPublic()}
}

// WithPublic replaces the policy used for types without a bean marker.
func (d *Delegating) WithPublic(p descriptor.Policy) *Delegating {
	d.public = p
	return d
}

// Select implements descriptor.Selector.
func (d *Delegating) Select(t reflect.Type) (descriptor.Policy, error) {
	bean, ok := marker.BeanOf(t)
	if !ok {
		return d.public, nil
	}

	name := bean.Policy
	if name == "" {
		name = NameMarker
	}

	return d.instances.TryGet(name, New)
}
