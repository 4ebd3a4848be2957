// Package naming builds and validates the names resources are registered under.
//
// An object name is a domain and an ordered list of key properties:
//
//	github.com/acme/app:type=Cache,name=sessions
package naming

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrMalformedName = errors.New("malformed object name")

const (
	domainSeparator   = ":"
	propertySeparator = ","
	valueSeparator    = "="
)

// KeyProperty is one key=value pair of an object name.
type KeyProperty struct {
	Key   string
	Value string
}

// ObjectName identifies a registered resource. Two names are equal when their
// domains and key property sets are, whatever the key order.
type ObjectName struct {
	domain     string
	properties []KeyProperty
}

// Parse parses domain:key=value[,key=value...].
func Parse(s string) (ObjectName, error) {
	domain, rest, ok := strings.Cut(s, domainSeparator)
	if !ok {
		return ObjectName{}, fmt.Errorf("%w: '%s': missing domain separator", ErrMalformedName, s)
	}
	if rest == "" {
		return ObjectName{}, fmt.Errorf("%w: '%s': no key properties", ErrMalformedName, s)
	}

	kv := make([]string, 0)
	for _, pair := range strings.Split(rest, propertySeparator) {
		key, value, ok := strings.Cut(pair, valueSeparator)
		if !ok {
			return ObjectName{}, fmt.Errorf("%w: '%s': property '%s' without value", ErrMalformedName, s, pair)
		}
		kv = append(kv, key, value)
	}

	return New(domain, kv...)
}

// MustParse is Parse that panics on error.
func MustParse(s string) ObjectName {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// New builds a name from a domain and key, value pairs.
func New(domain string, kv ...string) (ObjectName, error) {
	if err := validDomain(domain); err != nil {
		return ObjectName{}, err
	}
	if len(kv) == 0 || len(kv)%2 != 0 {
		return ObjectName{}, fmt.Errorf("%w: key properties must come in pairs", ErrMalformedName)
	}

	n := ObjectName{domain: domain}
	for i := 0; i < len(kv); i += 2 {
		var err error
		if n, err = n.With(kv[i], kv[i+1]); err != nil {
			return ObjectName{}, err
		}
	}
	return n, nil
}

// With returns a copy of n with one more key property.
func (n ObjectName) With(key, value string) (ObjectName, error) {
	if err := validKey(key); err != nil {
		return ObjectName{}, err
	}
	if err := validValue(key, value); err != nil {
		return ObjectName{}, err
	}
	if _, ok := n.KeyProperty(key); ok {
		return ObjectName{}, fmt.Errorf("%w: duplicate key '%s'", ErrMalformedName, key)
	}

	properties := make([]KeyProperty, len(n.properties), len(n.properties)+1)
	copy(properties, n.properties)
	return ObjectName{
		domain:     n.domain,
		properties: append(properties, KeyProperty{Key: key, Value: value}),
	}, nil
}

// Domain returns the domain part.
func (n ObjectName) Domain() string {
	return n.domain
}

// KeyProperty returns the value of key.
func (n ObjectName) KeyProperty(key string) (string, bool) {
	for _, p := range n.properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// KeyProperties returns the key properties in declaration order.
func (n ObjectName) KeyProperties() []KeyProperty {
	out := make([]KeyProperty, len(n.properties))
	copy(out, n.properties)
	return out
}

// IsZero reports whether n is the zero ObjectName.
func (n ObjectName) IsZero() bool {
	return n.domain == "" && len(n.properties) == 0
}

// String formats n with key properties in declaration order.
func (n ObjectName) String() string {
	return n.format(n.properties)
}

// Canonical formats n with key properties sorted by key. Equal names have equal
// canonical forms.
func (n ObjectName) Canonical() string {
	sorted := n.KeyProperties()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return n.format(sorted)
}

// Equal compares canonical forms.
func (n ObjectName) Equal(o ObjectName) bool {
	return n.Canonical() == o.Canonical()
}

func (n ObjectName) format(properties []KeyProperty) string {
	var b strings.Builder
	b.WriteString(n.domain)
	b.WriteString(domainSeparator)
	for i, p := range properties {
		if i > 0 {
			b.WriteString(propertySeparator)
		}
		b.WriteString(p.Key)
		b.WriteString(valueSeparator)
		b.WriteString(p.Value)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (n ObjectName) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *ObjectName) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

const (
	forbiddenInDomain = ":*?\n"
	forbiddenInKey    = ":=,*?\"\n"
	forbiddenInValue  = ":=,*?\"\n"
)

func validDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("%w: empty domain", ErrMalformedName)
	}
	if strings.ContainsAny(domain, forbiddenInDomain) {
		return fmt.Errorf("%w: invalid character in domain '%s'", ErrMalformedName, domain)
	}
	return nil
}

func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrMalformedName)
	}
	if strings.ContainsAny(key, forbiddenInKey) {
		return fmt.Errorf("%w: invalid character in key '%s'", ErrMalformedName, key)
	}
	return nil
}

func validValue(key, value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty value for key '%s'", ErrMalformedName, key)
	}
	if strings.ContainsAny(value, forbiddenInValue) {
		return fmt.Errorf("%w: invalid character in value '%s'", ErrMalformedName, value)
	}
	return nil
}
