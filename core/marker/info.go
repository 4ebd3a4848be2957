package marker

import (
	"github.com/anoideaopen/mx/core/descriptor"
)

// MetricType classifies a metric attribute.
type MetricType string

const (
	MetricGauge   MetricType = "gauge"
	MetricCounter MetricType = "counter"
)

// BeanInfo is the type level marker.
type BeanInfo struct {
	ObjectName  string
	Value       string
	Description string
	Policy      string
}

// Metric qualifies an attribute as a metric.
type Metric struct {
	Type     MetricType
	Unit     string
	Category string
}

// Member is the marker of a field, property or method.
type Member struct {
	Name        string
	Value       string
	Description string
	Access      descriptor.Access
	HasAccess   bool
	Metric      *Metric
}

// ExportName resolves the exported name: explicit name, then the shorthand value,
// then def.
func (m Member) ExportName(def string) string {
	switch {
	case m.Name != "":
		return m.Name
	case m.Value != "":
		return m.Value
	default:
		return def
	}
}

// AccessOr returns the marked access or def when none was given.
func (m Member) AccessOr(def descriptor.Access) descriptor.Access {
	if m.HasAccess {
		return m.Access
	}
	return def
}

// ParamInfo is the marker of one method parameter.
type ParamInfo struct {
	Name        string
	Value       string
	Description string
}

// ExportName resolves the parameter name like Member.ExportName.
func (p ParamInfo) ExportName(def string) string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Value != "":
		return p.Value
	default:
		return def
	}
}

// OpInfo is the marker of a method together with its parameter markers.
type OpInfo struct {
	Member
	Params map[int]ParamInfo
}

// Set holds every marker found on a type.
type Set struct {
	Bean       *BeanInfo
	Fields     map[string]Member
	Methods    map[string]OpInfo
	Properties map[string]Member
	params     map[string]map[int]ParamInfo
}

// Field returns the marker of the named struct field.
func (s *Set) Field(name string) (Member, bool) {
	m, ok := s.Fields[name]
	return m, ok
}

// Method returns the marker of the named method.
func (s *Set) Method(name string) (OpInfo, bool) {
	m, ok := s.Methods[name]
	return m, ok
}

// Property returns the marker of the named property.
func (s *Set) Property(name string) (Member, bool) {
	m, ok := s.Properties[name]
	return m, ok
}

// Params returns the parameter markers of the named method, marked or not.
func (s *Set) Params(method string) map[int]ParamInfo {
	return s.params[method]
}
