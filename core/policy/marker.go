package policy

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/marker"
	"github.com/anoideaopen/mx/core/stringsx"
)

// Marker manages only the members of bean types that carry a marker. Fields and
// properties are read-only unless their marker says otherwise.
type Marker struct {
	Skeleton
}

// NewMarker returns a Marker policy.
func NewMarker() Marker {
	return Marker{}
}

// Prepare validates the markers of t.
func (Marker) Prepare(t reflect.Type) error {
	_, err := marker.Of(t)
	return err
}

func (p Marker) Description(t reflect.Type) string {
	if s := markers(t); s.Bean != nil && s.Bean.Description != "" {
		return s.Bean.Description
	}
	return p.Skeleton.Description(t)
}

func (Marker) IncludeField(t reflect.Type, f introspect.Field) bool {
	s := markers(t)
	_, ok := s.Field(f.Name)
	return ok && s.Bean != nil
}

func (p Marker) FieldName(t reflect.Type, f introspect.Field) string {
	m, _ := markers(t).Field(f.Name)
	return m.ExportName(p.Skeleton.FieldName(t, f))
}

func (Marker) FieldDescription(t reflect.Type, f introspect.Field) string {
	m, _ := markers(t).Field(f.Name)
	return m.Description
}

func (Marker) FieldAccess(t reflect.Type, f introspect.Field) descriptor.Access {
	m, _ := markers(t).Field(f.Name)
	return m.AccessOr(descriptor.AccessReadOnly)
}

func (p Marker) PopulateField(t reflect.Type, f introspect.Field, fields descriptor.Fields) {
	p.Skeleton.PopulateField(t, f, fields)
	m, _ := markers(t).Field(f.Name)
	populateMetric(m, fields)
}

func (Marker) IncludeProperty(t reflect.Type, prop *introspect.Property) bool {
	s := markers(t)
	_, ok := s.Property(prop.Name())
	return ok && s.Bean != nil
}

func (p Marker) PropertyName(t reflect.Type, prop *introspect.Property) string {
	m, _ := markers(t).Property(prop.Name())
	return m.ExportName(p.Skeleton.PropertyName(t, prop))
}

func (Marker) PropertyDescription(t reflect.Type, prop *introspect.Property) string {
	m, _ := markers(t).Property(prop.Name())
	return m.Description
}

func (Marker) PropertyAccess(t reflect.Type, prop *introspect.Property) descriptor.Access {
	m, _ := markers(t).Property(prop.Name())
	return m.AccessOr(descriptor.AccessReadOnly)
}

func (p Marker) PopulateProperty(t reflect.Type, prop *introspect.Property, fields descriptor.Fields) {
	p.Skeleton.PopulateProperty(t, prop, fields)
	m, _ := markers(t).Property(prop.Name())
	fields[descriptor.FieldDisplayName] = m.ExportName(stringsx.UpperFirstChar(prop.Name()))
	populateMetric(m, fields)
}

func (Marker) IncludeMethod(t reflect.Type, m introspect.Method) bool {
	s := markers(t)
	_, ok := s.Method(m.Name)
	return ok && s.Bean != nil
}

func (p Marker) MethodName(t reflect.Type, m introspect.Method) string {
	op, _ := markers(t).Method(m.Name)
	return op.ExportName(p.Skeleton.MethodName(t, m))
}

func (Marker) MethodDescription(t reflect.Type, m introspect.Method) string {
	op, _ := markers(t).Method(m.Name)
	return op.Description
}

// ParameterName uses the parameter markers of the method. A method with parameter
// markers must mark every parameter it is asked about.
func (p Marker) ParameterName(t reflect.Type, m introspect.Method, index int) (string, error) {
	def, _ := p.Skeleton.ParameterName(t, m, index)

	params := markers(t).Params(m.Name)
	if len(params) == 0 {
		return def, nil
	}

	param, ok := params[index]
	if !ok {
		return "", fmt.Errorf("%w: method '%s' index %d", ErrMissingParameter, m.Name, index)
	}
	return param.ExportName(def), nil
}

func (Marker) ParameterDescription(t reflect.Type, m introspect.Method, index int) (string, error) {
	params := markers(t).Params(m.Name)
	if len(params) == 0 {
		return "", nil
	}

	param, ok := params[index]
	if !ok {
		return "", fmt.Errorf("%w: method '%s' index %d", ErrMissingParameter, m.Name, index)
	}
	return param.Description, nil
}

func (p Marker) PopulateMethod(t reflect.Type, m introspect.Method, fields descriptor.Fields) {
	p.Skeleton.PopulateMethod(t, m, fields)
	op, _ := markers(t).Method(m.Name)
	fields[descriptor.FieldDisplayName] = op.ExportName(m.Name)
	populateMetric(op.Member, fields)
}

func markers(t reflect.Type) *marker.Set {
	s, err := marker.Of(t)
	if err != nil {
		return &marker.Set{}
	}
	return s
}

func populateMetric(m marker.Member, fields descriptor.Fields) {
	if m.Metric == nil {
		return
	}
	fields[descriptor.FieldMetricType] = string(m.Metric.Type)
	if m.Metric.Unit != "" {
		fields[descriptor.FieldUnits] = m.Metric.Unit
	}
	if m.Metric.Category != "" {
		fields[descriptor.FieldMetricCategory] = m.Metric.Category
	}
}
