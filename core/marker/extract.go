package marker

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/memo"
	"github.com/anoideaopen/mx/core/reflectx"
)

var sets memo.Cache[reflect.Type, *Set]

// Of extracts and validates the markers of t. A marker naming a member t does not
// have, or carrying an unparsable value, is an error.
func Of(t reflect.Type) (*Set, error) {
	return sets.TryGet(t, extract)
}

// BeanOf returns the type level marker of t without validating member markers.
func BeanOf(t reflect.Type) (*BeanInfo, bool) {
	s := reflectx.Indirect(t)
	if s == nil || s.Kind() != reflect.Struct {
		return nil, false
	}

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Anonymous && f.Type == beanType {
			return beanInfo(f.Tag), true
		}
	}

	return nil, false
}

func beanInfo(tag reflect.StructTag) *BeanInfo {
	return &BeanInfo{
		ObjectName:  tag.Get(TagObjectName),
		Value:       tag.Get(TagValue),
		Description: tag.Get(TagDescription),
		Policy:      tag.Get(TagPolicy),
	}
}

func extract(t reflect.Type) (*Set, error) {
	set := &Set{
		Fields:     make(map[string]Member),
		Methods:    make(map[string]OpInfo),
		Properties: make(map[string]Member),
		params:     make(map[string]map[int]ParamInfo),
	}
	set.Bean, _ = BeanOf(t)

	s := reflectx.Indirect(t)
	if s == nil || s.Kind() != reflect.Struct {
		return set, nil
	}

	for _, sf := range markedFields(s) {
		var err error
		switch {
		case sf.Type == beanType:
			continue
		case sf.Type == opType:
			err = set.addOp(t, sf)
		case sf.Type == propType:
			err = set.addProp(t, sf)
		case sf.Type == paramType:
			err = set.addParam(t, sf)
		case !sf.Anonymous && sf.IsExported():
			if _, ok := sf.Tag.Lookup(TagValue); ok {
				var m Member
				if m, err = member(sf.Tag); err == nil {
					set.Fields[sf.Name] = m
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: type '%s': %w", ErrMalformedMarker, t, err)
		}
	}

	for name, op := range set.Methods {
		op.Params = set.params[name]
		set.Methods[name] = op
	}

	return set, nil
}

// markedFields lists the fields of struct type s and of the structs it embeds.
// Named fields follow the promotion rules: the shallowest wins and a name
// repeated at that depth is dropped. Blank fields carry the member markers and
// are all kept, whatever their number.
func markedFields(s reflect.Type) []reflect.StructField {
	type level struct {
		typ   reflect.Type
		index []int
	}

	var (
		out     []reflect.StructField
		current = []level{{typ: s}}
		seen    = make(map[string]bool)
		visited = map[reflect.Type]bool{s: true}
	)

	for len(current) > 0 {
		var next []level
		named := make(map[string][]reflect.StructField)
		var order []string

		for _, l := range current {
			for i := 0; i < l.typ.NumField(); i++ {
				sf := l.typ.Field(i)
				sf.Index = append(append([]int(nil), l.index...), i)

				if sf.Name == "_" {
					out = append(out, sf)
					continue
				}
				if seen[sf.Name] {
					continue
				}
				if _, ok := named[sf.Name]; !ok {
					order = append(order, sf.Name)
				}
				named[sf.Name] = append(named[sf.Name], sf)

				if !sf.Anonymous {
					continue
				}
				ft := reflectx.Indirect(sf.Type)
				if ft.Kind() == reflect.Struct && !visited[ft] {
					visited[ft] = true
					next = append(next, level{typ: ft, index: sf.Index})
				}
			}
		}

		for _, name := range order {
			seen[name] = true
			if fields := named[name]; len(fields) == 1 {
				out = append(out, fields[0])
			}
		}
		current = next
	}

	return out
}

func target(sf reflect.StructField) (string, error) {
	on := sf.Tag.Get(TagOn)
	if on == "" {
		return "", fmt.Errorf("%s marker without '%s' tag", sf.Type.Name(), TagOn)
	}
	return on, nil
}

func (s *Set) addOp(t reflect.Type, sf reflect.StructField) error {
	on, err := target(sf)
	if err != nil {
		return err
	}
	if _, ok := introspect.FindMethod(t, on); !ok {
		return fmt.Errorf("operation marker on unknown method '%s'", on)
	}
	if _, ok := s.Methods[on]; ok {
		return fmt.Errorf("duplicate operation marker on '%s'", on)
	}

	m, err := member(sf.Tag)
	if err != nil {
		return err
	}
	s.Methods[on] = OpInfo{Member: m}
	return nil
}

func (s *Set) addProp(t reflect.Type, sf reflect.StructField) error {
	on, err := target(sf)
	if err != nil {
		return err
	}
	p, ok := introspect.FindProperty(t, on)
	if !ok {
		return fmt.Errorf("property marker on unknown property '%s'", on)
	}
	if _, ok := s.Properties[p.Name()]; ok {
		return fmt.Errorf("duplicate property marker on '%s'", on)
	}

	m, err := member(sf.Tag)
	if err != nil {
		return err
	}
	s.Properties[p.Name()] = m
	return nil
}

func (s *Set) addParam(t reflect.Type, sf reflect.StructField) error {
	on, err := target(sf)
	if err != nil {
		return err
	}
	method, ok := introspect.FindMethod(t, on)
	if !ok {
		return fmt.Errorf("parameter marker on unknown method '%s'", on)
	}

	index, err := strconv.Atoi(sf.Tag.Get(TagIndex))
	if err != nil {
		return fmt.Errorf("parameter marker on '%s': bad index: %w", on, err)
	}
	if index < 0 || index >= method.Type.NumIn() {
		return fmt.Errorf("parameter marker on '%s': index %d out of range", on, index)
	}

	params, ok := s.params[on]
	if !ok {
		params = make(map[int]ParamInfo)
		s.params[on] = params
	}
	if _, ok := params[index]; ok {
		return fmt.Errorf("duplicate parameter marker on '%s' index %d", on, index)
	}

	params[index] = ParamInfo{
		Name:        sf.Tag.Get(TagName),
		Value:       sf.Tag.Get(TagValue),
		Description: sf.Tag.Get(TagDescription),
	}
	return nil
}

func member(tag reflect.StructTag) (Member, error) {
	m := Member{
		Name:        tag.Get(TagName),
		Value:       tag.Get(TagValue),
		Description: tag.Get(TagDescription),
	}

	if raw, ok := tag.Lookup(TagAccess); ok {
		access, err := descriptor.ParseAccess(raw)
		if err != nil {
			return m, err
		}
		m.Access, m.HasAccess = access, true
	}

	if raw, ok := tag.Lookup(TagMetric); ok {
		metric := &Metric{
			Type:     MetricType(raw),
			Unit:     tag.Get(TagUnit),
			Category: tag.Get(TagCategory),
		}
		switch metric.Type {
		case "":
			metric.Type = MetricGauge
		case MetricGauge, MetricCounter:
		default:
			return m, fmt.Errorf("unknown metric type '%s'", raw)
		}
		m.Metric = metric
	}

	return m, nil
}
