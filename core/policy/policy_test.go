package policy_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/marker"
	"github.com/anoideaopen/mx/core/policy"
	"github.com/stretchr/testify/require"
)

type errand struct {
	RW string

	prop      string
	writeOnly int
}

func (e *errand) GetProp() string        { return e.prop }
func (e *errand) SetProp(v string)       { e.prop = v }
func (e *errand) GetReadOnly() int       { return 7 }
func (e *errand) SetWriteOnly(v int)     { e.writeOnly = v }
func (e *errand) Go(where string) string { return "going " + where }
func (e *errand) String() string         { return "errand" }

type queue struct {
	marker.Bean `description:"job queue" objectName:"app:type=Queue"`

	Workers  int    `mx:"" description:"worker count" access:"rw"`
	Capacity int    `mx:"Cap" metric:"gauge" unit:"jobs" category:"size"`
	Name     string `mx:"" name:"QueueName"`
	Ignored  string

	_ marker.Op    `on:"Push" description:"enqueue a job"`
	_ marker.Param `on:"Push" index:"0" name:"job" description:"job id"`
	_ marker.Param `on:"Push" index:"1" mx:"priority"`
	_ marker.Op    `on:"Drain" mx:"drainAll"`
	_ marker.Prop  `on:"depth" metric:"counter"`
	_ marker.Prop  `on:"paused" access:"rw" name:"Suspended"`

	depth  int
	paused bool
}

func (q *queue) Push(job string, priority int) int { q.depth++; return q.depth }
func (q *queue) Drain()                            { q.depth = 0 }
func (q *queue) Hidden()                           {}
func (q *queue) GetDepth() int                     { return q.depth }
func (q *queue) IsPaused() bool                    { return q.paused }
func (q *queue) SetPaused(v bool)                  { q.paused = v }

type halfMarked struct {
	marker.Bean

	_ marker.Op    `on:"Run"`
	_ marker.Param `on:"Run" index:"1" name:"second"`
}

func (h *halfMarked) Run(a, b string) {}

type misplaced struct {
	marker.Bean

	_ marker.Op `on:"Missing"`
}

type publicBean struct {
	marker.Bean `policy:"public"`

	RW string

	prop string
}

func (b *publicBean) GetProp() string  { return b.prop }
func (b *publicBean) SetProp(v string) { b.prop = v }

type unknownBean struct {
	marker.Bean `policy:"nope"`
}

type attributeView struct {
	access      descriptor.Access
	description string
}

func attributes(d *descriptor.Descriptor) map[string]attributeView {
	out := make(map[string]attributeView)
	for _, a := range d.Attributes() {
		out[a.Name] = attributeView{access: a.Access, description: a.Description}
	}
	return out
}

func operations(d *descriptor.Descriptor) []string {
	var out []string
	for _, o := range d.Operations() {
		out = append(out, string(o.Signature))
	}
	return out
}

func TestPublic(t *testing.T) {
	d, err := descriptor.Build(reflect.TypeOf(&errand{}), policy.NewPublic())
	require.NoError(t, err)

	require.Equal(t, map[string]attributeView{
		"Prop":      {access: descriptor.AccessReadWrite},
		"ReadOnly":  {access: descriptor.AccessReadOnly},
		"WriteOnly": {access: descriptor.AccessWriteOnly},
		"RW":        {access: descriptor.AccessReadWrite},
	}, attributes(d))

	require.ElementsMatch(t, []string{
		"GetProp()", "GetReadOnly()", "Go(string)", "SetProp(string)", "SetWriteOnly(int)", "String()",
	}, operations(d))

	getProp, err := d.Operation("GetProp")
	require.NoError(t, err)
	require.Equal(t, descriptor.RoleGetter, getProp.Role)
	require.Equal(t, descriptor.VisibilityAccessor, getProp.Fields[descriptor.FieldVisibility])

	setProp, err := d.Operation("SetProp", reflect.TypeOf(""))
	require.NoError(t, err)
	require.Equal(t, descriptor.RoleSetter, setProp.Role)

	goOp, err := d.Operation("Go", reflect.TypeOf(""))
	require.NoError(t, err)
	require.Equal(t, descriptor.RoleOperation, goOp.Role)
	require.Equal(t, policy.DefaultVisibility, goOp.Fields[descriptor.FieldVisibility])
	require.Equal(t, "string", goOp.Params[0].Name)

	prop, err := d.Attribute("Prop")
	require.NoError(t, err)
	require.Equal(t, "GetProp", prop.Fields[descriptor.FieldGetMethod])
	require.Equal(t, "SetProp", prop.Fields[descriptor.FieldSetMethod])
	require.Equal(t, reflect.TypeOf(&errand{}).String(), d.Description())
}

func TestPublicHidesObjectMembers(t *testing.T) {
	p := policy.NewPublic()
	p.ExposeObjectMembers = false

	d, err := descriptor.Build(reflect.TypeOf(&errand{}), p)
	require.NoError(t, err)

	_, err = d.Operation("String")
	require.ErrorIs(t, err, descriptor.ErrOperationNotFound)
}

func TestPublicAccessRules(t *testing.T) {
	e := &errand{RW: "value"}
	recv := reflect.ValueOf(e)

	d, err := descriptor.Build(reflect.TypeOf(e), policy.NewPublic())
	require.NoError(t, err)

	rw, _ := d.Attribute("RW")
	got, err := rw.Get(recv)
	require.NoError(t, err)
	require.Equal(t, "value", got)
	require.NoError(t, rw.Set(recv, "other"))
	require.Equal(t, "other", e.RW)

	readOnly, _ := d.Attribute("ReadOnly")
	err = readOnly.Set(recv, 1)
	require.ErrorIs(t, err, descriptor.ErrNotWritable)
	require.ErrorContains(t, err, "property")

	writeOnly, _ := d.Attribute("WriteOnly")
	_, err = writeOnly.Get(recv)
	require.ErrorIs(t, err, descriptor.ErrNotReadable)
	require.ErrorContains(t, err, "property")
}

func TestPublicValueResourceFieldsAreReadOnly(t *testing.T) {
	d, err := descriptor.Build(reflect.TypeOf(errand{}), policy.NewPublic())
	require.NoError(t, err)

	rw, err := d.Attribute("RW")
	require.NoError(t, err)
	require.Equal(t, descriptor.AccessReadOnly, rw.Access)

	err = rw.Set(reflect.ValueOf(errand{}), "x")
	require.ErrorIs(t, err, descriptor.ErrNotWritable)
	require.ErrorContains(t, err, "attribute")
}

func TestMarker(t *testing.T) {
	d, err := descriptor.Build(reflect.TypeOf(&queue{}), policy.NewMarker())
	require.NoError(t, err)

	require.Equal(t, "job queue", d.Description())
	require.Equal(t, map[string]attributeView{
		"Workers":   {access: descriptor.AccessReadWrite, description: "worker count"},
		"Cap":       {access: descriptor.AccessReadOnly},
		"QueueName": {access: descriptor.AccessReadOnly},
		"Depth":     {access: descriptor.AccessReadOnly},
		"Suspended": {access: descriptor.AccessReadWrite},
	}, attributes(d))
	require.ElementsMatch(t, []string{"Push(string, int)", "drainAll()"}, operations(d))

	capacity, _ := d.Attribute("Cap")
	require.Equal(t, "gauge", capacity.Fields[descriptor.FieldMetricType])
	require.Equal(t, "jobs", capacity.Fields[descriptor.FieldUnits])
	require.Equal(t, "size", capacity.Fields[descriptor.FieldMetricCategory])

	depth, _ := d.Attribute("Depth")
	require.Equal(t, "counter", depth.Fields[descriptor.FieldMetricType])

	push, err := d.Operation("Push", reflect.TypeOf(""), reflect.TypeOf(0))
	require.NoError(t, err)
	require.Equal(t, "enqueue a job", push.Description)
	require.Equal(t, []descriptor.Parameter{
		{Name: "job", Description: "job id", Type: reflect.TypeOf("")},
		{Name: "priority", Type: reflect.TypeOf(0)},
	}, push.Params)
}

type worker struct {
	marker.Bean

	_ marker.Op    `on:"Run"`
	_ marker.Op    `on:"Stop"`
	_ marker.Param `on:"Run" index:"0" name:"task"`
}

func (*worker) Run(string) {}
func (*worker) Stop()      {}
func (*worker) Reset()     {}

func TestMarkerExposesEveryMarkedOperation(t *testing.T) {
	d, err := descriptor.Build(reflect.TypeOf(&worker{}), policy.NewMarker())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Run(string)", "Stop()"}, operations(d))

	run, err := d.Operation("Run", reflect.TypeOf(""))
	require.NoError(t, err)
	require.Equal(t, "task", run.Params[0].Name)
}

func TestMarkerWithoutBeanIncludesNothing(t *testing.T) {
	d, err := descriptor.Build(reflect.TypeOf(&errand{}), policy.NewMarker())
	require.NoError(t, err)
	require.Empty(t, d.Attributes())
	require.Empty(t, d.Operations())
}

func TestMarkerErrors(t *testing.T) {
	_, err := descriptor.Build(reflect.TypeOf(&halfMarked{}), policy.NewMarker())
	require.ErrorIs(t, err, policy.ErrMissingParameter)

	_, err = descriptor.Build(reflect.TypeOf(&misplaced{}), policy.NewMarker())
	require.ErrorIs(t, err, marker.ErrMalformedMarker)
}

func TestAllowList(t *testing.T) {
	typ := reflect.TypeOf(&errand{})

	allow := policy.NewAllowList()
	require.NoError(t, allow.AddField(typ, "RW"))
	require.NoError(t, allow.AddProperty(typ, "prop"))
	require.NoError(t, allow.AddMethod(typ, "Go"))

	d, err := descriptor.Build(typ, allow)
	require.NoError(t, err)

	require.Equal(t, map[string]attributeView{
		"Prop": {access: descriptor.AccessReadWrite},
		"RW":   {access: descriptor.AccessReadWrite},
	}, attributes(d))
	require.ElementsMatch(t, []string{"GetProp()", "Go(string)", "SetProp(string)"}, operations(d))

	goOp, _ := d.Operation("Go", reflect.TypeOf(""))
	res, err := goOp.Invoke(reflect.ValueOf(&errand{}), []any{"shopping"})
	require.NoError(t, err)
	require.Equal(t, "going shopping", res)
}

func TestAllowListLookups(t *testing.T) {
	typ := reflect.TypeOf(&errand{})
	allow := policy.NewAllowList()

	tests := []struct {
		name string
		add  func() error
		ok   bool
	}{
		{name: "unknown field", add: func() error { return allow.AddField(typ, "Missing") }},
		{name: "unexported field", add: func() error { return allow.AddField(typ, "prop") }},
		{name: "field of wrong type", add: func() error { return allow.AddFieldOfType(typ, "RW", reflect.TypeOf(0)) }},
		{name: "field of right type", add: func() error { return allow.AddFieldOfType(typ, "RW", reflect.TypeOf("")) }, ok: true},
		{name: "unknown method", add: func() error { return allow.AddMethod(typ, "Stop") }},
		{name: "method of wrong params", add: func() error { return allow.AddMethodOfType(typ, "Go") }},
		{name: "method of right params", add: func() error { return allow.AddMethodOfType(typ, "Go", reflect.TypeOf("")) }, ok: true},
		{name: "unknown property", add: func() error { return allow.AddProperty(typ, "missing") }},
		{name: "property of wrong type", add: func() error { return allow.AddPropertyOfType(typ, "prop", reflect.TypeOf(0)) }},
		{name: "property of right type", add: func() error { return allow.AddPropertyOfType(typ, "Prop", reflect.TypeOf("")) }, ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.add()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, policy.ErrMemberNotFound)
		})
	}
}

func TestAllowListRevisionRefreshesCache(t *testing.T) {
	var (
		cache descriptor.Cache
		typ   = reflect.TypeOf(&errand{})
		allow = policy.NewAllowList()
	)

	first, err := cache.Get(typ, allow)
	require.NoError(t, err)
	require.Empty(t, first.Attributes())

	require.NoError(t, allow.AddField(typ, "RW"))

	second, err := cache.Get(typ, allow)
	require.NoError(t, err)
	require.Len(t, second.Attributes(), 1)
}

func TestDelegating(t *testing.T) {
	d := policy.NewDelegating()

	tests := []struct {
		name     string
		typ      reflect.Type
		expected string
		err      error
	}{
		{name: "no bean is public", typ: reflect.TypeOf(&errand{}), expected: "policy.Public"},
		{name: "bean without policy is marker", typ: reflect.TypeOf(&queue{}), expected: "policy.Marker"},
		{name: "bean naming public", typ: reflect.TypeOf(&publicBean{}), expected: "policy.Public"},
		{name: "bean naming unknown policy", typ: reflect.TypeOf(&unknownBean{}), err: policy.ErrUnknownPolicy},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := d.Select(tc.typ)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, fmt.Sprintf("%T", p))
		})
	}
}

func TestDelegatingExposesPublicBean(t *testing.T) {
	typ := reflect.TypeOf(&publicBean{})

	p, err := policy.NewDelegating().Select(typ)
	require.NoError(t, err)

	d, err := descriptor.Build(typ, p)
	require.NoError(t, err)

	_, err = d.Attribute("Prop")
	require.NoError(t, err)
	_, err = d.Attribute("RW")
	require.NoError(t, err)
}

func TestDelegatingCachesInstances(t *testing.T) {
	created := 0
	policy.Register("counting", func() descriptor.Policy {
		created++
		return policy.NewPublic()
	})
	require.Contains(t, policy.Registered(), "counting")

	type countingBean struct {
		marker.Bean `policy:"counting"`
	}

	d := policy.NewDelegating()
	for i := 0; i < 3; i++ {
		_, err := d.Select(reflect.TypeOf(&countingBean{}))
		require.NoError(t, err)
	}
	require.Equal(t, 1, created)
}

func TestDelegatingWithPublic(t *testing.T) {
	pub := policy.Public{ExposeObjectMembers: false}
	p, err := policy.NewDelegating().WithPublic(pub).Select(reflect.TypeOf(&errand{}))
	require.NoError(t, err)
	require.Equal(t, pub, p)

	d, err := descriptor.Build(reflect.TypeOf(&errand{}), p)
	require.NoError(t, err)
	require.Empty(t, d.OperationsNamed("String"))
}
