package dispatch_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/dispatch"
	"github.com/anoideaopen/mx/core/policy"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var errOutOfFuel = errors.New("out of fuel")

type point struct {
	X, Y int
}

type rover struct {
	RW string

	prop      string
	writeOnly int
	at        point
}

func (r *rover) GetProp() string         { return r.prop }
func (r *rover) GetReadOnly() int        { return 1 }
func (r *rover) SetWriteOnly(v int)      { r.writeOnly = v }
func (r *rover) GetBroken() (int, error) { return 0, errOutOfFuel }
func (r *rover) Go(where string) string  { return "going " + where }
func (r *rover) Move(p point) point      { r.at = p; return r.at }
func (r *rover) Refuel() error           { return errOutOfFuel }
func (r *rover) Swap(a, b string) (string, string) {
	return b, a
}

func newDispatcher(t *testing.T, r *rover, opts ...dispatch.Option) *dispatch.Dispatcher {
	t.Helper()

	d, err := descriptor.Build(reflect.TypeOf(r), policy.NewPublic())
	require.NoError(t, err)
	return dispatch.New(r, d, opts...)
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t, &rover{RW: "value"})

	v, err := d.Get(ctx, "RW")
	require.NoError(t, err)
	require.Equal(t, "value", v)

	require.NoError(t, d.Set(ctx, "RW", "other"))
	v, err = d.Get(ctx, "RW")
	require.NoError(t, err)
	require.Equal(t, "other", v)

	require.NoError(t, d.SetEncoded(ctx, "WriteOnly", "12"))
}

func TestGetSetErrors(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t, &rover{})

	tests := []struct {
		name string
		call func() error
		err  error
	}{
		{name: "get empty name", call: func() error { _, err := d.Get(ctx, ""); return err }, err: dispatch.ErrValidation},
		{name: "set empty name", call: func() error { return d.Set(ctx, "", 1) }, err: dispatch.ErrValidation},
		{name: "get missing", call: func() error { _, err := d.Get(ctx, "Missing"); return err }, err: descriptor.ErrAttributeNotFound},
		{name: "set missing", call: func() error { return d.Set(ctx, "Missing", 1) }, err: descriptor.ErrAttributeNotFound},
		{name: "set read only property", call: func() error { return d.Set(ctx, "ReadOnly", 2) }, err: descriptor.ErrNotWritable},
		{name: "get write only property", call: func() error { _, err := d.Get(ctx, "WriteOnly"); return err }, err: descriptor.ErrNotReadable},
		{name: "set wrong type", call: func() error { return d.Set(ctx, "RW", 3) }, err: descriptor.ErrTypeMismatch},
		{name: "getter failure", call: func() error { _, err := d.Get(ctx, "Broken"); return err }, err: errOutOfFuel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.call(), tc.err)
		})
	}
}

func TestGetBatch(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t, &rover{RW: "value", prop: "p"})

	values, err := d.GetBatch(ctx, []string{"RW", "Missing", "WriteOnly", "Broken", "Prop"})
	require.NoError(t, err)
	require.Equal(t, []dispatch.AttributeValue{
		{Name: "RW", Value: "value"},
		{Name: "Prop", Value: "p"},
	}, values)

	_, err = d.GetBatch(ctx, []string{"RW", ""})
	require.ErrorIs(t, err, dispatch.ErrValidation)

	values, err = d.GetBatch(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, values)
}

func TestSetBatch(t *testing.T) {
	ctx := context.Background()
	r := &rover{}
	d := newDispatcher(t, r)

	written, err := d.SetBatch(ctx, []dispatch.AttributeValue{
		{Name: "RW", Value: "x"},
		{Name: "ReadOnly", Value: 1},
		{Name: "Missing", Value: 1},
		{Name: "WriteOnly", Value: "wrong type"},
		{Name: "WriteOnly", Value: 5},
	})
	require.NoError(t, err)
	require.Equal(t, []dispatch.AttributeValue{
		{Name: "RW", Value: "x"},
		{Name: "WriteOnly", Value: 5},
	}, written)
	require.Equal(t, "x", r.RW)
	require.Equal(t, 5, r.writeOnly)

	_, err = d.SetBatch(ctx, []dispatch.AttributeValue{{Value: 1}})
	require.ErrorIs(t, err, dispatch.ErrValidation)
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	r := &rover{}
	d := newDispatcher(t, r)

	res, err := d.Invoke(ctx, "Go", []any{"shopping"}, []string{"string"})
	require.NoError(t, err)
	require.Equal(t, "going shopping", res)

	res, err = d.Invoke(ctx, "Move", []any{point{X: 1, Y: 2}}, []string{"dispatch_test.point"})
	require.NoError(t, err)
	require.Equal(t, point{X: 1, Y: 2}, res)

	res, err = d.Invoke(ctx, "Swap", []any{"a", "b"}, []string{"string", "string"})
	require.NoError(t, err)
	require.Equal(t, []any{"b", "a"}, res)

	res, err = d.InvokeEncoded(ctx, "Move", []string{`{"X":3,"Y":4}`}, []string{"dispatch_test.point"})
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 4}, r.at)
	require.Equal(t, point{X: 3, Y: 4}, res)

	res, err = d.InvokeByName(ctx, "Go", "home")
	require.NoError(t, err)
	require.Equal(t, "going home", res)
}

func TestInvokeErrors(t *testing.T) {
	ctx := context.Background()
	d := newDispatcher(t, &rover{})

	tests := []struct {
		name      string
		op        string
		args      []any
		typeNames []string
		err       error
	}{
		{name: "empty operation", op: "", err: dispatch.ErrValidation},
		{name: "arity mismatch", op: "Go", args: []any{"a"}, typeNames: nil, err: dispatch.ErrValidation},
		{name: "unknown type name", op: "Go", args: []any{"a"}, typeNames: []string{"main.Nope"}, err: dispatch.ErrTypeNotFound},
		{name: "unknown operation", op: "Fly", err: descriptor.ErrOperationNotFound},
		{name: "wrong signature", op: "Go", args: []any{1}, typeNames: []string{"int"}, err: descriptor.ErrOperationNotFound},
		{name: "argument not assignable", op: "Go", args: []any{1}, typeNames: []string{"string"}, err: descriptor.ErrTypeMismatch},
		{name: "operation failure", op: "Refuel", err: errOutOfFuel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Invoke(ctx, tc.op, tc.args, tc.typeNames)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestInvokeFailureIsInvocationError(t *testing.T) {
	d := newDispatcher(t, &rover{})

	_, err := d.Invoke(context.Background(), "Refuel", nil, nil)

	var invocation *descriptor.InvocationError
	require.ErrorAs(t, err, &invocation)
	require.Same(t, errOutOfFuel, invocation.Unwrap())
}

func TestInvokeByNameErrors(t *testing.T) {
	d := newDispatcher(t, &rover{})

	_, err := d.InvokeByName(context.Background(), "Go")
	require.ErrorIs(t, err, descriptor.ErrOperationNotFound)

	_, err = d.InvokeByName(context.Background(), "")
	require.ErrorIs(t, err, dispatch.ErrValidation)
}

func TestInvokeUsesOwnLoader(t *testing.T) {
	foreign := dispatch.WithLoader(context.Background(), dispatch.NewLoader())
	d := newDispatcher(t, &rover{})

	_, err := d.Invoke(foreign, "Move", []any{point{}}, []string{"dispatch_test.point"})
	require.NoError(t, err)

	_, ok := dispatch.LoaderFrom(foreign)
	require.True(t, ok)
	_, err = dispatch.NewLoader().Load("dispatch_test.point")
	require.ErrorIs(t, err, dispatch.ErrTypeNotFound)
}

func TestDispatcherSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	th := telemetry.NewTracingHandler(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	d := newDispatcher(t, &rover{}, dispatch.WithTracing(th), dispatch.WithName("app:type=Rover"))

	_, _ = d.Get(context.Background(), "RW")
	_, _ = d.Invoke(context.Background(), "Refuel", nil, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "mx.get", spans[0].Name())
	require.Equal(t, "mx.invoke", spans[1].Name())
	require.Contains(t, spans[0].Attributes(), telemetry.ObjectName("app:type=Rover"))
	require.Equal(t, "Error", spans[1].Status().Code.String())
}

func TestAccessors(t *testing.T) {
	r := &rover{}
	d := newDispatcher(t, r)

	require.Same(t, r, d.Resource())
	require.Equal(t, "*dispatch_test.rover", d.Descriptor().TypeName())
	require.Contains(t, d.Loader().Names(), "dispatch_test.point")
}
