// Package dispatch routes attribute reads and writes and operation invocations to
// a live managed value, following its descriptor.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/logger"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// AttributeValue pairs an attribute name with a value.
type AttributeValue struct {
	Name  string
	Value any
}

// Dispatcher serves one managed value. It holds no mutable state; calls run on the
// caller goroutine and are as safe for concurrent use as the value itself.
//
// Every call runs inside a resolution scope: the context passed down carries the
// value's own Loader and a tracing span, and the caller's context is left untouched.
type Dispatcher struct {
	resource any
	recv     reflect.Value
	desc     *descriptor.Descriptor
	loader   *Loader
	name     string
	tracing  *telemetry.TracingHandler
	log      *logrus.Entry
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithName sets the name reported in logs and spans, usually the object name.
func WithName(name string) Option {
	return func(d *Dispatcher) {
		d.name = name
	}
}

// WithTracing sets the tracing handler.
func WithTracing(th *telemetry.TracingHandler) Option {
	return func(d *Dispatcher) {
		d.tracing = th
	}
}

// WithLogger sets the log entry.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// New returns a dispatcher serving resource as described by desc.
func New(resource any, desc *descriptor.Descriptor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resource: resource,
		recv:     reflect.ValueOf(resource),
		desc:     desc,
		loader:   NewLoader(desc.Types()...),
		name:     desc.TypeName(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.tracing == nil {
		d.tracing = telemetry.NewTracingHandler(nil)
	}
	if d.log == nil {
		d.log = logger.For("dispatch")
	}
	d.log = d.log.WithField("resource", d.name)

	return d
}

// Descriptor returns the descriptor the dispatcher follows.
func (d *Dispatcher) Descriptor() *descriptor.Descriptor {
	return d.desc
}

// Resource returns the managed value.
func (d *Dispatcher) Resource() any {
	return d.resource
}

// Loader returns the type loader of the managed value.
func (d *Dispatcher) Loader() *Loader {
	return d.loader
}

func (d *Dispatcher) enter(ctx context.Context, kind telemetry.CallKind, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = WithLoader(ctx, d.loader)

	attrs = append(attrs, telemetry.CallType(kind), telemetry.ObjectName(d.name))
	return d.tracing.StartNewSpan(ctx, "mx."+kind.String(), trace.WithAttributes(attrs...))
}

// Get reads one attribute.
func (d *Dispatcher) Get(ctx context.Context, name string) (value any, err error) {
	_, span := d.enter(ctx, telemetry.CallGet, telemetry.Member(name))
	defer func() { telemetry.EndSpan(span, err) }()

	if name == "" {
		return nil, fmt.Errorf("%w: attribute name is empty", ErrValidation)
	}

	a, err := d.desc.Attribute(name)
	if err != nil {
		return nil, err
	}

	d.log.WithField("attribute", name).Debug("get")
	return a.Get(d.recv)
}

// GetBatch reads several attributes. Attributes that are missing, unreadable or fail
// to read are left out of the result.
func (d *Dispatcher) GetBatch(ctx context.Context, names []string) (values []AttributeValue, err error) {
	ctx, span := d.enter(ctx, telemetry.CallGet, telemetry.BatchSize(len(names)))
	defer func() { telemetry.EndSpan(span, err) }()

	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: attribute name is empty", ErrValidation)
		}
	}

	values = make([]AttributeValue, 0, len(names))
	for _, name := range names {
		v, err := d.Get(ctx, name)
		if err != nil {
			d.log.WithError(err).WithField("attribute", name).Debug("batch get skipped attribute")
			continue
		}
		values = append(values, AttributeValue{Name: name, Value: v})
	}

	return values, nil
}

// Set writes one attribute. The dynamic type of value must be assignable to the
// attribute type.
func (d *Dispatcher) Set(ctx context.Context, name string, value any) (err error) {
	_, span := d.enter(ctx, telemetry.CallSet, telemetry.Member(name))
	defer func() { telemetry.EndSpan(span, err) }()

	a, err := d.attribute(name)
	if err != nil {
		return err
	}

	d.log.WithField("attribute", name).Debug("set")
	return a.Set(d.recv, value)
}

// SetEncoded decodes raw into the attribute type, see reflectx.ValueOf, and writes it.
func (d *Dispatcher) SetEncoded(ctx context.Context, name string, raw string) (err error) {
	_, span := d.enter(ctx, telemetry.CallSet, telemetry.Member(name))
	defer func() { telemetry.EndSpan(span, err) }()

	a, err := d.attribute(name)
	if err != nil {
		return err
	}

	d.log.WithField("attribute", name).Debug("set encoded")
	return a.SetEncoded(d.recv, raw)
}

func (d *Dispatcher) attribute(name string) (*descriptor.Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: attribute name is empty", ErrValidation)
	}
	return d.desc.Attribute(name)
}

// SetBatch writes several attributes and returns those written. Failures are left
// out of the result.
func (d *Dispatcher) SetBatch(ctx context.Context, values []AttributeValue) (written []AttributeValue, err error) {
	ctx, span := d.enter(ctx, telemetry.CallSet, telemetry.BatchSize(len(values)))
	defer func() { telemetry.EndSpan(span, err) }()

	for _, v := range values {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: attribute name is empty", ErrValidation)
		}
	}

	written = make([]AttributeValue, 0, len(values))
	for _, v := range values {
		if err := d.Set(ctx, v.Name, v.Value); err != nil {
			d.log.WithError(err).WithField("attribute", v.Name).Debug("batch set skipped attribute")
			continue
		}
		written = append(written, v)
	}

	return written, nil
}

// Invoke calls the operation identified by op and the parameter type names. The
// names are resolved by the managed value's Loader.
func (d *Dispatcher) Invoke(ctx context.Context, op string, args []any, typeNames []string) (result any, err error) {
	ctx, span := d.enter(ctx, telemetry.CallInvoke, telemetry.Member(op))
	defer func() { telemetry.EndSpan(span, err) }()

	o, err := d.operation(ctx, op, len(args), typeNames)
	if err != nil {
		return nil, err
	}

	d.log.WithField("operation", o.Signature).Debug("invoke")
	return o.Invoke(d.recv, args)
}

// InvokeEncoded is Invoke with arguments encoded as strings, see reflectx.ValueOf.
func (d *Dispatcher) InvokeEncoded(ctx context.Context, op string, args []string, typeNames []string) (result any, err error) {
	ctx, span := d.enter(ctx, telemetry.CallInvoke, telemetry.Member(op))
	defer func() { telemetry.EndSpan(span, err) }()

	o, err := d.operation(ctx, op, len(args), typeNames)
	if err != nil {
		return nil, err
	}

	d.log.WithField("operation", o.Signature).Debug("invoke encoded")
	return o.InvokeEncoded(d.recv, args)
}

// InvokeByName calls the only operation named op taking len(args) parameters, with
// arguments encoded as strings.
func (d *Dispatcher) InvokeByName(ctx context.Context, op string, args ...string) (result any, err error) {
	_, span := d.enter(ctx, telemetry.CallInvoke, telemetry.Member(op))
	defer func() { telemetry.EndSpan(span, err) }()

	if op == "" {
		return nil, fmt.Errorf("%w: operation name is empty", ErrValidation)
	}

	var candidates []*descriptor.Operation
	for _, o := range d.desc.OperationsNamed(op) {
		if len(o.Params) == len(args) {
			candidates = append(candidates, o)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: '%s' with %d parameters on '%s'",
			descriptor.ErrOperationNotFound, op, len(args), d.desc.TypeName())
	case 1:
	default:
		return nil, fmt.Errorf("%w: '%s' with %d parameters", ErrAmbiguous, op, len(args))
	}

	d.log.WithField("operation", candidates[0].Signature).Debug("invoke by name")
	return candidates[0].InvokeEncoded(d.recv, args)
}

func (d *Dispatcher) operation(ctx context.Context, op string, argc int, typeNames []string) (*descriptor.Operation, error) {
	if op == "" {
		return nil, fmt.Errorf("%w: operation name is empty", ErrValidation)
	}
	if argc != len(typeNames) {
		return nil, fmt.Errorf("%w: %d arguments for %d parameter types", ErrValidation, argc, len(typeNames))
	}

	loader, ok := LoaderFrom(ctx)
	if !ok {
		return nil, errors.New("no type loader in scope")
	}

	types, err := loader.LoadAll(typeNames)
	if err != nil {
		return nil, err
	}

	return d.desc.Operation(op, types...)
}
