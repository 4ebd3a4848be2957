// Package export registers managed resources under object names and routes calls
// addressed by name to them.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/anoideaopen/mx/core/config"
	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/dispatch"
	"github.com/anoideaopen/mx/core/logger"
	"github.com/anoideaopen/mx/core/naming"
	"github.com/anoideaopen/mx/core/policy"
	"github.com/anoideaopen/mx/core/registry"
	"github.com/anoideaopen/mx/core/target"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

var ErrRegistrationConflict = errors.New("registration conflict")

// Exporter turns values into managed resources.
type Exporter struct {
	behavior     Behavior
	ensureUnique bool
	selector     descriptor.Selector
	naming       naming.Strategy
	cache        *descriptor.Cache
	registry     *registry.Registry
	tracing      *telemetry.TracingHandler
	log          *logrus.Entry
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{behavior: FailOnExisting}
	for _, opt := range opts {
		opt(e)
	}

	if e.selector == nil {
		e.selector = policy.NewDelegating()
	}
	if e.naming == nil {
		e.naming = naming.Default{}
	}
	if e.registry == nil {
		e.registry = registry.New()
	}
	if e.tracing == nil {
		e.tracing = telemetry.NewTracingHandler(nil)
	}
	if e.log == nil {
		e.log = logger.For("export")
	}

	return e
}

// NewFromConfig creates an Exporter configured by cfg. Logging is reconfigured
// process wide; opts are applied after cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Exporter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, err
	}

	behavior, err := ParseBehavior(cfg.ExportBehavior)
	if err != nil {
		return nil, err
	}

	public := policy.NewPublic()
	public.ExposeObjectMembers = cfg.ExposesObjectMembers()

	var selector descriptor.Selector
	switch cfg.Policy {
	case config.PolicyAuto:
		selector = policy.NewDelegating().WithPublic(public)
	case policy.NamePublic:
		selector = descriptor.Fixed{Policy: public}
	default:
		p, err := policy.New(cfg.Policy)
		if err != nil {
			return nil, err
		}
		selector = descriptor.Fixed{Policy: p}
	}

	base := []Option{
		WithBehavior(behavior),
		WithEnsureUnique(cfg.EnsureUnique),
		WithSelector(selector),
	}

	return New(append(base, opts...)...), nil
}

// Registry returns the registry resources are held in.
func (e *Exporter) Registry() *registry.Registry {
	return e.registry
}

// Register names resource with the naming strategy and registers it. With
// ensure unique set the name gets an identity key property.
func (e *Exporter) Register(ctx context.Context, resource any) (naming.ObjectName, error) {
	if resource == nil {
		return naming.ObjectName{}, fmt.Errorf("%w: nil resource", dispatch.ErrValidation)
	}

	name, err := e.naming.ObjectName(resource)
	if err != nil {
		return naming.ObjectName{}, fmt.Errorf("naming %T: %w", resource, err)
	}

	if e.ensureUnique {
		if name, err = naming.WithIdentity(name, resource); err != nil {
			return naming.ObjectName{}, fmt.Errorf("naming %T: %w", resource, err)
		}
	}

	if err = e.RegisterAs(ctx, resource, name); err != nil {
		return naming.ObjectName{}, err
	}

	return name, nil
}

// RegisterAs registers resource under name, resolving a taken name with the
// configured Behavior. The descriptor is assembled first; assembly errors abort.
func (e *Exporter) RegisterAs(ctx context.Context, resource any, name naming.ObjectName) (err error) {
	if resource == nil {
		return fmt.Errorf("%w: nil resource", dispatch.ErrValidation)
	}
	if name.IsZero() {
		return fmt.Errorf("%w: empty object name", dispatch.ErrValidation)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	_, span := e.tracing.StartNewSpan(ctx, "mx.register", trace.WithAttributes(telemetry.ObjectName(name.String())))
	defer func() {
		telemetry.EndSpan(span, err)
	}()

	desc, err := e.assemble(resource)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", name, err)
	}

	entry := registry.Entry{
		Name:       name,
		Resource:   resource,
		Descriptor: desc,
		Dispatcher: dispatch.New(resource, desc,
			dispatch.WithName(name.String()),
			dispatch.WithTracing(e.tracing),
		),
	}

	log := e.log.WithField("name", name.String())

	_, err = e.registry.Register(entry)
	if !errors.Is(err, registry.ErrAlreadyRegistered) {
		if err == nil {
			log.WithField("type", desc.TypeName()).Info("registered")
		}
		return err
	}

	switch e.behavior {
	case SkipExisting:
		log.Info("already registered, skipped")
		return nil
	case ReplaceExisting:
		if _, err = e.registry.Unregister(name); err != nil && !errors.Is(err, registry.ErrNotRegistered) {
			return err
		}
		if _, err = e.registry.Register(entry); err != nil {
			return fmt.Errorf("replacing %s: %w", name, err)
		}
		log.WithField("type", desc.TypeName()).Info("replaced")
		return nil
	default:
		return fmt.Errorf("%w: '%s' is already registered", ErrRegistrationConflict, name)
	}
}

func (e *Exporter) assemble(resource any) (*descriptor.Descriptor, error) {
	t := target.Resolve(resource)

	p, err := e.selector.Select(t)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		return e.cache.Get(t, p)
	}
	return descriptor.Of(t, p)
}

// Unregister removes the resource registered under name, if any.
func (e *Exporter) Unregister(name naming.ObjectName) {
	if _, err := e.registry.Unregister(name); err == nil {
		e.log.WithField("name", name.String()).Info("unregistered")
	}
}

// IsRegistered reports whether name is taken.
func (e *Exporter) IsRegistered(name naming.ObjectName) bool {
	return e.registry.IsRegistered(name)
}

// Names lists registered names.
func (e *Exporter) Names() []naming.ObjectName {
	return e.registry.Names()
}

// Describe returns the descriptor of the resource registered under name.
func (e *Exporter) Describe(name naming.ObjectName) (*descriptor.Descriptor, error) {
	entry, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Descriptor, nil
}

func (e *Exporter) dispatcher(name naming.ObjectName) (*dispatch.Dispatcher, error) {
	entry, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Dispatcher, nil
}

func (e *Exporter) Get(ctx context.Context, name naming.ObjectName, attribute string) (any, error) {
	d, err := e.dispatcher(name)
	if err != nil {
		return nil, err
	}
	return d.Get(ctx, attribute)
}

func (e *Exporter) GetBatch(ctx context.Context, name naming.ObjectName, attributes []string) ([]dispatch.AttributeValue, error) {
	d, err := e.dispatcher(name)
	if err != nil {
		return nil, err
	}
	return d.GetBatch(ctx, attributes)
}

func (e *Exporter) Set(ctx context.Context, name naming.ObjectName, attribute string, value any) error {
	d, err := e.dispatcher(name)
	if err != nil {
		return err
	}
	return d.Set(ctx, attribute, value)
}

// SetEncoded decodes raw into the attribute's type before writing it.
func (e *Exporter) SetEncoded(ctx context.Context, name naming.ObjectName, attribute string, raw string) error {
	d, err := e.dispatcher(name)
	if err != nil {
		return err
	}
	return d.SetEncoded(ctx, attribute, raw)
}

func (e *Exporter) SetBatch(ctx context.Context, name naming.ObjectName, values []dispatch.AttributeValue) ([]dispatch.AttributeValue, error) {
	d, err := e.dispatcher(name)
	if err != nil {
		return nil, err
	}
	return d.SetBatch(ctx, values)
}

// Invoke calls the operation with the signature op(typeNames...).
func (e *Exporter) Invoke(ctx context.Context, name naming.ObjectName, op string, args []any, typeNames []string) (any, error) {
	d, err := e.dispatcher(name)
	if err != nil {
		return nil, err
	}
	return d.Invoke(ctx, op, args, typeNames)
}

// InvokeEncoded is Invoke with string encoded arguments. Without type names the
// operation is chosen by name and arity.
func (e *Exporter) InvokeEncoded(ctx context.Context, name naming.ObjectName, op string, args []string, typeNames []string) (any, error) {
	d, err := e.dispatcher(name)
	if err != nil {
		return nil, err
	}
	if typeNames == nil {
		return d.InvokeByName(ctx, op, args...)
	}
	return d.InvokeEncoded(ctx, op, args, typeNames)
}
