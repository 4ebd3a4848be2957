package export

import (
	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/anoideaopen/mx/core/naming"
	"github.com/anoideaopen/mx/core/registry"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/sirupsen/logrus"
)

// Option configures an Exporter.
type Option func(*Exporter)

// WithBehavior sets the conflict behavior. The default is FailOnExisting.
func WithBehavior(b Behavior) Option {
	return func(e *Exporter) {
		e.behavior = b
	}
}

// WithEnsureUnique appends an identity key property to computed names.
func WithEnsureUnique(unique bool) Option {
	return func(e *Exporter) {
		e.ensureUnique = unique
	}
}

// WithPolicy uses p for every type.
func WithPolicy(p descriptor.Policy) Option {
	return func(e *Exporter) {
		e.selector = descriptor.Fixed{Policy: p}
	}
}

// WithSelector chooses the policy per type. The default selects from bean markers.
func WithSelector(s descriptor.Selector) Option {
	return func(e *Exporter) {
		e.selector = s
	}
}

// WithNamingStrategy sets how Register names resources.
func WithNamingStrategy(s naming.Strategy) Option {
	return func(e *Exporter) {
		e.naming = s
	}
}

// WithLogger sets the log entry.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// WithTracing sets the tracing handler shared with dispatchers.
func WithTracing(th *telemetry.TracingHandler) Option {
	return func(e *Exporter) {
		e.tracing = th
	}
}

// WithRegistry shares a registry between exporters.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Exporter) {
		e.registry = r
	}
}

// WithDescriptorCache sets the descriptor cache. Exporters share a process wide
// cache by default.
func WithDescriptorCache(c *descriptor.Cache) Option {
	return func(e *Exporter) {
		e.cache = c
	}
}
