// Package config reads the exporter configuration from JSON or YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/anoideaopen/mx/core/policy"
	"github.com/anoideaopen/mx/core/stringsx"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	ErrCfgBytesEmpty   = errors.New("config bytes is empty")
	ErrUnknownBehavior = errors.New("unknown export behavior")
	ErrUnknownPolicy   = errors.New("unknown policy")
	ErrUnknownLevel    = errors.New("unknown log level")
	ErrUnknownFormat   = errors.New("unknown log format")
)

// Export behaviors, see export.ParseBehavior.
const (
	BehaviorFail    = "fail"
	BehaviorSkip    = "skip"
	BehaviorReplace = "replace"
)

// PolicyAuto selects the policy per type from its bean marker.
const PolicyAuto = "auto"

const defaultServiceName = "mx"

// Config is the exporter configuration.
type Config struct {
	// ExportBehavior is applied when a name is already taken: fail, skip or replace.
	ExportBehavior string `json:"exportBehavior" yaml:"exportBehavior"`
	// EnsureUnique appends an identity key property to every computed name.
	EnsureUnique bool `json:"ensureUnique" yaml:"ensureUnique"`
	// Policy is a registered policy name, or auto.
	Policy string `json:"policy" yaml:"policy"`
	// ExposeObjectMembers keeps String, GoString and Error under the public policy.
	ExposeObjectMembers *bool `json:"exposeObjectMembers" yaml:"exposeObjectMembers"`

	Logging Logging `json:"logging" yaml:"logging"`
	Tracing Tracing `json:"tracing" yaml:"tracing"`
}

type Logging struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type Tracing struct {
	telemetry.CollectorEndpoint `yaml:",inline"`
	ServiceName                 string `json:"serviceName" yaml:"serviceName"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()
	return cfg
}

// FromBytes parses JSON when cfgBytes is valid JSON and YAML otherwise, applies
// defaults and validates the result.
func FromBytes(cfgBytes []byte) (*Config, error) {
	if len(cfgBytes) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := new(Config)
	if IsJSON(cfgBytes) {
		if err := json.Unmarshal(cfgBytes, cfg); err != nil {
			return nil, fmt.Errorf("parsing json config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(cfgBytes, cfg); err != nil {
			return nil, fmt.Errorf("parsing yaml config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	cfgBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return FromBytes(cfgBytes)
}

// IsJSON reports whether cfgBytes is a JSON document.
func IsJSON(cfgBytes []byte) bool {
	return json.Valid(cfgBytes)
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if !stringsx.OneOf(c.ExportBehavior, BehaviorFail, BehaviorSkip, BehaviorReplace) {
		return fmt.Errorf("%w: '%s'", ErrUnknownBehavior, c.ExportBehavior)
	}

	if c.Policy != PolicyAuto && !stringsx.OneOf(c.Policy, policy.Registered()...) {
		return fmt.Errorf("%w: '%s'", ErrUnknownPolicy, c.Policy)
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: '%s'", ErrUnknownLevel, c.Logging.Level)
	}

	if !stringsx.OneOf(c.Logging.Format, "text", "json") {
		return fmt.Errorf("%w: '%s'", ErrUnknownFormat, c.Logging.Format)
	}

	return nil
}

// ExposesObjectMembers returns ExposeObjectMembers, true when unset.
func (c *Config) ExposesObjectMembers() bool {
	return c.ExposeObjectMembers == nil || *c.ExposeObjectMembers
}

func (c *Config) applyDefaults() {
	if c.ExportBehavior == "" {
		c.ExportBehavior = BehaviorFail
	}
	if c.Policy == "" {
		c.Policy = PolicyAuto
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warning"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaultServiceName
	}
}
