package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/anoideaopen/mx/core/config"
	"github.com/anoideaopen/mx/core/export"
	"github.com/anoideaopen/mx/core/logger"
	"github.com/anoideaopen/mx/core/naming"
	"github.com/anoideaopen/mx/core/telemetry"
	"github.com/anoideaopen/mx/internal/sample"
	"github.com/sirupsen/logrus"
)

// console is the state shared by every command of one process, including the
// commands run from the shell.
type console struct {
	exporter *export.Exporter
	shutdown func(context.Context) error
	out      io.Writer
	log      *logrus.Entry

	interactive bool
}

func newConsole() *console {
	return &console{
		out: os.Stdout,
		log: logger.For("console"),
	}
}

func (c *console) ready() bool {
	return c.exporter != nil
}

// start builds the exporter from the config at path, or from defaults when path
// is empty, and registers the sample resources.
func (c *console) start(ctx context.Context, path string) error {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	shutdown, err := telemetry.InstallTraceProvider(&cfg.Tracing.CollectorEndpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return fmt.Errorf("installing trace provider: %w", err)
	}
	c.shutdown = shutdown

	e, err := export.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	c.exporter = e

	return c.registerSamples(ctx)
}

// stop flushes traces. It is a no-op for commands run from the shell.
func (c *console) stop(ctx context.Context) error {
	if c.shutdown == nil || c.interactive {
		return nil
	}
	return c.shutdown(ctx)
}

func (c *console) registerSamples(ctx context.Context) error {
	cache := sample.NewCache("sessions", 128)
	cache.Put("alice", "online")

	cacheName, err := naming.New("mx.sample", "type", "Cache", "name", cache.Name)
	if err != nil {
		return err
	}
	if err = c.exporter.RegisterAs(ctx, cache, cacheName); err != nil {
		return err
	}

	resources := []any{
		sample.NewQueue(4, 1000),
		sample.NewLoggedService(sample.NewService("localhost:8080"), c.log.WithField("resource", "service")),
		sample.Runtime{},
	}
	for _, r := range resources {
		name, err := c.exporter.Register(ctx, r)
		if err != nil {
			return fmt.Errorf("registering %T: %w", r, err)
		}
		c.log.WithField("name", name.String()).Debug("sample registered")
	}

	return nil
}

// resolve parses s as an object name, falling back to the only registered name
// containing s as a key property value.
func (c *console) resolve(s string) (naming.ObjectName, error) {
	if n, err := naming.Parse(s); err == nil {
		return n, nil
	}

	var found []naming.ObjectName
	for _, n := range c.exporter.Names() {
		for _, p := range n.KeyProperties() {
			if p.Value == s {
				found = append(found, n)
				break
			}
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return naming.ObjectName{}, fmt.Errorf("no resource matches '%s'", s)
	default:
		return naming.ObjectName{}, fmt.Errorf("'%s' matches %d resources", s, len(found))
	}
}
