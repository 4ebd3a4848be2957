package telemetry

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrInvalidCACerts = errors.New("invalid collector CA certificates")

// TLSConfig returns the client TLS configuration for the collector, nil when no CA
// certificates are set.
func (c *CollectorEndpoint) TLSConfig() (*tls.Config, error) {
	if c == nil || c.CACertsBase64 == "" {
		return nil, nil
	}

	pem, err := base64.StdEncoding.DecodeString(c.CACertsBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64: %w", ErrInvalidCACerts, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: no PEM certificate found", ErrInvalidCACerts)
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
