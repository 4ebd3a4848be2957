package telemetry

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartNewSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	th := NewTracingHandler(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, span := th.StartNewSpan(context.Background(), "mx.get")
	span.SetAttributes(CallType(CallGet), Member("Size"))
	EndSpan(span, nil)

	//nolint:staticcheck
	_, failed := th.StartNewSpan(nil, "mx.invoke")
	EndSpan(failed, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "mx.get", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "boom", spans[1].Status().Description)
}

func TestCallKind(t *testing.T) {
	require.Equal(t, "get", CallGet.String())
	require.Equal(t, "invoke", CallInvoke.String())
	require.Equal(t, "unknown", CallKind(42).String())
	require.Equal(t, "set", CallType(CallSet).Value.AsString())
}

func TestInstallTraceProviderWithoutEndpoint(t *testing.T) {
	shutdown, err := InstallTraceProvider(nil, "mx-test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInstallTraceProviderBadCerts(t *testing.T) {
	_, err := InstallTraceProvider(&CollectorEndpoint{Endpoint: "localhost:4318", CACertsBase64: "%%%"}, "mx-test")
	require.ErrorIs(t, err, ErrInvalidCACerts)
}

func TestCollectorTLSConfig(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "collector"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	certs := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))

	cfg, err := (&CollectorEndpoint{CACertsBase64: certs}).TLSConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.RootCAs)
	require.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	cfg, err = (&CollectorEndpoint{}).TLSConfig()
	require.NoError(t, err)
	require.Nil(t, cfg)

	_, err = (&CollectorEndpoint{CACertsBase64: base64.StdEncoding.EncodeToString([]byte("not pem"))}).TLSConfig()
	require.ErrorIs(t, err, ErrInvalidCACerts)
}
