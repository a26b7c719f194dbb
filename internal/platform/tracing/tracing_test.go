package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_StdoutExportsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	tp, err := Setup(Options{ServiceName: "pet-adoption-test", Stdout: true, Writer: &buf, SampleRatio: 1})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "applications.Decide")
	span.End()

	require.NoError(t, Shutdown(context.Background(), tp))
	assert.Contains(t, buf.String(), "applications.Decide")
	assert.Contains(t, buf.String(), "pet-adoption-test")
}

func TestSetup_ZeroRatioDropsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	tp, err := Setup(Options{ServiceName: "svc", Stdout: true, Writer: &buf, SampleRatio: 0})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "dropped")
	assert.False(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, Shutdown(context.Background(), tp))
	assert.Empty(t, buf.String())
	assert.NoError(t, Shutdown(context.Background(), nil))
}
