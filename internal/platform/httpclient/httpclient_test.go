package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestDo_RoundTripUnderBasePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/echo", r.URL.Path)
		assert.Equal(t, "q=1", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(
		WithBaseURL(srv.URL+"/api/"),
		WithTimeout(time.Second),
		WithHeader("X-Api-Key", "k"),
		WithHeader(" ", "skip"),
	)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api", c.BaseURL())

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/v1/echo?q=1",
		Header: http.Header{"x-extra": {"yes"}},
		Body:   map[string]int{"a": 1},
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDo_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(" nope \n"))
	}))
	t.Cleanup(srv.Close)

	c, err := New()
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Path: srv.URL}, nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "nope", httpErr.Body)
	assert.Equal(t, http.StatusTeapot, StatusOf(err))
	assert.Zero(t, StatusOf(nil))
}

func TestDo_RelativeWithoutBase(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Empty(t, c.BaseURL())

	err = c.Do(context.Background(), Request{Path: "/x"}, nil)
	require.ErrorIs(t, err, ErrNoBaseURL)

	_, err = New(WithBaseURL("::bad"))
	require.Error(t, err)
}

func TestDo_PropagatesTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("traceparent")
	}))
	t.Cleanup(srv.Close)

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "outbound")
	defer span.End()

	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Do(ctx, Request{Path: srv.URL}, nil))
	assert.Contains(t, got, span.SpanContext().TraceID().String())
}
