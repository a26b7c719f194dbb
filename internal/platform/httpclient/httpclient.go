// Package httpclient es el cliente JSON para servicios externos (IAM).
// Inyecta el trace context del ctx en cada request saliente.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	DefaultTimeout = 10 * time.Second

	// Las respuestas de error se recortan a esto.
	maxBody = 1 << 20
)

var ErrNoBaseURL = errors.New("httpclient: relative path requires a base url")

type Client struct {
	http    *http.Client
	base    *url.URL
	headers http.Header
}

type Option func(*Client) error

// WithBaseURL permite paths relativos en Do. Vacío no cambia nada.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return fmt.Errorf("httpclient: invalid base url: %w", err)
		}
		u.Path = strings.TrimRight(u.Path, "/") + "/"
		c.base = u
		return nil
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.http.Timeout = d
		}
		return nil
	}
}

// WithHeader agrega un header fijo a todas las requests (p.ej. API keys).
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		if key = strings.TrimSpace(key); key != "" && value != "" {
			c.headers.Set(key, value)
		}
		return nil
	}
}

func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: http.Header{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL devuelve la base configurada o "".
func (c *Client) BaseURL() string {
	if c == nil || c.base == nil {
		return ""
	}
	return strings.TrimRight(c.base.String(), "/")
}

// Request describe una llamada. Body nil no envía cuerpo.
type Request struct {
	Method string
	Path   string // relativo a la base o URL absoluta
	Header http.Header
	Body   any
}

// HTTPError es una respuesta no-2xx.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.Status)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// StatusOf devuelve el status de un *HTTPError envuelto en err, o 0.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// Do ejecuta la request y decodifica la respuesta 2xx en out (si no es nil).
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}

	target, err := c.resolve(r.Path)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, r, target)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", req.Method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request, target string) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}

	for k, vs := range c.headers {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range r.Header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("httpclient: empty path")
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid path: %w", err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if c.base == nil {
		return "", ErrNoBaseURL
	}
	// La base termina en "/", así que el path se resuelve debajo de ella.
	return c.base.ResolveReference(&url.URL{
		Path:     strings.TrimLeft(u.Path, "/"),
		RawQuery: u.RawQuery,
	}).String(), nil
}
