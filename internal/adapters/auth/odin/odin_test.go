package odin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return c
}

func TestVerifier_ReturnsClaimsWithRole(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body verifyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok", body.Token)

		_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " u1 ", Email: "a@b.c", Role: "Adopter"})
	})

	claims, err := NewVerifier(c).Verify(context.Background(), " tok ")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "adopter", claims.Role)
}

func TestVerifier_MapsUpstreamErrors(t *testing.T) {
	unauthorized := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := NewVerifier(unauthorized).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinUnauthorized)

	broken := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err = NewVerifier(broken).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinUpstream)

	noUser := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"a@b.c"}`))
	})
	_, err = NewVerifier(noUser).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinUpstream)
}

func TestVerifier_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "tok")
	require.ErrorIs(t, err, ErrOdinNotConfigured)

	_, err = NewVerifier(c).Verify(context.Background(), " ")
	require.ErrorIs(t, err, ErrTokenEmpty)
}
