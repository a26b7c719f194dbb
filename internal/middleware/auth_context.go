package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/ports/auth"
)

type ctxKey struct{}

// Headers de identidad del modo dev. Se ignoran cuando hay verifier.
const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugUserRole = "X-Debug-User-Role"
)

// AuthContext resuelve la identidad del request y la deja en el ctx.
// Nunca corta el request: sin identidad los servicios responden
// Unauthenticated y el guard decide el resto.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	resolve := debugClaims
	if verifier != nil {
		resolve = func(r *http.Request) (auth.Claims, bool) {
			return bearerClaims(r, verifier)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := resolve(r); ok {
				r = r.WithContext(WithClaims(r.Context(), c))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
	if uid == "" {
		return auth.Claims{}, false
	}
	return auth.Claims{
		UserID: uid,
		Role:   strings.TrimSpace(r.Header.Get(HeaderDebugUserRole)),
	}, true
}

func bearerClaims(r *http.Request, verifier auth.AuthVerifier) (auth.Claims, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return auth.Claims{}, false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, false
	}
	c, err := verifier.Verify(r.Context(), token)
	if err != nil {
		return auth.Claims{}, false
	}
	return c, true
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(auth.Claims)
	return c, ok
}
