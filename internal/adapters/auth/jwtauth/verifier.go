package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"pet-adoption/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

const (
	defaultRoleClaim       = "role"
	defaultRefreshInterval = 15 * time.Minute

	// Tolerancia de reloj entre el emisor y la API.
	clockSkew = time.Minute
)

type Config struct {
	// JWKSURL activa RS256 con llaves rotadas por el proveedor.
	JWKSURL string
	// HS256Secret es para entornos locales/tests. Se ignora si hay JWKSURL.
	HS256Secret string

	Audience string
	Issuer   string

	// RoleClaim es el claim que trae el rol (adopter, rehomer, admin).
	RoleClaim string

	RefreshInterval time.Duration
}

// Verifier implementa auth.AuthVerifier sobre JWT firmados.
type Verifier struct {
	parser    *jwt.Parser
	keyFunc   jwt.Keyfunc
	jwks      *keyfunc.JWKS
	audience  string
	issuer    string
	roleClaim string
	now       func() time.Time
}

func New(cfg Config) (*Verifier, error) {
	v := &Verifier{
		audience:  strings.TrimSpace(cfg.Audience),
		issuer:    strings.TrimSpace(cfg.Issuer),
		roleClaim: strings.TrimSpace(cfg.RoleClaim),
		now:       time.Now,
	}
	if v.roleClaim == "" {
		v.roleClaim = defaultRoleClaim
	}

	switch {
	case strings.TrimSpace(cfg.JWKSURL) != "":
		refresh := cfg.RefreshInterval
		if refresh <= 0 {
			refresh = defaultRefreshInterval
		}
		jwks, err := keyfunc.Get(strings.TrimSpace(cfg.JWKSURL), keyfunc.Options{
			RefreshInterval:   refresh,
			RefreshUnknownKID: true,
		})
		if err != nil {
			return nil, fmt.Errorf("jwtauth: load jwks: %w", err)
		}
		v.jwks = jwks
		v.keyFunc = jwks.Keyfunc
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}), jwt.WithoutClaimsValidation())

	case cfg.HS256Secret != "":
		secret := []byte(cfg.HS256Secret)
		v.keyFunc = func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return secret, nil
		}
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())

	default:
		return nil, ErrNotConfigured
	}

	return v, nil
}

// Close detiene el refresco en background de la JWKS.
func (v *Verifier) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.parser == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := v.parser.Parse(token, v.keyFunc)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	now := v.now()
	if !claims.VerifyExpiresAt(now.Add(-clockSkew).Unix(), true) {
		return auth.Claims{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	if !claims.VerifyNotBefore(now.Add(clockSkew).Unix(), false) {
		return auth.Claims{}, fmt.Errorf("%w: token not valid yet", ErrInvalidToken)
	}
	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return auth.Claims{}, fmt.Errorf("%w: invalid audience", ErrInvalidToken)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return auth.Claims{}, fmt.Errorf("%w: invalid issuer", ErrInvalidToken)
	}

	sub, _ := claims["sub"].(string)
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	return auth.Claims{
		UserID: sub,
		Email:  strings.TrimSpace(email),
		Role:   roleFrom(claims[v.roleClaim]),
	}, nil
}

// roleFrom acepta el rol como string o como lista (se toma el primero).
func roleFrom(raw any) string {
	switch r := raw.(type) {
	case string:
		return strings.TrimSpace(r)
	case []any:
		for _, item := range r {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
