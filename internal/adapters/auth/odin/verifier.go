package odin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier adapta Client al puerto auth.AuthVerifier.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

// Verify delega la validación del bearer en Odin. Un rol vacío se devuelve
// tal cual: el guard de acceso lo rechaza como no autenticado.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	if token = strings.TrimSpace(token); token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("odin: %w", err)
	}
	return claims, nil
}
