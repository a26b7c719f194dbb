// Package httpapi junta lo que todos los handlers repetían: escribir JSON,
// traducir errores del dominio a status HTTP y armar el actor del request.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/middleware"
)

// ErrorResponse es el cuerpo de toda respuesta de error.
type ErrorResponse struct {
	Error   string   `json:"error" example:"invalid_transition"`
	Message string   `json:"message" example:"invalid transition: adopted -> available"`
	Fields  []string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf mapea la taxonomía de errores a status HTTP.
func StatusOf(err error) int {
	switch errs.Kind(err) {
	case "validation_error":
		return http.StatusBadRequest
	case "unauthenticated":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	case "not_found":
		return http.StatusNotFound
	case "invalid_transition", "duplicate_application", "conflict", "stale_write":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	body := ErrorResponse{Error: errs.Kind(err), Message: err.Error()}

	// No filtrar detalles internos.
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
	}

	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		body.Fields = ve.Fields
	}
	WriteJSON(w, status, body)
}

// BadRequest responde 400 con un único campo inválido.
func BadRequest(w http.ResponseWriter, field string) {
	WriteError(w, &errs.ValidationError{Fields: []string{field}})
}

// DecodeJSON lee el body rechazando campos desconocidos.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &errs.ValidationError{Fields: []string{"body"}}
	}
	return nil
}

// ActorFrom arma el actor a partir de los claims del middleware. Sin claims
// o con rol desconocido devuelve un actor no autenticado; el guard decide.
func ActorFrom(r *http.Request) access.Actor {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return access.Actor{}
	}
	role, ok := access.ParseRole(claims.Role)
	if !ok {
		return access.Actor{ID: strings.TrimSpace(claims.UserID)}
	}
	return access.Actor{ID: strings.TrimSpace(claims.UserID), Role: role}
}

// QueryInt lee un entero opcional del query string.
func QueryInt(r *http.Request, name string) (int, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &errs.ValidationError{Fields: []string{name}}
	}
	return n, true, nil
}

// QueryBool lee un booleano opcional (true/false) del query string.
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &errs.ValidationError{Fields: []string{name}}
	}
	return &b, nil
}
