package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/ports/auth"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&errs.ValidationError{Fields: []string{"name"}}, http.StatusBadRequest},
		{errs.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: not the pet owner", errs.ErrForbidden), http.StatusForbidden},
		{errs.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: a -> b", errs.ErrInvalidTransition), http.StatusConflict},
		{errs.ErrDuplicateApplication, http.StatusConflict},
		{errs.ErrConflict, http.StatusConflict},
		{errs.ErrStaleWrite, http.StatusConflict},
		{errors.New("db exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func TestWriteError_ValidationIncludesFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, &errs.ValidationError{Fields: []string{"name", "breed"}})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error)
	assert.Equal(t, []string{"name", "breed"}, body.Fields)
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("pq: password authentication failed"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "internal", body.Error)
	assert.Equal(t, "internal error", body.Message)
}

func TestActorFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, ActorFrom(req).Authenticated())

	req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: "u-1", Role: "Rehomer"}))
	assert.Equal(t, access.Actor{ID: "u-1", Role: access.RoleRehomer}, ActorFrom(req))

	req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: "u-1", Role: "superuser"}))
	assert.False(t, ActorFrom(req).Authenticated())
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=7&kids=true&bad=x", nil)

	n, ok, err := QueryInt(req, "limit")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok, err = QueryInt(req, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = QueryInt(req, "bad")
	require.ErrorIs(t, err, errs.ErrValidation)

	b, err := QueryBool(req, "kids")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	_, err = QueryBool(req, "bad")
	require.ErrorIs(t, err, errs.ErrValidation)
}
