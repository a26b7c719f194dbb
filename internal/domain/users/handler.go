package users

import (
	"net/http"
	"time"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/platform/httpapi"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/users/me", registerHandler(svc))
	r.Get("/users/{userID}", getUserHandler(svc))
}

type registerRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type userResponse struct {
	ID          string      `json:"id"`
	Role        access.Role `json:"role"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// registerHandler godoc
// @Summary Registrar mi perfil
// @Description Crea (201) o actualiza (200) el perfil del usuario autenticado. El rol viene de la identidad.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body registerRequest true "Datos de contacto"
// @Success 201 {object} userResponse
// @Success 200 {object} userResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Router /users/me [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		u, created, err := svc.Register(r.Context(), httpapi.ActorFrom(r), RegisterInput(req))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		httpapi.WriteJSON(w, status, toUserResponse(u))
	}
}

// getUserHandler godoc
// @Summary Ver perfil
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param userID path string true "ID de usuario"
// @Success 200 {object} userResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Router /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "userID"))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
