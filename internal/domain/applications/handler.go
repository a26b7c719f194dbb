package applications

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpapi"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets/{petID}/applications", submitApplicationHandler(svc))
	r.Get("/pets/{petID}/applications", listPetApplicationsHandler(svc))

	r.Get("/applications/{applicationID}", getApplicationHandler(svc))
	r.Post("/applications/{applicationID}/reviewing", markReviewingHandler(svc))
	r.Post("/applications/{applicationID}/decision", decideHandler(svc))

	r.Get("/me/applications", listMyApplicationsHandler(svc))
}

type submitApplicationRequest struct {
	Message string `json:"message"`
}

type versionRequest struct {
	Version int64 `json:"version" example:"1"`
}

type decideRequest struct {
	Outcome string `json:"outcome" example:"approved"`
	Version int64  `json:"version" example:"1"`
}

type applicationResponse struct {
	ID        string     `json:"id"`
	PetID     string     `json:"pet_id"`
	AdopterID string     `json:"adopter_id"`
	Message   string     `json:"message"`
	Status    Status     `json:"status"`
	Version   int64      `json:"version"`
	AppliedAt time.Time  `json:"applied_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	DecidedBy string     `json:"decided_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// submitApplicationHandler godoc
// @Summary Enviar solicitud de adopción
// @Description Solo adopters y solo para mascotas `available`. Si el adopter ya tiene una solicitud activa (pending/reviewing/approved) para la mascota responde 409 `duplicate_application`.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body submitApplicationRequest true "Mensaje para el rehomer"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Failure 409 {object} httpapi.ErrorResponse
// @Router /pets/{petID}/applications [post]
func submitApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitApplicationRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		a, err := svc.Submit(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "petID"), req.Message)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// listPetApplicationsHandler godoc
// @Summary Solicitudes de una mascota
// @Description Vista del que decide: dueño de la mascota o admin.
// @Tags applications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} applicationResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Router /pets/{petID}/applications [get]
func listPetApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "petID"))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toApplicationResponses(items))
	}
}

// getApplicationHandler godoc
// @Summary Ver solicitud
// @Tags applications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} applicationResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Router /applications/{applicationID} [get]
func getApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "applicationID"))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// markReviewingHandler godoc
// @Summary Marcar solicitud en revisión
// @Description pending → reviewing. Informativo; no cambia la mascota.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body versionRequest true "Versión leída"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Failure 409 {object} httpapi.ErrorResponse
// @Router /applications/{applicationID}/reviewing [post]
func markReviewingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req versionRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		a, err := svc.MarkReviewing(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "applicationID"), req.Version)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// decideHandler godoc
// @Summary Aprobar o rechazar solicitud
// @Description Al aprobar, la mascota pasa a `pending_decision` en la misma transacción. Si otra solicitud ya está aprobada responde 409 `conflict`; si la versión no coincide, 409 `stale_write`.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body decideRequest true "approved|rejected + versión"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Failure 409 {object} httpapi.ErrorResponse
// @Router /applications/{applicationID}/decision [post]
func decideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decideRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		outcome := Outcome(strings.ToLower(strings.TrimSpace(req.Outcome)))
		a, err := svc.Decide(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "applicationID"), outcome, req.Version)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// listMyApplicationsHandler godoc
// @Summary Mis solicitudes
// @Tags applications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} applicationResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Router /me/applications [get]
func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMine(r.Context(), httpapi.ActorFrom(r))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toApplicationResponses(items))
	}
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:        a.ID,
		PetID:     a.PetID,
		AdopterID: a.AdopterID,
		Message:   a.Message,
		Status:    a.Status,
		Version:   a.Version,
		AppliedAt: a.AppliedAt,
		DecidedAt: a.DecidedAt,
		DecidedBy: a.DecidedBy,
		UpdatedAt: a.UpdatedAt,
	}
}

func toApplicationResponses(items []Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toApplicationResponse(a))
	}
	return out
}
