package feed

import (
	"net/http"
	"time"

	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/httpapi"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/feed", feedHandler(svc))
	r.Get("/me/feed/unread", unreadHandler(svc))
	r.Post("/me/feed/ack", ackHandler(svc))

	r.Get("/rehomers/{rehomerID}/inbox", inboxHandler(svc))
}

type eventResponse struct {
	ID         string        `json:"id"`
	Kind       activity.Kind `json:"kind"`
	SubjectIDs []string      `json:"subject_ids"`
	OccurredAt time.Time     `json:"occurred_at"`
	Summary    string        `json:"summary"`
}

type cursorResponse struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type feedResponse struct {
	Events      []eventResponse `json:"events"`
	UnreadCount int             `json:"unread_count"`
	Watermark   *cursorResponse `json:"watermark,omitempty"`
}

type unreadResponse struct {
	UnreadCount int `json:"unread_count"`
}

type ackRequest struct {
	EventID string `json:"event_id"`
}

type ackResponse struct {
	Watermark   cursorResponse `json:"watermark"`
	UnreadCount int            `json:"unread_count"`
}

type inboxApplication struct {
	ID        string              `json:"id"`
	AdopterID string              `json:"adopter_id"`
	Message   string              `json:"message"`
	Status    applications.Status `json:"status"`
	Version   int64               `json:"version"`
	AppliedAt time.Time           `json:"applied_at"`
}

type inboxEntryResponse struct {
	PetID        string             `json:"pet_id"`
	PetName      string             `json:"pet_name"`
	PetStatus    pets.Status        `json:"pet_status"`
	PetVersion   int64              `json:"pet_version"`
	Applications []inboxApplication `json:"applications"`
}

// feedHandler godoc
// @Summary Mi feed de actividad
// @Description Eventos visibles para el actor, más nuevos primero (timestamp desc, id desc), más el contador de no leídos. Leer el feed no mueve el watermark.
// @Tags feed
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de eventos (1-100). Por defecto 5"
// @Success 200 {object} feedResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Router /me/feed [get]
func feedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _, err := httpapi.QueryInt(r, "limit")
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		d, err := svc.DashboardFor(r.Context(), httpapi.ActorFrom(r), limit)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		out := feedResponse{
			Events:      make([]eventResponse, 0, len(d.Events)),
			UnreadCount: d.UnreadCount,
		}
		for _, e := range d.Events {
			out.Events = append(out.Events, toEventResponse(e))
		}
		if d.Watermark != nil {
			c := toCursorResponse(*d.Watermark)
			out.Watermark = &c
		}
		httpapi.WriteJSON(w, http.StatusOK, out)
	}
}

// unreadHandler godoc
// @Summary Contador de no leídos
// @Tags feed
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} unreadResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Router /me/feed/unread [get]
func unreadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.UnreadCountFor(r.Context(), httpapi.ActorFrom(r))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, unreadResponse{UnreadCount: n})
	}
}

// ackHandler godoc
// @Summary Marcar leído hasta un evento
// @Description Avanza el watermark hasta el evento indicado (inclusive). Nunca retrocede. Si el evento no es visible para el actor responde 404.
// @Tags feed
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body ackRequest true "ID del último evento leído"
// @Success 200 {object} ackResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Router /me/feed/ack [post]
func ackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ackRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		actor := httpapi.ActorFrom(r)
		c, err := svc.Acknowledge(r.Context(), actor, req.EventID)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		n, err := svc.UnreadCountFor(r.Context(), actor)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, ackResponse{Watermark: toCursorResponse(c), UnreadCount: n})
	}
}

// inboxHandler godoc
// @Summary Inbox del rehomer
// @Description Mascotas del rehomer con sus solicitudes. Solo el propio rehomer o un admin.
// @Tags feed
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param rehomerID path string true "ID del rehomer"
// @Success 200 {array} inboxEntryResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Router /rehomers/{rehomerID}/inbox [get]
func inboxHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.MyListingsWithApplications(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "rehomerID"))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		out := make([]inboxEntryResponse, 0, len(entries))
		for _, e := range entries {
			item := inboxEntryResponse{
				PetID:        e.Pet.ID,
				PetName:      e.Pet.Name,
				PetStatus:    e.Pet.Status,
				PetVersion:   e.Pet.Version,
				Applications: make([]inboxApplication, 0, len(e.Applications)),
			}
			for _, a := range e.Applications {
				item.Applications = append(item.Applications, inboxApplication{
					ID:        a.ID,
					AdopterID: a.AdopterID,
					Message:   a.Message,
					Status:    a.Status,
					Version:   a.Version,
					AppliedAt: a.AppliedAt,
				})
			}
			out = append(out, item)
		}
		httpapi.WriteJSON(w, http.StatusOK, out)
	}
}

func toEventResponse(e activity.Event) eventResponse {
	return eventResponse{
		ID:         e.ID,
		Kind:       e.Kind,
		SubjectIDs: e.SubjectIDs,
		OccurredAt: e.OccurredAt,
		Summary:    e.Summary,
	}
}

func toCursorResponse(c activity.Cursor) cursorResponse {
	return cursorResponse{EventID: c.ID, OccurredAt: c.At}
}
