package pets

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpapi"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas (sin r.Route) porque applications
// cuelga /pets/{petID}/applications del mismo árbol.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets", createPetHandler(svc))
	r.Get("/pets", listPetsHandler(svc))

	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Patch("/pets/{petID}", updatePetHandler(svc))
	r.Post("/pets/{petID}/status", transitionPetHandler(svc))
}

type ageDTO struct {
	Value int    `json:"value"`
	Unit  string `json:"unit" example:"years"`
}

type healthDTO struct {
	Vaccinated   bool `json:"vaccinated"`
	Neutered     bool `json:"neutered"`
	Microchipped bool `json:"microchipped"`
}

type compatibilityDTO struct {
	GoodWithKids bool `json:"good_with_kids"`
	GoodWithDogs bool `json:"good_with_dogs"`
	GoodWithCats bool `json:"good_with_cats"`
}

type createPetRequest struct {
	Name           string           `json:"name"`
	Species        string           `json:"species"`
	Breed          string           `json:"breed"`
	Gender         string           `json:"gender" example:"female"`
	Age            ageDTO           `json:"age"`
	Size           string           `json:"size" example:"medium"`
	Description    string           `json:"description"`
	Color          string           `json:"color"`
	Health         healthDTO        `json:"health"`
	Compatibility  compatibilityDTO `json:"compatibility"`
	ActivityLevel  string           `json:"activity_level" example:"moderate"`
	RehomingReason string           `json:"rehoming_reason"`
	RehomingFee    float64          `json:"rehoming_fee"`
	Urgency        string           `json:"urgency" example:"high"`
	Location       string           `json:"location"`
	PrimaryImage   string           `json:"primary_image"`
}

type updatePetRequest struct {
	// Version es obligatoria: la que el cliente leyó.
	Version int64 `json:"version"`

	// Punteros para PATCH real: nil = no tocar.
	Name           *string           `json:"name"`
	Species        *string           `json:"species"`
	Breed          *string           `json:"breed"`
	Gender         *string           `json:"gender"`
	Age            *ageDTO           `json:"age"`
	Size           *string           `json:"size"`
	Description    *string           `json:"description"`
	Color          *string           `json:"color"`
	Health         *healthDTO        `json:"health"`
	Compatibility  *compatibilityDTO `json:"compatibility"`
	ActivityLevel  *string           `json:"activity_level"`
	RehomingReason *string           `json:"rehoming_reason"`
	RehomingFee    *float64          `json:"rehoming_fee"`
	Urgency        *string           `json:"urgency"`
	Location       *string           `json:"location"`
	PrimaryImage   *string           `json:"primary_image"`
}

type transitionPetRequest struct {
	Status  string `json:"status" example:"removed"`
	Version int64  `json:"version" example:"1"`
}

type petResponse struct {
	ID             string           `json:"id"`
	OwnerUserID    string           `json:"owner_user_id"`
	Name           string           `json:"name"`
	Species        string           `json:"species"`
	Breed          string           `json:"breed"`
	Gender         Gender           `json:"gender"`
	Age            ageDTO           `json:"age"`
	Size           Size             `json:"size,omitempty"`
	Description    string           `json:"description"`
	Color          string           `json:"color,omitempty"`
	Health         healthDTO        `json:"health"`
	Compatibility  compatibilityDTO `json:"compatibility"`
	ActivityLevel  ActivityLevel    `json:"activity_level,omitempty"`
	RehomingReason string           `json:"rehoming_reason,omitempty"`
	RehomingFee    float64          `json:"rehoming_fee"`
	Urgency        Urgency          `json:"urgency,omitempty"`
	Location       string           `json:"location,omitempty"`
	PrimaryImage   string           `json:"primary_image,omitempty"`
	Status         Status           `json:"status"`
	Version        int64            `json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Publicar mascota en adopción
// @Description Crea un listado en estado `available`. Solo rehomers. Autenticación: `X-Debug-User-ID` + `X-Debug-User-Role` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol (adopter|rehomer|admin)"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos del listado"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		p, err := svc.CreateListing(r.Context(), httpapi.ActorFrom(r), CreateListingInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Gender:         req.Gender,
			Age:            Age{Value: req.Age.Value, Unit: AgeUnit(req.Age.Unit)},
			Size:           req.Size,
			Description:    req.Description,
			Color:          req.Color,
			Health:         Health(req.Health),
			Compatibility:  Compatibility(req.Compatibility),
			ActivityLevel:  req.ActivityLevel,
			RehomingReason: req.RehomingReason,
			RehomingFee:    req.RehomingFee,
			Urgency:        req.Urgency,
			Location:       req.Location,
			PrimaryImage:   req.PrimaryImage,
		})
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		httpapi.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Buscar mascotas disponibles
// @Description Lista solo listados `available`, más recientes primero. Cualquier usuario autenticado.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param species query string false "Especie (dog, cat, ...)"
// @Param breed query string false "Raza exacta"
// @Param gender query string false "male|female|unknown"
// @Param size query string false "small|medium|large|extra_large"
// @Param urgency query string false "low|medium|high"
// @Param location query string false "Substring de ubicación"
// @Param good_with_kids query bool false "Compatible con niños"
// @Param good_with_dogs query bool false "Compatible con perros"
// @Param good_with_cats query bool false "Compatible con gatos"
// @Param q query string false "Texto libre en nombre/raza/descripción"
// @Param limit query int false "Máximo (1-200). Por defecto 50"
// @Success 200 {array} petResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		items, err := svc.ListAvailable(r.Context(), httpapi.ActorFrom(r), filter)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpapi.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver listado
// @Description Los listados `draft` solo los ve su dueño o un admin.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPet(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "petID"))
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar listado
// @Description PATCH de atributos. Requiere `version`; si no coincide con la almacenada responde 409 `stale_write`. Listados terminales no se editan.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a cambiar + version"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Failure 409 {object} httpapi.ErrorResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		in := UpdateListingInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Gender:         req.Gender,
			Size:           req.Size,
			Description:    req.Description,
			Color:          req.Color,
			ActivityLevel:  req.ActivityLevel,
			RehomingReason: req.RehomingReason,
			RehomingFee:    req.RehomingFee,
			Urgency:        req.Urgency,
			Location:       req.Location,
			PrimaryImage:   req.PrimaryImage,
		}
		if req.Age != nil {
			in.Age = &Age{Value: req.Age.Value, Unit: AgeUnit(req.Age.Unit)}
		}
		if req.Health != nil {
			h := Health(*req.Health)
			in.Health = &h
		}
		if req.Compatibility != nil {
			c := Compatibility(*req.Compatibility)
			in.Compatibility = &c
		}

		p, err := svc.UpdateListing(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "petID"), req.Version, in)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// transitionPetHandler godoc
// @Summary Cambiar estado del listado
// @Description Transiciones permitidas: draft→available, available→removed, pending_decision→removed, pending_decision→adopted. Cualquier otra responde 409 `invalid_transition`.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-User-Role header string false "Solo en modo dev, rol"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Param payload body transitionPetRequest true "Estado destino + version"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpapi.ErrorResponse
// @Failure 403 {object} httpapi.ErrorResponse
// @Failure 404 {object} httpapi.ErrorResponse
// @Failure 409 {object} httpapi.ErrorResponse
// @Router /pets/{petID}/status [post]
func transitionPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transitionPetRequest
		if err := httpapi.DecodeJSON(r, &req); err != nil {
			httpapi.WriteError(w, err)
			return
		}

		target := Status(strings.ToLower(strings.TrimSpace(req.Status)))
		p, err := svc.TransitionStatus(r.Context(), httpapi.ActorFrom(r), chi.URLParam(r, "petID"), target, req.Version)
		if err != nil {
			httpapi.WriteError(w, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	f := ListFilter{
		Species:  strings.TrimSpace(q.Get("species")),
		Breed:    strings.TrimSpace(q.Get("breed")),
		Gender:   Gender(strings.ToLower(strings.TrimSpace(q.Get("gender")))),
		Size:     Size(strings.ToLower(strings.TrimSpace(q.Get("size")))),
		Urgency:  Urgency(strings.ToLower(strings.TrimSpace(q.Get("urgency")))),
		Location: strings.TrimSpace(q.Get("location")),
		Query:    strings.TrimSpace(q.Get("q")),
	}

	var err error
	if f.GoodWithKids, err = httpapi.QueryBool(r, "good_with_kids"); err != nil {
		return ListFilter{}, err
	}
	if f.GoodWithDogs, err = httpapi.QueryBool(r, "good_with_dogs"); err != nil {
		return ListFilter{}, err
	}
	if f.GoodWithCats, err = httpapi.QueryBool(r, "good_with_cats"); err != nil {
		return ListFilter{}, err
	}

	n, ok, err := httpapi.QueryInt(r, "limit")
	if err != nil {
		return ListFilter{}, err
	}
	if ok {
		if n < 1 || n > MaxListLimit {
			return ListFilter{}, errInvalidLimit
		}
		f.Limit = n
	}
	return f, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:             p.ID,
		OwnerUserID:    p.OwnerUserID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Gender:         p.Gender,
		Age:            ageDTO{Value: p.Age.Value, Unit: string(p.Age.Unit)},
		Size:           p.Size,
		Description:    p.Description,
		Color:          p.Color,
		Health:         healthDTO(p.Health),
		Compatibility:  compatibilityDTO(p.Compatibility),
		ActivityLevel:  p.ActivityLevel,
		RehomingReason: p.RehomingReason,
		RehomingFee:    p.RehomingFee,
		Urgency:        p.Urgency,
		Location:       p.Location,
		PrimaryImage:   p.PrimaryImage,
		Status:         p.Status,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
