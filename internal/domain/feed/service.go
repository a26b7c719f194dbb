// Package feed proyecta el log de actividad en feeds por rol, contadores de
// no leídos y el inbox del rehomer. Solo lee; la única escritura es el
// watermark de lectura del propio usuario.
package feed

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/pets"
)

const (
	DefaultLimit = 5
	MaxLimit     = 100
)

type PetReader interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type ApplicationReader interface {
	ForAdopter(ctx context.Context, adopterID string) ([]applications.Application, error)
	ForPets(ctx context.Context, petIDs []string) (map[string][]applications.Application, error)
}

type EventReader interface {
	GetByID(ctx context.Context, id string) (activity.Event, error)
	List(ctx context.Context, filter activity.ListFilter) ([]activity.Event, error)
	Count(ctx context.Context, filter activity.ListFilter) (int, error)
}

type Service struct {
	pets       PetReader
	apps       ApplicationReader
	events     EventReader
	watermarks activity.WatermarkStore
}

func NewService(petsSvc PetReader, apps ApplicationReader, events EventReader, watermarks activity.WatermarkStore) *Service {
	return &Service{
		pets:       petsSvc,
		apps:       apps,
		events:     events,
		watermarks: watermarks,
	}
}

// Dashboard junta feed y contador en una sola lectura.
type Dashboard struct {
	Events      []activity.Event
	UnreadCount int
	Watermark   *activity.Cursor
}

type InboxEntry struct {
	Pet          pets.Pet
	Applications []applications.Application
}

// FeedFor devuelve los eventos visibles para el actor, más nuevos primero.
// limit <= 0 usa DefaultLimit; se acota a MaxLimit.
func (s *Service) FeedFor(ctx context.Context, actor access.Actor, limit int) ([]activity.Event, error) {
	filter, err := s.visibility(ctx, actor)
	if err != nil {
		return nil, err
	}
	filter.Limit = normalizeLimit(limit)
	return s.events.List(ctx, filter)
}

// UnreadCountFor cuenta eventos visibles estrictamente posteriores al
// watermark. Leer el feed no lo mueve.
func (s *Service) UnreadCountFor(ctx context.Context, actor access.Actor) (int, error) {
	var (
		filter activity.ListFilter
		mark   activity.Cursor
		marked bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		filter, err = s.visibility(gctx, actor)
		return err
	})
	g.Go(func() error {
		if !actor.Authenticated() {
			return nil
		}
		var err error
		mark, marked, err = s.watermarks.Get(gctx, actor.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if marked {
		filter.After = &mark
	}
	return s.events.Count(ctx, filter)
}

// DashboardFor arma feed + no leídos en paralelo.
func (s *Service) DashboardFor(ctx context.Context, actor access.Actor, limit int) (Dashboard, error) {
	if !actor.Authenticated() {
		return Dashboard{}, errs.ErrUnauthenticated
	}

	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Events, err = s.FeedFor(gctx, actor, limit)
		return err
	})
	g.Go(func() error {
		var err error
		out.UnreadCount, err = s.UnreadCountFor(gctx, actor)
		return err
	})
	g.Go(func() error {
		c, ok, err := s.watermarks.Get(gctx, actor.ID)
		if err != nil || !ok {
			return err
		}
		out.Watermark = &c
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}

// Acknowledge marca como leído hasta uptoEventID inclusive. El evento debe
// ser visible para el actor; si no, se responde NotFound para no filtrar
// su existencia. El watermark nunca retrocede.
func (s *Service) Acknowledge(ctx context.Context, actor access.Actor, uptoEventID string) (activity.Cursor, error) {
	uptoEventID = strings.TrimSpace(uptoEventID)
	if uptoEventID == "" {
		return activity.Cursor{}, &errs.ValidationError{Fields: []string{"eventId"}}
	}

	filter, err := s.visibility(ctx, actor)
	if err != nil {
		return activity.Cursor{}, err
	}

	e, err := s.events.GetByID(ctx, uptoEventID)
	if err != nil {
		return activity.Cursor{}, err
	}
	if !filter.Matches(e) {
		return activity.Cursor{}, errs.ErrNotFound
	}

	return s.watermarks.Advance(ctx, actor.ID, activity.CursorOf(e))
}

// MyListingsWithApplications une las mascotas del rehomer con sus solicitudes.
// El orden de las solicitudes dentro de cada mascota lo decide quien consume.
func (s *Service) MyListingsWithApplications(ctx context.Context, actor access.Actor, rehomerID string) ([]InboxEntry, error) {
	rehomerID = strings.TrimSpace(rehomerID)
	if err := access.Check(actor, access.ActionReadInbox, access.Resource{RehomerID: rehomerID}); err != nil {
		return nil, err
	}

	owned, err := s.pets.ListByOwner(ctx, rehomerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(owned))
	for _, p := range owned {
		ids = append(ids, p.ID)
	}
	byPet, err := s.apps.ForPets(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]InboxEntry, 0, len(owned))
	for _, p := range owned {
		apps := byPet[p.ID]
		if apps == nil {
			apps = []applications.Application{}
		}
		out = append(out, InboxEntry{Pet: p, Applications: apps})
	}
	return out, nil
}

// visibility arma el filtro del conjunto visible según el rol:
//   - admin: todo
//   - rehomer: eventos que mencionan sus mascotas o su id
//   - adopter: eventos que mencionan sus solicitudes o su id
func (s *Service) visibility(ctx context.Context, actor access.Actor) (activity.ListFilter, error) {
	if !actor.Authenticated() {
		return activity.ListFilter{}, errs.ErrUnauthenticated
	}

	switch actor.Role {
	case access.RoleAdmin:
		return activity.ListFilter{All: true}, nil

	case access.RoleRehomer:
		owned, err := s.pets.ListByOwner(ctx, actor.ID)
		if err != nil {
			return activity.ListFilter{}, err
		}
		ids := make([]string, 0, len(owned)+1)
		ids = append(ids, actor.ID)
		for _, p := range owned {
			ids = append(ids, p.ID)
		}
		return activity.ListFilter{SubjectIDs: ids}, nil

	case access.RoleAdopter:
		mine, err := s.apps.ForAdopter(ctx, actor.ID)
		if err != nil {
			return activity.ListFilter{}, err
		}
		ids := make([]string, 0, len(mine)+1)
		ids = append(ids, actor.ID)
		for _, a := range mine {
			ids = append(ids, a.ID)
		}
		return activity.ListFilter{SubjectIDs: ids}, nil
	}

	return activity.ListFilter{}, errs.ErrForbidden
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
