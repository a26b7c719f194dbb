package applications

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/tx"
)

const MaxMessageLength = 2000

const tracerName = "pet-adoption/applications"

// PetLifecycle es lo que el motor necesita del ciclo de vida de mascotas.
// MarkPendingDecision se invoca dentro de la transacción de la aprobación.
type PetLifecycle interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	MarkPendingDecision(ctx context.Context, actor access.Actor, petID string) (pets.Pet, error)
}

type TransitionObserver interface {
	ObserveTransition(entity, from, to string)
}

// Policy agrupa decisiones de negocio configurables.
type Policy struct {
	// AutoRejectCompeting: al aprobar, rechazar en la misma transacción las
	// demás solicitudes pending/reviewing de la mascota. Por defecto no.
	AutoRejectCompeting bool
}

type Service struct {
	repo     Repository
	pets     PetLifecycle
	events   activity.Recorder
	tx       tx.Runner
	policy   Policy
	observer TransitionObserver
	tracer   trace.Tracer
	now      func() time.Time
}

type Option func(*Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

func WithTransitionObserver(o TransitionObserver) Option {
	return func(s *Service) { s.observer = o }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer(tracerName) }
}

func NewService(repo Repository, petsSvc PetLifecycle, events activity.Recorder, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		pets:   petsSvc,
		events: events,
		tx:     runner,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Submit crea una solicitud pending para una mascota available.
func (s *Service) Submit(ctx context.Context, actor access.Actor, petID, message string) (out Application, err error) {
	ctx, span := s.tracer.Start(ctx, "applications.Submit", trace.WithAttributes(
		attribute.String("pet.id", petID),
		attribute.String("actor.role", string(actor.Role)),
	))
	defer func() { endSpan(span, err) }()

	if !actor.Authenticated() {
		return Application{}, errs.ErrUnauthenticated
	}
	// Solo adopters aplican; se corta antes de leer la mascota.
	if actor.Role != access.RoleAdopter {
		return Application{}, fmt.Errorf("%w: only adopters can apply", errs.ErrForbidden)
	}

	petID = strings.TrimSpace(petID)
	message = strings.TrimSpace(message)

	var fields errs.Fields
	if petID == "" {
		fields.Add("petId")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		fields.Add("message")
	}
	if err := fields.Err(); err != nil {
		return Application{}, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.pets.GetByID(ctx, petID)
		if err != nil {
			return err
		}

		// El duplicado se informa antes que el estado de la mascota: tras una
		// aprobación la mascota queda en pending_decision y el reintento del
		// mismo adopter es un duplicado, no un rechazo del guard.
		existing, err := s.repo.ListByPet(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.AdopterID == actor.ID && a.Status.Active() {
				return errs.ErrDuplicateApplication
			}
		}

		if err := access.Check(actor, access.ActionCreateApplication, pets.ResourceOf(p)); err != nil {
			return err
		}

		now := s.stamp()
		a := Application{
			ID:        uuid.NewString(),
			PetID:     p.ID,
			AdopterID: actor.ID,
			Message:   message,
			Status:    StatusPending,
			Version:   1,
			AppliedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		if _, err := s.events.Record(ctx, activity.KindApplicationSubmitted,
			[]string{a.ID, a.PetID, a.AdopterID},
			fmt.Sprintf("New application for %s", p.Name)); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return Application{}, err
	}

	span.SetAttributes(attribute.String("application.id", out.ID))
	s.observe("", out.Status)
	return out, nil
}

// MarkReviewing es informativa: pending -> reviewing, sin efectos en la mascota.
func (s *Service) MarkReviewing(ctx context.Context, actor access.Actor, id string, expectedVersion int64) (out Application, err error) {
	ctx, span := s.tracer.Start(ctx, "applications.MarkReviewing", trace.WithAttributes(
		attribute.String("application.id", id),
	))
	defer func() { endSpan(span, err) }()

	if !actor.Authenticated() {
		return Application{}, errs.ErrUnauthenticated
	}
	if expectedVersion <= 0 {
		return Application{}, &errs.ValidationError{Fields: []string{"version"}}
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, _, err := s.loadForDecision(ctx, actor, id)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return errs.ErrStaleWrite
		}
		if current.Status != StatusPending {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, current.Status, StatusReviewing)
		}

		next := current
		next.Status = StatusReviewing
		next.Version = current.Version + 1
		next.UpdatedAt = s.stamp()
		if err := s.repo.Update(ctx, next, current.Version); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	s.observe(StatusPending, StatusReviewing)
	return out, nil
}

// Decide aprueba o rechaza. La aprobación, el paso de la mascota a
// pending_decision y los eventos se confirman juntos o no se confirman.
func (s *Service) Decide(ctx context.Context, actor access.Actor, id string, outcome Outcome, expectedVersion int64) (out Application, err error) {
	ctx, span := s.tracer.Start(ctx, "applications.Decide", trace.WithAttributes(
		attribute.String("application.id", id),
		attribute.String("application.outcome", string(outcome)),
		attribute.Bool("policy.auto_reject_competing", s.policy.AutoRejectCompeting),
	))
	defer func() { endSpan(span, err) }()

	if !actor.Authenticated() {
		return Application{}, errs.ErrUnauthenticated
	}

	var fields errs.Fields
	if !outcome.Valid() {
		fields.Add("outcome")
	}
	if expectedVersion <= 0 {
		fields.Add("version")
	}
	if err := fields.Err(); err != nil {
		return Application{}, err
	}

	var transitions [][2]Status
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		transitions = transitions[:0]

		current, p, err := s.loadForDecision(ctx, actor, id)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return errs.ErrStaleWrite
		}
		if current.Status.Terminal() {
			return fmt.Errorf("%w: application is %s", errs.ErrInvalidTransition, current.Status)
		}

		if outcome == OutcomeRejected {
			next, err := s.decide(ctx, actor, current, p, StatusRejected)
			if err != nil {
				return err
			}
			transitions = append(transitions, [2]Status{current.Status, next.Status})
			out = next
			return nil
		}

		if p.Status.Terminal() {
			return fmt.Errorf("%w: pet is %s", errs.ErrInvalidTransition, p.Status)
		}
		siblings, err := s.repo.ListByPet(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, o := range siblings {
			if o.ID != current.ID && o.Status == StatusApproved {
				return fmt.Errorf("%w: pet already has an approved application", errs.ErrConflict)
			}
		}

		next, err := s.decide(ctx, actor, current, p, StatusApproved)
		if err != nil {
			return err
		}
		transitions = append(transitions, [2]Status{current.Status, next.Status})

		if _, err := s.pets.MarkPendingDecision(ctx, actor, p.ID); err != nil {
			return err
		}

		if s.policy.AutoRejectCompeting {
			for _, o := range siblings {
				if o.ID == current.ID || o.Status.Terminal() {
					continue
				}
				if _, err := s.decide(ctx, actor, o, p, StatusRejected); err != nil {
					return err
				}
				transitions = append(transitions, [2]Status{o.Status, StatusRejected})
			}
		}

		out = next
		return nil
	})
	if err != nil {
		return Application{}, err
	}

	for _, t := range transitions {
		s.observe(t[0], t[1])
	}
	return out, nil
}

func (s *Service) decide(ctx context.Context, actor access.Actor, current Application, p pets.Pet, to Status) (Application, error) {
	now := s.stamp()
	next := current
	next.Status = to
	next.Version = current.Version + 1
	next.DecidedAt = &now
	next.DecidedBy = actor.ID
	next.UpdatedAt = now

	if err := s.repo.Update(ctx, next, current.Version); err != nil {
		return Application{}, err
	}
	if _, err := s.events.Record(ctx, activity.KindApplicationDecided,
		[]string{next.ID, next.PetID, next.AdopterID, actor.ID},
		fmt.Sprintf("Application for %s %s", p.Name, to)); err != nil {
		return Application{}, err
	}
	return next, nil
}

// loadForDecision carga solicitud + mascota y aplica el guard de decisión.
func (s *Service) loadForDecision(ctx context.Context, actor access.Actor, id string) (Application, pets.Pet, error) {
	if !actor.Authenticated() {
		return Application{}, pets.Pet{}, errs.ErrUnauthenticated
	}
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Application{}, pets.Pet{}, err
	}
	p, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		return Application{}, pets.Pet{}, err
	}
	if err := access.Check(actor, access.ActionDecideApplication, resourceOf(a, p)); err != nil {
		return Application{}, pets.Pet{}, err
	}
	return a, p, nil
}

// Get lo ven el adopter que la creó, el dueño de la mascota o un admin.
func (s *Service) Get(ctx context.Context, actor access.Actor, id string) (Application, error) {
	if !actor.Authenticated() {
		return Application{}, errs.ErrUnauthenticated
	}
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Application{}, err
	}
	p, err := s.pets.GetByID(ctx, a.PetID)
	if err != nil {
		return Application{}, err
	}
	if err := access.Check(actor, access.ActionReadApplication, resourceOf(a, p)); err != nil {
		return Application{}, err
	}
	return a, nil
}

// ListMine devuelve las solicitudes del actor, más recientes primero.
func (s *Service) ListMine(ctx context.Context, actor access.Actor) ([]Application, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	items, err := s.repo.ListByAdopter(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(items)
	return items, nil
}

// ListByPet es la vista del que decide.
func (s *Service) ListByPet(ctx context.Context, actor access.Actor, petID string) ([]Application, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	p, err := s.pets.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, access.ActionDecideApplication, pets.ResourceOf(p)); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByPet(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(items)
	return items, nil
}

// ForAdopter y ForPets no aplican el guard: son para la proyección del feed.
func (s *Service) ForAdopter(ctx context.Context, adopterID string) ([]Application, error) {
	return s.repo.ListByAdopter(ctx, adopterID)
}

func (s *Service) ForPets(ctx context.Context, petIDs []string) (map[string][]Application, error) {
	if len(petIDs) == 0 {
		return map[string][]Application{}, nil
	}
	return s.repo.ListByPets(ctx, petIDs)
}

func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) observe(from, to Status) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveTransition("application", string(from), string(to))
}

// SortNewestFirst ordena por appliedAt desc, id desc.
func SortNewestFirst(items []Application) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].AppliedAt.Equal(items[j].AppliedAt) {
			return items[i].AppliedAt.After(items[j].AppliedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func resourceOf(a Application, p pets.Pet) access.Resource {
	r := pets.ResourceOf(p)
	r.AdopterID = a.AdopterID
	return r
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errs.Kind(err))
	}
	span.End()
}
