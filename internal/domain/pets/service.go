package pets

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/ports/tx"
)

// TransitionObserver recibe cada transición de estado exitosa (métricas).
type TransitionObserver interface {
	ObserveTransition(entity, from, to string)
}

type Service struct {
	repo     Repository
	events   activity.Recorder
	tx       tx.Runner
	observer TransitionObserver
	now      func() time.Time
}

type Option func(*Service)

func WithTransitionObserver(o TransitionObserver) Option {
	return func(s *Service) { s.observer = o }
}

func NewService(repo Repository, events activity.Recorder, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		events: events,
		tx:     runner,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateListingInput struct {
	Name           string
	Species        string
	Breed          string
	Gender         string
	Age            Age
	Size           string
	Description    string
	Color          string
	Health         Health
	Compatibility  Compatibility
	ActivityLevel  string
	RehomingReason string
	RehomingFee    float64
	Urgency        string
	Location       string
	PrimaryImage   string
}

// UpdateListingInput usa punteros para PATCH real: nil = no tocar.
type UpdateListingInput struct {
	Name           *string
	Species        *string
	Breed          *string
	Gender         *string
	Age            *Age
	Size           *string
	Description    *string
	Color          *string
	Health         *Health
	Compatibility  *Compatibility
	ActivityLevel  *string
	RehomingReason *string
	RehomingFee    *float64
	Urgency        *string
	Location       *string
	PrimaryImage   *string
}

// CreateListing publica un listado. El flujo de alta no tiene paso draft
// explícito: el listado nace en available.
func (s *Service) CreateListing(ctx context.Context, actor access.Actor, in CreateListingInput) (Pet, error) {
	if err := access.Check(actor, access.ActionCreatePet, access.Resource{}); err != nil {
		return Pet{}, err
	}

	p := Pet{
		ID:             uuid.NewString(),
		OwnerUserID:    actor.ID,
		Name:           strings.TrimSpace(in.Name),
		Species:        strings.ToLower(strings.TrimSpace(in.Species)),
		Breed:          strings.TrimSpace(in.Breed),
		Gender:         Gender(strings.ToLower(strings.TrimSpace(in.Gender))),
		Age:            Age{Value: in.Age.Value, Unit: AgeUnit(strings.ToLower(strings.TrimSpace(string(in.Age.Unit))))},
		Size:           Size(strings.ToLower(strings.TrimSpace(in.Size))),
		Description:    strings.TrimSpace(in.Description),
		Color:          strings.TrimSpace(in.Color),
		Health:         in.Health,
		Compatibility:  in.Compatibility,
		ActivityLevel:  ActivityLevel(strings.ToLower(strings.TrimSpace(in.ActivityLevel))),
		RehomingReason: strings.TrimSpace(in.RehomingReason),
		RehomingFee:    in.RehomingFee,
		Urgency:        Urgency(strings.ToLower(strings.TrimSpace(in.Urgency))),
		Location:       strings.TrimSpace(in.Location),
		PrimaryImage:   strings.TrimSpace(in.PrimaryImage),
		Status:         StatusAvailable,
		Version:        1,
	}
	if p.Age.Unit == "" {
		p.Age.Unit = AgeUnitYears
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}

	now := s.stamp()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		_, err := s.events.Record(ctx, activity.KindPetListed,
			[]string{p.ID, p.OwnerUserID},
			fmt.Sprintf("%s was listed for rehoming", p.Name))
		return err
	})
	if err != nil {
		return Pet{}, err
	}
	s.observe("", p.Status)
	return p, nil
}

// UpdateListing edita atributos de un listado no terminal.
func (s *Service) UpdateListing(ctx context.Context, actor access.Actor, petID string, expectedVersion int64, in UpdateListingInput) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, errs.ErrUnauthenticated
	}
	if expectedVersion <= 0 {
		return Pet{}, &errs.ValidationError{Fields: []string{"version"}}
	}

	var out Pet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
		if err != nil {
			return err
		}
		if err := access.Check(actor, access.ActionUpdatePet, resourceOf(current)); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return errs.ErrStaleWrite
		}
		if current.Status.Terminal() {
			return fmt.Errorf("%w: listing is %s", errs.ErrInvalidTransition, current.Status)
		}

		next := applyPatch(current, in)
		if err := validate(next); err != nil {
			return err
		}
		next.Version = current.Version + 1
		next.UpdatedAt = s.stamp()

		if err := s.repo.Update(ctx, next, expectedVersion); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return Pet{}, err
	}
	return out, nil
}

// TransitionStatus aplica una transición pedida por el dueño o un admin.
func (s *Service) TransitionStatus(ctx context.Context, actor access.Actor, petID string, target Status, expectedVersion int64) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, errs.ErrUnauthenticated
	}
	var fields errs.Fields
	if !target.Valid() {
		fields.Add("status")
	}
	if expectedVersion <= 0 {
		fields.Add("version")
	}
	if err := fields.Err(); err != nil {
		return Pet{}, err
	}

	action := access.ActionUpdatePet
	if target == StatusRemoved {
		action = access.ActionRemovePet
	}

	var out Pet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
		if err != nil {
			return err
		}
		if err := access.Check(actor, action, resourceOf(current)); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return errs.ErrStaleWrite
		}
		if !canTransition(current.Status, target) {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, current.Status, target)
		}
		out, err = s.apply(ctx, current, target)
		return err
	})
	if err != nil {
		return Pet{}, err
	}
	return out, nil
}

// MarkPendingDecision mueve available -> pending_decision. Solo lo invoca el
// motor de solicitudes al aprobar, dentro de su misma transacción.
func (s *Service) MarkPendingDecision(ctx context.Context, actor access.Actor, petID string) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, errs.ErrUnauthenticated
	}
	var out Pet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
		if err != nil {
			return err
		}
		if err := access.Check(actor, access.ActionUpdatePet, resourceOf(current)); err != nil {
			return err
		}
		if current.Status != StatusAvailable {
			return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, current.Status, StatusPendingDecision)
		}
		out, err = s.apply(ctx, current, StatusPendingDecision)
		return err
	})
	if err != nil {
		return Pet{}, err
	}
	return out, nil
}

func (s *Service) apply(ctx context.Context, current Pet, target Status) (Pet, error) {
	next := current
	next.Status = target
	next.Version = current.Version + 1
	next.UpdatedAt = s.stamp()

	if err := s.repo.Update(ctx, next, current.Version); err != nil {
		return Pet{}, err
	}
	if _, err := s.events.Record(ctx, activity.KindPetStatusChanged,
		[]string{next.ID, next.OwnerUserID},
		fmt.Sprintf("%s: %s -> %s", next.Name, current.Status, target)); err != nil {
		return Pet{}, err
	}
	s.observe(current.Status, target)
	return next, nil
}

// GetPet lee un listado; los draft solo los ve su dueño o un admin.
func (s *Service) GetPet(ctx context.Context, actor access.Actor, id string) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, errs.ErrUnauthenticated
	}
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}
	if err := access.Check(actor, access.ActionReadPet, resourceOf(p)); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// ListAvailable devuelve solo listados available, más recientes primero.
func (s *Service) ListAvailable(ctx context.Context, actor access.Actor, filter ListFilter) ([]Pet, error) {
	if !actor.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	filter.Status = StatusAvailable
	filter.Limit = filter.NormalizedLimit()
	return s.repo.List(ctx, filter)
}

// GetByID no aplica el guard: es para otros módulos del core.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
}

func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) observe(from, to Status) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveTransition("pet", string(from), string(to))
}

// ResourceOf arma el recurso del guard para un listado.
func ResourceOf(p Pet) access.Resource {
	return resourceOf(p)
}

func resourceOf(p Pet) access.Resource {
	return access.Resource{PetOwnerID: p.OwnerUserID, PetStatus: string(p.Status)}
}

func validate(p Pet) error {
	var fields errs.Fields
	if p.Name == "" {
		fields.Add("name")
	}
	if p.Breed == "" {
		fields.Add("breed")
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderUnknown:
	default:
		fields.Add("gender")
	}
	if p.Description == "" {
		fields.Add("description")
	}
	if p.Age.Value < 0 {
		fields.Add("age.value")
	}
	switch p.Age.Unit {
	case AgeUnitWeeks, AgeUnitMonths, AgeUnitYears:
	default:
		fields.Add("age.unit")
	}
	if p.RehomingFee < 0 || math.IsNaN(p.RehomingFee) || math.IsInf(p.RehomingFee, 0) {
		fields.Add("rehomingFee")
	}
	switch p.Size {
	case "", SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
	default:
		fields.Add("size")
	}
	switch p.Urgency {
	case "", UrgencyLow, UrgencyMedium, UrgencyHigh:
	default:
		fields.Add("urgency")
	}
	switch p.ActivityLevel {
	case "", ActivityLow, ActivityModerate, ActivityHigh:
	default:
		fields.Add("activityLevel")
	}
	return fields.Err()
}

func applyPatch(p Pet, in UpdateListingInput) Pet {
	trim := func(v *string) string { return strings.TrimSpace(*v) }
	lower := func(v *string) string { return strings.ToLower(strings.TrimSpace(*v)) }

	if in.Name != nil {
		p.Name = trim(in.Name)
	}
	if in.Species != nil {
		p.Species = lower(in.Species)
	}
	if in.Breed != nil {
		p.Breed = trim(in.Breed)
	}
	if in.Gender != nil {
		p.Gender = Gender(lower(in.Gender))
	}
	if in.Age != nil {
		p.Age = Age{Value: in.Age.Value, Unit: AgeUnit(strings.ToLower(strings.TrimSpace(string(in.Age.Unit))))}
		if p.Age.Unit == "" {
			p.Age.Unit = AgeUnitYears
		}
	}
	if in.Size != nil {
		p.Size = Size(lower(in.Size))
	}
	if in.Description != nil {
		p.Description = trim(in.Description)
	}
	if in.Color != nil {
		p.Color = trim(in.Color)
	}
	if in.Health != nil {
		p.Health = *in.Health
	}
	if in.Compatibility != nil {
		p.Compatibility = *in.Compatibility
	}
	if in.ActivityLevel != nil {
		p.ActivityLevel = ActivityLevel(lower(in.ActivityLevel))
	}
	if in.RehomingReason != nil {
		p.RehomingReason = trim(in.RehomingReason)
	}
	if in.RehomingFee != nil {
		p.RehomingFee = *in.RehomingFee
	}
	if in.Urgency != nil {
		p.Urgency = Urgency(lower(in.Urgency))
	}
	if in.Location != nil {
		p.Location = trim(in.Location)
	}
	if in.PrimaryImage != nil {
		p.PrimaryImage = trim(in.PrimaryImage)
	}
	return p
}
