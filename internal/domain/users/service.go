package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/ports/tx"
)

type Service struct {
	repo   Repository
	events activity.Recorder
	tx     tx.Runner
	now    func() time.Time
}

func NewService(repo Repository, events activity.Recorder, runner tx.Runner) *Service {
	return &Service{
		repo:   repo,
		events: events,
		tx:     runner,
		now:    time.Now,
	}
}

type RegisterInput struct {
	DisplayName string
	Email       string
	Phone       string
}

// Register crea el perfil del actor autenticado. La primera vez emite
// user_registered; las siguientes solo actualizan los datos de contacto.
func (s *Service) Register(ctx context.Context, actor access.Actor, in RegisterInput) (User, bool, error) {
	if !actor.Authenticated() {
		return User{}, false, errs.ErrUnauthenticated
	}

	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	var fields errs.Fields
	if in.DisplayName == "" {
		fields.Add("displayName")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			fields.Add("email")
		}
	}
	if err := fields.Err(); err != nil {
		return User{}, false, err
	}

	var (
		out     User
		created bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := s.now().UTC().Truncate(time.Microsecond)

		current, err := s.repo.GetByID(ctx, actor.ID)
		switch {
		case err == nil:
			current.DisplayName = in.DisplayName
			current.Email = in.Email
			current.Phone = in.Phone
			current.UpdatedAt = now
			if err := s.repo.Update(ctx, current); err != nil {
				return err
			}
			out = current
			return nil

		case errors.Is(err, errs.ErrNotFound):
			u := User{
				ID:          actor.ID,
				Role:        actor.Role,
				DisplayName: in.DisplayName,
				Email:       in.Email,
				Phone:       in.Phone,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.repo.Create(ctx, u); err != nil {
				return err
			}
			if _, err := s.events.Record(ctx, activity.KindUserRegistered,
				[]string{u.ID}, u.DisplayName+" joined as "+string(u.Role)); err != nil {
				return err
			}
			out, created = u, true
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return User{}, false, err
	}
	return out, created, nil
}

// Get lo ve el propio usuario o un admin.
func (s *Service) Get(ctx context.Context, actor access.Actor, id string) (User, error) {
	id = strings.TrimSpace(id)
	if err := access.Check(actor, access.ActionReadUser, access.Resource{UserID: id}); err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, id)
}
