package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/pets"
)

func TestTxRunner_RollsBackEveryRepoOnError(t *testing.T) {
	ctx := context.Background()
	runner := NewTxRunner()
	petRepo := NewPetRepo()
	eventRepo := NewEventRepo()

	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", Name: "Milo", Status: pets.StatusAvailable, Version: 1}))

	boom := errors.New("boom")
	err := runner.WithinTx(ctx, func(ctx context.Context) error {
		if err := petRepo.Update(ctx, pets.Pet{ID: "p1", Name: "Milo", Status: pets.StatusPendingDecision, Version: 2}, 1); err != nil {
			return err
		}
		if err := petRepo.Create(ctx, pets.Pet{ID: "p2", Version: 1}); err != nil {
			return err
		}
		if err := eventRepo.Append(ctx, activity.Event{ID: "e1", SubjectIDs: []string{"p1"}, OccurredAt: time.Unix(1, 0)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := petRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, p.Status)
	assert.Equal(t, int64(1), p.Version)

	_, err = petRepo.GetByID(ctx, "p2")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	n, err := eventRepo.Count(ctx, activity.ListFilter{All: true})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTxRunner_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	runner := NewTxRunner()
	petRepo := NewPetRepo()

	boom := errors.New("boom")
	err := runner.WithinTx(ctx, func(ctx context.Context) error {
		// Si abriera otra transacción se bloquearía con el mutex.
		if err := runner.WithinTx(ctx, func(ctx context.Context) error {
			return petRepo.Create(ctx, pets.Pet{ID: "inner", Version: 1})
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = petRepo.GetByID(ctx, "inner")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPetRepo_UpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", Version: 1}))

	require.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "p1", Version: 3}, 2), errs.ErrStaleWrite)
	require.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "nope", Version: 2}, 1), errs.ErrNotFound)
	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", Version: 2}, 1))
}

func TestPetRepo_ListFiltersAndLimits(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "a", Species: "dog", Status: pets.StatusAvailable, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "b", Species: "dog", Status: pets.StatusAvailable, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "c", Species: "cat", Status: pets.StatusAvailable, CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "d", Species: "dog", Status: pets.StatusRemoved, CreatedAt: base.Add(3 * time.Hour)}))

	got, err := repo.List(ctx, pets.ListFilter{Status: pets.StatusAvailable, Species: "DOG"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)

	got, err = repo.List(ctx, pets.ListFilter{Status: pets.StatusAvailable, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestApplicationRepo_EnforcesInvariants(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo()
	now := time.Now().UTC()

	j1 := applications.Application{ID: "j1", PetID: "p", AdopterID: "a1", Status: applications.StatusPending, Version: 1, AppliedAt: now}
	require.NoError(t, repo.Create(ctx, j1))

	dup := j1
	dup.ID = "j1b"
	require.ErrorIs(t, repo.Create(ctx, dup), errs.ErrDuplicateApplication)

	j2 := applications.Application{ID: "j2", PetID: "p", AdopterID: "a2", Status: applications.StatusPending, Version: 1, AppliedAt: now}
	require.NoError(t, repo.Create(ctx, j2))

	approved1 := j1
	approved1.Status = applications.StatusApproved
	approved1.Version = 2
	require.NoError(t, repo.Update(ctx, approved1, 1))

	approved2 := j2
	approved2.Status = applications.StatusApproved
	approved2.Version = 2
	require.ErrorIs(t, repo.Update(ctx, approved2, 1), errs.ErrConflict)

	// Una rechazada no bloquea volver a aplicar.
	rejected := j2
	rejected.Status = applications.StatusRejected
	rejected.Version = 2
	require.NoError(t, repo.Update(ctx, rejected, 1))
	require.NoError(t, repo.Create(ctx, applications.Application{ID: "j3", PetID: "p", AdopterID: "a2", Status: applications.StatusPending, Version: 1, AppliedAt: now}))

	byPet, err := repo.ListByPets(ctx, []string{"p", "other"})
	require.NoError(t, err)
	assert.Len(t, byPet["p"], 3)
	assert.NotContains(t, byPet, "other")
}

func TestEventRepo_OrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepo()

	t10 := time.Unix(10, 0).UTC()
	t20 := time.Unix(20, 0).UTC()
	require.NoError(t, repo.Append(ctx, activity.Event{ID: "e1", SubjectIDs: []string{"u1"}, OccurredAt: t10}))
	require.NoError(t, repo.Append(ctx, activity.Event{ID: "e2", SubjectIDs: []string{"u1"}, OccurredAt: t20}))
	require.NoError(t, repo.Append(ctx, activity.Event{ID: "e3", SubjectIDs: []string{"u1", "u2"}, OccurredAt: t20}))

	got, err := repo.List(ctx, activity.ListFilter{SubjectIDs: []string{"u1"}})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"e3", "e2", "e1"}, []string{got[0].ID, got[1].ID, got[2].ID})

	after := activity.Cursor{At: t20, ID: "e2"}
	n, err := repo.Count(ctx, activity.ListFilter{SubjectIDs: []string{"u1"}, After: &after})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWatermarkRepo_AdvanceIsMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewWatermarkRepo()

	_, ok, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	newer := activity.Cursor{At: time.Unix(20, 0).UTC(), ID: "e3"}
	older := activity.Cursor{At: time.Unix(10, 0).UTC(), ID: "e1"}

	got, err := repo.Advance(ctx, "u1", newer)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	got, err = repo.Advance(ctx, "u1", older)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}
