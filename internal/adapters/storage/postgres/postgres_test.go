package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/domain/pets"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(sql.ErrNoRows), errs.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", sql.ErrNoRows)), errs.ErrNotFound)

	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintOneActivePerAdopter}
	assert.ErrorIs(t, mapError(dup), errs.ErrDuplicateApplication)

	approved := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraintOneApprovedPerPet}
	assert.ErrorIs(t, mapError(approved), errs.ErrConflict)

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, error(other), mapError(other))
}

func TestBuildPetListQuery(t *testing.T) {
	yes := true
	query, args := buildPetListQuery(pets.ListFilter{
		Status:       pets.StatusAvailable,
		Species:      "Dog",
		Location:     "50%",
		GoodWithCats: &yes,
		Query:        "walks",
		Limit:        500,
	})

	assert.Contains(t, query, "status = $1")
	assert.Contains(t, query, "lower(species) = lower($2)")
	assert.Contains(t, query, "location ILIKE $3")
	assert.Contains(t, query, "good_with_cats = $4")
	assert.Contains(t, query, "name ILIKE $5 OR breed ILIKE $5 OR description ILIKE $5")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC LIMIT $6")
	assert.Equal(t, []any{"available", "Dog", `%50\%%`, true, "%walks%", pets.MaxListLimit}, args)
}

func TestEventWhere(t *testing.T) {
	_, _, ok := eventWhere(activity.ListFilter{})
	assert.False(t, ok, "no subjects and not All is an empty set")

	where, args, ok := eventWhere(activity.ListFilter{All: true})
	require.True(t, ok)
	assert.Empty(t, where)
	assert.Empty(t, args)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	where, args, ok = eventWhere(activity.ListFilter{
		SubjectIDs: []string{"u1", "", "p1"},
		After:      &activity.Cursor{At: at, ID: "e1"},
	})
	require.True(t, ok)
	assert.Equal(t, " WHERE subject_ids && $1::text[] AND (occurred_at, id) > ($2, $3)", where)
	assert.Equal(t, []any{[]string{"u1", "p1"}, at, "e1"}, args)
}

// Integración: corre solo con PG_TEST_DSN apuntando a una base descartable.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db), "migrate is idempotent")
	return db
}

func newPet(owner string) pets.Pet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        "Milo",
		Species:     "dog",
		Breed:       "Beagle",
		Gender:      pets.GenderMale,
		Age:         pets.Age{Value: 2, Unit: pets.AgeUnitYears},
		Description: "Loves walks",
		Status:      pets.StatusAvailable,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestIntegration_PetsVersionedUpdate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPetsRepo(db)

	p := newPet("owner-" + uuid.NewString())
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	next := p
	next.Status = pets.StatusPendingDecision
	next.Version = 2
	require.NoError(t, repo.Update(ctx, next, 1))

	require.ErrorIs(t, repo.Update(ctx, next, 1), errs.ErrStaleWrite)
	missing := next
	missing.ID = uuid.NewString()
	require.ErrorIs(t, repo.Update(ctx, missing, 1), errs.ErrNotFound)

	_, err = repo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, errs.ErrNotFound)

	list, err := repo.ListByOwner(ctx, p.OwnerUserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pets.StatusPendingDecision, list[0].Status)
}

func TestIntegration_ApplicationConstraints(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	petsRepo := NewPetsRepo(db)
	repo := NewApplicationsRepo(db)

	p := newPet("owner-" + uuid.NewString())
	require.NoError(t, petsRepo.Create(ctx, p))

	now := time.Now().UTC().Truncate(time.Microsecond)
	app := func(adopter string) applications.Application {
		return applications.Application{
			ID: uuid.NewString(), PetID: p.ID, AdopterID: adopter, Message: "hi",
			Status: applications.StatusPending, Version: 1, AppliedAt: now, UpdatedAt: now,
		}
	}

	a1 := app("a1")
	require.NoError(t, repo.Create(ctx, a1))
	require.ErrorIs(t, repo.Create(ctx, app("a1")), errs.ErrDuplicateApplication)

	a2 := app("a2")
	require.NoError(t, repo.Create(ctx, a2))

	decided := now.Add(time.Minute)
	a1.Status, a1.Version, a1.DecidedAt, a1.DecidedBy = applications.StatusApproved, 2, &decided, p.OwnerUserID
	require.NoError(t, repo.Update(ctx, a1, 1))

	a2.Status, a2.Version = applications.StatusApproved, 2
	require.ErrorIs(t, repo.Update(ctx, a2, 1), errs.ErrConflict)

	byPets, err := repo.ListByPets(ctx, []string{p.ID, uuid.NewString()})
	require.NoError(t, err)
	assert.Len(t, byPets, 1)
	assert.Len(t, byPets[p.ID], 2)

	got, err := repo.GetByID(ctx, a1.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DecidedAt)
	assert.True(t, decided.Equal(*got.DecidedAt))
}

func TestIntegration_TxRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(db)
	petsRepo := NewPetsRepo(db)
	events := NewEventsRepo(db)

	p := newPet("owner-" + uuid.NewString())
	boom := errors.New("boom")
	err := runner.WithinTx(ctx, func(ctx context.Context) error {
		if err := petsRepo.Create(ctx, p); err != nil {
			return err
		}
		if err := events.Append(ctx, activity.Event{
			ID: uuid.NewString(), Kind: activity.KindPetListed,
			SubjectIDs: []string{p.ID}, OccurredAt: p.CreatedAt,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = petsRepo.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	n, err := events.Count(ctx, activity.ListFilter{SubjectIDs: []string{p.ID}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIntegration_EventsOrderAndWatermark(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	events := NewEventsRepo(db)
	marks := NewWatermarksRepo(db)

	subject := "s-" + uuid.NewString()
	at := time.Now().UTC().Truncate(time.Microsecond)
	for _, e := range []activity.Event{
		{ID: subject + "-1", OccurredAt: at},
		{ID: subject + "-2", OccurredAt: at.Add(time.Second)},
		{ID: subject + "-3", OccurredAt: at.Add(time.Second)},
	} {
		e.Kind = activity.KindPetListed
		e.SubjectIDs = []string{subject}
		require.NoError(t, events.Append(ctx, e))
	}

	list, err := events.List(ctx, activity.ListFilter{SubjectIDs: []string{subject}, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, subject+"-3", list[0].ID)
	assert.Equal(t, subject+"-2", list[1].ID)
	assert.Equal(t, []string{subject}, list[0].SubjectIDs)

	user := "u-" + uuid.NewString()
	_, ok, err := marks.Get(ctx, user)
	require.NoError(t, err)
	assert.False(t, ok)

	c, err := marks.Advance(ctx, user, activity.CursorOf(list[1]))
	require.NoError(t, err)
	assert.Equal(t, subject+"-2", c.ID)

	c, err = marks.Advance(ctx, user, activity.Cursor{At: at, ID: subject + "-1"})
	require.NoError(t, err)
	assert.Equal(t, subject+"-2", c.ID, "never moves back")

	n, err := events.Count(ctx, activity.ListFilter{SubjectIDs: []string{subject}, After: &c})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
