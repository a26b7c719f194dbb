package pets

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/access"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/errs"
	"pet-adoption/internal/ports/tx"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet, expectedVersion int64) error {
	prev, ok := r.byID[p.ID]
	if !ok {
		return errs.ErrNotFound
	}
	if prev.Version != expectedVersion {
		return errs.ErrStaleWrite
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errs.ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

type testRecorder struct {
	events []activity.Event
}

func (r *testRecorder) Record(ctx context.Context, kind activity.Kind, subjectIDs []string, summary string) (activity.Event, error) {
	e := activity.Event{Kind: kind, SubjectIDs: subjectIDs, Summary: summary}
	r.events = append(r.events, e)
	return e, nil
}

type testObserver struct {
	seen [][3]string
}

func (o *testObserver) ObserveTransition(entity, from, to string) {
	o.seen = append(o.seen, [3]string{entity, from, to})
}

var (
	owner   = access.Actor{ID: "rehomer-1", Role: access.RoleRehomer}
	other   = access.Actor{ID: "rehomer-2", Role: access.RoleRehomer}
	admin   = access.Actor{ID: "admin-1", Role: access.RoleAdmin}
	adopter = access.Actor{ID: "adopter-1", Role: access.RoleAdopter}
)

func newTestService() (*Service, *testRepo, *testRecorder, *testObserver) {
	repo := newTestRepo()
	rec := &testRecorder{}
	obs := &testObserver{}
	svc := NewService(repo, rec, tx.Passthrough, WithTransitionObserver(obs))
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 999, time.UTC) }
	return svc, repo, rec, obs
}

func validInput() CreateListingInput {
	return CreateListingInput{
		Name:        " Milo ",
		Species:     "Dog",
		Breed:       "Beagle",
		Gender:      "MALE",
		Age:         Age{Value: 3},
		Description: "Loves walks",
		RehomingFee: 50,
		Urgency:     "high",
	}
}

func TestCreateListing_StartsAvailableAndEmitsPetListed(t *testing.T) {
	svc, _, rec, obs := newTestService()

	p, err := svc.CreateListing(context.Background(), owner, validInput())
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, p.Status)
	assert.Equal(t, int64(1), p.Version)
	assert.Equal(t, owner.ID, p.OwnerUserID)
	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, "dog", p.Species)
	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, AgeUnitYears, p.Age.Unit)
	assert.Zero(t, p.CreatedAt.Nanosecond()%1000, "microsecond precision")

	require.Len(t, rec.events, 1)
	assert.Equal(t, activity.KindPetListed, rec.events[0].Kind)
	assert.Equal(t, []string{p.ID, owner.ID}, rec.events[0].SubjectIDs)
	assert.Equal(t, [][3]string{{"pet", "", "available"}}, obs.seen)
}

func TestCreateListing_OnlyRehomers(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateListing(context.Background(), adopter, validInput())
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.CreateListing(context.Background(), admin, validInput())
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.CreateListing(context.Background(), access.Actor{}, validInput())
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestCreateListing_ValidationListsFields(t *testing.T) {
	svc, _, rec, _ := newTestService()

	in := CreateListingInput{
		Gender:      "robot",
		Age:         Age{Value: -1, Unit: "decades"},
		RehomingFee: math.NaN(),
		Size:        "huge",
	}
	_, err := svc.CreateListing(context.Background(), owner, in)

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"name", "breed", "gender", "description", "age.value", "age.unit", "rehomingFee", "size"}, ve.Fields)
	assert.Empty(t, rec.events)
}

func TestTransitionStatus_Edges(t *testing.T) {
	cases := []struct {
		name  string
		from  Status
		to    Status
		legal bool
	}{
		{"draft publish", StatusDraft, StatusAvailable, true},
		{"available remove", StatusAvailable, StatusRemoved, true},
		{"pending remove", StatusPendingDecision, StatusRemoved, true},
		{"pending finalize", StatusPendingDecision, StatusAdopted, true},
		{"available to pending by caller", StatusAvailable, StatusPendingDecision, false},
		{"available adopt directly", StatusAvailable, StatusAdopted, false},
		{"adopted back", StatusAdopted, StatusAvailable, false},
		{"removed back", StatusRemoved, StatusAvailable, false},
		{"draft remove", StatusDraft, StatusRemoved, false},
		{"pending back to available", StatusPendingDecision, StatusAvailable, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, rec, _ := newTestService()
			repo.byID["p"] = Pet{ID: "p", OwnerUserID: owner.ID, Name: "Milo", Status: tc.from, Version: 4}

			got, err := svc.TransitionStatus(context.Background(), owner, "p", tc.to, 4)
			if !tc.legal {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Empty(t, rec.events)
				assert.Equal(t, tc.from, repo.byID["p"].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.to, got.Status)
			assert.Equal(t, int64(5), got.Version)
			require.Len(t, rec.events, 1)
			assert.Equal(t, activity.KindPetStatusChanged, rec.events[0].Kind)
			assert.Equal(t, []string{"p", owner.ID}, rec.events[0].SubjectIDs)
		})
	}
}

func TestTransitionStatus_StaleVersion(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["p"] = Pet{ID: "p", OwnerUserID: owner.ID, Status: StatusAvailable, Version: 2}

	_, err := svc.TransitionStatus(context.Background(), owner, "p", StatusRemoved, 1)
	require.ErrorIs(t, err, errs.ErrStaleWrite)
	assert.Equal(t, StatusAvailable, repo.byID["p"].Status)
}

func TestTransitionStatus_Guarded(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["p"] = Pet{ID: "p", OwnerUserID: owner.ID, Status: StatusAvailable, Version: 1}

	_, err := svc.TransitionStatus(context.Background(), other, "p", StatusRemoved, 1)
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.TransitionStatus(context.Background(), admin, "p", StatusRemoved, 1)
	require.NoError(t, err)

	_, err = svc.TransitionStatus(context.Background(), admin, "missing", StatusRemoved, 1)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.TransitionStatus(context.Background(), admin, "p", "sold", 0)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"status", "version"}, ve.Fields)
}

func TestMarkPendingDecision_OnlyFromAvailable(t *testing.T) {
	svc, repo, rec, _ := newTestService()
	repo.byID["p"] = Pet{ID: "p", OwnerUserID: owner.ID, Status: StatusAvailable, Version: 1}

	got, err := svc.MarkPendingDecision(context.Background(), owner, "p")
	require.NoError(t, err)
	assert.Equal(t, StatusPendingDecision, got.Status)
	assert.Equal(t, int64(2), got.Version)
	require.Len(t, rec.events, 1)

	_, err = svc.MarkPendingDecision(context.Background(), owner, "p")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestUpdateListing_PatchesAndBumpsVersion(t *testing.T) {
	svc, _, rec, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateListing(ctx, owner, validInput())
	require.NoError(t, err)

	name := "Milo Jr"
	kids := Compatibility{GoodWithKids: true}
	got, err := svc.UpdateListing(ctx, owner, p.ID, p.Version, UpdateListingInput{Name: &name, Compatibility: &kids})
	require.NoError(t, err)
	assert.Equal(t, "Milo Jr", got.Name)
	assert.True(t, got.Compatibility.GoodWithKids)
	assert.Equal(t, "Beagle", got.Breed)
	assert.Equal(t, p.Version+1, got.Version)
	assert.Len(t, rec.events, 1, "attribute edits emit no event")

	_, err = svc.UpdateListing(ctx, owner, p.ID, p.Version, UpdateListingInput{Name: &name})
	require.ErrorIs(t, err, errs.ErrStaleWrite)

	empty := ""
	_, err = svc.UpdateListing(ctx, owner, p.ID, got.Version, UpdateListingInput{Breed: &empty})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.UpdateListing(ctx, other, p.ID, got.Version, UpdateListingInput{Name: &name})
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestUpdateListing_TerminalRejected(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["p"] = Pet{ID: "p", OwnerUserID: owner.ID, Name: "Milo", Breed: "x", Gender: GenderMale, Description: "d", Age: Age{Unit: AgeUnitYears}, Status: StatusAdopted, Version: 3}

	name := "New"
	_, err := svc.UpdateListing(context.Background(), owner, "p", 3, UpdateListingInput{Name: &name})
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestGetPet_DraftOnlyForOwnerOrAdmin(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["d"] = Pet{ID: "d", OwnerUserID: owner.ID, Status: StatusDraft}
	repo.byID["a"] = Pet{ID: "a", OwnerUserID: owner.ID, Status: StatusAvailable}

	_, err := svc.GetPet(context.Background(), adopter, "d")
	require.ErrorIs(t, err, errs.ErrForbidden)
	_, err = svc.GetPet(context.Background(), owner, "d")
	require.NoError(t, err)
	_, err = svc.GetPet(context.Background(), admin, "d")
	require.NoError(t, err)
	_, err = svc.GetPet(context.Background(), adopter, "a")
	require.NoError(t, err)
}

func TestListAvailable_ForcesStatusAndRequiresAuth(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.byID["a"] = Pet{ID: "a", Status: StatusAvailable, Species: "dog"}
	repo.byID["r"] = Pet{ID: "r", Status: StatusRemoved, Species: "dog"}

	got, err := svc.ListAvailable(context.Background(), adopter, ListFilter{Status: StatusRemoved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	_, err = svc.ListAvailable(context.Background(), access.Actor{}, ListFilter{})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestListFilter_Matches(t *testing.T) {
	yes := true
	p := Pet{
		Name: "Milo", Breed: "Beagle", Description: "Loves walks", Species: "dog",
		Location: "Buenos Aires", Compatibility: Compatibility{GoodWithKids: true},
		Status: StatusAvailable,
	}

	assert.True(t, ListFilter{Query: "WALK"}.Matches(p))
	assert.True(t, ListFilter{Query: "beag"}.Matches(p))
	// Cada campo se busca por separado, nunca a través del límite entre campos.
	assert.False(t, ListFilter{Query: "milo beagle"}.Matches(p))
	assert.False(t, ListFilter{Query: "beagle loves"}.Matches(p))
	assert.True(t, ListFilter{Location: "aires"}.Matches(p))
	assert.True(t, ListFilter{GoodWithKids: &yes}.Matches(p))
	assert.False(t, ListFilter{GoodWithCats: &yes}.Matches(p))
	assert.False(t, ListFilter{Species: "cat"}.Matches(p))

	assert.Equal(t, DefaultListLimit, ListFilter{}.NormalizedLimit())
	assert.Equal(t, MaxListLimit, ListFilter{Limit: 10_000}.NormalizedLimit())
}
