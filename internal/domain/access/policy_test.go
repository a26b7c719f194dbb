package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption/internal/domain/errs"
)

var (
	rehomer = Actor{ID: "rehomer-1", Role: RoleRehomer}
	other   = Actor{ID: "rehomer-2", Role: RoleRehomer}
	adopter = Actor{ID: "adopter-1", Role: RoleAdopter}
	admin   = Actor{ID: "admin-1", Role: RoleAdmin}
)

func TestAuthorize_RuleTable(t *testing.T) {
	ownedAvailable := Resource{PetOwnerID: rehomer.ID, PetStatus: "available"}
	ownedDraft := Resource{PetOwnerID: rehomer.ID, PetStatus: "draft"}
	app := Resource{PetOwnerID: rehomer.ID, PetStatus: "available", AdopterID: adopter.ID}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		allow  bool
	}{
		{"rehomer creates pet", rehomer, ActionCreatePet, Resource{}, true},
		{"adopter cannot create pet", adopter, ActionCreatePet, Resource{}, false},
		{"admin cannot create pet", admin, ActionCreatePet, Resource{}, false},

		{"owner updates pet", rehomer, ActionUpdatePet, ownedAvailable, true},
		{"other rehomer cannot update", other, ActionUpdatePet, ownedAvailable, false},
		{"admin updates any pet", admin, ActionUpdatePet, ownedAvailable, true},
		{"owner removes pet", rehomer, ActionRemovePet, ownedAvailable, true},
		{"adopter cannot remove", adopter, ActionRemovePet, ownedAvailable, false},

		{"anyone reads listed pet", adopter, ActionReadPet, ownedAvailable, true},
		{"stranger cannot read draft", adopter, ActionReadPet, ownedDraft, false},
		{"owner reads draft", rehomer, ActionReadPet, ownedDraft, true},
		{"admin reads draft", admin, ActionReadPet, ownedDraft, true},

		{"adopter applies to available pet", adopter, ActionCreateApplication, ownedAvailable, true},
		{"adopter cannot apply to pending pet", adopter, ActionCreateApplication, Resource{PetOwnerID: rehomer.ID, PetStatus: "pending_decision"}, false},
		{"rehomer cannot apply", rehomer, ActionCreateApplication, ownedAvailable, false},
		{"admin cannot apply", admin, ActionCreateApplication, ownedAvailable, false},

		{"adopter reads own application", adopter, ActionReadApplication, app, true},
		{"owner reads application", rehomer, ActionReadApplication, app, true},
		{"admin reads application", admin, ActionReadApplication, app, true},
		{"other rehomer cannot read application", other, ActionReadApplication, app, false},
		{"other adopter cannot read application", Actor{ID: "adopter-2", Role: RoleAdopter}, ActionReadApplication, app, false},

		{"owner decides", rehomer, ActionDecideApplication, app, true},
		{"admin decides", admin, ActionDecideApplication, app, true},
		{"adopter cannot decide own application", adopter, ActionDecideApplication, app, false},

		{"rehomer reads own inbox", rehomer, ActionReadInbox, Resource{RehomerID: rehomer.ID}, true},
		{"rehomer cannot read other inbox", other, ActionReadInbox, Resource{RehomerID: rehomer.ID}, false},
		{"admin reads any inbox", admin, ActionReadInbox, Resource{RehomerID: rehomer.ID}, true},

		{"user reads self", adopter, ActionReadUser, Resource{UserID: adopter.ID}, true},
		{"user cannot read others", adopter, ActionReadUser, Resource{UserID: rehomer.ID}, false},

		{"unknown action denies", admin, Action("delete_everything"), Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.actor, tt.action, tt.res)
			assert.Equal(t, tt.allow, d.Allowed, "reason=%q", d.Reason)
			if !tt.allow {
				assert.NotEmpty(t, d.Reason)
				assert.True(t, errors.Is(d.Err(), errs.ErrForbidden))
			}
		})
	}
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	for _, a := range []Actor{{}, {ID: "u-1"}, {ID: "u-1", Role: Role("superuser")}, {Role: RoleAdmin}} {
		d := Authorize(a, ActionReadPet, Resource{PetStatus: "available"})
		require.False(t, d.Allowed)
		require.ErrorIs(t, d.Err(), errs.ErrUnauthenticated)
	}
}

func TestAuthorize_NonAdopterApplyIsForbiddenRegardlessOfStatus(t *testing.T) {
	for _, status := range []string{"draft", "available", "pending_decision", "adopted", "removed"} {
		for _, a := range []Actor{rehomer, admin} {
			err := Check(a, ActionCreateApplication, Resource{PetOwnerID: "x", PetStatus: status})
			require.ErrorIs(t, err, errs.ErrForbidden, "role=%s status=%s", a.Role, status)
		}
	}
}

func TestAuthorize_IsDeterministic(t *testing.T) {
	res := Resource{PetOwnerID: rehomer.ID, PetStatus: "available"}
	first := Authorize(other, ActionUpdatePet, res)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Authorize(other, ActionUpdatePet, res))
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Rehomer ")
	require.True(t, ok)
	assert.Equal(t, RoleRehomer, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
