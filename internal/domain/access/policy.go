package access

import (
	"fmt"

	"pet-adoption/internal/domain/errs"
)

type Action string

const (
	ActionCreatePet         Action = "create_pet"
	ActionUpdatePet         Action = "update_pet"
	ActionRemovePet         Action = "remove_pet"
	ActionReadPet           Action = "read_pet"
	ActionCreateApplication Action = "create_application"
	ActionReadApplication   Action = "read_application"
	ActionDecideApplication Action = "decide_application"
	ActionReadInbox         Action = "read_inbox"
	ActionReadUser          Action = "read_user"
)

// Valores de estado de mascota que el guard necesita conocer.
// Se repiten como string para no importar pets (pets depende de access).
const (
	petStatusDraft     = "draft"
	petStatusAvailable = "available"
)

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

// Resource describe el recurso sobre el que se decide. Solo se usan los
// campos relevantes para la acción; el resto queda vacío.
type Resource struct {
	PetOwnerID string
	PetStatus  string
	AdopterID  string
	RehomerID  string
	UserID     string
}

type Decision struct {
	Allowed bool
	Reason  string
}

// Err traduce una denegación a error tipado (nil si está permitido).
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == ReasonUnauthenticated {
		return errs.ErrUnauthenticated
	}
	if d.Reason == "" || d.Reason == ReasonForbidden {
		return errs.ErrForbidden
	}
	return fmt.Errorf("%w: %s", errs.ErrForbidden, d.Reason)
}

type rule struct {
	action Action
	allow  func(a Actor, r Resource) bool
}

// Tabla de reglas en orden; gana la primera que permite.
var rules = []rule{
	{ActionCreatePet, func(a Actor, _ Resource) bool {
		return a.Role == RoleRehomer
	}},
	{ActionUpdatePet, ownerOrAdmin},
	{ActionRemovePet, ownerOrAdmin},
	{ActionReadPet, func(_ Actor, r Resource) bool {
		return r.PetStatus != "" && r.PetStatus != petStatusDraft
	}},
	{ActionReadPet, ownerOrAdmin},
	{ActionCreateApplication, func(a Actor, r Resource) bool {
		return a.Role == RoleAdopter && r.PetStatus == petStatusAvailable
	}},
	{ActionReadApplication, func(a Actor, r Resource) bool {
		return r.AdopterID != "" && a.ID == r.AdopterID
	}},
	{ActionReadApplication, ownerOrAdmin},
	{ActionDecideApplication, ownerOrAdmin},
	{ActionReadInbox, func(a Actor, r Resource) bool {
		return a.IsAdmin() || (r.RehomerID != "" && a.ID == r.RehomerID)
	}},
	{ActionReadUser, func(a Actor, r Resource) bool {
		return a.IsAdmin() || (r.UserID != "" && a.ID == r.UserID)
	}},
}

func ownerOrAdmin(a Actor, r Resource) bool {
	if a.IsAdmin() {
		return true
	}
	return r.PetOwnerID != "" && a.ID == r.PetOwnerID
}

// Authorize es una función pura: sin I/O ni efectos.
func Authorize(a Actor, action Action, r Resource) Decision {
	if !a.Authenticated() {
		return Decision{Allowed: false, Reason: ReasonUnauthenticated}
	}
	for _, rl := range rules {
		if rl.action != action {
			continue
		}
		if rl.allow(a, r) {
			return Decision{Allowed: true}
		}
	}
	return Decision{Allowed: false, Reason: denyReason(a, action)}
}

// denyReason da un motivo más útil que "forbidden" en los casos frecuentes.
func denyReason(a Actor, action Action) string {
	switch action {
	case ActionCreatePet:
		return "only rehomers can create listings"
	case ActionCreateApplication:
		if a.Role != RoleAdopter {
			return "only adopters can apply"
		}
		return "pet is not accepting applications"
	case ActionUpdatePet, ActionRemovePet, ActionDecideApplication:
		return "not the pet owner"
	}
	return ReasonForbidden
}

// Check es un atajo para Authorize(...).Err().
func Check(a Actor, action Action, r Resource) error {
	return Authorize(a, action, r).Err()
}
