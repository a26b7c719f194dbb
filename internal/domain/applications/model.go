package applications

import "time"

// Status define el estado de una solicitud.
// @Enum pending, reviewing, approved, rejected
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Active cuenta para el límite de una solicitud viva por (pet, adopter).
func (s Status) Active() bool {
	return s == StatusPending || s == StatusReviewing || s == StatusApproved
}

// Outcome es el resultado de una decisión.
// @Enum approved, rejected
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) Valid() bool {
	return o == OutcomeApproved || o == OutcomeRejected
}

// Application es el pedido de un adopter para adoptar una mascota.
type Application struct {
	ID        string
	PetID     string // inmutable
	AdopterID string // inmutable
	Message   string

	Status  Status
	Version int64

	AppliedAt time.Time
	DecidedAt *time.Time
	DecidedBy string // rehomer dueño o admin

	UpdatedAt time.Time
}
