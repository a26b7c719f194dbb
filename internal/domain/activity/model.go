package activity

import "time"

// Kind define el tipo de evento de actividad.
// @Enum user_registered, application_submitted, application_decided, pet_listed, pet_status_changed
type Kind string

const (
	KindUserRegistered       Kind = "user_registered"
	KindApplicationSubmitted Kind = "application_submitted"
	KindApplicationDecided   Kind = "application_decided"
	KindPetListed            Kind = "pet_listed"
	KindPetStatusChanged     Kind = "pet_status_changed"
)

// Event es un registro inmutable de un cambio de estado. Se genera como
// efecto de las transiciones de los ciclos de vida; nunca se modifica.
type Event struct {
	ID         string
	Kind       Kind
	SubjectIDs []string
	OccurredAt time.Time
	Summary    string
}

// Cursor es la clave de orden de un evento: (timestamp, id).
type Cursor struct {
	At time.Time
	ID string
}

func CursorOf(e Event) Cursor {
	return Cursor{At: e.OccurredAt, ID: e.ID}
}

func (c Cursor) IsZero() bool {
	return c.At.IsZero() && c.ID == ""
}

// Before reporta si c va antes que o en orden cronológico ascendente.
func (c Cursor) Before(o Cursor) bool {
	if !c.At.Equal(o.At) {
		return c.At.Before(o.At)
	}
	return c.ID < o.ID
}

// References reporta si el evento menciona alguno de los ids.
func (e Event) References(ids map[string]struct{}) bool {
	for _, s := range e.SubjectIDs {
		if _, ok := ids[s]; ok {
			return true
		}
	}
	return false
}
