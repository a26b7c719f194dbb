package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// Update guarda p solo si la versión almacenada es expectedVersion.
	// Devuelve errs.ErrStaleWrite si no coincide y errs.ErrNotFound si no existe.
	Update(ctx context.Context, p Pet, expectedVersion int64) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	List(ctx context.Context, filter ListFilter) ([]Pet, error)
}

type ListFilter struct {
	Status  Status
	Species string
	Breed   string
	Gender  Gender
	Size    Size
	Urgency Urgency

	// Substring, sin distinguir mayúsculas.
	Location string

	GoodWithKids *bool
	GoodWithDogs *bool
	GoodWithCats *bool

	// Búsqueda libre en nombre, raza y descripción.
	Query string

	Limit int
}
