package applications

import "context"

// Repository también hace cumplir las invariantes de la solicitud, por si dos
// escritores pasan el chequeo del servicio a la vez:
//   - Create devuelve errs.ErrDuplicateApplication si el adopter ya tiene una
//     solicitud activa para la mascota.
//   - Update a approved devuelve errs.ErrConflict si otra ya está aprobada.
type Repository interface {
	Create(ctx context.Context, a Application) error
	// Update guarda a solo si la versión almacenada es expectedVersion
	// (errs.ErrStaleWrite si no coincide).
	Update(ctx context.Context, a Application, expectedVersion int64) error
	GetByID(ctx context.Context, id string) (Application, error)
	ListByPet(ctx context.Context, petID string) ([]Application, error)
	ListByAdopter(ctx context.Context, adopterID string) ([]Application, error)
	// ListByPets agrupa por pet id; los pets sin solicitudes no aparecen.
	ListByPets(ctx context.Context, petIDs []string) (map[string][]Application, error)
}
