package users

import (
	"time"

	"pet-adoption/internal/domain/access"
)

// User es el perfil de contacto de una identidad ya autenticada. El rol lo
// afirma el proveedor de identidad; acá solo se guarda copia.
type User struct {
	ID          string
	Role        access.Role
	DisplayName string
	Email       string
	Phone       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
