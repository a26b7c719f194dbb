package access

import "strings"

// Role define el rol del usuario autenticado. Es inmutable durante la sesión.
// @Enum adopter, rehomer, admin
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleRehomer Role = "rehomer"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdopter:
		return RoleAdopter, true
	case RoleRehomer:
		return RoleRehomer, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Actor es la identidad que llega en cada comando, afirmada por la capa de
// autenticación. El core nunca la lee de estado global.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) Authenticated() bool {
	if strings.TrimSpace(a.ID) == "" {
		return false
	}
	_, ok := ParseRole(string(a.Role))
	return ok
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
