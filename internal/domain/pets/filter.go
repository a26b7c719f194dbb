package pets

import (
	"strings"

	"pet-adoption/internal/domain/errs"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var errInvalidLimit = &errs.ValidationError{Fields: []string{"limit"}}

// NormalizedLimit acota Limit a [1, MaxListLimit].
func (f ListFilter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Matches aplica el filtro en memoria (sin Limit).
func (f ListFilter) Matches(p Pet) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Species != "" && !strings.EqualFold(p.Species, f.Species) {
		return false
	}
	if f.Breed != "" && !strings.EqualFold(p.Breed, f.Breed) {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.Urgency != "" && p.Urgency != f.Urgency {
		return false
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		if !strings.Contains(strings.ToLower(p.Location), strings.ToLower(loc)) {
			return false
		}
	}
	if f.GoodWithKids != nil && p.Compatibility.GoodWithKids != *f.GoodWithKids {
		return false
	}
	if f.GoodWithDogs != nil && p.Compatibility.GoodWithDogs != *f.GoodWithDogs {
		return false
	}
	if f.GoodWithCats != nil && p.Compatibility.GoodWithCats != *f.GoodWithCats {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" && !matchesAny(q, p.Name, p.Breed, p.Description) {
		return false
	}
	return true
}

// matchesAny busca q dentro de cada campo por separado, como el ILIKE por
// columna de Postgres.
func matchesAny(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
