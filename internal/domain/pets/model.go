package pets

import "time"

// Status define el estado del listado en su ciclo de vida.
// @Enum draft, available, pending_decision, adopted, removed
type Status string

const (
	StatusDraft           Status = "draft"
	StatusAvailable       Status = "available"
	StatusPendingDecision Status = "pending_decision"
	StatusAdopted         Status = "adopted"
	StatusRemoved         Status = "removed"
)

func (s Status) Terminal() bool {
	return s == StatusAdopted || s == StatusRemoved
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusAvailable, StatusPendingDecision, StatusAdopted, StatusRemoved:
		return true
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Size define el tamaño.
// @Enum small, medium, large, extra_large
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// AgeUnit define la unidad de la edad.
// @Enum weeks, months, years
type AgeUnit string

const (
	AgeUnitWeeks  AgeUnit = "weeks"
	AgeUnitMonths AgeUnit = "months"
	AgeUnitYears  AgeUnit = "years"
)

// Urgency indica qué tan pronto necesita hogar.
// @Enum low, medium, high
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ActivityLevel define el nivel de energía.
// @Enum low, moderate, high
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

type Age struct {
	Value int
	Unit  AgeUnit
}

type Health struct {
	Vaccinated   bool
	Neutered     bool
	Microchipped bool
}

type Compatibility struct {
	GoodWithKids bool
	GoodWithDogs bool
	GoodWithCats bool
}

// Pet es un listado de mascota en adopción, propiedad de un rehomer.
type Pet struct {
	ID          string
	OwnerUserID string // inmutable

	Name        string
	Species     string
	Breed       string
	Gender      Gender
	Age         Age
	Size        Size
	Description string
	Color       string

	Health        Health
	Compatibility Compatibility
	ActivityLevel ActivityLevel

	RehomingReason string
	RehomingFee    float64
	Urgency        Urgency
	Location       string

	// Solo referencia; la subida/almacenamiento de imágenes queda afuera.
	PrimaryImage string

	Status  Status
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
