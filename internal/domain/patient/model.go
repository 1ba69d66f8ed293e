package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. The risk pipeline reads it as a
// read-only profile; record management lives behind a separate API surface.
type Patient struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Age            *int       `db:"age" json:"age,omitempty"`
	BirthDate      *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	WeightKg       *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	HeightCm       *float64   `db:"height_cm" json:"height_cm,omitempty"`
	ContactEmail   *string    `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone   *string    `db:"contact_phone" json:"contact_phone,omitempty"`
	MedicalHistory []string   `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
