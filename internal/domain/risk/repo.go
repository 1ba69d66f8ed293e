package risk

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the audit store for risk assessments: append-only writes
// and recency-ordered reads, nothing else.
type Repository interface {
	Create(ctx context.Context, ra *RiskAssessment) error
	// ListByPatient returns up to limit assessments for the patient,
	// most recent first.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*RiskAssessment, error)
}
