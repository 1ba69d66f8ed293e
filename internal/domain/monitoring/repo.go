package monitoring

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoSnapshots indicates the patient has no recorded vitals yet.
var ErrNoSnapshots = errors.New("no monitoring snapshots recorded for patient")

// Repository provides access to stored vital-sign snapshots.
type Repository interface {
	Create(ctx context.Context, s *Snapshot) error
	// LatestByPatient returns the most recent snapshot for the patient, or
	// ErrNoSnapshots when none has been recorded yet.
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*Snapshot, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Snapshot, int, error)
}
