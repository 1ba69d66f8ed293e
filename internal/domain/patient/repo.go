package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound indicates no patient exists with the requested id.
var ErrNotFound = errors.New("patient record not found")

// Repository provides access to stored patient profiles.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
