package subject

import (
	"context"
)

// Repository defines the interface for subject persistence operations
type Repository interface {
	Create(ctx context.Context, subject *Subject) error
	Get(ctx context.Context, id string) (*Subject, error)
	// List returns every subject ordered by name
	List(ctx context.Context) ([]*Subject, error)
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id string) error
}
