package student

import (
	"context"

	"github.com/tutordesk/tutordesk/internal/types"
)

// Repository defines the interface for student persistence operations
type Repository interface {
	Create(ctx context.Context, student *Student) error
	Get(ctx context.Context, id string) (*Student, error)
	// List returns students ordered by name
	List(ctx context.Context, filter *types.StudentFilter) ([]*Student, error)
	Count(ctx context.Context, filter *types.StudentFilter) (int, error)
	Update(ctx context.Context, student *Student) error
	// Delete removes the student together with their fee assignments, attendance and payments
	Delete(ctx context.Context, id string) error
}
