package studentsubject

import (
	"context"
)

// Repository defines the interface for fee assignment persistence operations
type Repository interface {
	// ListByStudent returns the student's assignments with the subject name and default fee joined in
	ListByStudent(ctx context.Context, studentID string) ([]*StudentSubject, error)
	// Upsert creates the assignment or updates the custom fee of the existing (student, subject) pair
	Upsert(ctx context.Context, assignment *StudentSubject) error
	Delete(ctx context.Context, studentID, subjectID string) error
	// ReplaceForStudent makes subjectIDs the student's exact subject set, dropping custom fees
	ReplaceForStudent(ctx context.Context, studentID string, subjectIDs []string) error
}
