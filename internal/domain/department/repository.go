package department

import "context"

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	// ListManagedBy returns the departments whose manager is the given user.
	ListManagedBy(ctx context.Context, userID string) ([]Department, error)
}
