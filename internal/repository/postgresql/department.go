package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/department"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, manager_user_id, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var d department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.ManagerUserID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}

	return d, nil
}

// ListManagedBy implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListManagedBy(ctx context.Context, userID string) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, manager_user_id, created_at, updated_at
		FROM departments
		WHERE manager_user_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		err := rows.Scan(&d.ID, &d.Name, &d.ManagerUserID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}
