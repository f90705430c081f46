package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (
			id, name, is_paid, requires_approval,
			annual_quota, allow_negative, is_annual, special_code, active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.IsPaid, leaveType.RequiresApproval,
		leaveType.AnnualQuota, leaveType.AllowNegative, leaveType.IsAnnual,
		string(leaveType.SpecialCode), leaveType.Active,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		return leave.LeaveType{}, err
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, is_paid, requires_approval,
			   annual_quota, allow_negative, is_annual, special_code, active,
			   created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&lt.ID, &lt.Name, &lt.IsPaid, &lt.RequiresApproval,
		&lt.AnnualQuota, &lt.AllowNegative, &lt.IsAnnual, &lt.SpecialCode, &lt.Active,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, is_paid, requires_approval,
			   annual_quota, allow_negative, is_annual, special_code, active,
			   created_at, updated_at
		FROM leave_types
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		err := rows.Scan(
			&lt.ID, &lt.Name, &lt.IsPaid, &lt.RequiresApproval,
			&lt.AnnualQuota, &lt.AllowNegative, &lt.IsAnnual, &lt.SpecialCode, &lt.Active,
			&lt.CreatedAt, &lt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, l.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.IsPaid != nil {
		updates = append(updates, fmt.Sprintf("is_paid = $%d", argIdx))
		args = append(args, *req.IsPaid)
		argIdx++
	}
	if req.RequiresApproval != nil {
		updates = append(updates, fmt.Sprintf("requires_approval = $%d", argIdx))
		args = append(args, *req.RequiresApproval)
		argIdx++
	}
	if req.AnnualQuota != nil {
		updates = append(updates, fmt.Sprintf("annual_quota = $%d", argIdx))
		args = append(args, *req.AnnualQuota)
		argIdx++
	}
	if req.AllowNegative != nil {
		updates = append(updates, fmt.Sprintf("allow_negative = $%d", argIdx))
		args = append(args, *req.AllowNegative)
		argIdx++
	}
	if req.IsAnnual != nil {
		updates = append(updates, fmt.Sprintf("is_annual = $%d", argIdx))
		args = append(args, *req.IsAnnual)
		argIdx++
	}
	if req.Active != nil {
		updates = append(updates, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *req.Active)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE leave_types
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argIdx)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	query := `
		DELETE FROM leave_types
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}
