package postgresql

import (
	"context"

	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Create(ctx context.Context, entry holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (
			id, name, start_date, end_date, repeat, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.Name, entry.StartDate, entry.EndDate, entry.Repeat,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return holiday.Holiday{}, err
	}

	return entry, nil
}

// List implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, name, start_date, end_date, repeat, created_at
		FROM holidays
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var entry holiday.Holiday
		err := rows.Scan(
			&entry.ID, &entry.Name, &entry.StartDate, &entry.EndDate, &entry.Repeat, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, entry)
	}

	return holidays, rows.Err()
}

// Delete implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	query := `
		DELETE FROM holidays
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
