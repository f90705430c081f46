package holiday

import "context"

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
