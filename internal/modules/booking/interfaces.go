package booking

import (
	"context"

	"guesthouse/internal/domain"
)

// BookingRepository defines the persistence operations of the state machine.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Save(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	HasActiveForRoom(ctx context.Context, roomID, excludeID int64) (bool, error)
}

// RoomRepository defines the room operations the state machine needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}
