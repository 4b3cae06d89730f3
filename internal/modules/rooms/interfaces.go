package rooms

import (
	"context"

	"guesthouse/internal/domain"
)

// RoomRepository defines the room persistence operations the tracker needs.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// BookingRepository is the read side the tracker uses to decide whether a
// room is still held by an active booking.
type BookingRepository interface {
	HasActiveForRoom(ctx context.Context, roomID, excludeID int64) (bool, error)
	ActiveBookings(ctx context.Context) ([]domain.Booking, error)
}
