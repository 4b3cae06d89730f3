package rooms

import (
	"context"
	"fmt"
	"strconv"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/lock"
)

// Service guards manual room status changes and repairs status drift.
// Occupancy itself is owned by the booking state machine; the tracker only
// verifies that a manual change does not contradict an active booking.
type Service struct {
	rooms    RoomRepository
	bookings BookingRepository
	locks    *lock.Keyed
}

func NewService(rooms RoomRepository, bookings BookingRepository, locks *lock.Keyed) *Service {
	return &Service{rooms: rooms, bookings: bookings, locks: locks}
}

func roomKey(id int64) string { return "room:" + strconv.FormatInt(id, 10) }

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}

// Transition applies a manual status change. Leaving occupied or reserved is
// rejected while an active booking still references the room; release must
// flow through the booking state machine.
func (s *Service) Transition(ctx context.Context, roomID int64, newStatus domain.RoomStatus) (*domain.Room, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown room status %q", domain.ErrValidation, newStatus)
	}

	unlock := s.locks.Lock(roomKey(roomID))
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == newStatus {
		return room, nil
	}

	if room.Status == domain.RoomOccupied || room.Status == domain.RoomReserved {
		active, err := s.bookings.HasActiveForRoom(ctx, roomID, 0)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, fmt.Errorf("%w: room %d is held by an active booking", domain.ErrConflict, roomID)
		}
	}

	if err := s.rooms.UpdateStatus(ctx, roomID, newStatus); err != nil {
		return nil, err
	}
	room.Status = newStatus
	return room, nil
}

// SyncFromBookings recomputes every room's status from the active bookings
// and returns the rooms it corrected. Cleaning and maintenance are manual
// states and are left alone when no booking claims the room.
func (s *Service) SyncFromBookings(ctx context.Context) ([]domain.Room, error) {
	roomsList, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.bookings.ActiveBookings(ctx)
	if err != nil {
		return nil, err
	}

	desired := make(map[int64]domain.RoomStatus, len(active))
	for _, b := range active {
		// checked-in wins over a stale confirmed booking on the same room
		if b.Status == domain.BookingCheckedIn || desired[b.RoomID] == "" {
			desired[b.RoomID] = statusForBooking(b.Status)
		}
	}

	var corrected []domain.Room
	for i := range roomsList {
		room := &roomsList[i]
		want, held := desired[room.ID]
		if !held {
			if room.Status != domain.RoomOccupied && room.Status != domain.RoomReserved {
				continue
			}
			want = domain.RoomAvailable
		}
		if room.Status == want {
			continue
		}
		if err := s.rooms.UpdateStatus(ctx, room.ID, want); err != nil {
			return corrected, err
		}
		room.Status = want
		corrected = append(corrected, *room)
	}
	return corrected, nil
}

func statusForBooking(s domain.BookingStatus) domain.RoomStatus {
	if s == domain.BookingCheckedIn {
		return domain.RoomOccupied
	}
	return domain.RoomReserved
}
