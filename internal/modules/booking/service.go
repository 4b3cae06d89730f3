package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/pkg/validator"
	"guesthouse/internal/pricing"
)

// Service is the booking lifecycle state machine:
//
//	pending -> confirmed -> checked-in -> checked-out
//	cancelled from pending/confirmed
//
// Transitions attempted from any other source state fail with
// ErrInvalidStateTransition and are never retried here. Room occupancy side
// effects happen under the per-room lock; a losing concurrent writer gets
// ErrConflict.
type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	locks    *lock.Keyed
	now      func() time.Time
}

func NewService(bookings BookingRepository, rooms RoomRepository, locks *lock.Keyed) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		locks:    locks,
		now:      time.Now,
	}
}

func roomKey(id int64) string { return "room:" + strconv.FormatInt(id, 10) }

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.bookings.List(ctx, limit, offset)
}

// Create quotes the requested window and persists the booking as pending or
// confirmed. The quote is frozen on TotalAmount and never recomputed there.
func (s *Service) Create(ctx context.Context, cmd CreateBookingCommand) (*domain.Booking, error) {
	if errs := validator.Validate(cmd); errs != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, errs)
	}
	if !cmd.RentalType.Valid() {
		return nil, fmt.Errorf("%w: unknown rental type %q", domain.ErrValidation, cmd.RentalType)
	}

	bookingType := cmd.BookingType
	if bookingType == "" {
		bookingType = domain.BookingIndividual
	}
	if bookingType == domain.BookingCompany && cmd.CompanyName == "" {
		return nil, fmt.Errorf("%w: company booking requires company_name", domain.ErrValidation)
	}

	start, end, err := cmd.Window()
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}

	var total int64
	customPricing := false
	if cmd.CustomPricing != nil {
		if *cmd.CustomPricing < 0 {
			return nil, fmt.Errorf("%w: custom pricing must not be negative", domain.ErrValidation)
		}
		total = *cmd.CustomPricing
		customPricing = true
	} else {
		total, err = pricing.Quote(cmd.RentalType, room, start, end)
		if err != nil {
			return nil, err
		}
	}

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		RentalType:    cmd.RentalType,
		BookingType:   bookingType,
		RoomID:        room.ID,
		GuestName:     cmd.GuestName,
		GuestPhone:    cmd.GuestPhone,
		CompanyName:   cmd.CompanyName,
		CheckInDate:   start,
		TotalAmount:   total,
		CustomPricing: customPricing,
		Status:        domain.BookingPending,
		Notes:         cmd.Notes,
	}
	if !end.IsZero() {
		b.CheckOutDate = &end
	}

	if !cmd.Confirmed {
		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	unlock := s.locks.Lock(roomKey(room.ID))
	defer unlock()

	active, err := s.bookings.HasActiveForRoom(ctx, room.ID, 0)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("%w: room %d already has an active booking", domain.ErrConflict, room.ID)
	}

	b.Status = domain.BookingConfirmed
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, room.ID, domain.RoomReserved); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm moves pending -> confirmed and reserves the room.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(roomKey(b.RoomID))
	defer unlock()

	b, err = s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, fmt.Errorf("%w: cannot confirm booking in status %q", domain.ErrInvalidStateTransition, b.Status)
	}

	active, err := s.bookings.HasActiveForRoom(ctx, b.RoomID, b.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, fmt.Errorf("%w: room %d already has an active booking", domain.ErrConflict, b.RoomID)
	}

	b.Status = domain.BookingConfirmed
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomReserved); err != nil {
		return nil, err
	}
	return b, nil
}

// CheckIn stamps the actual arrival and occupies the room. The first writer
// wins a concurrent race; the second finds the room occupied and gets
// ErrConflict.
func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(roomKey(b.RoomID))
	defer unlock()

	b, err = s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed || b.ActualCheckIn != nil {
		return nil, fmt.Errorf("%w: cannot check in booking in status %q", domain.ErrInvalidStateTransition, b.Status)
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomOccupied {
		return nil, fmt.Errorf("%w: room %s is occupied by another booking", domain.ErrConflict, room.Number)
	}

	now := s.now()
	b.ActualCheckIn = &now
	b.Status = domain.BookingCheckedIn
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomOccupied); err != nil {
		return nil, err
	}
	return b, nil
}

// CheckOut reconciles the final amount and releases the room to cleaning.
// The room never goes straight to available; housekeeping completes that.
func (s *Service) CheckOut(ctx context.Context, id int64, cmd CheckOutCommand) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(roomKey(b.RoomID))
	defer unlock()

	b, err = s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCheckedIn || b.ActualCheckOut != nil {
		return nil, fmt.Errorf("%w: cannot check out booking in status %q", domain.ErrInvalidStateTransition, b.Status)
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	base, final, err := reconcile(b, room, cmd.BasisMode, cmd.ExtraCharges, cmd.CustomAmount, now)
	if err != nil {
		return nil, err
	}

	b.BasisMode = cmd.BasisMode
	b.ExtraCharges = cmd.ExtraCharges
	b.CustomAmount = cmd.CustomAmount
	b.BaseAmount = base
	b.FinalAmount = &final
	b.ActualCheckOut = &now
	b.Status = domain.BookingCheckedOut
	if cmd.Notes != "" {
		b.Notes = cmd.Notes
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomCleaning); err != nil {
		return nil, err
	}
	return b, nil
}

// Cancel is a terminal status, not a deletion: invoices may still reference
// the booking. The room is released only when this booking held it alone.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(roomKey(b.RoomID))
	defer unlock()

	b, err = s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, fmt.Errorf("%w: cannot cancel booking in status %q", domain.ErrInvalidStateTransition, b.Status)
	}

	wasConfirmed := b.Status == domain.BookingConfirmed
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	if wasConfirmed {
		others, err := s.bookings.HasActiveForRoom(ctx, b.RoomID, b.ID)
		if err != nil {
			return nil, err
		}
		if !others {
			room, err := s.rooms.GetByID(ctx, b.RoomID)
			if err != nil {
				return nil, err
			}
			if room.Status == domain.RoomReserved {
				if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomAvailable); err != nil {
					return nil, err
				}
			}
		}
	}
	return b, nil
}
