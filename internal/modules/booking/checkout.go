package booking

import (
	"context"
	"fmt"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/pricing"
)

// reconcile picks the checkout base amount and folds in extras. Custom mode
// takes the operator's amount as the committed total: extras must already be
// part of it and are never added on top.
func reconcile(b *domain.Booking, room *domain.Room, mode domain.BasisMode, extras int64, custom *int64, now time.Time) (base, final int64, err error) {
	if extras < 0 {
		return 0, 0, fmt.Errorf("%w: extra charges must not be negative", domain.ErrValidation)
	}

	switch mode {
	case domain.BasisRealTime:
		if b.ActualCheckIn == nil {
			return 0, 0, fmt.Errorf("%w: booking has no actual check-in", domain.ErrInvalidStateTransition)
		}
		base, err = pricing.Quote(b.RentalType, room, *b.ActualCheckIn, now)
		if err != nil {
			return 0, 0, err
		}

	case domain.BasisPreCalculated:
		base = b.TotalAmount

	case domain.BasisCustom:
		if custom == nil || *custom < 0 {
			return 0, 0, fmt.Errorf("%w: custom basis requires a non-negative custom amount", domain.ErrValidation)
		}
		return *custom, *custom, nil

	default:
		return 0, 0, fmt.Errorf("%w: unknown basis mode %q", domain.ErrValidation, mode)
	}

	return base, base + extras, nil
}

// Preview computes both automatic bases for a checked-in booking. Read-only:
// it never touches booking state, however often it is called.
func (s *Service) Preview(ctx context.Context, id int64) (*CheckoutPreview, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ActualCheckIn == nil {
		return nil, fmt.Errorf("%w: booking %d is not checked in", domain.ErrInvalidStateTransition, id)
	}

	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, err
	}

	realTime, err := pricing.Quote(b.RentalType, room, *b.ActualCheckIn, s.now())
	if err != nil {
		return nil, err
	}

	return &CheckoutPreview{
		RealTimeAmount:      realTime,
		PreCalculatedAmount: b.TotalAmount,
		Difference:          realTime - b.TotalAmount,
	}, nil
}
