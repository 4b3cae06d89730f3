// Package pricing computes stay cost for a room under the three billing
// models. Quote is pure: it is called with the requested window at booking
// time and again with the actual timestamps at checkout.
package pricing

import (
	"fmt"
	"math"
	"time"

	"guesthouse/internal/domain"
)

// Hourly tier rates. The first hour is the most expensive, the second is
// half of it, and every further started hour bills at the long-stay rate.
const (
	FirstHourRate  = 80_000
	SecondHourRate = 40_000
	ExtraHourRate  = 20_000
)

const daysPerMonth = 30

// Quote returns the cost of a stay from start to end. A zero end means an
// open-ended stay and yields a provisional one-unit quote for daily and
// monthly rentals; hourly rentals always need both timestamps.
func Quote(rentalType domain.RentalType, room *domain.Room, start, end time.Time) (int64, error) {
	if start.IsZero() {
		return 0, fmt.Errorf("%w: check-in time is required", domain.ErrValidation)
	}

	switch rentalType {
	case domain.RentalHourly:
		if end.IsZero() {
			return 0, fmt.Errorf("%w: check-out time is required for hourly rental", domain.ErrValidation)
		}
		hours, err := elapsedUnits(start, end, time.Hour)
		if err != nil {
			return 0, err
		}
		return hourlyAmount(hours), nil

	case domain.RentalDaily:
		if end.IsZero() {
			return room.DailyRate, nil
		}
		nights, err := elapsedUnits(start, end, 24*time.Hour)
		if err != nil {
			return 0, err
		}
		return room.DailyRate * nights, nil

	case domain.RentalMonthly:
		if end.IsZero() {
			return room.EffectiveMonthlyRate(), nil
		}
		days, err := elapsedUnits(start, end, 24*time.Hour)
		if err != nil {
			return 0, err
		}
		months := (days + daysPerMonth - 1) / daysPerMonth
		return room.EffectiveMonthlyRate() * months, nil

	default:
		return 0, fmt.Errorf("%w: unknown rental type %q", domain.ErrValidation, rentalType)
	}
}

func hourlyAmount(hours int64) int64 {
	total := int64(FirstHourRate)
	if hours >= 2 {
		total += SecondHourRate
	}
	if hours > 2 {
		total += (hours - 2) * ExtraHourRate
	}
	return total
}

// elapsedUnits rounds a positive duration up to whole units, with a floor
// of one unit.
func elapsedUnits(start, end time.Time, unit time.Duration) (int64, error) {
	d := end.Sub(start)
	if d <= 0 {
		return 0, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	units := int64(math.Ceil(float64(d) / float64(unit)))
	if units < 1 {
		units = 1
	}
	return units, nil
}
