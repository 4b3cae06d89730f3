package booking

import (
	"fmt"
	"time"

	"guesthouse/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CreateBookingCommand is the reservation request. Dates are day-granular;
// hourly rentals additionally carry check-in/out times of day.
type CreateBookingCommand struct {
	RoomID       int64              `json:"room_id" validate:"required"`
	RentalType   domain.RentalType  `json:"rental_type" validate:"required"`
	BookingType  domain.BookingType `json:"booking_type"`
	GuestName    string             `json:"guest_name" validate:"required"`
	GuestPhone   string             `json:"guest_phone"`
	CompanyName  string             `json:"company_name"`
	CheckInDate  string             `json:"check_in_date" validate:"required"`
	CheckOutDate string             `json:"check_out_date"`
	CheckInTime  string             `json:"check_in_time"`
	CheckOutTime string             `json:"check_out_time"`
	Confirmed    bool               `json:"confirmed"`
	// CustomPricing overrides the quote at creation time. Distinct from the
	// custom basis mode at checkout; both stay clearly labeled.
	CustomPricing *int64 `json:"custom_pricing"`
	Notes         string `json:"notes"`
}

// Window resolves the quoted stay window. The end is zero for an open-ended
// daily or monthly stay.
func (c CreateBookingCommand) Window() (time.Time, time.Time, error) {
	day, err := time.Parse(dateLayout, c.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid check_in_date", domain.ErrValidation)
	}

	if c.RentalType == domain.RentalHourly {
		if c.CheckInTime == "" || c.CheckOutTime == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: hourly rental requires check_in_time and check_out_time", domain.ErrValidation)
		}
		start, err := atTime(day, c.CheckInTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		outDay := day
		if c.CheckOutDate != "" {
			outDay, err = time.Parse(dateLayout, c.CheckOutDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid check_out_date", domain.ErrValidation)
			}
		}
		end, err := atTime(outDay, c.CheckOutTime)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	if c.CheckOutDate == "" {
		return day, time.Time{}, nil
	}
	out, err := time.Parse(dateLayout, c.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid check_out_date", domain.ErrValidation)
	}
	return day, out, nil
}

func atTime(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(timeLayout, hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", domain.ErrValidation, hm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// CheckOutCommand carries the operator's checkout decision.
type CheckOutCommand struct {
	BasisMode    domain.BasisMode `json:"basis_mode" binding:"required" validate:"required"`
	ExtraCharges int64            `json:"extra_charges"`
	CustomAmount *int64           `json:"custom_amount"`
	Notes        string           `json:"notes"`
}

// CheckoutPreview compares the two automatic bases without committing.
type CheckoutPreview struct {
	RealTimeAmount      int64 `json:"real_time_amount"`
	PreCalculatedAmount int64 `json:"pre_calculated_amount"`
	Difference          int64 `json:"difference"`
}
