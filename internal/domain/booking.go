package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

// Active reports whether the booking still holds its room.
func (s BookingStatus) Active() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

// Terminal statuses accept no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type RentalType string

const (
	RentalHourly  RentalType = "hourly"
	RentalDaily   RentalType = "daily"
	RentalMonthly RentalType = "monthly"
)

func (t RentalType) Valid() bool {
	switch t {
	case RentalHourly, RentalDaily, RentalMonthly:
		return true
	}
	return false
}

type BookingType string

const (
	BookingIndividual BookingType = "individual"
	BookingCompany    BookingType = "company"
)

// BasisMode selects how the checkout base amount is determined.
type BasisMode string

const (
	BasisRealTime      BasisMode = "real-time"
	BasisPreCalculated BasisMode = "pre-calculated"
	BasisCustom        BasisMode = "custom"
)

type Booking struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	Reference   string      `json:"reference" gorm:"uniqueIndex;size:36"`
	RentalType  RentalType  `json:"rental_type" validate:"required"`
	BookingType BookingType `json:"booking_type"`
	RoomID      int64       `json:"room_id" gorm:"index" validate:"required"`
	GuestName   string      `json:"guest_name" validate:"required"`
	GuestPhone  string      `json:"guest_phone,omitempty"`
	CompanyName string      `json:"company_name,omitempty"`

	// Quoted stay window. CheckInDate carries the time of day for hourly
	// rentals; CheckOutDate is nil for an open-ended daily/monthly stay.
	CheckInDate  time.Time  `json:"check_in_date"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`

	// TotalAmount is the quote frozen at creation time; it is never updated
	// afterwards. CustomPricing marks quotes overridden by the operator.
	TotalAmount   int64 `json:"total_amount"`
	CustomPricing bool  `json:"custom_pricing,omitempty"`

	ExtraCharges int64     `json:"extra_charges"`
	BaseAmount   int64     `json:"base_amount"`
	FinalAmount  *int64    `json:"final_amount,omitempty"`
	BasisMode    BasisMode `json:"basis_mode,omitempty"`
	CustomAmount *int64    `json:"custom_amount,omitempty"`

	Status             BookingStatus `json:"status" gorm:"index"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
