package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Invoice struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	BookingID      int64         `json:"booking_id" gorm:"index" validate:"required"`
	RoomCharges    int64         `json:"room_charges"`
	ServiceCharges int64         `json:"service_charges"`
	Taxes          int64         `json:"taxes"`
	TotalAmount    int64         `json:"total_amount"`
	PaidAmount     int64         `json:"paid_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"index"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Payments []Payment `json:"payment_history" gorm:"foreignKey:InvoiceID"`
}

// Payment is one ledger row; refunds are recorded as negative amounts.
type Payment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	InvoiceID int64     `json:"invoice_id" gorm:"index"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Note      string    `json:"note,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// DueAmount is what remains to be collected.
func (i *Invoice) DueAmount() int64 {
	return i.TotalAmount - i.PaidAmount
}

// DerivePaymentStatus recomputes the status from the paid amount. The
// refunded status is terminal and set only by an explicit refund.
func (i *Invoice) DerivePaymentStatus() PaymentStatus {
	switch {
	case i.PaidAmount <= 0:
		return PaymentPending
	case i.PaidAmount < i.TotalAmount:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
