package invoice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/lock"
)

// Service is the payment ledger: it appends payment rows, keeps paidAmount
// equal to their sum and derives the payment status from it.
type Service struct {
	invoices InvoiceRepository
	bookings BookingReader
	locks    *lock.Keyed
	now      func() time.Time
}

func NewService(invoices InvoiceRepository, bookings BookingReader, locks *lock.Keyed) *Service {
	return &Service{
		invoices: invoices,
		bookings: bookings,
		locks:    locks,
		now:      time.Now,
	}
}

func invoiceKey(id int64) string { return "invoice:" + strconv.FormatInt(id, 10) }

type CreateInvoiceCommand struct {
	BookingID      int64 `json:"booking_id" binding:"required"`
	ServiceCharges int64 `json:"service_charges"`
	Taxes          int64 `json:"taxes"`
}

// CreateFromBooking raises an invoice from a checked-out booking, taking
// the committed final amount as the room charges.
func (s *Service) CreateFromBooking(ctx context.Context, cmd CreateInvoiceCommand) (*domain.Invoice, error) {
	if cmd.ServiceCharges < 0 || cmd.Taxes < 0 {
		return nil, fmt.Errorf("%w: charges must not be negative", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, cmd.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCheckedOut || b.FinalAmount == nil {
		return nil, fmt.Errorf("%w: booking %d is not checked out", domain.ErrInvalidStateTransition, cmd.BookingID)
	}

	inv := &domain.Invoice{
		BookingID:      b.ID,
		RoomCharges:    *b.FinalAmount,
		ServiceCharges: cmd.ServiceCharges,
		Taxes:          cmd.Taxes,
		TotalAmount:    *b.FinalAmount + cmd.ServiceCharges + cmd.Taxes,
		PaymentStatus:  domain.PaymentPending,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// GetForBooking looks up the invoice raised for a booking.
func (s *Service) GetForBooking(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	return s.invoices.GetByBookingID(ctx, bookingID)
}

// ApplyPayment appends one payment to the ledger. Overpayment is rejected;
// refunds are a separate operation, never an implicit side effect here.
func (s *Service) ApplyPayment(ctx context.Context, invoiceID, amount int64, method, note string) (*domain.Invoice, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	}
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}

	unlock := s.locks.Lock(invoiceKey(invoiceID))
	defer unlock()

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if amount > inv.DueAmount() {
		return nil, fmt.Errorf("%w: payment %d exceeds due amount %d", domain.ErrValidation, amount, inv.DueAmount())
	}

	p := &domain.Payment{
		InvoiceID: inv.ID,
		Amount:    amount,
		Method:    method,
		Note:      note,
		PaidAt:    s.now(),
	}
	inv.PaidAmount += amount
	inv.PaymentStatus = inv.DerivePaymentStatus()

	if err := s.invoices.AppendPayment(ctx, inv, p); err != nil {
		return nil, err
	}
	inv.Payments = append(inv.Payments, *p)
	return inv, nil
}

// Refund records a negative ledger row. The paid amount never goes
// negative; a refund of everything paid marks the invoice refunded.
func (s *Service) Refund(ctx context.Context, invoiceID, amount int64, note string) (*domain.Invoice, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: refund amount must be positive", domain.ErrValidation)
	}

	unlock := s.locks.Lock(invoiceKey(invoiceID))
	defer unlock()

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if amount > inv.PaidAmount {
		return nil, fmt.Errorf("%w: refund %d exceeds paid amount %d", domain.ErrValidation, amount, inv.PaidAmount)
	}

	p := &domain.Payment{
		InvoiceID: inv.ID,
		Amount:    -amount,
		Method:    "refund",
		Note:      note,
		PaidAt:    s.now(),
	}
	inv.PaidAmount -= amount
	if inv.PaidAmount == 0 {
		inv.PaymentStatus = domain.PaymentRefunded
	} else {
		inv.PaymentStatus = inv.DerivePaymentStatus()
	}

	if err := s.invoices.AppendPayment(ctx, inv, p); err != nil {
		return nil, err
	}
	inv.Payments = append(inv.Payments, *p)
	return inv, nil
}

// Delete removes an invoice that has seen no money yet.
func (s *Service) Delete(ctx context.Context, invoiceID int64) error {
	unlock := s.locks.Lock(invoiceKey(invoiceID))
	defer unlock()

	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.PaymentStatus != domain.PaymentPending {
		return fmt.Errorf("%w: invoice %d has recorded payments", domain.ErrConflict, invoiceID)
	}
	return s.invoices.Delete(ctx, invoiceID)
}
