package invoice

import (
	"context"

	"guesthouse/internal/domain"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error)
	AppendPayment(ctx context.Context, inv *domain.Invoice, p *domain.Payment) error
	Delete(ctx context.Context, id int64) error
}

// BookingReader resolves the booking an invoice is raised from.
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
