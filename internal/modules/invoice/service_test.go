package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	seq      int64
	invoices map[int64]domain.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[int64]domain.Invoice)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	r.seq++
	inv.ID = r.seq
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
	}
	out := inv
	out.Payments = append([]domain.Payment(nil), inv.Payments...)
	return &out, nil
}

func (r *fakeInvoiceRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	for id, inv := range r.invoices {
		if inv.BookingID == bookingID {
			return r.GetByID(ctx, id)
		}
	}
	return nil, fmt.Errorf("%w: invoice for booking %d", domain.ErrNotFound, bookingID)
}

func (r *fakeInvoiceRepo) AppendPayment(ctx context.Context, inv *domain.Invoice, p *domain.Payment) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, inv.ID)
	}
	stored.Payments = append(stored.Payments, *p)
	stored.PaidAmount = inv.PaidAmount
	stored.PaymentStatus = inv.PaymentStatus
	r.invoices[inv.ID] = stored
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.invoices[id]; !ok {
		return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
	}
	delete(r.invoices, id)
	return nil
}

type fakeBookingReader struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	return b, nil
}

func checkedOutBooking(id, final int64) *domain.Booking {
	out := time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)
	in := out.AddDate(0, 0, -3)
	return &domain.Booking{
		ID:             id,
		Status:         domain.BookingCheckedOut,
		FinalAmount:    &final,
		ActualCheckIn:  &in,
		ActualCheckOut: &out,
	}
}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	reader := &fakeBookingReader{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		reader.bookings[b.ID] = b
	}
	return NewService(repo, reader, lock.NewKeyed()), repo
}

func TestCreateFromBooking(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(1, 1_550_000))

	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{
		BookingID:      1,
		ServiceCharges: 200_000,
		Taxes:          175_000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1_550_000), inv.RoomCharges)
	assert.Equal(t, int64(1_925_000), inv.TotalAmount)
	assert.Equal(t, int64(0), inv.PaidAmount)
	assert.Equal(t, domain.PaymentPending, inv.PaymentStatus)
}

func TestGetForBooking(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(7, 900_000))

	created, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 7})
	require.NoError(t, err)

	inv, err := svc.GetForBooking(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, inv.ID)
	assert.Equal(t, int64(7), inv.BookingID)

	_, err = svc.GetForBooking(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateFromBooking_RequiresCheckedOut(t *testing.T) {
	svc, _ := newTestService(&domain.Booking{ID: 2, Status: domain.BookingCheckedIn})

	_, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestApplyPayment_TwoInstallmentsSettle(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(1, 1_500_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)

	inv, err = svc.ApplyPayment(context.Background(), inv.ID, 500_000, "cash", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, inv.PaymentStatus)
	assert.Equal(t, int64(1_000_000), inv.DueAmount())

	inv, err = svc.ApplyPayment(context.Background(), inv.ID, inv.TotalAmount-500_000, "transfer", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, inv.PaymentStatus)
	assert.Equal(t, int64(0), inv.DueAmount())
	require.Len(t, inv.Payments, 2)
	assert.Equal(t, "cash", inv.Payments[0].Method)
	assert.Equal(t, "transfer", inv.Payments[1].Method)
}

func TestApplyPayment_Validation(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(1, 1_000_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)

	_, err = svc.ApplyPayment(context.Background(), inv.ID, 0, "cash", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ApplyPayment(context.Background(), inv.ID, -100, "cash", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ApplyPayment(context.Background(), inv.ID, inv.TotalAmount+1, "cash", "")
	assert.ErrorIs(t, err, domain.ErrValidation, "overpayment is rejected")

	_, err = svc.ApplyPayment(context.Background(), inv.ID, 100_000, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApplyPayment_PaidAmountTracksLedgerSum(t *testing.T) {
	svc, repo := newTestService(checkedOutBooking(1, 900_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)

	for _, amount := range []int64{300_000, 300_000, 300_000} {
		inv, err = svc.ApplyPayment(context.Background(), inv.ID, amount, "cash", "")
		require.NoError(t, err)
	}

	stored, err := repo.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	var sum int64
	for _, p := range stored.Payments {
		sum += p.Amount
	}
	assert.Equal(t, stored.PaidAmount, sum)
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)
}

func TestRefund(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(1, 1_000_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)
	inv, err = svc.ApplyPayment(context.Background(), inv.ID, 1_000_000, "card", "")
	require.NoError(t, err)

	inv, err = svc.Refund(context.Background(), inv.ID, 400_000, "complaint settled")
	require.NoError(t, err)
	assert.Equal(t, int64(600_000), inv.PaidAmount)
	assert.Equal(t, domain.PaymentPartial, inv.PaymentStatus)
	assert.Equal(t, int64(-400_000), inv.Payments[len(inv.Payments)-1].Amount)

	inv, err = svc.Refund(context.Background(), inv.ID, 600_000, "stay voided")
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.PaidAmount)
	assert.Equal(t, domain.PaymentRefunded, inv.PaymentStatus)
}

func TestRefund_NeverExceedsPaid(t *testing.T) {
	svc, _ := newTestService(checkedOutBooking(1, 1_000_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)
	inv, err = svc.ApplyPayment(context.Background(), inv.ID, 200_000, "cash", "")
	require.NoError(t, err)

	_, err = svc.Refund(context.Background(), inv.ID, 300_000, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_OnlyWhilePending(t *testing.T) {
	svc, repo := newTestService(checkedOutBooking(1, 1_000_000))
	inv, err := svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), inv.ID))
	_, err = repo.GetByID(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inv, err = svc.CreateFromBooking(context.Background(), CreateInvoiceCommand{BookingID: 1})
	require.NoError(t, err)
	_, err = svc.ApplyPayment(context.Background(), inv.ID, 100_000, "cash", "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
