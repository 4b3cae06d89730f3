package repository

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/internal/domain"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	tx := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.id") }).
		First(&inv, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
		}
		return nil, tx.Error
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	tx := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.id") }).
		Where("booking_id = ?", bookingID).
		First(&inv)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice for booking %d", domain.ErrNotFound, bookingID)
		}
		return nil, tx.Error
	}
	return &inv, nil
}

// AppendPayment writes the ledger row and the recomputed invoice totals in
// one transaction.
func (r *InvoiceRepository) AppendPayment(ctx context.Context, inv *domain.Invoice, p *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Invoice{}).
			Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"paid_amount":    inv.PaidAmount,
				"payment_status": inv.PaymentStatus,
			}).Error
	})
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&domain.Payment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
		}
		return nil
	})
}
