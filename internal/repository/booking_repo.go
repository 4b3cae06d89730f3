package repository

import (
	"context"
	"errors"
	"fmt"

	"guesthouse/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return mapBookingErr(err)
	}
	return nil
}

// Save persists the full booking row; transitions go through the state
// machine, which holds the room lock while calling this.
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return mapBookingErr(err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
		}
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out)
	return out, tx.Error
}

func (r *BookingRepository) HasActiveForRoom(ctx context.Context, roomID, excludeID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ? AND id <> ?",
			roomID,
			[]domain.BookingStatus{domain.BookingConfirmed, domain.BookingCheckedIn},
			excludeID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// ActiveBookings returns every confirmed or checked-in booking, used by the
// room status sweep.
func (r *BookingRepository) ActiveBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("status IN ?", []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCheckedIn}).
		Find(&out)
	return out, tx.Error
}

// mapBookingErr turns a PostgreSQL unique violation on the one-active-
// booking-per-room index into a conflict the caller can act on.
func mapBookingErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_active_booking_per_room" {
			return fmt.Errorf("%w: room already has an active booking", domain.ErrConflict)
		}
	}
	return err
}
