package repository

import (
	"errors"
	"testing"

	"guesthouse/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapBookingErr_ActiveBookingIndexViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_one_active_booking_per_room",
	}

	err := mapBookingErr(pgErr)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMapBookingErr_OtherUniqueViolationPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_rooms_number",
	}

	err := mapBookingErr(pgErr)

	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, pgErr, err)
}

func TestMapBookingErr_NonPostgresErrorPassesThrough(t *testing.T) {
	plain := errors.New("connection reset")

	assert.Equal(t, plain, mapBookingErr(plain))
}
