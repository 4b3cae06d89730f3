package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"guesthouse/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the reservation schema. On PostgreSQL it also
// creates the partial unique index that rejects a second active booking per
// room at the database level, so the guard holds across processes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Room{},
		&domain.Booking{},
		&domain.Invoice{},
		&domain.Payment{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_booking_per_room
			 ON bookings (room_id)
			 WHERE status IN ('confirmed', 'checked-in')`,
		).Error
	}

	return nil
}
