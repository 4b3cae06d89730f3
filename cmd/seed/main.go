package main

import (
	"log"
	"os"
	"time"

	"guesthouse/internal/database"
	"guesthouse/internal/domain"

	"github.com/google/uuid"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "guesthouse.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")

	log.Println("Creating rooms...")
	rooms := []domain.Room{
		{Number: "101", Type: "standard", Status: domain.RoomAvailable, DailyRate: 500_000},
		{Number: "102", Type: "standard", Status: domain.RoomAvailable, DailyRate: 500_000},
		{Number: "201", Type: "deluxe", Status: domain.RoomAvailable, DailyRate: 800_000, MonthlyRate: 18_000_000},
		{Number: "202", Type: "deluxe", Status: domain.RoomMaintenance, DailyRate: 800_000},
		{Number: "301", Type: "suite", Status: domain.RoomAvailable, DailyRate: 1_500_000},
	}
	for i := range rooms {
		if err := db.Create(&rooms[i]).Error; err != nil {
			log.Fatal("seed room failed:", err)
		}
	}

	log.Println("Creating a demo booking...")
	checkIn := time.Now().Truncate(24 * time.Hour).Add(14 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)
	booking := domain.Booking{
		Reference:    uuid.NewString(),
		RentalType:   domain.RentalDaily,
		BookingType:  domain.BookingIndividual,
		RoomID:       rooms[0].ID,
		GuestName:    "Walk-in Guest",
		GuestPhone:   "0900000000",
		CheckInDate:  checkIn,
		CheckOutDate: &checkOut,
		TotalAmount:  3 * rooms[0].DailyRate,
		Status:       domain.BookingConfirmed,
	}
	if err := db.Create(&booking).Error; err != nil {
		log.Fatal("seed booking failed:", err)
	}
	if err := db.Model(&domain.Room{}).Where("id = ?", rooms[0].ID).
		Update("status", domain.RoomReserved).Error; err != nil {
		log.Fatal("seed room status failed:", err)
	}

	log.Printf("Seed complete: %d rooms, booking %s", len(rooms), booking.Reference)
}
