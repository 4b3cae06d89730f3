package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"guesthouse/internal/config"
	"guesthouse/internal/database"
	"guesthouse/internal/middleware"
	bookingmod "guesthouse/internal/modules/booking"
	invoicemod "guesthouse/internal/modules/invoice"
	roomsmod "guesthouse/internal/modules/rooms"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	locks := lock.NewKeyed()

	roomsService := roomsmod.NewService(roomRepo, bookingRepo, locks)
	roomsHandler := roomsmod.NewHandler(roomsService)

	bookingService := bookingmod.NewService(bookingRepo, roomRepo, locks)
	bookingHandler := bookingmod.NewHandler(bookingService)

	invoiceService := invoicemod.NewService(invoiceRepo, bookingRepo, locks)
	invoiceHandler := invoicemod.NewHandler(invoiceService)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		roomsHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		invoiceHandler.RegisterRoutes(v1)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
