package main

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spotstay/booking-service/config"
	"github.com/spotstay/booking-service/internal/consumer"
	"github.com/spotstay/booking-service/internal/handler"
	"github.com/spotstay/booking-service/internal/middleware"
	"github.com/spotstay/booking-service/internal/repository"
	"github.com/spotstay/booking-service/internal/service"
	"github.com/spotstay/booking-service/pkg/database"
	"github.com/spotstay/booking-service/pkg/rabbitmq"
	"github.com/spotstay/booking-service/pkg/validation"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := database.NewPostgresDB(cfg.DSN())
	v := validation.New()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	spotRepo := repository.NewSpotRepository(db)

	// RabbitMQ consumer: sync spots from the listing service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewSpotConsumer(spotRepo, v).Start(ctx, msgs)

	// RabbitMQ publisher: booking.* notifications
	mqPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to create RabbitMQ publisher: %v", err)
	}
	defer mqPublisher.Close()

	// Service
	bookingSvc := service.NewBookingService(bookingRepo, spotRepo,
		service.WithLocation(cfg.Location()),
		service.WithPublisher(mqPublisher),
	)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = v
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d request_id=%s", values.Method, values.URI, values.Status, values.RequestID)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.Auth(cfg.JWTSecret))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "booking-service"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e.Group("/api/bookings"))

	log.Printf("Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
