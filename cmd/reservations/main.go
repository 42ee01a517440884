package main

import (
	"os"

	"hotelier/internal/reservations/handler"
	"hotelier/internal/reservations/notifier"
	"hotelier/internal/reservations/service"
	"hotelier/internal/reservations/validator"
	"hotelier/internal/uow"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
	"hotelier/pkg/kafka"
	kafka_config "hotelier/pkg/kafka/config"
)

const (
	ServiceName         = "reservations"
	ReservationsTopic   = "hotelier.reservations"
	ReservationsDLQ     = "hotelier.reservations.dlq"
	EnvKafkaDisabledKey = "KAFKA_DISABLED"
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")
	bookingService, producer := initServices(cfg)
	if producer != nil {
		defer producer.Close()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, *kafka.Producer) {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	unit := uow.New(cfg)

	reservationNotifier, producer := initNotifier(cfg)
	bookingService := service.NewBookingService(
		unit,
		reservationValidator,
		reservationNotifier,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, producer
}

// initNotifier falls back to a no-op notifier when Kafka is disabled or
// unreachable; bookings must not depend on the broker being up.
func initNotifier(cfg *config.Config) (notifier.ReservationNotifier, *kafka.Producer) {
	if os.Getenv(EnvKafkaDisabledKey) == "true" {
		cfg.Log.Info("Kafka disabled, reservation events will not be published")
		return notifier.NoopNotifier{}, nil
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, ReservationsTopic, ReservationsDLQ)
	if err != nil {
		cfg.Log.Error("Failed to create Kafka producer, falling back to no-op notifier", "error", err)
		return notifier.NoopNotifier{}, nil
	}

	cfg.Log.Info("Kafka producer initialized", "topic", ReservationsTopic)
	return notifier.NewKafkaNotifier(producer, cfg.Log), producer
}
