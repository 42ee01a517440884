package main

import (
	"hotelier/internal/hotels/handler"
	"hotelier/internal/hotels/repository"
	"hotelier/internal/hotels/service"
	"hotelier/internal/hotels/validator"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
)

const ServiceName = "hotels"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Hotels service")
	hotelService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewHotelHandler(hotelService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.HotelService {
	hotelValidator := validator.NewHotelValidator(cfg.Log)
	hotelRepo := repository.NewMongoHotelRepository(cfg)
	hotelService := service.NewHotelService(
		hotelRepo,
		hotelValidator,
		cfg,
	)

	cfg.Log.Info("Hotel service initialized", "database", cfg.MongoDatabaseName)
	return hotelService
}
