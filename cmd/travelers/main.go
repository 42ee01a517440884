package main

import (
	"hotelier/internal/travelers/handler"
	"hotelier/internal/travelers/repository"
	"hotelier/internal/travelers/service"
	"hotelier/internal/travelers/validator"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
)

const ServiceName = "travelers"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Travelers service")
	travelerService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewTravelerHandler(travelerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.TravelerService {
	travelerValidator := validator.NewTravelerValidator(cfg.Log)
	travelerRepo := repository.NewMongoTravelerRepository(cfg)
	travelerService := service.NewTravelerService(
		travelerRepo,
		travelerValidator,
		cfg,
	)

	cfg.Log.Info("Traveler service initialized", "database", cfg.MongoDatabaseName)
	return travelerService
}
