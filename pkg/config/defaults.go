package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelier"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultHotelsCollection       = "hotels"
	DefaultReservationsCollection = "reservations"
	DefaultTravelersCollection    = "travelers"

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxGuestsPerBooking = 20
	DefaultMaxRoomsPerHotel    = 500

	DefaultPaginationLimit = 100
)
