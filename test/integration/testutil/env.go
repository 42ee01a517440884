package testutil

import (
	"os"
	"testing"
	"time"

	"hotelier/pkg/client"
	"hotelier/pkg/config"
	"hotelier/pkg/logger"
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
}

// NewTestEnv reads the test MongoDB location from the environment. Tests
// using it skip when TEST_MONGO_URI is not set, so the suite stays green on
// machines without a running MongoDB.
func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:     os.Getenv("TEST_MONGO_URI"),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
	}
}

// Setup connects to the test MongoDB, wipes the database, and returns a
// helper plus a Config wired to the live connection the way the services
// build theirs.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *config.Config) {
	t.Helper()

	if e.MongoURI == "" {
		t.Skip("TEST_MONGO_URI not set; skipping MongoDB integration test")
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	return mongo, e.newConfig(mongo)
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func (e *TestEnv) newConfig(mongo *MongoHelper) *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "integration-test",
	})

	return &config.Config{
		MongoURI:          e.MongoURI,
		MongoDatabaseName: e.DatabaseName,

		HotelsCollection:       HotelsCollection,
		ReservationsCollection: ReservationsCollection,
		TravelersCollection:    TravelersCollection,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,

		MaxGuestsPerBooking: 6,
		MaxRoomsPerHotel:    50,

		Log:    log,
		Client: &client.Client{Mongo: mongo.Client},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
