// Package uow groups the three Mongo repositories behind a single unit of
// work. Each repository write is applied immediately; Complete is a commit
// barrier that marks the end of a workflow without issuing any database
// command. Multi-document atomicity, when required, goes through
// WithinTransaction instead.
package uow

import (
	"context"

	hotelsrepo "hotelier/internal/hotels/repository"
	resrepo "hotelier/internal/reservations/repository"
	travelersrepo "hotelier/internal/travelers/repository"
	"hotelier/pkg/config"
	mongotx "hotelier/pkg/db/mongo"
)

type UnitOfWork interface {
	Hotels() hotelsrepo.HotelRepository
	Reservations() resrepo.ReservationRepository
	Travelers() travelersrepo.TravelerRepository

	// Complete marks the unit of work as finished. Writes are already
	// persisted when it runs, so it never fails.
	Complete(ctx context.Context) error
	WithinTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoUnitOfWork struct {
	hotels       hotelsrepo.HotelRepository
	reservations resrepo.ReservationRepository
	travelers    travelersrepo.TravelerRepository
	txManager    mongotx.TransactionManager
}

func New(cfg *config.Config) UnitOfWork {
	return &mongoUnitOfWork{
		hotels:       hotelsrepo.NewMongoHotelRepository(cfg),
		reservations: resrepo.NewMongoReservationRepository(cfg),
		travelers:    travelersrepo.NewMongoTravelerRepository(cfg),
		txManager:    mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (u *mongoUnitOfWork) Hotels() hotelsrepo.HotelRepository {
	return u.hotels
}

func (u *mongoUnitOfWork) Reservations() resrepo.ReservationRepository {
	return u.reservations
}

func (u *mongoUnitOfWork) Travelers() travelersrepo.TravelerRepository {
	return u.travelers
}

func (u *mongoUnitOfWork) Complete(ctx context.Context) error {
	return nil
}

func (u *mongoUnitOfWork) WithinTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return u.txManager.ExecuteTransaction(ctx, fn)
}
