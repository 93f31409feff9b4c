package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Schedule    ScheduleRepository
	Calendar    CalendarRepository
	Service     ServiceRepository
	Staff       StaffRepository
	Client      ClientRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Schedule:    NewScheduleRepository(db, log),
		Calendar:    NewCalendarRepository(db, log),
		Service:     NewServiceRepository(db, log),
		Staff:       NewStaffRepository(db, log),
		Client:      NewClientRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
