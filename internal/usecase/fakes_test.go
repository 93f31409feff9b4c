package usecase

import (
	"context"
	"sync"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/gcal"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres repositories so the
// services can be exercised without a database. All methods take the store
// mutex, mirroring the store's serialization, so concurrent calls are safe.
type fakeStore struct {
	mu sync.Mutex

	calendars        []*entity.BookingCalendar
	services         []*entity.Service
	calendarServices map[uuid.UUID][]uuid.UUID
	schedules        map[time.Weekday]*entity.DaySchedule
	rests            []*entity.RestPeriod
	staff            []*entity.Staff
	clients          []*entity.Client
	reservations     []*entity.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		calendarServices: make(map[uuid.UUID][]uuid.UUID),
		schedules:        make(map[time.Weekday]*entity.DaySchedule),
	}
}

func (f *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		Schedule:    (*fakeScheduleRepo)(f),
		Calendar:    (*fakeCalendarRepo)(f),
		Service:     (*fakeServiceRepo)(f),
		Staff:       (*fakeStaffRepo)(f),
		Client:      (*fakeClientRepo)(f),
		Reservation: (*fakeReservationRepo)(f),
	}
}

type fakeScheduleRepo fakeStore

func (f *fakeScheduleRepo) FindByWeekday(_ context.Context, weekday time.Weekday) (*entity.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schedules[weekday], nil
}

func (f *fakeScheduleRepo) FindAll(_ context.Context) ([]*entity.DaySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.DaySchedule
	for day := time.Sunday; day <= time.Saturday; day++ {
		if schedule, ok := f.schedules[day]; ok {
			all = append(all, schedule)
		}
	}
	return all, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *entity.DaySchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules[schedule.DayOfWeek] = schedule
	return nil
}

func (f *fakeScheduleRepo) FindRestPeriods(_ context.Context, weekday time.Weekday) ([]*entity.RestPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.RestPeriod
	for _, rest := range f.rests {
		if rest.DayOfWeek == weekday {
			matched = append(matched, rest)
		}
	}
	return matched, nil
}

func (f *fakeScheduleRepo) FindAllRestPeriods(_ context.Context) ([]*entity.RestPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rests, nil
}

func (f *fakeScheduleRepo) CreateRestPeriod(_ context.Context, rest *entity.RestPeriod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rests = append(f.rests, rest)
	return nil
}

func (f *fakeScheduleRepo) DeleteRestPeriod(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, rest := range f.rests {
		if rest.ID == id {
			f.rests = append(f.rests[:i], f.rests[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCalendarRepo fakeStore

func (f *fakeCalendarRepo) Create(_ context.Context, calendar *entity.BookingCalendar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendars = append(f.calendars, calendar)
	return nil
}

func (f *fakeCalendarRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingCalendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, calendar := range f.calendars {
		if calendar.ID == id {
			return calendar, nil
		}
	}
	return nil, nil
}

func (f *fakeCalendarRepo) FindBySlug(_ context.Context, slug string) (*entity.BookingCalendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, calendar := range f.calendars {
		if calendar.Slug == slug {
			return calendar, nil
		}
	}
	return nil, nil
}

func (f *fakeCalendarRepo) FindAll(_ context.Context) ([]*entity.BookingCalendar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calendars, nil
}

func (f *fakeCalendarRepo) Update(_ context.Context, calendar *entity.BookingCalendar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.calendars {
		if existing.ID == calendar.ID {
			f.calendars[i] = calendar
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCalendarRepo) HasService(_ context.Context, calendarID, serviceID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.calendarServices[calendarID] {
		if id == serviceID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCalendarRepo) FindServices(_ context.Context, calendarID uuid.UUID) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var services []*entity.Service
	for _, serviceID := range f.calendarServices[calendarID] {
		for _, service := range f.services {
			if service.ID == serviceID && service.IsActive {
				services = append(services, service)
			}
		}
	}
	return services, nil
}

func (f *fakeCalendarRepo) SetServices(_ context.Context, calendarID uuid.UUID, serviceIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calendarServices[calendarID] = serviceIDs
	return nil
}

type fakeServiceRepo fakeStore

func (f *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services = append(f.services, service)
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, service := range f.services {
		if service.ID == id {
			return service, nil
		}
	}
	return nil, nil
}

func (f *fakeServiceRepo) FindAll(_ context.Context) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.services, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.services {
		if existing.ID == service.ID {
			f.services[i] = service
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeStaffRepo fakeStore

func (f *fakeStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, staff := range f.staff {
		if staff.ID == id {
			return staff, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) FindAllActive(_ context.Context) ([]*entity.Staff, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []*entity.Staff
	for _, staff := range f.staff {
		if staff.IsActive {
			active = append(active, staff)
		}
	}
	return active, nil
}

type fakeClientRepo fakeStore

func (f *fakeClientRepo) ResolveOrCreate(_ context.Context, client *entity.Client) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clients {
		if existing.Phone == client.Phone {
			existing.Name = client.Name
			existing.Email = client.Email
			return existing, nil
		}
	}
	f.clients = append(f.clients, client)
	return client, nil
}

func (f *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, client := range f.clients {
		if client.ID == id {
			return client, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) FindByPhone(_ context.Context, phone string) (*entity.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, client := range f.clients {
		if client.Phone == phone {
			return client, nil
		}
	}
	return nil, nil
}

type fakeReservationRepo fakeStore

func (f *fakeReservationRepo) FindOverlapping(_ context.Context, calendarID uuid.UUID, windowStart, windowEnd time.Time) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Reservation
	for _, res := range f.reservations {
		if res.CalendarID == calendarID && res.Overlaps(windowStart, windowEnd) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

func (f *fakeReservationRepo) CreateWithCapacity(_ context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calendar *entity.BookingCalendar
	for _, c := range f.calendars {
		if c.ID == reservation.CalendarID {
			calendar = c
			break
		}
	}
	if calendar == nil {
		return repository.ErrNotFound
	}

	count := 0
	for _, res := range f.reservations {
		if res.CalendarID == calendar.ID && res.Overlaps(reservation.StartTime, reservation.EndTime) {
			count++
		}
	}
	if count >= calendar.EffectiveLimit() {
		return repository.ErrCapacityExceeded
	}

	f.reservations = append(f.reservations, reservation)
	return nil
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reservations = append(f.reservations, reservation)
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) ConfirmPending(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.ID == id && res.Status == entity.ReservationStatusPending {
			res.Status = entity.ReservationStatusConfirmed
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.ID == id {
			res.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeReservationRepo) SetExternalEventID(_ context.Context, id uuid.UUID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.ID == id {
			res.ExternalEventID = &eventID
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeSyncer records calendar sync calls.
type fakeSyncer struct {
	mu      sync.Mutex
	created []gcal.Event
	deleted []string
	fail    bool
}

func (s *fakeSyncer) CreateEvent(_ context.Context, event gcal.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", context.DeadlineExceeded
	}
	s.created = append(s.created, event)
	return uuid.NewString(), nil
}

func (s *fakeSyncer) DeleteEvent(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return context.DeadlineExceeded
	}
	s.deleted = append(s.deleted, eventID)
	return nil
}
