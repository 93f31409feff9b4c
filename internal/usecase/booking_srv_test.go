package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/request"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 2026-09-07 is a Monday.
const mondayDate = "2026-09-07"

type bookingFixture struct {
	store    *fakeStore
	syncer   *fakeSyncer
	booking  BookingService
	calendar *entity.BookingCalendar
	service  *entity.Service
	staff    *entity.Staff
}

func newBookingFixture(t *testing.T, requirePayment bool) *bookingFixture {
	t.Helper()

	store := newFakeStore()
	now := time.Now().UTC()

	calendar := &entity.BookingCalendar{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Slug:             "main-salon",
		Name:             "Main Salon",
		ConcurrencyLimit: 2,
		IsActive:         true,
	}
	service := &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:            "Haircut",
		DurationMinutes: 60,
		Price:           35,
		IsActive:        true,
	}
	staff := &entity.Staff{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Dana",
		IsActive: true,
	}

	store.calendars = append(store.calendars, calendar)
	store.services = append(store.services, service)
	store.staff = append(store.staff, staff)
	store.calendarServices[calendar.ID] = []uuid.UUID{service.ID}
	store.schedules[time.Monday] = &entity.DaySchedule{
		ID:        uuid.New(),
		DayOfWeek: time.Monday,
		IsOpen:    true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
	store.rests = append(store.rests, &entity.RestPeriod{
		ID:        uuid.New(),
		DayOfWeek: time.Monday,
		StartTime: "12:00",
		EndTime:   "13:00",
	})

	syncer := &fakeSyncer{}
	config := &utils.Config{}
	config.Booking.RequirePayment = requirePayment

	return &bookingFixture{
		store:    store,
		syncer:   syncer,
		booking:  NewBookingService(store.repo(), syncer, config, zap.NewNop()),
		calendar: calendar,
		service:  service,
		staff:    staff,
	}
}

func bookingRequest(f *bookingFixture, clock string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ServiceID:   f.service.ID.String(),
		Date:        mondayDate,
		Time:        clock,
		TzOffset:    0,
		ClientName:  "Alex Moreau",
		ClientPhone: "+33612345678",
	}
}

func TestReserveConfirmsImmediatelyWithoutPaymentGate(t *testing.T) {
	f := newBookingFixture(t, false)

	resp, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, "2026-09-07T10:00:00Z", resp.StartTime)
	assert.Equal(t, "2026-09-07T11:00:00Z", resp.EndTime)
	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, "Alex Moreau", resp.Client.Name)

	require.Len(t, f.store.reservations, 1)
	stored := f.store.reservations[0]
	assert.Equal(t, entity.ReservationStatusConfirmed, stored.Status)
	require.NotNil(t, stored.ExternalEventID)
	assert.Len(t, f.syncer.created, 1)
}

func TestReserveCreatesPendingWhenPaymentRequired(t *testing.T) {
	f := newBookingFixture(t, true)

	resp, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusPending, resp.Status)
	require.Len(t, f.store.reservations, 1)
	assert.Equal(t, entity.ReservationStatusPending, f.store.reservations[0].Status)
}

func TestReserveTranslatesClientTimezoneToUTC(t *testing.T) {
	f := newBookingFixture(t, false)

	req := bookingRequest(f, "10:00")
	req.TzOffset = 120 // UTC+2: local 10:00 is 08:00 UTC

	resp, err := f.booking.Reserve(context.Background(), "main-salon", req)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-07T08:00:00Z", resp.StartTime)
	assert.Equal(t, "2026-09-07T09:00:00Z", resp.EndTime)
}

func TestReserveRejectsOutsideBusinessHours(t *testing.T) {
	f := newBookingFixture(t, false)

	tests := []struct {
		name string
		date string
		time string
	}{
		{"before opening", mondayDate, "08:00"},
		{"ends past closing", mondayDate, "17:30"},
		{"closed weekday", "2026-09-08", "10:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := bookingRequest(f, tc.time)
			req.Date = tc.date

			_, err := f.booking.Reserve(context.Background(), "main-salon", req)
			assert.ErrorIs(t, err, ErrOutsideBusinessHours)
		})
	}

	assert.Empty(t, f.store.reservations, "policy rejections must not write")
}

func TestReserveRejectsRestPeriodIntersection(t *testing.T) {
	f := newBookingFixture(t, false)

	// Rest period is 12:00-13:00. An 11:30 start ends inside it, a 12:30
	// start begins inside it.
	for _, clock := range []string{"11:30", "12:00", "12:30"} {
		_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, clock))
		assert.ErrorIs(t, err, ErrRestPeriodBlocked, "start %s", clock)
	}

	// 13:00 starts exactly at the rest period's end and is allowed.
	_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "13:00"))
	assert.NoError(t, err)
}

func TestReserveConcurrentLimitOneAdmitsExactlyOne(t *testing.T) {
	f := newBookingFixture(t, false)
	f.calendar.ConcurrencyLimit = 1

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			req := bookingRequest(f, "10:00")
			req.ClientPhone = fmt.Sprintf("+3361234%04d", n)
			_, err := f.booking.Reserve(context.Background(), "main-salon", req)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Len(t, f.store.reservations, 1)
}

func TestReserveFailsClosedOnMalformedRestPeriod(t *testing.T) {
	f := newBookingFixture(t, false)
	f.store.rests = append(f.store.rests, &entity.RestPeriod{
		ID:        uuid.New(),
		DayOfWeek: time.Monday,
		StartTime: "garbage",
		EndTime:   "15:00",
	})

	_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRestPeriodBlocked)
	assert.Empty(t, f.store.reservations)
}

func TestReserveRejectsWhenWindowIsFull(t *testing.T) {
	f := newBookingFixture(t, false)

	_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)
	_, err = f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:30"))
	require.NoError(t, err)

	// Both seats of the 10:00-11:30 stretch are taken now.
	_, err = f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Len(t, f.store.reservations, 2)
}

func TestReservePendingHoldsCapacity(t *testing.T) {
	f := newBookingFixture(t, true)
	f.calendar.ConcurrencyLimit = 1

	_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)

	// The unpaid reservation already claims the slot.
	_, err = f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestReserveRejectsUnknownCalendarAndService(t *testing.T) {
	f := newBookingFixture(t, false)

	_, err := f.booking.Reserve(context.Background(), "no-such-salon", bookingRequest(f, "10:00"))
	assert.ErrorIs(t, err, ErrNotFound)

	req := bookingRequest(f, "10:00")
	req.ServiceID = uuid.NewString()
	_, err = f.booking.Reserve(context.Background(), "main-salon", req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveRejectsDisabledService(t *testing.T) {
	f := newBookingFixture(t, false)
	f.service.IsActive = false

	_, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestReserveKeepsGoingWhenCalendarSyncFails(t *testing.T) {
	f := newBookingFixture(t, false)
	f.syncer.fail = true

	resp, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	require.Len(t, f.store.reservations, 1)
	assert.Nil(t, f.store.reservations[0].ExternalEventID)
}

func TestReserveAssignsStaff(t *testing.T) {
	f := newBookingFixture(t, false)

	req := bookingRequest(f, "10:00")
	staffID := f.staff.ID.String()
	req.StaffID = &staffID

	resp, err := f.booking.Reserve(context.Background(), "main-salon", req)
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, staffID, *resp.StaffID)
}

func TestReserveReusesClientByPhone(t *testing.T) {
	f := newBookingFixture(t, false)

	first, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "09:00"))
	require.NoError(t, err)

	req := bookingRequest(f, "14:00")
	req.ClientName = "Alex M."
	second, err := f.booking.Reserve(context.Background(), "main-salon", req)
	require.NoError(t, err)

	assert.Equal(t, first.Client.ID, second.Client.ID)
	assert.Equal(t, "Alex M.", second.Client.Name)
	assert.Len(t, f.store.clients, 1)
}

func TestFinalizeConfirmsPendingOnce(t *testing.T) {
	f := newBookingFixture(t, true)

	created, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)
	require.Equal(t, entity.ReservationStatusPending, created.Status)

	finalizeReq := &request.FinalizeBookingRequest{ReservationID: created.ID}

	resp, err := f.booking.Finalize(context.Background(), finalizeReq)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)

	// Retried webhook delivery: same answer, nothing new written.
	resp, err = f.booking.Finalize(context.Background(), finalizeReq)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Len(t, f.store.reservations, 1)
}

func TestFinalizeLeavesCancelledAlone(t *testing.T) {
	f := newBookingFixture(t, true)

	created, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)
	require.NoError(t, f.booking.CancelReservation(context.Background(), created.ID))

	resp, err := f.booking.Finalize(context.Background(), &request.FinalizeBookingRequest{ReservationID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCancelled, resp.Status)
}

func TestFinalizeMaterializesMissingReservation(t *testing.T) {
	f := newBookingFixture(t, true)

	reservationID := uuid.NewString()
	resp, err := f.booking.Finalize(context.Background(), &request.FinalizeBookingRequest{
		ReservationID: reservationID,
		CalendarSlug:  "main-salon",
		ServiceID:     f.service.ID.String(),
		StartTime:     "2026-09-07T10:00:00Z",
		ClientName:    "Alex Moreau",
		ClientPhone:   "+33612345678",
	})
	require.NoError(t, err)

	assert.Equal(t, reservationID, resp.ID)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, "2026-09-07T11:00:00Z", resp.EndTime)
	require.Len(t, f.store.reservations, 1)
}

func TestFinalizeUnknownReservationWithoutIntentFails(t *testing.T) {
	f := newBookingFixture(t, true)

	_, err := f.booking.Finalize(context.Background(), &request.FinalizeBookingRequest{
		ReservationID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelReservationIsIdempotent(t *testing.T) {
	f := newBookingFixture(t, false)

	created, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)
	eventID := *f.store.reservations[0].ExternalEventID

	require.NoError(t, f.booking.CancelReservation(context.Background(), created.ID))
	assert.Equal(t, entity.ReservationStatusCancelled, f.store.reservations[0].Status)
	assert.Equal(t, []string{eventID}, f.syncer.deleted)

	// Second cancel is a no-op.
	require.NoError(t, f.booking.CancelReservation(context.Background(), created.ID))
	assert.Len(t, f.syncer.deleted, 1)
}

func TestCancelFreesCapacity(t *testing.T) {
	f := newBookingFixture(t, false)
	f.calendar.ConcurrencyLimit = 1

	created, err := f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.NoError(t, err)

	_, err = f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	require.ErrorIs(t, err, ErrSlotConflict)

	require.NoError(t, f.booking.CancelReservation(context.Background(), created.ID))

	_, err = f.booking.Reserve(context.Background(), "main-salon", bookingRequest(f, "10:00"))
	assert.NoError(t, err)
}
