package usecase

import (
	"context"
	"testing"

	"salon-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpdateScheduleRejectsInvertedWindow(t *testing.T) {
	store := newFakeStore()
	schedule := NewScheduleService(store.repo(), zap.NewNop())

	_, err := schedule.UpdateSchedule(context.Background(), &request.UpdateScheduleRequest{
		Days: []request.DayScheduleEntry{
			{DayOfWeek: 1, IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, store.schedules)
}

func TestUpdateScheduleUpsertsDays(t *testing.T) {
	store := newFakeStore()
	schedule := NewScheduleService(store.repo(), zap.NewNop())

	resp, err := schedule.UpdateSchedule(context.Background(), &request.UpdateScheduleRequest{
		Days: []request.DayScheduleEntry{
			{DayOfWeek: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			{DayOfWeek: 0, IsOpen: false},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)
	assert.Equal(t, 0, resp.Days[0].DayOfWeek)
	assert.False(t, resp.Days[0].IsOpen)
	assert.Empty(t, resp.Days[0].OpenTime)
	assert.Equal(t, "09:00", resp.Days[1].OpenTime)
}

func TestRestPeriodLifecycle(t *testing.T) {
	store := newFakeStore()
	schedule := NewScheduleService(store.repo(), zap.NewNop())

	created, err := schedule.AddRestPeriod(context.Background(), &request.CreateRestPeriodRequest{
		DayOfWeek: 1,
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	require.Len(t, store.rests, 1)

	_, err = schedule.AddRestPeriod(context.Background(), &request.CreateRestPeriodRequest{
		DayOfWeek: 1,
		StartTime: "13:00",
		EndTime:   "12:30",
	})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, schedule.RemoveRestPeriod(context.Background(), created.ID))
	assert.Empty(t, store.rests)

	err = schedule.RemoveRestPeriod(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogServiceLifecycle(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store.repo(), zap.NewNop())

	created, err := catalog.CreateService(context.Background(), &request.CreateServiceRequest{
		Name:            "Haircut",
		DurationMinutes: 60,
		Price:           35,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := catalog.UpdateService(context.Background(), created.ID, &request.UpdateServiceRequest{
		Name:            "Haircut & Style",
		DurationMinutes: 75,
		Price:           45,
		IsActive:        false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Haircut & Style", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = catalog.UpdateService(context.Background(), uuid.NewString(), &request.UpdateServiceRequest{
		Name:            "Ghost",
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCalendarRejectsDuplicateSlug(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store.repo(), zap.NewNop())

	_, err := catalog.CreateCalendar(context.Background(), &request.CreateCalendarRequest{
		Slug: "main-salon", Name: "Main Salon", ConcurrencyLimit: 2,
	})
	require.NoError(t, err)

	_, err = catalog.CreateCalendar(context.Background(), &request.CreateCalendarRequest{
		Slug: "main-salon", Name: "Copy", ConcurrencyLimit: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetCalendarServicesVerifiesServices(t *testing.T) {
	store := newFakeStore()
	catalog := NewCatalogService(store.repo(), zap.NewNop())

	calendar, err := catalog.CreateCalendar(context.Background(), &request.CreateCalendarRequest{
		Slug: "main-salon", Name: "Main Salon", ConcurrencyLimit: 2,
	})
	require.NoError(t, err)

	service, err := catalog.CreateService(context.Background(), &request.CreateServiceRequest{
		Name: "Haircut", DurationMinutes: 60,
	})
	require.NoError(t, err)

	err = catalog.SetCalendarServices(context.Background(), calendar.ID, &request.SetCalendarServicesRequest{
		ServiceIDs: []string{service.ID},
	})
	require.NoError(t, err)

	err = catalog.SetCalendarServices(context.Background(), calendar.ID, &request.SetCalendarServicesRequest{
		ServiceIDs: []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
