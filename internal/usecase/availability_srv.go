package usecase

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/slots"
	"salon-booking/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetDaySlots produces the candidate slots of one day for a service on
	// a public calendar. Stateless: slots are recomputed on every call.
	GetDaySlots(ctx context.Context, slug, serviceID, date string, tzOffset int) (*response.AvailabilityResponse, error)

	// GetServices lists the active services enabled on a public calendar.
	GetServices(ctx context.Context, slug string) ([]response.ServiceResponse, error)

	// GetStaff lists active staff members a booking can name.
	GetStaff(ctx context.Context) ([]response.StaffResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetDaySlots(ctx context.Context, slug, serviceID, date string, tzOffset int) (*response.AvailabilityResponse, error) {
	metrics.IncAvailabilityRequest()

	calendar, service, err := resolveBookable(ctx, s.repo, slug, serviceID)
	if err != nil {
		return nil, err
	}

	dayStart, weekday, err := localDayStartUTC(date, tzOffset)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByWeekday(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("load day schedule: %w", err)
	}

	resp := &response.AvailabilityResponse{Date: date, Slots: []response.SlotResponse{}}

	if schedule == nil || !schedule.IsOpen {
		return resp, nil
	}
	resp.IsOpen = true

	rests, err := s.repo.Schedule.FindRestPeriods(ctx, weekday)
	if err != nil {
		return nil, fmt.Errorf("load rest periods: %w", err)
	}

	// Prefetch the whole local day from the ledger in one query.
	dayEnd := dayStart.Add(24 * time.Hour)
	reservations, err := s.repo.Reservation.FindOverlapping(ctx, calendar.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	candidates, err := slots.BuildDay(
		dayStart,
		slots.DaySchedule{IsOpen: true, OpenTime: schedule.OpenTime, CloseTime: schedule.CloseTime},
		restsToSlots(rests),
		service.DurationMinutes,
		calendar.EffectiveLimit(),
		reservationsToIntervals(reservations),
	)
	if err != nil {
		return nil, fmt.Errorf("build slots: %w", err)
	}

	for _, c := range candidates {
		resp.Slots = append(resp.Slots, response.SlotResponse{
			Time:           c.Time,
			Available:      c.Available,
			RemainingSlots: c.Remaining,
		})
	}

	s.log.Debug("Availability computed",
		zap.String("calendar", slug),
		zap.String("date", date),
		zap.Int("slot_count", len(resp.Slots)),
	)

	return resp, nil
}

func (s *availabilityService) GetServices(ctx context.Context, slug string) ([]response.ServiceResponse, error) {
	calendar, err := s.repo.Calendar.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find calendar: %w", err)
	}
	if calendar == nil || !calendar.IsActive {
		return nil, fmt.Errorf("%w: calendar %s", ErrNotFound, slug)
	}

	services, err := s.repo.Calendar.FindServices(ctx, calendar.ID)
	if err != nil {
		return nil, fmt.Errorf("find calendar services: %w", err)
	}

	responses := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, response.ServiceToResponse(service))
	}

	return responses, nil
}

func (s *availabilityService) GetStaff(ctx context.Context) ([]response.StaffResponse, error) {
	staff, err := s.repo.Staff.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}

	responses := make([]response.StaffResponse, 0, len(staff))
	for _, member := range staff {
		responses = append(responses, response.StaffToResponse(member))
	}

	return responses, nil
}

// resolveBookable loads an active calendar by slug and a service that is
// active and enabled on it. Shared by the availability read path and the
// booking write path so both reject with the same error kinds.
func resolveBookable(ctx context.Context, repo *repository.Repository, slug, serviceID string) (*entity.BookingCalendar, *entity.Service, error) {
	calendar, err := repo.Calendar.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("find calendar: %w", err)
	}
	if calendar == nil || !calendar.IsActive {
		return nil, nil, fmt.Errorf("%w: calendar %s", ErrNotFound, slug)
	}

	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid service ID %s", ErrValidation, serviceID)
	}

	service, err := repo.Service.FindByID(ctx, serviceUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, nil, fmt.Errorf("%w: service %s", ErrNotFound, serviceID)
	}

	if !service.IsActive {
		return nil, nil, fmt.Errorf("%w: service %s is disabled", ErrServiceUnavailable, serviceID)
	}

	enabled, err := repo.Calendar.HasService(ctx, calendar.ID, service.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check calendar service: %w", err)
	}
	if !enabled {
		return nil, nil, fmt.Errorf("%w: service %s", ErrServiceUnavailable, serviceID)
	}

	return calendar, service, nil
}

func restsToSlots(rests []*entity.RestPeriod) []slots.RestPeriod {
	converted := make([]slots.RestPeriod, 0, len(rests))
	for _, rest := range rests {
		converted = append(converted, slots.RestPeriod{
			StartTime: rest.StartTime,
			EndTime:   rest.EndTime,
		})
	}
	return converted
}

func reservationsToIntervals(reservations []*entity.Reservation) []slots.Interval {
	intervals := make([]slots.Interval, 0, len(reservations))
	for _, res := range reservations {
		intervals = append(intervals, slots.Interval{
			Start: res.StartTime,
			End:   res.EndTime,
		})
	}
	return intervals
}
