package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/gcal"
	"salon-booking/internal/slots"
	"salon-booking/pkg/metrics"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const syncTimeout = 10 * time.Second

type BookingService interface {
	// Reserve is the write-time arbiter: it re-validates the requested slot
	// and atomically commits a reservation only if capacity remains.
	Reserve(ctx context.Context, slug string, req *request.CreateBookingRequest) (*response.ReservationResponse, error)

	// Finalize converts an externally gated booking intent into a confirmed
	// reservation exactly once. Safe to retry.
	Finalize(ctx context.Context, req *request.FinalizeBookingRequest) (*response.ReservationResponse, error)

	GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, reservationID string) error
}

type bookingService struct {
	repo           *repository.Repository
	syncer         gcal.Syncer
	requirePayment bool
	log            *zap.Logger
}

func NewBookingService(repo *repository.Repository, syncer gcal.Syncer, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:           repo,
		syncer:         syncer,
		requirePayment: config.Booking.RequirePayment,
		log:            log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Reserve(ctx context.Context, slug string, req *request.CreateBookingRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	calendar, service, err := resolveBookable(ctx, s.repo, slug, req.ServiceID)
	if err != nil {
		return nil, err
	}

	startUTC, startMin, weekday, err := s.resolveStart(req.Date, req.Time, req.TzOffset)
	if err != nil {
		return nil, err
	}
	endUTC := startUTC.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// Policy checks run before any write. The capacity check is NOT done
	// here: it happens inside the insert transaction, which is the only
	// race-safe place for it.
	if err := s.checkBusinessHours(ctx, weekday, startMin, service.DurationMinutes); err != nil {
		return nil, err
	}

	var staffID *uuid.UUID
	if req.StaffID != nil {
		resolved, err := s.resolveStaff(ctx, *req.StaffID)
		if err != nil {
			return nil, err
		}
		staffID = resolved
	}

	now := time.Now().UTC()
	client, err := s.repo.Client.ResolveOrCreate(ctx, &entity.Client{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  req.ClientName,
		Phone: req.ClientPhone,
		Email: req.ClientEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	status := entity.ReservationStatusConfirmed
	if s.requirePayment {
		status = entity.ReservationStatusPending
	}

	reservation := &entity.Reservation{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Code:       utils.GenerateReservationCode(),
		CalendarID: calendar.ID,
		ServiceID:  service.ID,
		ClientID:   client.ID,
		StaffID:    staffID,
		StartTime:  startUTC,
		EndTime:    endUTC,
		Status:     status,
		Notes:      req.Notes,
	}

	if err := s.repo.Reservation.CreateWithCapacity(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			metrics.IncReservationConflict()
			s.log.Info("Reservation lost capacity race",
				zap.String("calendar", slug),
				zap.Time("start", startUTC),
			)
			return nil, ErrSlotConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: calendar %s", ErrNotFound, slug)
		}
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("calendar", slug),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	metrics.IncReservationCreated(string(status))
	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("calendar", slug),
		zap.String("status", string(status)),
		zap.Time("start", startUTC),
	)

	s.pushCalendarEvent(reservation, service, client)

	resp := response.ReservationToResponse(reservation, service, client)
	return &resp, nil
}

func (s *bookingService) Finalize(ctx context.Context, req *request.FinalizeBookingRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, req.ReservationID)
	}

	existing, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}

	if existing != nil {
		return s.finalizeExisting(ctx, existing)
	}

	return s.finalizeFromIntent(ctx, reservationID, req)
}

// finalizeExisting handles the normal pending -> confirmed transition.
// Confirmed and cancelled are terminal: repeated webhook deliveries get the
// same response without touching the row again.
func (s *bookingService) finalizeExisting(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	switch reservation.Status {
	case entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled:
		return s.buildResponse(ctx, reservation)
	}

	confirmed, err := s.repo.Reservation.ConfirmPending(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("confirm reservation: %w", err)
	}
	if !confirmed {
		// A concurrent webhook delivery won the transition; re-read for the
		// current state.
		refreshed, err := s.repo.Reservation.FindByID(ctx, reservation.ID)
		if err != nil || refreshed == nil {
			return nil, fmt.Errorf("reload reservation %s: %w", reservation.ID.String(), err)
		}
		return s.buildResponse(ctx, refreshed)
	}

	reservation.Status = entity.ReservationStatusConfirmed
	metrics.IncReservationCreated(string(entity.ReservationStatusConfirmed))
	s.log.Info("Reservation finalized",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
	)

	if reservation.ExternalEventID == nil {
		service, client, err := s.loadRelated(ctx, reservation)
		if err == nil {
			s.pushCalendarEvent(reservation, service, client)
		}
	}

	return s.buildResponse(ctx, reservation)
}

// finalizeFromIntent materializes a reservation whose pending row never made
// it to the store (the gate callback can outrun or outlive the original
// request). The slot was claimed when the intent was created, so no
// capacity re-check happens here.
func (s *bookingService) finalizeFromIntent(ctx context.Context, reservationID uuid.UUID, req *request.FinalizeBookingRequest) (*response.ReservationResponse, error) {
	if req.CalendarSlug == "" || req.ServiceID == "" || req.StartTime == "" || req.ClientName == "" || req.ClientPhone == "" {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID.String())
	}

	calendar, service, err := resolveBookable(ctx, s.repo, req.CalendarSlug, req.ServiceID)
	if err != nil {
		return nil, err
	}

	startUTC, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrValidation, req.StartTime)
	}
	startUTC = startUTC.UTC()

	now := time.Now().UTC()
	client, err := s.repo.Client.ResolveOrCreate(ctx, &entity.Client{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  req.ClientName,
		Phone: req.ClientPhone,
		Email: req.ClientEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	reservation := &entity.Reservation{
		Base:       entity.Base{ID: reservationID, CreatedAt: now, UpdatedAt: now},
		Code:       utils.GenerateReservationCode(),
		CalendarID: calendar.ID,
		ServiceID:  service.ID,
		ClientID:   client.ID,
		StartTime:  startUTC,
		EndTime:    startUTC.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Status:     entity.ReservationStatusConfirmed,
		Notes:      req.Notes,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create finalized reservation: %w", err)
	}

	metrics.IncReservationCreated(string(entity.ReservationStatusConfirmed))
	s.log.Info("Reservation materialized at finalize",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
	)

	s.pushCalendarEvent(reservation, service, client)

	resp := response.ReservationToResponse(reservation, service, client)
	return &resp, nil
}

func (s *bookingService) GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	return s.buildResponse(ctx, reservation)
}

func (s *bookingService) CancelReservation(ctx context.Context, reservationID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("%w: invalid reservation ID %s", ErrValidation, reservationID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find reservation: %w", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationID)
	}

	if reservation.Status == entity.ReservationStatusCancelled {
		return nil
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, entity.ReservationStatusCancelled); err != nil {
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	metrics.IncReservationCancelled()
	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("code", reservation.Code),
	)

	if reservation.ExternalEventID != nil {
		s.removeCalendarEvent(*reservation.ExternalEventID)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) resolveStart(date, clock string, tzOffset int) (time.Time, int, time.Weekday, error) {
	dayStart, weekday, err := localDayStartUTC(date, tzOffset)
	if err != nil {
		return time.Time{}, 0, 0, err
	}

	startMin, err := slots.ParseClock(clock)
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("%w: invalid time %q", ErrValidation, clock)
	}

	return dayStart.Add(time.Duration(startMin) * time.Minute), startMin, weekday, nil
}

func (s *bookingService) checkBusinessHours(ctx context.Context, weekday time.Weekday, startMin, durationMinutes int) error {
	schedule, err := s.repo.Schedule.FindByWeekday(ctx, weekday)
	if err != nil {
		return fmt.Errorf("load day schedule: %w", err)
	}
	if schedule == nil || !schedule.IsOpen {
		return fmt.Errorf("%w: closed on this day", ErrOutsideBusinessHours)
	}

	openMin, err := slots.ParseClock(schedule.OpenTime)
	if err != nil {
		return fmt.Errorf("parse open time: %w", err)
	}
	closeMin, err := slots.ParseClock(schedule.CloseTime)
	if err != nil {
		return fmt.Errorf("parse close time: %w", err)
	}

	endMin := startMin + durationMinutes
	if startMin < openMin || endMin > closeMin {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideBusinessHours, schedule.OpenTime, schedule.CloseTime)
	}

	rests, err := s.repo.Schedule.FindRestPeriods(ctx, weekday)
	if err != nil {
		return fmt.Errorf("load rest periods: %w", err)
	}
	// A rest period that cannot be parsed blocks the booking rather than
	// being skipped; a malformed blackout row must not silently open up.
	for _, rest := range rests {
		restStart, err := slots.ParseClock(rest.StartTime)
		if err != nil {
			return fmt.Errorf("parse rest period start: %w", err)
		}
		restEnd, err := slots.ParseClock(rest.EndTime)
		if err != nil {
			return fmt.Errorf("parse rest period end: %w", err)
		}
		if restStart < endMin && restEnd > startMin {
			return fmt.Errorf("%w: %s-%s", ErrRestPeriodBlocked, rest.StartTime, rest.EndTime)
		}
	}

	return nil
}

func (s *bookingService) resolveStaff(ctx context.Context, staffID string) (*uuid.UUID, error) {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff ID %s", ErrValidation, staffID)
	}

	staff, err := s.repo.Staff.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find staff: %w", err)
	}
	if staff == nil || !staff.IsActive {
		return nil, fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
	}

	return &staff.ID, nil
}

func (s *bookingService) loadRelated(ctx context.Context, reservation *entity.Reservation) (*entity.Service, *entity.Client, error) {
	service, err := s.repo.Service.FindByID(ctx, reservation.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.repo.Client.FindByID(ctx, reservation.ClientID)
	if err != nil {
		return nil, nil, err
	}
	return service, client, nil
}

func (s *bookingService) buildResponse(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	service, client, err := s.loadRelated(ctx, reservation)
	if err != nil {
		return nil, fmt.Errorf("load reservation details: %w", err)
	}

	resp := response.ReservationToResponse(reservation, service, client)
	return &resp, nil
}

// pushCalendarEvent syncs the reservation to the external calendar.
// Best-effort: failures are logged and counted, never returned. A fresh
// context keeps the sync alive past the caller's request deadline.
func (s *bookingService) pushCalendarEvent(reservation *entity.Reservation, service *entity.Service, client *entity.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	event := gcal.Event{
		Summary:     fmt.Sprintf("%s: %s", service.Name, client.Name),
		Description: fmt.Sprintf("Reservation %s for %s (%s)", reservation.Code, client.Name, client.Phone),
		Start:       reservation.StartTime,
		End:         reservation.EndTime,
	}
	if client.Email != nil {
		event.Attendees = []string{*client.Email}
	}

	eventID, err := s.syncer.CreateEvent(ctx, event)
	if err != nil {
		metrics.IncCalendarSyncFailure()
		s.log.Warn("Calendar sync failed",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return
	}
	if eventID == "" {
		return
	}

	if err := s.repo.Reservation.SetExternalEventID(ctx, reservation.ID, eventID); err != nil {
		s.log.Warn("Failed to store external event ID",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return
	}
	reservation.ExternalEventID = &eventID
}

func (s *bookingService) removeCalendarEvent(eventID string) {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if err := s.syncer.DeleteEvent(ctx, eventID); err != nil {
		metrics.IncCalendarSyncFailure()
		s.log.Warn("Calendar event delete failed",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
	}
}
