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
	"salon-booking/internal/slots"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error)
	AddRestPeriod(ctx context.Context, req *request.CreateRestPeriodRequest) (*response.RestPeriodResponse, error)
	RemoveRestPeriod(ctx context.Context, restPeriodID string) error
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context) (*response.ScheduleResponse, error) {
	days, err := s.repo.Schedule.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	rests, err := s.repo.Schedule.FindAllRestPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rest periods: %w", err)
	}

	resp := &response.ScheduleResponse{
		Days:        make([]response.DayScheduleResponse, 0, len(days)),
		RestPeriods: make([]response.RestPeriodResponse, 0, len(rests)),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, response.DayScheduleToResponse(day))
	}
	for _, rest := range rests {
		resp.RestPeriods = append(resp.RestPeriods, response.RestPeriodToResponse(rest))
	}

	return resp, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, req *request.UpdateScheduleRequest) (*response.ScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	for _, entry := range req.Days {
		if entry.IsOpen {
			openMin, err := slots.ParseClock(entry.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid open time %q", ErrValidation, entry.OpenTime)
			}
			closeMin, err := slots.ParseClock(entry.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid close time %q", ErrValidation, entry.CloseTime)
			}
			if openMin >= closeMin {
				return nil, fmt.Errorf("%w: open time %s must precede close time %s", ErrValidation, entry.OpenTime, entry.CloseTime)
			}
		}

		schedule := &entity.DaySchedule{
			ID:        uuid.New(),
			UpdatedAt: now,
			DayOfWeek: time.Weekday(entry.DayOfWeek),
			IsOpen:    entry.IsOpen,
			OpenTime:  entry.OpenTime,
			CloseTime: entry.CloseTime,
		}
		if err := s.repo.Schedule.Upsert(ctx, schedule); err != nil {
			return nil, fmt.Errorf("save schedule for weekday %d: %w", entry.DayOfWeek, err)
		}
	}

	s.log.Info("Schedule updated", zap.Int("day_count", len(req.Days)))
	return s.GetSchedule(ctx)
}

func (s *scheduleService) AddRestPeriod(ctx context.Context, req *request.CreateRestPeriodRequest) (*response.RestPeriodResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	startMin, err := slots.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrValidation, req.StartTime)
	}
	endMin, err := slots.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrValidation, req.EndTime)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("%w: start time %s must precede end time %s", ErrValidation, req.StartTime, req.EndTime)
	}

	rest := &entity.RestPeriod{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		DayOfWeek: time.Weekday(req.DayOfWeek),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Schedule.CreateRestPeriod(ctx, rest); err != nil {
		return nil, fmt.Errorf("create rest period: %w", err)
	}

	s.log.Info("Rest period added",
		zap.Int("day_of_week", req.DayOfWeek),
		zap.String("start", req.StartTime),
		zap.String("end", req.EndTime),
	)

	resp := response.RestPeriodToResponse(rest)
	return &resp, nil
}

func (s *scheduleService) RemoveRestPeriod(ctx context.Context, restPeriodID string) error {
	id, err := uuid.Parse(restPeriodID)
	if err != nil {
		return fmt.Errorf("%w: invalid rest period ID %s", ErrValidation, restPeriodID)
	}

	if err := s.repo.Schedule.DeleteRestPeriod(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: rest period %s", ErrNotFound, restPeriodID)
		}
		return fmt.Errorf("delete rest period %s: %w", restPeriodID, err)
	}

	s.log.Info("Rest period removed", zap.String("rest_period_id", restPeriodID))
	return nil
}
