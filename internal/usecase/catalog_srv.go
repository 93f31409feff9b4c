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
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the admin-facing service and calendar catalog.
type CatalogService interface {
	CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	ListServices(ctx context.Context) ([]response.ServiceResponse, error)

	CreateCalendar(ctx context.Context, req *request.CreateCalendarRequest) (*response.CalendarResponse, error)
	ListCalendars(ctx context.Context) ([]response.CalendarResponse, error)
	SetCalendarServices(ctx context.Context, calendarID string, req *request.SetCalendarServicesRequest) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateService(ctx context.Context, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now().UTC()
	service := &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("name", service.Name),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid service ID %s", ErrValidation, serviceID)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, fmt.Errorf("%w: service %s", ErrNotFound, serviceID)
	}

	service.Name = req.Name
	service.DurationMinutes = req.DurationMinutes
	service.Price = req.Price
	service.IsActive = req.IsActive
	service.UpdatedAt = time.Now().UTC()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, serviceID)
		}
		return nil, fmt.Errorf("update service %s: %w", serviceID, err)
	}

	s.log.Info("Service updated", zap.String("service_id", serviceID))

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	responses := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, response.ServiceToResponse(service))
	}

	return responses, nil
}

func (s *catalogService) CreateCalendar(ctx context.Context, req *request.CreateCalendarRequest) (*response.CalendarResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Calendar.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("find calendar: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: slug %s is already in use", ErrValidation, req.Slug)
	}

	now := time.Now().UTC()
	calendar := &entity.BookingCalendar{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Slug:             req.Slug,
		Name:             req.Name,
		ConcurrencyLimit: req.ConcurrencyLimit,
		IsActive:         true,
	}
	if req.IsActive != nil {
		calendar.IsActive = *req.IsActive
	}

	if err := s.repo.Calendar.Create(ctx, calendar); err != nil {
		return nil, fmt.Errorf("create calendar: %w", err)
	}

	s.log.Info("Calendar created",
		zap.String("calendar_id", calendar.ID.String()),
		zap.String("slug", calendar.Slug),
	)

	resp := response.CalendarToResponse(calendar)
	return &resp, nil
}

func (s *catalogService) ListCalendars(ctx context.Context) ([]response.CalendarResponse, error) {
	calendars, err := s.repo.Calendar.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}

	responses := make([]response.CalendarResponse, 0, len(calendars))
	for _, calendar := range calendars {
		responses = append(responses, response.CalendarToResponse(calendar))
	}

	return responses, nil
}

func (s *catalogService) SetCalendarServices(ctx context.Context, calendarID string, req *request.SetCalendarServicesRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(calendarID)
	if err != nil {
		return fmt.Errorf("%w: invalid calendar ID %s", ErrValidation, calendarID)
	}

	calendar, err := s.repo.Calendar.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find calendar: %w", err)
	}
	if calendar == nil {
		return fmt.Errorf("%w: calendar %s", ErrNotFound, calendarID)
	}

	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: invalid service ID %s", ErrValidation, raw)
		}

		service, err := s.repo.Service.FindByID(ctx, serviceID)
		if err != nil {
			return fmt.Errorf("find service: %w", err)
		}
		if service == nil {
			return fmt.Errorf("%w: service %s", ErrNotFound, raw)
		}

		serviceIDs = append(serviceIDs, serviceID)
	}

	if err := s.repo.Calendar.SetServices(ctx, id, serviceIDs); err != nil {
		return fmt.Errorf("set calendar services: %w", err)
	}

	s.log.Info("Calendar services updated",
		zap.String("calendar_id", calendarID),
		zap.Int("service_count", len(serviceIDs)),
	)

	return nil
}
