package response

import (
	"salon-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
}

type CalendarResponse struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	ConcurrencyLimit int    `json:"concurrency_limit"`
	IsActive         bool   `json:"is_active"`
}

type DayScheduleResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

type RestPeriodResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScheduleResponse struct {
	Days        []DayScheduleResponse `json:"days"`
	RestPeriods []RestPeriodResponse  `json:"rest_periods"`
}

func StaffToResponse(staff *entity.Staff) StaffResponse {
	return StaffResponse{
		ID:   staff.ID.String(),
		Name: staff.Name,
	}
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID.String(),
		Name:            service.Name,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		IsActive:        service.IsActive,
	}
}

func CalendarToResponse(calendar *entity.BookingCalendar) CalendarResponse {
	return CalendarResponse{
		ID:               calendar.ID.String(),
		Slug:             calendar.Slug,
		Name:             calendar.Name,
		ConcurrencyLimit: calendar.EffectiveLimit(),
		IsActive:         calendar.IsActive,
	}
}

func DayScheduleToResponse(schedule *entity.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{
		DayOfWeek: int(schedule.DayOfWeek),
		IsOpen:    schedule.IsOpen,
	}
	if schedule.IsOpen {
		resp.OpenTime = schedule.OpenTime
		resp.CloseTime = schedule.CloseTime
	}
	return resp
}

func RestPeriodToResponse(rest *entity.RestPeriod) RestPeriodResponse {
	return RestPeriodResponse{
		ID:        rest.ID.String(),
		DayOfWeek: int(rest.DayOfWeek),
		StartTime: rest.StartTime,
		EndTime:   rest.EndTime,
	}
}
