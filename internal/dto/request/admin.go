package request

// DayScheduleEntry is one weekday in the seven-day schedule upsert.
// DayOfWeek follows time.Weekday: 0 = Sunday.
type DayScheduleEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time" validate:"required_if=IsOpen true,omitempty,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"required_if=IsOpen true,omitempty,datetime=15:04"`
}

type UpdateScheduleRequest struct {
	Days []DayScheduleEntry `json:"days" validate:"required,min=1,max=7,dive"`
}

type CreateRestPeriodRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Price           float64 `json:"price" validate:"min=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Price           float64 `json:"price" validate:"min=0"`
	IsActive        bool    `json:"is_active"`
}

type CreateCalendarRequest struct {
	Slug             string `json:"slug" validate:"required,min=2,max=50"`
	Name             string `json:"name" validate:"required,min=2,max=100"`
	ConcurrencyLimit int    `json:"concurrency_limit" validate:"min=0,max=100"`
	IsActive         *bool  `json:"is_active,omitempty"`
}

type SetCalendarServicesRequest struct {
	ServiceIDs []string `json:"service_ids" validate:"required,dive,uuid4"`
}
