package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ClientResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

type ReservationResponse struct {
	ID        string                   `json:"id"`
	Code      string                   `json:"code"`
	Service   ServiceResponse          `json:"service"`
	StartTime string                   `json:"start_time"` // ISO-8601 UTC
	EndTime   string                   `json:"end_time"`
	Status    entity.ReservationStatus `json:"status"`
	Client    ClientResponse           `json:"client"`
	StaffID   *string                  `json:"staff_id,omitempty"`
	Notes     *string                  `json:"notes,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

func ClientToResponse(client *entity.Client) ClientResponse {
	return ClientResponse{
		ID:    client.ID.String(),
		Name:  client.Name,
		Phone: client.Phone,
		Email: client.Email,
	}
}

func ReservationToResponse(res *entity.Reservation, service *entity.Service, client *entity.Client) ReservationResponse {
	resp := ReservationResponse{
		ID:        res.ID.String(),
		Code:      res.Code,
		StartTime: res.StartTime.UTC().Format(time.RFC3339),
		EndTime:   res.EndTime.UTC().Format(time.RFC3339),
		Status:    res.Status,
		Notes:     res.Notes,
		CreatedAt: res.CreatedAt,
	}
	if service != nil {
		resp.Service = ServiceToResponse(service)
	}
	if client != nil {
		resp.Client = ClientToResponse(client)
	}
	if res.StaffID != nil {
		staffID := res.StaffID.String()
		resp.StaffID = &staffID
	}
	return resp
}
