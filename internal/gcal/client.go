// Package gcal pushes reservations to an external Google Calendar. Sync is
// best-effort: the reservation row is the source of truth and a sync failure
// is logged and counted, never propagated to the booking flow.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"salon-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is the outbound payload for one reservation.
type Event struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

// Syncer is consumed by the booking service. CreateEvent returns the opaque
// external event id, stored on the reservation for later delete.
type Syncer interface {
	CreateEvent(ctx context.Context, event Event) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Client talks to the Google Calendar API with a service-account key.
type Client struct {
	svc        *calendar.Service
	calendarID string
	log        *zap.Logger
}

// New builds a calendar client, or a disabled no-op syncer when no
// credentials are configured.
func New(ctx context.Context, config utils.GoogleConfig, log *zap.Logger) (Syncer, error) {
	if config.CredentialsFile == "" || config.CalendarID == "" {
		log.Info("Calendar sync disabled: no Google credentials configured")
		return &Disabled{}, nil
	}

	data, err := os.ReadFile(config.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Client{
		svc:        svc,
		calendarID: config.CalendarID,
		log:        log.With(zap.String("service", "gcal")),
	}, nil
}

func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	apiEvent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.UTC().Format(time.RFC3339),
		},
	}
	for _, email := range event.Attendees {
		apiEvent.Attendees = append(apiEvent.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(c.calendarID, apiEvent).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	c.log.Info("Calendar event created",
		zap.String("event_id", created.Id),
		zap.String("summary", event.Summary),
	)

	return created.Id, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete calendar event %s: %w", eventID, err)
	}

	c.log.Info("Calendar event deleted", zap.String("event_id", eventID))
	return nil
}

// Disabled satisfies Syncer when sync is not configured.
type Disabled struct{}

func (Disabled) CreateEvent(ctx context.Context, event Event) (string, error) { return "", nil }
func (Disabled) DeleteEvent(ctx context.Context, eventID string) error       { return nil }
