package google

import (
	"context"
	"fmt"
	"time"

	"github.com/chuwg/taskflow/internal/config"
	"github.com/chuwg/taskflow/pkg/calendar"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventsReader is the slice of the calendar service the exporter needs.
type EventsReader interface {
	EventsBetween(ctx context.Context, from, to time.Time) ([]calendar.Event, error)
}

type ExportResult struct {
	Exported int `json:"exported"`
}

// Exporter pushes calendar events, native and derived alike, to the
// configured Google calendar.
type Exporter struct {
	auth       *Auth
	events     EventsReader
	calendarId string
}

func NewExporter(auth *Auth, events EventsReader, cfg config.Application) *Exporter {
	return &Exporter{
		auth:       auth,
		events:     events,
		calendarId: cfg.Google.CalendarId,
	}
}

func (e *Exporter) Export(ctx context.Context, from, to time.Time) (ExportResult, error) {
	client, err := e.auth.Client(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return ExportResult{}, fmt.Errorf("unable to build Google Calendar client: %w", err)
	}

	events, err := e.events.EventsBetween(ctx, from, to)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to list events to export: %w", err)
	}

	exported := 0
	for _, event := range events {
		log.Debugf("Exporting event %s to calendar %s", event.ID, e.calendarId)
		if _, err := service.Events.Insert(e.calendarId, toGoogleEvent(event)).Do(); err != nil {
			return ExportResult{Exported: exported},
				fmt.Errorf("unable to insert event %s in Google Calendar: %w", event.ID, err)
		}
		exported++
	}
	return ExportResult{Exported: exported}, nil
}

func toGoogleEvent(event calendar.Event) *gcal.Event {
	if event.AllDay {
		return &gcal.Event{
			Summary:     event.Title,
			Description: event.Description,
			Location:    event.Location,
			Start:       &gcal.EventDateTime{Date: event.StartTime.Format("2006-01-02")},
			End:         &gcal.EventDateTime{Date: event.End().AddDate(0, 0, 1).Format("2006-01-02")},
		}
	}

	end := event.End()
	if !end.After(event.StartTime) {
		// point events get a nominal duration so they render in Google
		end = event.StartTime.Add(time.Hour)
	}
	return &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start:       &gcal.EventDateTime{DateTime: event.StartTime.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
}
