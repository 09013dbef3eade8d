package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"meteocal/core/errors"
	"meteocal/modules/calendar/dto"
	eventEntity "meteocal/modules/event/entity"
	"meteocal/modules/storetest"

	"github.com/google/uuid"
)

func TestCreateCalendarOncePerUser(t *testing.T) {
	store := storetest.New()
	svc := NewCalendarService(store.Calendars(), time.UTC)
	owner := uuid.New()
	ctx := context.Background()

	cal, appErr := svc.CreateCalendar(ctx, owner, &dto.CalendarRequest{RainIsBad: true})
	if appErr != nil {
		t.Fatalf("CreateCalendar() error = %v", appErr)
	}
	if cal.OwnerID != owner || !cal.RainIsBad || cal.SnowIsBad {
		t.Fatalf("calendar = %+v", cal)
	}

	_, appErr = svc.CreateCalendar(ctx, owner, &dto.CalendarRequest{})
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("second CreateCalendar() error = %v, want already exists", appErr)
	}
}

func TestUpdatePreferences(t *testing.T) {
	store := storetest.New()
	svc := NewCalendarService(store.Calendars(), time.UTC)
	owner := uuid.New()
	ctx := context.Background()

	if _, appErr := svc.UpdatePreferences(ctx, owner, &dto.CalendarRequest{}); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("UpdatePreferences() without calendar error = %v, want not found", appErr)
	}

	if _, appErr := svc.CreateCalendar(ctx, owner, &dto.CalendarRequest{RainIsBad: true}); appErr != nil {
		t.Fatalf("CreateCalendar() error = %v", appErr)
	}
	if _, appErr := svc.UpdatePreferences(ctx, owner, &dto.CalendarRequest{CloudyIsBad: true, SnowIsBad: true}); appErr != nil {
		t.Fatalf("UpdatePreferences() error = %v", appErr)
	}

	got, appErr := svc.GetMyCalendar(ctx, owner)
	if appErr != nil {
		t.Fatalf("GetMyCalendar() error = %v", appErr)
	}
	if got.RainIsBad || !got.CloudyIsBad || !got.SnowIsBad {
		t.Fatalf("preferences = %+v", got)
	}
}

func TestExportICS(t *testing.T) {
	store := storetest.New()
	svc := NewCalendarService(store.Calendars(), time.UTC)
	owner := uuid.New()
	ctx := context.Background()
	if _, appErr := svc.CreateCalendar(ctx, owner, &dto.CalendarRequest{}); appErr != nil {
		t.Fatalf("CreateCalendar() error = %v", appErr)
	}
	cal, _ := store.Calendars().GetCalendarByOwner(ctx, owner)

	rain := "Rain"
	day := time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC)
	picnic := store.AddEvent(eventEntity.Event{OrganizerID: owner, Name: "Picnic", City: "Milan", Outdoor: true, Day: day, StartTime: "10:00", EndTime: "12:00", WeatherForecast: &rain}, cal.ID)
	store.AddEvent(eventEntity.Event{OrganizerID: owner, Name: "Dinner", City: "Turin", Day: day, StartTime: "20:00", EndTime: "22:00"}, cal.ID)
	store.AddEvent(eventEntity.Event{OrganizerID: uuid.New(), Name: "Elsewhere", City: "Rome", Day: day, StartTime: "09:00", EndTime: "10:00"})

	out, appErr := svc.ExportICS(ctx, owner)
	if appErr != nil {
		t.Fatalf("ExportICS() error = %v", appErr)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:" + picnic.ID.String(),
		"SUMMARY:Picnic",
		"SUMMARY:Dinner",
		"DESCRIPTION:Forecast: Rain",
		"DTSTART",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("export missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Elsewhere") {
		t.Fatal("export contains an event outside the calendar")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("VEVENT count = %d, want 2", got)
	}
}

func TestExportICSWithoutCalendar(t *testing.T) {
	svc := NewCalendarService(storetest.New().Calendars(), nil)
	if _, appErr := svc.ExportICS(context.Background(), uuid.New()); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("error = %v, want not found", appErr)
	}
}
