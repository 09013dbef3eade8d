package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"meteocal/core/constants"
	calendarEntity "meteocal/modules/calendar/entity"
	eventEntity "meteocal/modules/event/entity"
	notificationService "meteocal/modules/notification/service"
	"meteocal/modules/storetest"

	"github.com/google/uuid"
)

var (
	testNow      = time.Date(2030, 6, 10, 15, 0, 0, 0, time.UTC)
	testTomorrow = time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC)
)

type alertFixture struct {
	store   *storetest.Store
	tx      *storetest.Tx
	service *AlertService
}

func newAlertFixture() *alertFixture {
	store := storetest.New()
	tx := store.Tx()
	notifier := notificationService.NewNotificationService(store.Notifications())
	svc := NewAlertService(store.Users(), store.Events(), store.Calendars(), notifier, tx, time.UTC)
	svc.SetClock(func() time.Time { return testNow })
	return &alertFixture{store: store, tx: tx, service: svc}
}

func forecast(text string) *string {
	return &text
}

func outdoorEvent(organizer uuid.UUID, name string, day time.Time, weather string) eventEntity.Event {
	return eventEntity.Event{
		OrganizerID:     organizer,
		Name:            name,
		City:            "Milan",
		Outdoor:         true,
		Day:             day,
		StartTime:       "10:00",
		EndTime:         "12:00",
		WeatherForecast: forecast(weather),
	}
}

func TestRunAlertsNotifiesEveryMatchingCalendarOnce(t *testing.T) {
	f := newAlertFixture()
	ctx := context.Background()

	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	bob := f.store.AddUser("Bob", "Marley", "bob@example.com")
	eve := f.store.AddUser("Eve", "Online", "eve@example.com")
	adaCal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true})
	bobCal := f.store.AddCalendar(bob.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true, SnowIsBad: true})
	eveCal := f.store.AddCalendar(eve.ID, calendarEntity.BadWeatherPreferences{SnowIsBad: true})

	picnic := f.store.AddEvent(outdoorEvent(ada.ID, "Picnic", testTomorrow, "Heavy rain"), adaCal.ID, bobCal.ID, eveCal.ID)

	summary, err := f.service.RunAlertsForUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("RunAlertsForUser() error = %v", err)
	}
	if summary.Date != "2030-06-11" {
		t.Fatalf("summary date = %q, want 2030-06-11", summary.Date)
	}
	if summary.EventsProcessed != 1 || summary.NotificationsSent != 2 {
		t.Fatalf("summary = %+v, want 1 event and 2 notifications", summary)
	}

	for _, u := range []uuid.UUID{ada.ID, bob.ID} {
		got := f.store.NotificationsFor(u)
		if len(got) != 1 {
			t.Fatalf("user %s got %d notifications, want 1", u, len(got))
		}
		n := got[0]
		if n.Title != constants.BadWeatherTitle || n.IsInvitation || n.EventID != picnic.ID {
			t.Fatalf("unexpected notification %+v", n)
		}
		if !strings.Contains(n.Content, `"Picnic"`) {
			t.Fatalf("content %q does not name the event", n.Content)
		}
	}
	if got := f.store.NotificationsFor(eve.ID); len(got) != 0 {
		t.Fatalf("snow-only calendar was notified: %+v", got)
	}

	stored, _ := f.store.Event(picnic.ID)
	if !stored.BadWeatherAlertSent {
		t.Fatal("alert flag not set")
	}

	again, err := f.service.RunAlertsForUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("second RunAlertsForUser() error = %v", err)
	}
	if again.EventsProcessed != 0 || again.NotificationsSent != 0 {
		t.Fatalf("second run summary = %+v, want nothing", again)
	}
	if got := len(f.store.NotificationsForEvent(picnic.ID)); got != 2 {
		t.Fatalf("notifications after second run = %d, want 2", got)
	}
}

func TestRunAlertsRollsBackFlagWhenNotifyFails(t *testing.T) {
	f := newAlertFixture()
	ctx := context.Background()
	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	cal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true})
	picnic := f.store.AddEvent(outdoorEvent(ada.ID, "Picnic", testTomorrow, "Heavy rain"), cal.ID)

	errInsert := errors.New("insert failed")
	f.store.FailNotifications(errInsert)
	if _, err := f.service.RunAlertsForUser(ctx, ada.ID); !errors.Is(err, errInsert) {
		t.Fatalf("RunAlertsForUser() error = %v, want %v", err, errInsert)
	}
	if f.tx.Rollbacks != 1 {
		t.Fatalf("rollbacks = %d, want 1", f.tx.Rollbacks)
	}
	stored, _ := f.store.Event(picnic.ID)
	if stored.BadWeatherAlertSent {
		t.Fatal("alert flag kept after a failed run")
	}

	f.store.FailNotifications(nil)
	summary, err := f.service.RunAlertsForUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("retry RunAlertsForUser() error = %v", err)
	}
	if summary.EventsProcessed != 1 || summary.NotificationsSent != 1 {
		t.Fatalf("retry summary = %+v, want 1 event and 1 notification", summary)
	}
	stored, _ = f.store.Event(picnic.ID)
	if !stored.BadWeatherAlertSent {
		t.Fatal("alert flag not set after retry")
	}
}

func TestRunAlertsFlagsEventEvenWithoutBadWeather(t *testing.T) {
	f := newAlertFixture()
	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	cal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true})
	sunny := f.store.AddEvent(outdoorEvent(ada.ID, "Hike", testTomorrow, "Sunny"), cal.ID)

	summary, err := f.service.RunAlertsForUser(context.Background(), ada.ID)
	if err != nil {
		t.Fatalf("RunAlertsForUser() error = %v", err)
	}
	if summary.EventsProcessed != 1 || summary.NotificationsSent != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	stored, _ := f.store.Event(sunny.ID)
	if !stored.BadWeatherAlertSent {
		t.Fatal("alert flag not set for a checked event")
	}
}

func TestRunAlertsSkipsIneligibleEvents(t *testing.T) {
	f := newAlertFixture()
	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	cal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true, CloudyIsBad: true, SnowIsBad: true})

	indoor := outdoorEvent(ada.ID, "Museum", testTomorrow, "Rain")
	indoor.Outdoor = false
	alerted := outdoorEvent(ada.ID, "Regatta", testTomorrow, "Rain")
	alerted.BadWeatherAlertSent = true
	later := outdoorEvent(ada.ID, "Concert", testTomorrow.AddDate(0, 0, 1), "Rain")
	noForecast := outdoorEvent(ada.ID, "Market", testTomorrow, "")
	noForecast.WeatherForecast = nil

	f.store.AddEvent(indoor, cal.ID)
	f.store.AddEvent(alerted, cal.ID)
	f.store.AddEvent(later, cal.ID)
	f.store.AddEvent(noForecast, cal.ID)

	summary, err := f.service.RunAlertsForUser(context.Background(), ada.ID)
	if err != nil {
		t.Fatalf("RunAlertsForUser() error = %v", err)
	}
	if summary.EventsProcessed != 1 || summary.NotificationsSent != 0 {
		t.Fatalf("summary = %+v, want only the market checked", summary)
	}
	if got := f.store.NotificationsFor(ada.ID); len(got) != 0 {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestRunAlertsUnknownUser(t *testing.T) {
	f := newAlertFixture()

	summary, err := f.service.RunAlertsForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("RunAlertsForUser() error = %v", err)
	}
	if summary.EventsProcessed != 0 || summary.NotificationsSent != 0 {
		t.Fatalf("summary = %+v, want empty", summary)
	}
	if f.tx.Calls != 0 {
		t.Fatalf("transaction opened %d times for an unknown user", f.tx.Calls)
	}
}

func TestRunAlertsUsesConfiguredTimezone(t *testing.T) {
	f := newAlertFixture()
	tokyo := time.FixedZone("JST", 9*60*60)
	f.service.loc = tokyo
	// 20:00 UTC on June 10 is already June 11 in Tokyo.
	f.service.SetClock(func() time.Time { return time.Date(2030, 6, 10, 20, 0, 0, 0, time.UTC) })

	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	cal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{RainIsBad: true})
	f.store.AddEvent(outdoorEvent(ada.ID, "Picnic", testTomorrow.AddDate(0, 0, 1), "Rain"), cal.ID)

	summary, err := f.service.RunAlertsForUser(context.Background(), ada.ID)
	if err != nil {
		t.Fatalf("RunAlertsForUser() error = %v", err)
	}
	if summary.Date != "2030-06-12" || summary.NotificationsSent != 1 {
		t.Fatalf("summary = %+v, want one alert for 2030-06-12", summary)
	}
}

func TestAfterLoginRunsAlerts(t *testing.T) {
	f := newAlertFixture()
	ada := f.store.AddUser("Ada", "Lovelace", "ada@example.com")
	cal := f.store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{CloudyIsBad: true})
	f.store.AddEvent(outdoorEvent(ada.ID, "Kite flying", testTomorrow, "Cloudy"), cal.ID)

	if err := f.service.AfterLogin(context.Background(), ada.ID); err != nil {
		t.Fatalf("AfterLogin() error = %v", err)
	}
	if got := f.store.NotificationsFor(ada.ID); len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
}
