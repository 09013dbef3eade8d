package service

import (
	"context"
	"testing"
	"time"

	"meteocal/core/errors"
	calendarEntity "meteocal/modules/calendar/entity"
	eventEntity "meteocal/modules/event/entity"
	notificationEntity "meteocal/modules/notification/entity"
	notificationService "meteocal/modules/notification/service"
	"meteocal/modules/storetest"

	"github.com/google/uuid"
)

type invitationFixture struct {
	store    *storetest.Store
	notifier *notificationService.NotificationService
	service  *InvitationService

	organizerID uuid.UUID
	guestID     uuid.UUID
	guestCalID  uuid.UUID
	eventID     uuid.UUID
	inviteID    uuid.UUID
}

func newInvitationFixture(t *testing.T) *invitationFixture {
	t.Helper()
	store := storetest.New()
	notifier := notificationService.NewNotificationService(store.Notifications())
	svc := NewInvitationService(store.Invitations(), notifier, store.Events(), store.Calendars(), store.Users(), store.Tx())

	ada := store.AddUser("Ada", "Lovelace", "ada@example.com")
	bob := store.AddUser("Bob", "Marley", "bob@example.com")
	adaCal := store.AddCalendar(ada.ID, calendarEntity.BadWeatherPreferences{})
	bobCal := store.AddCalendar(bob.ID, calendarEntity.BadWeatherPreferences{})
	event := store.AddEvent(eventEntity.Event{
		OrganizerID: ada.ID,
		Name:        "Picnic",
		City:        "Milan",
		Outdoor:     true,
		Day:         time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
	}, adaCal.ID)

	invite, err := notifier.SendNotification(context.Background(), "Ada Lovelace invited you!", "...", true, bob.ID, event.ID)
	if err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}

	return &invitationFixture{
		store:       store,
		notifier:    notifier,
		service:     svc,
		organizerID: ada.ID,
		guestID:     bob.ID,
		guestCalID:  bobCal.ID,
		eventID:     event.ID,
		inviteID:    invite.ID,
	}
}

func TestAcceptInvitation(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()

	res, err := f.service.ResolveInvitation(ctx, f.guestID, f.inviteID, true)
	if err != nil {
		t.Fatalf("ResolveInvitation() error = %v", err)
	}
	if !res.Altered || res.Status != string(notificationEntity.InvitationStatusAccepted) {
		t.Fatalf("result = %+v, want accepted and altered", res)
	}
	if !f.store.IsMember(f.guestCalID, f.eventID) {
		t.Fatal("event not added to the guest calendar")
	}

	invite, _ := f.store.Notification(f.inviteID)
	if invite.InvitationStatus != notificationEntity.InvitationStatusAccepted || !invite.IsRead {
		t.Fatalf("invitation = %+v, want accepted and read", invite)
	}

	replies := f.store.NotificationsFor(f.organizerID)
	if len(replies) != 1 {
		t.Fatalf("organizer got %d notifications, want 1", len(replies))
	}
	if replies[0].Title != "Bob Marley accepted your invitation" || replies[0].IsInvitation {
		t.Fatalf("reply = %+v", replies[0])
	}
	if replies[0].Content != `Bob Marley accepted your invitation for "Picnic"` {
		t.Fatalf("reply content = %q", replies[0].Content)
	}
}

func TestResolveInvitationTwiceIsNoop(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()

	if _, err := f.service.ResolveInvitation(ctx, f.guestID, f.inviteID, true); err != nil {
		t.Fatalf("first ResolveInvitation() error = %v", err)
	}
	res, err := f.service.ResolveInvitation(ctx, f.guestID, f.inviteID, false)
	if err != nil {
		t.Fatalf("second ResolveInvitation() error = %v", err)
	}
	if res.Altered {
		t.Fatalf("second decision altered the invitation: %+v", res)
	}
	if res.Status != string(notificationEntity.InvitationStatusAccepted) {
		t.Fatalf("status = %q, want the first decision kept", res.Status)
	}
	if got := len(f.store.NotificationsFor(f.organizerID)); got != 1 {
		t.Fatalf("organizer notified %d times, want 1", got)
	}
	if got := f.store.MembershipCount(f.eventID); got != 2 {
		t.Fatalf("memberships = %d, want 2", got)
	}
}

func TestDeclineInvitation(t *testing.T) {
	f := newInvitationFixture(t)

	res, err := f.service.ResolveInvitation(context.Background(), f.guestID, f.inviteID, false)
	if err != nil {
		t.Fatalf("ResolveInvitation() error = %v", err)
	}
	if !res.Altered || res.Status != string(notificationEntity.InvitationStatusDeclined) {
		t.Fatalf("result = %+v, want declined", res)
	}
	if f.store.IsMember(f.guestCalID, f.eventID) {
		t.Fatal("declined event added to the guest calendar")
	}
	replies := f.store.NotificationsFor(f.organizerID)
	if len(replies) != 1 || replies[0].Title != "Bob Marley declined your invitation" {
		t.Fatalf("replies = %+v", replies)
	}
}

func TestAcceptWithoutCalendar(t *testing.T) {
	f := newInvitationFixture(t)
	carl := f.store.AddUser("Carl", "Sagan", "carl@example.com")
	invite, err := f.notifier.SendNotification(context.Background(), "t", "c", true, carl.ID, f.eventID)
	if err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}

	res, err := f.service.ResolveInvitation(context.Background(), carl.ID, invite.ID, true)
	if err != nil {
		t.Fatalf("ResolveInvitation() error = %v", err)
	}
	if !res.Altered {
		t.Fatalf("result = %+v, want altered", res)
	}
	if got := f.store.MembershipCount(f.eventID); got != 1 {
		t.Fatalf("memberships = %d, want only the organizer calendar", got)
	}
	if got := len(f.store.NotificationsFor(f.organizerID)); got != 1 {
		t.Fatalf("organizer notified %d times, want 1", got)
	}
}

func TestOrganizerResolvingOwnInvitationClosesIt(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()
	self, err := f.notifier.SendNotification(ctx, "t", "c", true, f.organizerID, f.eventID)
	if err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}

	res, err := f.service.ResolveInvitation(ctx, f.organizerID, self.ID, true)
	if err != nil {
		t.Fatalf("ResolveInvitation() error = %v", err)
	}
	if res.Altered || res.Status != string(notificationEntity.InvitationStatusNone) {
		t.Fatalf("result = %+v, want closed without a decision", res)
	}
	stored, _ := f.store.Notification(self.ID)
	if !stored.IsRead || stored.InvitationStatus != notificationEntity.InvitationStatusNone {
		t.Fatalf("invitation = %+v, want read with no pending decision", stored)
	}
	if count, _ := f.service.CountPending(ctx, f.organizerID); count != 0 {
		t.Fatalf("pending count = %d, want 0", count)
	}
	if got := len(f.store.NotificationsFor(f.organizerID)); got != 1 {
		t.Fatalf("organizer has %d notifications, want only the invitation", got)
	}
}

func TestResolveInvitationNotFound(t *testing.T) {
	f := newInvitationFixture(t)
	plain, err := f.notifier.SendNotification(context.Background(), "t", "c", false, f.guestID, f.eventID)
	if err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}

	cases := []struct {
		name   string
		userID uuid.UUID
		id     uuid.UUID
	}{
		{"unknown id", f.guestID, uuid.New()},
		{"someone else's invitation", f.organizerID, f.inviteID},
		{"plain notification", f.guestID, plain.ID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.ResolveInvitation(context.Background(), tc.userID, tc.id, true)
			if !errors.Is(err, errors.ErrNotFound) {
				t.Fatalf("error = %v, want not found", err)
			}
		})
	}

	invite, _ := f.store.Notification(f.inviteID)
	if invite.InvitationStatus != notificationEntity.InvitationStatusPending {
		t.Fatal("invitation changed by another user")
	}
}

func TestPendingInvitations(t *testing.T) {
	f := newInvitationFixture(t)
	ctx := context.Background()

	pending, err := f.service.GetPendingInvitations(ctx, f.guestID)
	if err != nil {
		t.Fatalf("GetPendingInvitations() error = %v", err)
	}
	if pending.Total != 1 || pending.Invitations[0].ID != f.inviteID {
		t.Fatalf("pending = %+v", pending)
	}

	if _, err := f.service.ResolveInvitation(ctx, f.guestID, f.inviteID, false); err != nil {
		t.Fatalf("ResolveInvitation() error = %v", err)
	}
	count, err := f.service.CountPending(ctx, f.guestID)
	if err != nil {
		t.Fatalf("CountPending() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("pending count = %d, want 0", count)
	}
}
