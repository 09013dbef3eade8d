// Package storetest provides in-memory implementations of the repository,
// cache and transaction interfaces for service tests.
package storetest

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	coreEntity "meteocal/core/entity"
	"meteocal/core/params"
	authEntity "meteocal/modules/auth/entity"
	calendarEntity "meteocal/modules/calendar/entity"
	eventEntity "meteocal/modules/event/entity"
	notificationEntity "meteocal/modules/notification/entity"

	"github.com/google/uuid"
)

type membership struct {
	calendarID uuid.UUID
	eventID    uuid.UUID
}

// Store is a single in-memory database shared by the repository views.
type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]authEntity.User
	calendars     map[uuid.UUID]calendarEntity.Calendar
	events        map[uuid.UUID]eventEntity.Event
	memberships   map[membership]struct{}
	notifications map[uuid.UUID]notificationEntity.Notification
	seq           int

	notificationErr error
}

func New() *Store {
	return &Store{
		users:         map[uuid.UUID]authEntity.User{},
		calendars:     map[uuid.UUID]calendarEntity.Calendar{},
		events:        map[uuid.UUID]eventEntity.Event{},
		memberships:   map[membership]struct{}{},
		notifications: map[uuid.UUID]notificationEntity.Notification{},
	}
}

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) Calendars() *CalendarRepo { return &CalendarRepo{s: s} }
func (s *Store) Events() *EventRepo { return &EventRepo{s: s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }
func (s *Store) Invitations() *InvitationRepo { return &InvitationRepo{s: s} }

// stamp gives every row a strictly increasing timestamp so ordering is stable.
func (s *Store) stamp(base *coreEntity.BaseEntity) time.Time {
	s.seq++
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	return now
}

// Seeding helpers

func (s *Store) AddUser(firstName, lastName, email string) *authEntity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := authEntity.User{FirstName: firstName, LastName: lastName, Email: email, UserGroup: "USERS"}
	s.stamp(&u.BaseEntity)
	s.users[u.ID] = u
	return &u
}

func (s *Store) AddCalendar(ownerID uuid.UUID, prefs calendarEntity.BadWeatherPreferences) *calendarEntity.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := calendarEntity.Calendar{OwnerID: ownerID, BadWeatherPreferences: prefs}
	s.stamp(&c.BaseEntity)
	s.calendars[c.ID] = c
	return &c
}

func (s *Store) AddEvent(e eventEntity.Event, calendarIDs ...uuid.UUID) *eventEntity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&e.BaseEntity)
	s.events[e.ID] = e
	for _, id := range calendarIDs {
		s.memberships[membership{calendarID: id, eventID: e.ID}] = struct{}{}
	}
	return &e
}

// Inspection helpers

func (s *Store) Event(id uuid.UUID) (eventEntity.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

func (s *Store) IsMember(calendarID, eventID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.memberships[membership{calendarID: calendarID, eventID: eventID}]
	return ok
}

func (s *Store) MembershipCount(eventID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for m := range s.memberships {
		if m.eventID == eventID {
			n++
		}
	}
	return n
}

// NotificationsFor returns the notifications received by userID, oldest first.
func (s *Store) NotificationsFor(userID uuid.UUID) []notificationEntity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterNotifications(func(n notificationEntity.Notification) bool { return n.ReceiverID == userID }, false)
}

func (s *Store) NotificationsForEvent(eventID uuid.UUID) []notificationEntity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterNotifications(func(n notificationEntity.Notification) bool { return n.EventID == eventID }, false)
}

func (s *Store) Notification(id uuid.UUID) (notificationEntity.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	return n, ok
}

func (s *Store) filterNotifications(keep func(notificationEntity.Notification) bool, newestFirst bool) []notificationEntity.Notification {
	out := []notificationEntity.Notification{}
	for _, n := range s.notifications {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// FailNotifications makes every notification insert return err until it is
// called again with nil.
func (s *Store) FailNotifications(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationErr = err
}

type snapshot struct {
	users         map[uuid.UUID]authEntity.User
	calendars     map[uuid.UUID]calendarEntity.Calendar
	events        map[uuid.UUID]eventEntity.Event
	memberships   map[membership]struct{}
	notifications map[uuid.UUID]notificationEntity.Notification
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:         maps.Clone(s.users),
		calendars:     maps.Clone(s.calendars),
		events:        maps.Clone(s.events),
		memberships:   maps.Clone(s.memberships),
		notifications: maps.Clone(s.notifications),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.calendars = snap.calendars
	s.events = snap.events
	s.memberships = snap.memberships
	s.notifications = snap.notifications
}

// Tx returns a transactor that restores the store when fn fails.
func (s *Store) Tx() *Tx {
	return &Tx{store: s}
}

// Tx runs fn directly and counts calls. When bound to a store, the store is
// rolled back to its state before fn if fn returns an error.
type Tx struct {
	mu        sync.Mutex
	store     *Store
	Calls     int
	Rollbacks int
}

func (t *Tx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()

	if t.store == nil {
		return fn(ctx)
	}
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		t.mu.Lock()
		t.Rollbacks++
		t.mu.Unlock()
		return err
	}
	return nil
}

func page[T any](items []T, p params.QueryParams) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
