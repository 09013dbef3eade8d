package storetest

import (
	"context"
	"sort"
	"time"

	"meteocal/core/params"
	authEntity "meteocal/modules/auth/entity"
	calendarEntity "meteocal/modules/calendar/entity"
	eventEntity "meteocal/modules/event/entity"
	notificationEntity "meteocal/modules/notification/entity"

	"github.com/google/uuid"
)

// UserRepo

type UserRepo struct{ s *Store }

func (r *UserRepo) CreateUser(_ context.Context, user *authEntity.User) (*authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&user.BaseEntity)
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *UserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (*authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetUsersExcept(_ context.Context, id uuid.UUID) ([]authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []authEntity.User{}
	for _, u := range r.s.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) GetUsersByIDs(_ context.Context, ids []uuid.UUID) ([]authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []authEntity.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepo) GetUsersByEvent(_ context.Context, eventID uuid.UUID) ([]authEntity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []authEntity.User{}
	for m := range r.s.memberships {
		if m.eventID != eventID {
			continue
		}
		if u, ok := r.s.users[r.s.calendars[m.calendarID].OwnerID]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

// CalendarRepo

type CalendarRepo struct{ s *Store }

func (r *CalendarRepo) CreateCalendar(_ context.Context, cal *calendarEntity.Calendar) (*calendarEntity.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&cal.BaseEntity)
	r.s.calendars[cal.ID] = *cal
	return cal, nil
}

func (r *CalendarRepo) GetCalendarByOwner(_ context.Context, ownerID uuid.UUID) (*calendarEntity.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.calendars {
		if c.OwnerID == ownerID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CalendarRepo) UpdatePreferences(_ context.Context, cal *calendarEntity.Calendar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.calendars[cal.ID]
	stored.BadWeatherPreferences = cal.BadWeatherPreferences
	r.s.stamp(&stored.BaseEntity)
	r.s.calendars[cal.ID] = stored
	cal.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *CalendarRepo) AddEvent(_ context.Context, calendarID, eventID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.memberships[membership{calendarID: calendarID, eventID: eventID}] = struct{}{}
	return nil
}

func (r *CalendarRepo) RemoveEventFromAll(_ context.Context, eventID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for m := range r.s.memberships {
		if m.eventID == eventID {
			delete(r.s.memberships, m)
		}
	}
	return nil
}

func (r *CalendarRepo) GetCalendarsByEvent(_ context.Context, eventID uuid.UUID) ([]calendarEntity.Calendar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []calendarEntity.Calendar{}
	for m := range r.s.memberships {
		if m.eventID == eventID {
			out = append(out, r.s.calendars[m.calendarID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *CalendarRepo) GetEventsByCalendar(_ context.Context, calendarID uuid.UUID) ([]eventEntity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []eventEntity.Event{}
	for m := range r.s.memberships {
		if m.calendarID == calendarID {
			out = append(out, r.s.events[m.eventID])
		}
	}
	sortEvents(out)
	return out, nil
}

// EventRepo

type EventRepo struct{ s *Store }

func (r *EventRepo) Create(_ context.Context, event *eventEntity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&event.BaseEntity)
	r.s.events[event.ID] = *event
	return nil
}

func (r *EventRepo) GetByID(_ context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EventRepo) Update(_ context.Context, event *eventEntity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok {
		return nil
	}
	organizer := stored.OrganizerID
	forecast := stored.WeatherForecast
	stored = *event
	stored.OrganizerID = organizer
	stored.WeatherForecast = forecast
	r.s.stamp(&stored.BaseEntity)
	r.s.events[event.ID] = stored
	event.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *EventRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func (r *EventRepo) GetByDate(_ context.Context, userID uuid.UUID, day time.Time) ([]eventEntity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []eventEntity.Event{}
	for _, e := range r.s.events {
		if eventEntity.SameDay(e.Day, day) && r.s.ownedBy(e.ID, userID) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepo) GetBetween(_ context.Context, from, to time.Time) ([]eventEntity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lo, hi := dateOnly(from), dateOnly(to)
	out := []eventEntity.Event{}
	for _, e := range r.s.events {
		d := dateOnly(e.Day)
		if !d.Before(lo) && !d.After(hi) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepo) FindEventsForAlert(_ context.Context, day time.Time, userID uuid.UUID) ([]eventEntity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []eventEntity.Event{}
	for _, e := range r.s.events {
		if e.Outdoor && !e.BadWeatherAlertSent && eventEntity.SameDay(e.Day, day) && r.s.ownedBy(e.ID, userID) {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (r *EventRepo) MarkAlertSent(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok || e.BadWeatherAlertSent {
		return false, nil
	}
	e.BadWeatherAlertSent = true
	r.s.events[id] = e
	return true, nil
}

func (r *EventRepo) UpdateForecast(_ context.Context, id uuid.UUID, forecast string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil
	}
	e.WeatherForecast = &forecast
	r.s.events[id] = e
	return nil
}

// ownedBy reports whether eventID is in the calendar owned by userID.
func (s *Store) ownedBy(eventID, userID uuid.UUID) bool {
	for m := range s.memberships {
		if m.eventID == eventID && s.calendars[m.calendarID].OwnerID == userID {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sortEvents(events []eventEntity.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !eventEntity.SameDay(events[i].Day, events[j].Day) {
			return events[i].Day.Before(events[j].Day)
		}
		return events[i].StartTime < events[j].StartTime
	})
}

// NotificationRepo

type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, n *notificationEntity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.notificationErr != nil {
		return r.s.notificationErr
	}
	r.s.stamp(&n.BaseEntity)
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *NotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*notificationEntity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *NotificationRepo) GetByReceiver(_ context.Context, receiverID uuid.UUID, p params.QueryParams) (*notificationEntity.PaginatedNotificationEntity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.s.filterNotifications(func(n notificationEntity.Notification) bool { return n.ReceiverID == receiverID }, true)
	return &notificationEntity.PaginatedNotificationEntity{
		Items:      page(all, p),
		TotalItems: len(all),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *NotificationRepo) GetUnreadByReceiver(_ context.Context, receiverID uuid.UUID) ([]notificationEntity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterNotifications(func(n notificationEntity.Notification) bool {
		return n.ReceiverID == receiverID && !n.IsRead
	}, true), nil
}

func (r *NotificationRepo) MarkAsRead(_ context.Context, receiverID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		if n, ok := r.s.notifications[id]; ok && n.ReceiverID == receiverID {
			n.IsRead = true
			r.s.notifications[id] = n
		}
	}
	return nil
}

func (r *NotificationRepo) MarkAllAsRead(_ context.Context, receiverID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, n := range r.s.notifications {
		if n.ReceiverID == receiverID {
			n.IsRead = true
			r.s.notifications[id] = n
		}
	}
	return nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, receiverID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.ReceiverID == receiverID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) DeleteByEvent(_ context.Context, eventID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, n := range r.s.notifications {
		if n.EventID == eventID {
			delete(r.s.notifications, id)
		}
	}
	return nil
}

func (r *NotificationRepo) ExistsForEvent(_ context.Context, receiverID, eventID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ReceiverID == receiverID && n.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// InvitationRepo

type InvitationRepo struct{ s *Store }

func (r *InvitationRepo) GetPendingByReceiver(_ context.Context, receiverID uuid.UUID) ([]notificationEntity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterNotifications(func(n notificationEntity.Notification) bool {
		return n.ReceiverID == receiverID && n.IsInvitation && n.InvitationStatus == notificationEntity.InvitationStatusPending
	}, true), nil
}

func (r *InvitationRepo) CountPending(ctx context.Context, receiverID uuid.UUID) (int, error) {
	pending, err := r.GetPendingByReceiver(ctx, receiverID)
	return len(pending), err
}

func (r *InvitationRepo) UpdateDecision(_ context.Context, id uuid.UUID, status notificationEntity.InvitationStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || !n.IsInvitation || n.InvitationStatus != notificationEntity.InvitationStatusPending {
		return false, nil
	}
	n.InvitationStatus = status
	n.IsRead = true
	r.s.notifications[id] = n
	return true, nil
}
