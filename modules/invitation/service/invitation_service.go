package service

import (
	"context"
	"fmt"

	"meteocal/core/database"
	"meteocal/core/errors"
	"meteocal/core/logger"
	authRepository "meteocal/modules/auth/repository"
	calendarRepository "meteocal/modules/calendar/repository"
	eventRepository "meteocal/modules/event/repository"
	"meteocal/modules/invitation/dto"
	"meteocal/modules/invitation/repository"
	notificationEntity "meteocal/modules/notification/entity"
	notificationService "meteocal/modules/notification/service"

	"github.com/google/uuid"
)

type InvitationService struct {
	repo      repository.InvitationRepository
	notifier  *notificationService.NotificationService
	events    eventRepository.EventRepository
	calendars calendarRepository.CalendarRepository
	users     authRepository.UserRepository
	tx        database.Transactor
}

func NewInvitationService(
	repo repository.InvitationRepository,
	notifier *notificationService.NotificationService,
	events eventRepository.EventRepository,
	calendars calendarRepository.CalendarRepository,
	users authRepository.UserRepository,
	tx database.Transactor,
) *InvitationService {
	return &InvitationService{
		repo:      repo,
		notifier:  notifier,
		events:    events,
		calendars: calendars,
		users:     users,
		tx:        tx,
	}
}

// GetPendingInvitations returns pending invitations for a user
func (s *InvitationService) GetPendingInvitations(ctx context.Context, userID uuid.UUID) (*dto.PendingInvitationsResponse, error) {
	invitations, err := s.repo.GetPendingByReceiver(ctx, userID)
	if err != nil {
		logger.Error("InvitationService:GetPendingInvitations:RepoError", "error", err)
		return nil, err
	}

	dtos := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		dtos = append(dtos, dto.InvitationResponse{
			ID:       inv.ID,
			EventID:  inv.EventID,
			Title:    inv.Title,
			Content:  inv.Content,
			Status:   string(inv.InvitationStatus),
			IsRead:   inv.IsRead,
			SendDate: inv.SendDate,
		})
	}

	return &dto.PendingInvitationsResponse{
		Invitations: dtos,
		Total:       len(dtos),
	}, nil
}

func (s *InvitationService) CountPending(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountPending(ctx, userID)
}

// ResolveInvitation accepts or declines an invitation received by actingUserID.
// Accepting adds the event to the acting user's calendar when one exists.
// The organizer is told about the decision. Invitations already decided are
// left as they are.
func (s *InvitationService) ResolveInvitation(ctx context.Context, actingUserID, notificationID uuid.UUID, accept bool) (*dto.DecisionResponse, error) {
	result := &dto.DecisionResponse{ID: notificationID}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		invitation, err := s.notifier.GetByID(ctx, actingUserID, notificationID)
		if err != nil {
			return err
		}
		result.Status = string(invitation.InvitationStatus)
		if !invitation.IsInvitation {
			return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		if invitation.InvitationStatus != notificationEntity.InvitationStatusPending {
			logger.Info("InvitationService:ResolveInvitation:AlreadyResolved", "notification_id", notificationID, "status", invitation.InvitationStatus)
			return nil
		}

		event, err := s.events.GetByID(ctx, invitation.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			logger.Warn("InvitationService:ResolveInvitation:EventMissing", "notification_id", notificationID)
			return nil
		}
		organizer, err := s.users.GetUserByID(ctx, event.OrganizerID)
		if err != nil {
			return err
		}
		if organizer == nil {
			logger.Warn("InvitationService:ResolveInvitation:OrganizerMissing", "event_id", event.ID)
			return nil
		}

		// An organizer cannot answer their own invitation; it is closed without a decision.
		if organizer.ID == actingUserID {
			closed, err := s.repo.UpdateDecision(ctx, notificationID, notificationEntity.InvitationStatusNone)
			if err != nil {
				return err
			}
			if closed {
				result.Status = string(notificationEntity.InvitationStatusNone)
			}
			return nil
		}

		status := notificationEntity.InvitationStatusDeclined
		if accept {
			status = notificationEntity.InvitationStatusAccepted
		}
		flipped, err := s.repo.UpdateDecision(ctx, notificationID, status)
		if err != nil {
			return err
		}
		if !flipped {
			return nil
		}
		result.Status = string(status)
		result.Altered = true

		if accept {
			cal, err := s.calendars.GetCalendarByOwner(ctx, actingUserID)
			if err != nil {
				return err
			}
			if cal != nil {
				if err := s.calendars.AddEvent(ctx, cal.ID, event.ID); err != nil {
					return err
				}
			} else {
				logger.Info("InvitationService:ResolveInvitation:NoCalendar", "user_id", actingUserID)
			}
		}

		actor, err := s.users.GetUserByID(ctx, actingUserID)
		if err != nil {
			return err
		}
		if actor == nil {
			return nil
		}

		verb := "declined"
		if accept {
			verb = "accepted"
		}
		title := fmt.Sprintf("%s %s your invitation", actor.FullName(), verb)
		content := fmt.Sprintf("%s %s your invitation for \"%s\"", actor.FullName(), verb, event.Name)
		_, err = s.notifier.SendNotification(ctx, title, content, false, organizer.ID, event.ID)
		return err
	})
	if err != nil {
		logger.Error("InvitationService:ResolveInvitation:Error", "notification_id", notificationID, "error", err)
		return nil, err
	}

	return result, nil
}
