package service

import (
	"context"
	"time"

	"meteocal/core/errors"
	"meteocal/core/logger"
	"meteocal/core/params"
	"meteocal/modules/notification/entity"
	"meteocal/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// SendNotification persists a notification for receiverID about eventID.
// Invitations start pending, plain notifications carry no decision.
func (s *NotificationService) SendNotification(ctx context.Context, title, content string, isInvitation bool, receiverID, eventID uuid.UUID) (*entity.Notification, error) {
	status := entity.InvitationStatusNone
	if isInvitation {
		status = entity.InvitationStatusPending
	}

	notification := &entity.Notification{
		ReceiverID:       receiverID,
		EventID:          eventID,
		Title:            title,
		Content:          content,
		IsInvitation:     isInvitation,
		InvitationStatus: status,
		IsRead:           false,
		SendDate:         s.now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Error("NotificationService:SendNotification:Create:Error", "receiver_id", receiverID, "event_id", eventID, "error", err)
		return nil, err
	}

	logger.Debug("NotificationService:SendNotification:Sent", "notification_id", notification.ID, "receiver_id", receiverID, "invitation", isInvitation)
	return notification, nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByReceiver(ctx, userID, queryParams)
}

func (s *NotificationService) GetUnread(ctx context.Context, userID uuid.UUID) ([]entity.Notification, error) {
	return s.repo.GetUnreadByReceiver(ctx, userID)
}

// GetByID only returns notifications received by userID.
func (s *NotificationService) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil || notification.ReceiverID != userID {
		return nil, errors.NewAppError(errors.ErrNotFound, "notification not found", nil)
	}
	return notification, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// DeleteByEvent removes every notification attached to eventID.
func (s *NotificationService) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	return s.repo.DeleteByEvent(ctx, eventID)
}

// WasNotified reports whether userID received any notification about eventID.
func (s *NotificationService) WasNotified(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	return s.repo.ExistsForEvent(ctx, userID, eventID)
}
