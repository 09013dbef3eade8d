package repository

import (
	"context"

	"meteocal/core/database"
	"meteocal/core/logger"
	notificationEntity "meteocal/modules/notification/entity"

	"github.com/google/uuid"
)

// InvitationRepository reads and resolves invitation notifications.
type InvitationRepository interface {
	GetPendingByReceiver(ctx context.Context, receiverID uuid.UUID) ([]notificationEntity.Notification, error)
	CountPending(ctx context.Context, receiverID uuid.UUID) (int, error)
	// UpdateDecision records status on a still pending invitation, marks it
	// read, and reports whether this call changed it.
	UpdateDecision(ctx context.Context, id uuid.UUID, status notificationEntity.InvitationStatus) (bool, error)
}

type invitationRepository struct {
	db database.IDatabase
}

func NewInvitationRepository(db database.IDatabase) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) GetPendingByReceiver(ctx context.Context, receiverID uuid.UUID) ([]notificationEntity.Notification, error) {
	invitations := []notificationEntity.Notification{}
	query := `
		SELECT id, receiver_id, event_id, title, content, is_invitation, invitation_status, is_read, send_date, created_at, updated_at
		FROM notifications
		WHERE receiver_id = $1 AND is_invitation = true AND invitation_status = 'pending'
		ORDER BY send_date DESC
	`
	if err := r.db.SelectContext(ctx, &invitations, query, receiverID); err != nil {
		logger.Error("InvitationRepository:GetPendingByReceiver:Error", "error", err)
		return nil, err
	}
	return invitations, nil
}

func (r *invitationRepository) CountPending(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE receiver_id = $1 AND is_invitation = true AND invitation_status = 'pending'
	`
	if err := r.db.GetContext(ctx, &count, query, receiverID); err != nil {
		logger.Error("InvitationRepository:CountPending:Error", "error", err)
		return 0, err
	}
	return count, nil
}

func (r *invitationRepository) UpdateDecision(ctx context.Context, id uuid.UUID, status notificationEntity.InvitationStatus) (bool, error) {
	query := `
		UPDATE notifications
		SET invitation_status = $2, is_read = true, updated_at = NOW()
		WHERE id = $1 AND is_invitation = true AND invitation_status = 'pending'
	`
	res, err := r.db.ExecResultContext(ctx, query, id, string(status))
	if err != nil {
		logger.Error("InvitationRepository:UpdateDecision:Error", "error", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
