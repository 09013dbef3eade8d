package repository

import (
	"context"
	"database/sql"
	"errors"

	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/core/params"
	"meteocal/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// GetByID returns nil, nil when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	GetByReceiver(ctx context.Context, receiverID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	GetUnreadByReceiver(ctx context.Context, receiverID uuid.UUID) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, receiverID uuid.UUID, ids []uuid.UUID) error
	MarkAllAsRead(ctx context.Context, receiverID uuid.UUID) error
	CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
	// ExistsForEvent reports whether receiverID was notified about eventID.
	ExistsForEvent(ctx context.Context, receiverID, eventID uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, receiver_id, event_id, title, content, is_invitation, invitation_status, is_read, send_date, created_at, updated_at`

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (receiver_id, event_id, title, content, is_invitation, invitation_status, is_read, send_date)
		VALUES (:receiver_id, :event_id, :title, :content, :is_invitation, :invitation_status, :is_read, :send_date)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	if err := r.db.GetContext(ctx, &notification, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("NotificationRepository:GetByID:Error", "error", err)
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetByReceiver(ctx context.Context, receiverID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	baseQuery := `FROM notifications WHERE receiver_id = $1`

	var totalItems int
	if err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, receiverID); err != nil {
		logger.Error("NotificationRepository:GetByReceiver:Count:Error", "error", err)
		return nil, err
	}

	query := `
		SELECT ` + notificationColumns + ` ` + baseQuery + `
		ORDER BY send_date DESC
		LIMIT $2 OFFSET $3
	`
	notifications := []entity.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, receiverID, params.PageSize, params.Offset()); err != nil {
		logger.Error("NotificationRepository:GetByReceiver:Select:Error", "error", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *notificationRepository) GetUnreadByReceiver(ctx context.Context, receiverID uuid.UUID) ([]entity.Notification, error) {
	notifications := []entity.Notification{}
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE receiver_id = $1 AND is_read = false
		ORDER BY send_date DESC
	`
	if err := r.db.SelectContext(ctx, &notifications, query, receiverID); err != nil {
		logger.Error("NotificationRepository:GetUnreadByReceiver:Error", "error", err)
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, receiverID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true, updated_at = NOW() WHERE receiver_id = ? AND id IN (?)`, receiverID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error", "error", err)
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, receiverID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = NOW() WHERE receiver_id = $1 AND is_read = false`
	if err := r.db.ExecContext(ctx, query, receiverID); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error", "error", err)
		return err
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, receiverID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, receiverID); err != nil {
		logger.Error("NotificationRepository:CountUnread:Error", "error", err)
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE event_id = $1`, eventID); err != nil {
		logger.Error("NotificationRepository:DeleteByEvent:Error", "error", err)
		return err
	}
	return nil
}

func (r *notificationRepository) ExistsForEvent(ctx context.Context, receiverID, eventID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM notifications WHERE receiver_id = $1 AND event_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, receiverID, eventID); err != nil {
		logger.Error("NotificationRepository:ExistsForEvent:Error", "error", err)
		return false, err
	}
	return exists, nil
}
