package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID               uuid.UUID `json:"id"`
	EventID          uuid.UUID `json:"event_id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	IsInvitation     bool      `json:"is_invitation"`
	InvitationStatus string    `json:"invitation_status"`
	IsRead           bool      `json:"is_read"`
	SendDate         time.Time `json:"send_date"`
}

type PaginatedNotificationResponse struct {
	Items      []NotificationResponse `json:"items"`
	TotalItems int                    `json:"total_items"`
	PageNumber int                    `json:"page_number"`
	PageSize   int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	IDs []uuid.UUID `json:"ids"`
}
