package entity

import (
	"time"

	"meteocal/core/entity"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusNone     InvitationStatus = "none"
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

type Notification struct {
	ReceiverID       uuid.UUID        `db:"receiver_id" json:"receiver_id"`
	EventID          uuid.UUID        `db:"event_id" json:"event_id"`
	Title            string           `db:"title" json:"title"`
	Content          string           `db:"content" json:"content"`
	IsInvitation     bool             `db:"is_invitation" json:"is_invitation"`
	InvitationStatus InvitationStatus `db:"invitation_status" json:"invitation_status"`
	IsRead           bool             `db:"is_read" json:"is_read"`
	SendDate         time.Time        `db:"send_date" json:"send_date"`
	entity.BaseEntity
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
