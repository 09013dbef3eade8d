package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvitationResponse struct {
	ID       uuid.UUID `json:"id"`
	EventID  uuid.UUID `json:"event_id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Status   string    `json:"status"`
	IsRead   bool      `json:"is_read"`
	SendDate time.Time `json:"send_date"`
}

type PendingInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int                  `json:"total"`
}

type DecisionResponse struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Altered bool      `json:"altered"`
}
