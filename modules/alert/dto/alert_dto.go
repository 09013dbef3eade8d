package dto

type Summary struct {
	Date              string `json:"date"`
	EventsProcessed   int    `json:"events_processed"`
	NotificationsSent int    `json:"notifications_sent"`
}
