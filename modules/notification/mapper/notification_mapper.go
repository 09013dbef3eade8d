package mapper

import (
	"meteocal/modules/notification/dto"
	"meteocal/modules/notification/entity"
)

func ToNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:               n.ID,
		EventID:          n.EventID,
		Title:            n.Title,
		Content:          n.Content,
		IsInvitation:     n.IsInvitation,
		InvitationStatus: string(n.InvitationStatus),
		IsRead:           n.IsRead,
		SendDate:         n.SendDate,
	}
}

func ToNotificationResponses(items []entity.Notification) []dto.NotificationResponse {
	result := make([]dto.NotificationResponse, 0, len(items))
	for i := range items {
		result = append(result, *ToNotificationResponse(&items[i]))
	}
	return result
}

func ToPaginatedNotificationResponse(page *entity.PaginatedNotificationEntity) *dto.PaginatedNotificationResponse {
	return &dto.PaginatedNotificationResponse{
		Items:      ToNotificationResponses(page.Items),
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
