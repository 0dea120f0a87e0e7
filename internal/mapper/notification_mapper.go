package mapper

import (
	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/model"
)

func ToNotificationResponse(n *model.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		Id:        n.ID,
		TypeCode:  n.TypeCode,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationListResponse(notifications []model.Notification, total, unread int64) *dto.NotificationListResponse {
	out := make([]*dto.NotificationResponse, len(notifications))
	for i := range notifications {
		out[i] = ToNotificationResponse(&notifications[i])
	}
	return &dto.NotificationListResponse{
		Notifications: out,
		Total:         total,
		UnreadCount:   unread,
	}
}
