package dto

// NotificationDTO 站内通知返回对象
type NotificationDTO struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Type       int8   `json:"type"` // 1-评论, 2-回复, 3-评论点赞
	TargetID   string `json:"target_id"`
	Preview    string `json:"preview"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

// NotificationPageDTO 分页返回
type NotificationPageDTO struct {
	List  []*NotificationDTO `json:"list"`
	Total int64              `json:"total"`
}

// NotificationUnreadDTO 未读数返回
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
