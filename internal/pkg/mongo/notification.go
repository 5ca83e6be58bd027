package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel 通知文档
type NotificationModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"` // 消息接收者ID
	SenderID   string             `bson:"sender_id" json:"senderId"`     // 动作发起者ID
	SenderName string             `bson:"sender_name" json:"senderName"`
	Type       int8               `bson:"type" json:"type"`           // 通知类型: 1-帖子被评论, 2-评论被回复, 3-评论被点赞
	TargetID   string             `bson:"target_id" json:"targetId"`  // 关联的目标ID (帖子或评论)
	Preview    string             `bson:"preview" json:"preview"`     // 评论内容片段
	IsRead     bool               `bson:"is_read" json:"isRead"`      // 是否已读
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
