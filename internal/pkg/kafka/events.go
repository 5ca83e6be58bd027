package kafka

import "time"

const (
	EventCommentCreated = "comment.created"
	EventCommentLiked   = "comment.liked"
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
)

// CommentEvent 评论域事件，驱动通知投递
type CommentEvent struct {
	Type       string    `json:"type"`
	CommentID  string    `json:"comment_id"`
	PostID     string    `json:"post_id"`
	PostSlug   string    `json:"post_slug"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID string    `json:"receiver_id"`
	Preview    string    `json:"preview"`
	IsReply    bool      `json:"is_reply"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostEvent 帖子域事件，驱动搜索索引维护
type PostEvent struct {
	Type         string    `json:"type"`
	PostID       string    `json:"post_id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	PlainContent string    `json:"plain_content"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
}
