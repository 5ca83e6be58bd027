package consts

const (
	MimePrefixImage = "image"

	// MaxUploadSize 单个上传文件大小上限
	MaxUploadSize = 10 << 20
)

// Post 状态
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusPrivate   = "private"
)

// Comment 状态
const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusSpam     = "spam"
	CommentStatusDeleted  = "deleted"
)

// MaxCommentDepth 评论最大嵌套层级
const MaxCommentDepth = 5

// MaxCommentLength 评论内容最大长度
const MaxCommentLength = 2000

// DeletedCommentPlaceholder 软删除后的占位内容
const DeletedCommentPlaceholder = "[This comment has been deleted by the author]"

// SpamWords 垃圾评论关键词（命中则评论状态置为 spam，不报错）
var SpamWords = []string{"spam", "casino", "viagra", "http://", "https://"}

// PostCategories 帖子分类枚举
var PostCategories = []string{
	"general",
	"technology",
	"design",
	"business",
	"education",
	"health",
	"entertainment",
}

const DefaultPostCategory = "general"

// 通知类型
const (
	NotifyTypeComment     int8 = 1 // 帖子被评论
	NotifyTypeReply       int8 = 2 // 评论被回复
	NotifyTypeCommentLike int8 = 3 // 评论被点赞
)

// 角色名
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
