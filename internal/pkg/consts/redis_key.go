package consts

const (
	// TokenBlacklistKey + 签名：已注销 Token 的黑名单
	TokenBlacklistKey = "auth:token:blacklist:"
	// PostCommentCountDirtyKey 评论数待校准的帖子集合
	PostCommentCountDirtyKey = "post:comment:count:dirty"
)
