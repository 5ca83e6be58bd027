package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserExist               = errors.New("用户已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrTitleInvalid            = errors.New("标题不能为空且不超过200字符")
	ErrContentRequired         = errors.New("正文不能为空")
	ErrSlugExist               = errors.New("slug已被占用")
	ErrSlugInvalid             = errors.New("无效的slug")
	ErrStatusInvalid           = errors.New("无效的帖子状态")
	ErrCategoryInvalid         = errors.New("无效的分类")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrPostNotPublished        = errors.New("帖子未发布")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrCommentContentInvalid   = errors.New("评论内容为空或超过2000字符")
	ErrCommentDepthLimit       = errors.New("评论嵌套层级超过上限")
	ErrCommentNotInteractable  = errors.New("该评论当前不可互动")
	ErrNotificationNotFound    = errors.New("通知不存在")
	ErrNoPermission            = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserExist:               BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrTitleInvalid:            BadRequest,
	ErrContentRequired:         BadRequest,
	ErrSlugExist:               Conflict,
	ErrSlugInvalid:             BadRequest,
	ErrStatusInvalid:           BadRequest,
	ErrCategoryInvalid:         BadRequest,
	ErrPostNotFound:            NotFound,
	ErrPostNotPublished:        BadRequest,
	ErrCommentNotFound:         NotFound,
	ErrCommentContentInvalid:   BadRequest,
	ErrCommentDepthLimit:       BadRequest,
	ErrCommentNotInteractable:  Forbidden,
	ErrNotificationNotFound:    NotFound,
	ErrNoPermission:            Forbidden,
	UnExpectedError:            InternalServerError,
}
