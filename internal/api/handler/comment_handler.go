package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: s,
	}
}

// CreateComment 发表评论
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var createDTO dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), currentActor(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

// ListComments 评论列表
func (h *CommentHandler) ListComments(c *gin.Context) {
	var query dto.CommentListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.commentService.ListComments(c.Request.Context(), currentActor(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, page)
}

// EditComment 编辑评论
func (h *CommentHandler) EditComment(c *gin.Context) {
	var editDTO dto.CommentEditDTO
	if err := c.ShouldBindJSON(&editDTO); err != nil {
		response.Error(c, err)
		return
	}

	commentID := c.Param("comment_id")
	comment, err := h.commentService.EditComment(c.Request.Context(), currentActor(c), commentID, editDTO.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

// LikeComment 点赞
func (h *CommentHandler) LikeComment(c *gin.Context) {
	commentID := c.Param("comment_id")

	result, err := h.commentService.LikeComment(c.Request.Context(), currentActor(c), commentID, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UnlikeComment 取消点赞
func (h *CommentHandler) UnlikeComment(c *gin.Context) {
	commentID := c.Param("comment_id")

	result, err := h.commentService.LikeComment(c.Request.Context(), currentActor(c), commentID, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteComment 删除评论
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")

	if err := h.commentService.DeleteComment(c.Request.Context(), currentActor(c), commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SetCommentStatus 审核状态变更
func (h *CommentHandler) SetCommentStatus(c *gin.Context) {
	var statusDTO dto.CommentStatusDTO
	if err := c.ShouldBindJSON(&statusDTO); err != nil {
		response.Error(c, err)
		return
	}

	commentID := c.Param("comment_id")
	if err := h.commentService.SetCommentStatus(c.Request.Context(), currentActor(c), commentID, statusDTO.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
