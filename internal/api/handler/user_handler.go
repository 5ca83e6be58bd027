package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{
		userService: s,
	}
}

// Register 注册
func (h *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userService.Register(c.Request.Context(), &registerDTO); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Login 登录
func (h *UserHandler) Login(c *gin.Context) {
	var credentialDTO dto.CredentialDTO
	if err := c.ShouldBindJSON(&credentialDTO); err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.userService.Login(c.Request.Context(), &credentialDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, token)
}

// Logout 注销当前 Token
func (h *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetUserInfo 当前用户信息
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")

	info, err := h.userService.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, info)
}

// UpdateProfile 修改个人资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var profileDTO dto.ProfileUpdateDTO
	if err := c.ShouldBindJSON(&profileDTO); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	if err := h.userService.UpdateProfile(c.Request.Context(), userID, &profileDTO); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
