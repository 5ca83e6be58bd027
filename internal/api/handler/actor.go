package handler

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

// currentActor 从鉴权中间件注入的上下文构造请求主体，匿名访客返回 nil
func currentActor(c *gin.Context) *service.Actor {
	userID := c.GetUint64("user_id")
	if userID == 0 {
		return nil
	}

	roles := c.GetStringSlice("roles")
	return &service.Actor{
		ID:     util.UInt64ToStr(userID),
		Email:  c.GetString("email"),
		Name:   c.GetString("name"),
		Avatar: c.GetString("avatar"),
		Admin:  slices.Contains(roles, consts.RoleAdmin),
	}
}
