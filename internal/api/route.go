package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/search", group.PostHandler.SearchPosts)
				authOptGroup.GET("/categories", group.PostHandler.Categories)
				authOptGroup.GET("/check-slug", group.PostHandler.CheckSlug)
				authOptGroup.GET("/detail/:slug", group.PostHandler.GetPostBySlug)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/like", group.PostHandler.LikePost)
				authGroup.DELETE("/:post_id/like", group.PostHandler.UnlikePost)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			authOptGroup := commentGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.CommentHandler.ListComments)
			}

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.PUT("/:comment_id", group.CommentHandler.EditComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				authGroup.POST("/:comment_id/like", group.CommentHandler.LikeComment)
				authGroup.DELETE("/:comment_id/like", group.CommentHandler.UnlikeComment)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := commentGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
			{
				adminGroup.PUT("/:comment_id/status", group.CommentHandler.SetCommentStatus)
			}
		}

		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.Use(middleware.AuthMiddleware())
			{
				notificationGroup.GET("", group.NotificationHandler.GetNotificationList)
				notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
				notificationGroup.POST("/read", group.NotificationHandler.MarkRead)
				notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			{
				mediaGroup.POST("/upload", group.MediaHandler.Upload)
			}
		}
	}

	return r
}
