package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Inkstone"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
