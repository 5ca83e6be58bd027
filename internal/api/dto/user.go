package dto

import "time"

type RegisterDTO struct {
	Email    string  `json:"email" binding:"required" validate:"email,max=100"`
	Name     string  `json:"name" binding:"required" validate:"min=1,max=50"`
	Password string  `json:"password" binding:"required" validate:"min=8,max=64"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=200"`
}

type CredentialDTO struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 登录成功返回
type TokenDTO struct {
	Token string `json:"token"`
}

type UserDTO struct {
	UserID    *uint64    `json:"user_id,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Bio       *string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	Roles     []string   `json:"roles,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ProfileUpdateDTO 个人资料修改，nil 字段不更新
type ProfileUpdateDTO struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Avatar *string `json:"avatar,omitempty"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=200"`
}
