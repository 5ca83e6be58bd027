package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     string  `gorm:"type:varchar(100);uniqueIndex:idx_email;not null"`
	Name      string  `gorm:"type:varchar(50);not null"`
	Password  *string `gorm:"type:varchar(255)"`
	Avatar    string  `gorm:"type:varchar(255)"`
	Bio       *string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserRoles []UserRole `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
