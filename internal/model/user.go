package model

import (
	"time"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;default:client;index" json:"role"` // client, admin
	// ReferredByCode 注册时携带的推广码，支付成功后据此计算佣金
	ReferredByCode *string   `gorm:"size:20;index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
