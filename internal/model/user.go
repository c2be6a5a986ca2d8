package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// 用户账号由外部的账号服务管理，这里只保留评测与排行所需的最小字段。
// swagger:model User
type User struct {
	BaseModel
	Username string    `gorm:"size:100;unique;not null" json:"username"`
	Email    string    `gorm:"size:100;unique;not null" json:"email"`
	Role     UserRole  `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	LastSeen time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
