package db

import (
	"strings"

	"gorm.io/gorm"
)

// User 定义了用户模型
type User struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Email     string
	FirstName string
	LastName  string
}

// DisplayName 返回用于展示的用户名称，优先使用姓名。
func (u *User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return u.Username
}
