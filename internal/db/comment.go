package db

import "gorm.io/gorm"

// Comment 定义了评论模型，按 created_at 升序展示。
type Comment struct {
	gorm.Model
	Text     string `gorm:"type:text;not null"`
	PostID   uint   `gorm:"index;not null"`
	Post     Post
	AuthorID uint `gorm:"index;not null"`
	Author   User
}
