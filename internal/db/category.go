package db

import "gorm.io/gorm"

// Category 定义了文章分类模型
type Category struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Slug        string `gorm:"uniqueIndex;not null"`
	IsPublished bool   `gorm:"default:true;index"`
	Posts       []Post
}
