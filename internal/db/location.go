package db

import "gorm.io/gorm"

// Location 定义了发布地点模型
type Location struct {
	gorm.Model
	Name        string `gorm:"not null"`
	IsPublished bool   `gorm:"default:true;index"`
	Posts       []Post
}
