package db

import (
	"time"

	"gorm.io/gorm"
)

// Post 定义了文章模型。CategoryID 与 LocationID 可为空：
// 删除分类或地点时仅置空引用，文章本身保留。
type Post struct {
	gorm.Model
	Title       string    `gorm:"not null"`
	Text        string    `gorm:"type:text;not null"`
	PubDate     time.Time `gorm:"index"`
	IsPublished bool      `gorm:"default:true;index"`
	ImageURL    string
	AuthorID    uint `gorm:"index;not null"`
	Author      User
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	LocationID  *uint `gorm:"index"`
	Location    *Location
	Comments    []Comment
}
