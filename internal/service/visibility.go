package service

import (
	"time"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

// PubliclyVisible reports whether a post may be shown to the general public
// at the given instant: the post is published, its scheduled publication time
// has passed and its category exists and is published. A post without a
// category is never publicly visible.
func PubliclyVisible(post *db.Post, at time.Time) bool {
	if post == nil || !post.IsPublished {
		return false
	}
	if post.PubDate.After(at) {
		return false
	}
	return post.Category != nil && post.Category.IsPublished
}

// VisibleTo applies the owner override on top of PubliclyVisible: the author
// always sees their own post (draft preview), everyone else is subject to the
// public predicate. viewerID 0 means anonymous.
func VisibleTo(post *db.Post, viewerID uint, at time.Time) bool {
	if post == nil {
		return false
	}
	if viewerID != 0 && post.AuthorID == viewerID {
		return true
	}
	return PubliclyVisible(post, at)
}

// publishedScope is the query-side twin of PubliclyVisible. Every public
// listing (feed, category, non-owner profile) and the non-owner detail lookup
// must go through this scope so the predicate cannot diverge between views.
// The inner join drops posts without a live category.
func publishedScope(at time.Time) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		return query.
			Joins("JOIN categories ON categories.id = posts.category_id AND categories.deleted_at IS NULL").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", at).
			Where("categories.is_published = ?", true)
	}
}
