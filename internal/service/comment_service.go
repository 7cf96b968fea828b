package service

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentInvalid   = errors.New("comment text is required")
	ErrNotCommentAuthor = errors.New("actor is not the comment author")
)

// CommentService wraps comment related database operations and the
// new-comment notification side effect.
type CommentService struct {
	db       *gorm.DB
	posts    *PostService
	notifier *Notifier
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB, posts *PostService, notifier *Notifier) *CommentService {
	return &CommentService{db: gdb, posts: posts, notifier: notifier}
}

// ListForPost returns a post's comments oldest first with authors preloaded.
func (s *CommentService) ListForPost(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Create resolves the parent post through the visibility-aware lookup,
// persists the comment and, when a third party comments, notifies the post
// author. Notification failures never fail the creation.
func (s *CommentService) Create(postID, actorID uint, text string, at time.Time) (*db.Comment, error) {
	post, err := s.posts.GetVisible(postID, actorID, at)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentInvalid
	}

	comment := db.Comment{
		Text:     trimmed,
		PostID:   post.ID,
		AuthorID: actorID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if post.AuthorID != actorID {
		var commenter db.User
		if err := s.db.First(&commenter, actorID).Error; err == nil {
			s.notifier.NotifyNewComment(post, &commenter)
		}
	}

	return s.Get(comment.ID)
}

// Get fetches a comment by id with its author preloaded.
func (s *CommentService) Get(id uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// AuthorizeMutation gates edit and delete actions on a comment.
func (s *CommentService) AuthorizeMutation(comment *db.Comment, actorID uint) error {
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != actorID {
		return ErrNotCommentAuthor
	}
	return nil
}

// Update replaces the comment text.
func (s *CommentService) Update(id uint, text string) (*db.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentInvalid
	}

	if err := s.db.Model(&db.Comment{}).
		Where("id = ?", id).
		Update("text", trimmed).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes a comment by id.
func (s *CommentService) Delete(id uint) error {
	return s.db.Delete(&db.Comment{}, id).Error
}
