package service

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrPostInvalid   = errors.New("post is missing required fields")
	ErrNotPostAuthor = errors.New("actor is not the post author")
)

// DefaultPageSize is the fixed page size for the feed and all listings.
const DefaultPageSize = 10

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	AuthorID   uint
	CategoryID uint
	Page       int
	PerPage    int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageURL    string
	CategoryID  *uint
	LocationID  *uint
	AuthorID    uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ListPublished returns the public feed: posts passing the visibility
// predicate at the given instant, newest first by publication time, with
// author, category and location preloaded for display.
func (s *PostService) ListPublished(filter PostFilter, at time.Time) (*PostListResult, error) {
	return s.list(filter, s.db.Model(&db.Post{}).Scopes(publishedScope(at)),
		s.dataQuery().Scopes(publishedScope(at)))
}

// ListAll returns posts without any visibility filtering, same ordering and
// preloads as the feed. Only used when the viewer owns the listed resources.
func (s *PostService) ListAll(filter PostFilter) (*PostListResult, error) {
	return s.list(filter, s.db.Model(&db.Post{}), s.dataQuery())
}

func (s *PostService) dataQuery() *gorm.DB {
	return s.db.Model(&db.Post{}).
		Preload("Author").
		Preload("Category").
		Preload("Location")
}

func (s *PostService) list(filter PostFilter, countQuery, dataQuery *gorm.DB) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = DefaultPageSize
	}

	countQuery = applyPostFilters(countQuery, filter)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	dataQuery = applyPostFilters(dataQuery, filter)

	var posts []db.Post
	if err := dataQuery.
		Order("posts.pub_date desc, posts.id desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	result.Posts = posts
	return result, nil
}

func applyPostFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	return query
}

// Get fetches a post by id with relations preloaded, regardless of
// visibility.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.dataQuery().First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetVisible fetches a post as seen by a viewer: the author sees their own
// post unconditionally, everyone else only when the public predicate holds.
// Invisibility is indistinguishable from absence.
func (s *PostService) GetVisible(id, viewerID uint, at time.Time) (*db.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !VisibleTo(post, viewerID, at) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// AuthorizeMutation gates edit and delete actions on a post.
func (s *PostService) AuthorizeMutation(post *db.Post, actorID uint) error {
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != actorID {
		return ErrNotPostAuthor
	}
	return nil
}

// Create persists a new post.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	text := strings.TrimSpace(input.Text)
	if title == "" || text == "" || input.AuthorID == 0 {
		return nil, ErrPostInvalid
	}

	pubDate := input.PubDate
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	post := db.Post{
		Title:       title,
		Text:        text,
		PubDate:     pubDate,
		IsPublished: input.IsPublished,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		AuthorID:    input.AuthorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return s.Get(post.ID)
}

// Update applies updates to an existing post.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	text := strings.TrimSpace(input.Text)
	if title == "" || text == "" {
		return nil, ErrPostInvalid
	}

	existing.Title = title
	existing.Text = text
	if !input.PubDate.IsZero() {
		existing.PubDate = input.PubDate
	}
	existing.IsPublished = input.IsPublished
	existing.ImageURL = strings.TrimSpace(input.ImageURL)
	existing.CategoryID = input.CategoryID
	existing.LocationID = input.LocationID

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return s.Get(existing.ID)
}

// Delete removes a post together with its comments.
func (s *PostService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Post{}, id).Error
	})
}
