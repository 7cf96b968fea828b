package handler

import (
	"github.com/blogicum/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	comments   *service.CommentService
	categories *service.CategoryService
	locations  *service.LocationService
	users      *service.UserService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, notifier *service.Notifier, uploadDir, uploadURL string) *API {
	posts := service.NewPostService(gdb)

	return &API{
		db:         gdb,
		posts:      posts,
		comments:   service.NewCommentService(gdb, posts, notifier),
		categories: service.NewCategoryService(gdb),
		locations:  service.NewLocationService(gdb),
		users:      service.NewUserService(gdb),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
