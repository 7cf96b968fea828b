package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/handler"
	"github.com/blogicum/internal/router"
	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ginOnce sync.Once

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		SessionSecret: "test-secret",
		TemplateGlob:  "../../web/template/*.html",
		UploadDir:     t.TempDir(),
		UploadURLPath: "/static/uploads",
	}
}

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	dsn := fmt.Sprintf("file:blog-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Category{}, &db.Location{}, &db.Post{}, &db.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := testConfig(t)
	notifier := service.NewNotifier(nil, "http://example.test")
	api := handler.NewAPI(gdb, notifier, cfg.UploadDir, cfg.UploadURLPath)
	return router.Setup(cfg, api), gdb
}

func registerUser(t *testing.T, gdb *gorm.DB, username string) db.User {
	t.Helper()
	user, err := service.NewUserService(gdb).Register(username, username+"@example.com", username+"-password")
	if err != nil {
		t.Fatalf("register %q: %v", username, err)
	}
	return *user
}

func login(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	form := url.Values{
		"username": {username},
		"password": {username + "-password"},
	}
	w := doRequest(r, http.MethodPost, "/auth/login", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login as %q: expected redirect, got %d", username, w.Code)
	}
	return w.Result().Cookies()
}

func doRequest(r *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedCategory(t *testing.T, gdb *gorm.DB, slug string, published bool) db.Category {
	t.Helper()
	category := db.Category{Title: slug, Slug: slug, IsPublished: published}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("create category %q: %v", slug, err)
	}
	return category
}

func seedPost(t *testing.T, gdb *gorm.DB, title string, authorID uint, categoryID *uint, pubDate time.Time, published bool) db.Post {
	t.Helper()
	post := db.Post{
		Title:       title,
		Text:        "text of " + title,
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}
