package handler_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/blogicum/internal/db"
)

func TestCreateCommentRequiresLogin(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	category := seedCategory(t, gdb, "open", true)
	post := seedPost(t, gdb, "Open post", author.ID, &category.ID, now.Add(-time.Hour), true)

	form := url.Values{"text": {"drive-by comment"}}
	w := doRequest(r, http.MethodPost, "/posts/"+itoa(post.ID)+"/comment", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/auth/login" {
		t.Fatalf("expected redirect to login, got %q", location)
	}
}

func TestCreateCommentRedirectsToDetail(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	registerUser(t, gdb, "reader")
	category := seedCategory(t, gdb, "open", true)
	post := seedPost(t, gdb, "Open post", author.ID, &category.ID, now.Add(-time.Hour), true)

	cookies := login(t, r, "reader")
	form := url.Values{"text": {"well said"}}
	w := doRequest(r, http.MethodPost, "/posts/"+itoa(post.ID)+"/comment", form, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/posts/"+itoa(post.ID) {
		t.Fatalf("expected redirect to the detail page, got %q", location)
	}

	var count int64
	gdb.Model(&db.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one persisted comment, got %d", count)
	}
}

func TestCreateCommentOnHiddenPostReturns404(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	registerUser(t, gdb, "reader")
	category := seedCategory(t, gdb, "open", true)
	draft := seedPost(t, gdb, "Hidden draft", author.ID, &category.ID, now.Add(-time.Hour), false)

	cookies := login(t, r, "reader")
	form := url.Values{"text": {"I can see drafts?"}}
	w := doRequest(r, http.MethodPost, "/posts/"+itoa(draft.ID)+"/comment", form, cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an invisible parent, got %d", w.Code)
	}

	var count int64
	gdb.Model(&db.Comment{}).Where("post_id = ?", draft.ID).Count(&count)
	if count != 0 {
		t.Fatalf("no comment should be persisted, got %d", count)
	}
}

func TestCommentEditByNonAuthorSoftDenies(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	commenter := registerUser(t, gdb, "commenter")
	registerUser(t, gdb, "meddler")
	category := seedCategory(t, gdb, "open", true)
	post := seedPost(t, gdb, "Open post", author.ID, &category.ID, now.Add(-time.Hour), true)

	comment := db.Comment{Text: "original text", PostID: post.ID, AuthorID: commenter.ID}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	cookies := login(t, r, "meddler")
	editPath := "/posts/" + itoa(post.ID) + "/comment/" + itoa(comment.ID) + "/edit"
	form := url.Values{"text": {"edited by someone else"}}
	w := doRequest(r, http.MethodPost, editPath, form, cookies)

	if w.Code != http.StatusFound {
		t.Fatalf("expected soft denial redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/posts/"+itoa(post.ID) {
		t.Fatalf("expected redirect to the detail page, got %q", location)
	}

	var reloaded db.Comment
	if err := gdb.First(&reloaded, comment.ID).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if reloaded.Text != "original text" {
		t.Fatalf("comment must not be mutated, text is %q", reloaded.Text)
	}
}

func TestCommentEditRevalidatesParentVisibility(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	commenter := registerUser(t, gdb, "commenter")
	category := seedCategory(t, gdb, "open", true)
	post := seedPost(t, gdb, "Was public", author.ID, &category.ID, now.Add(-time.Hour), true)

	comment := db.Comment{Text: "left while public", PostID: post.ID, AuthorID: commenter.ID}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	// 文章随后被作者下线
	if err := gdb.Model(&db.Post{}).Where("id = ?", post.ID).Update("is_published", false).Error; err != nil {
		t.Fatalf("unpublish post: %v", err)
	}

	cookies := login(t, r, "commenter")
	editPath := "/posts/" + itoa(post.ID) + "/comment/" + itoa(comment.ID) + "/edit"
	if w := doRequest(r, http.MethodGet, editPath, nil, cookies); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 once the parent is no longer visible, got %d", w.Code)
	}

	// 文章作者依旧可以管理自己草稿下的自己评论
	own := db.Comment{Text: "author note", PostID: post.ID, AuthorID: author.ID}
	if err := gdb.Create(&own).Error; err != nil {
		t.Fatalf("create author comment: %v", err)
	}
	authorCookies := login(t, r, "author")
	ownPath := "/posts/" + itoa(post.ID) + "/comment/" + itoa(own.ID) + "/edit"
	if w := doRequest(r, http.MethodGet, ownPath, nil, authorCookies); w.Code != http.StatusOK {
		t.Fatalf("post author should reach the edit form on their own draft, got %d", w.Code)
	}
}

func TestCommentDeleteByAuthor(t *testing.T) {
	r, gdb := setupTestApp(t)

	now := time.Now()
	author := registerUser(t, gdb, "author")
	commenter := registerUser(t, gdb, "commenter")
	category := seedCategory(t, gdb, "open", true)
	post := seedPost(t, gdb, "Open post", author.ID, &category.ID, now.Add(-time.Hour), true)

	comment := db.Comment{Text: "to be removed", PostID: post.ID, AuthorID: commenter.ID}
	if err := gdb.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	cookies := login(t, r, "commenter")
	deletePath := "/posts/" + itoa(post.ID) + "/comment/" + itoa(comment.ID) + "/delete"
	w := doRequest(r, http.MethodPost, deletePath, url.Values{}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after deletion, got %d", w.Code)
	}

	var count int64
	gdb.Model(&db.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected the comment to be deleted, found %d", count)
	}
}
