package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/blogicum/internal/db"
)

func TestRegistrationCreatesAccountAndLogsIn(t *testing.T) {
	r, gdb := setupTestApp(t)

	form := url.Values{
		"username": {"newcomer"},
		"email":    {"newcomer@example.com"},
		"password": {"newcomer-password"},
	}
	w := doRequest(r, http.MethodPost, "/auth/registration", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after registration, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/profile/newcomer" {
		t.Fatalf("expected redirect to the new profile, got %q", location)
	}

	var user db.User
	if err := gdb.Where("username = ?", "newcomer").First(&user).Error; err != nil {
		t.Fatalf("account should exist: %v", err)
	}
	if user.Password == "newcomer-password" {
		t.Fatalf("password must be stored hashed")
	}

	// 注册响应应携带已登录会话
	cookies := w.Result().Cookies()
	page := doRequest(r, http.MethodGet, "/posts/new", nil, cookies)
	if page.Code != http.StatusOK {
		t.Fatalf("expected the session to be logged in, got %d", page.Code)
	}
}

func TestRegistrationRejectsDuplicateUsername(t *testing.T) {
	r, gdb := setupTestApp(t)
	registerUser(t, gdb, "taken")

	form := url.Values{
		"username": {"taken"},
		"password": {"whatever"},
	}
	w := doRequest(r, http.MethodPost, "/auth/registration", form, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already taken") {
		t.Fatalf("expected a duplicate-username message")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, gdb := setupTestApp(t)
	registerUser(t, gdb, "locked")

	form := url.Values{
		"username": {"locked"},
		"password": {"not-the-password"},
	}
	w := doRequest(r, http.MethodPost, "/auth/login", form, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r, gdb := setupTestApp(t)
	registerUser(t, gdb, "leaver")
	cookies := login(t, r, "leaver")

	w := doRequest(r, http.MethodGet, "/auth/logout", nil, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", w.Code)
	}

	// 使用登出响应返回的会话 Cookie 再访问受保护页面
	loggedOut := w.Result().Cookies()
	page := doRequest(r, http.MethodGet, "/posts/new", nil, loggedOut)
	if page.Code != http.StatusFound || page.Header().Get("Location") != "/auth/login" {
		t.Fatalf("expected a login redirect after logout, got %d -> %q", page.Code, page.Header().Get("Location"))
	}
}
