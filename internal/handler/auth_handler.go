package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogicum/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":     "Login",
		"csrfToken": csrfToken(c),
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.users.Authenticate(username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"title":     "Login",
			"error":     "Invalid username or password",
			"csrfToken": csrfToken(c),
		})
		return
	}

	if err := startSession(c, user.ID, user.Username); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title":     "Login",
			"error":     "Failed to save session",
			"csrfToken": csrfToken(c),
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// ShowRegistration 渲染注册页面
func (a *API) ShowRegistration(c *gin.Context) {
	c.HTML(http.StatusOK, "registration.html", gin.H{
		"title":     "Registration",
		"csrfToken": csrfToken(c),
	})
}

// Register 创建新账号并自动登录
func (a *API) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := a.users.Register(username, email, password)
	if err != nil {
		message := "Registration failed"
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			message = "Username is already taken"
		case errors.Is(err, service.ErrUserInvalid):
			message = "Username and password are required"
		}
		c.HTML(http.StatusBadRequest, "registration.html", gin.H{
			"title":     "Registration",
			"error":     message,
			"username":  username,
			"email":     email,
			"csrfToken": csrfToken(c),
		})
		return
	}

	if err := startSession(c, user.ID, user.Username); err != nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s", user.Username))
}

func startSession(c *gin.Context, userID uint, username string) error {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	session.Set("username", username)
	return session.Save()
}

// AuthRequired 认证中间件：未登录的访问重定向到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(c) == 0 {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
