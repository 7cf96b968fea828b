package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowProfile 渲染用户主页：本人可见全部文章，他人只见已发布内容。
func (a *API) ShowProfile(c *gin.Context) {
	profile, err := a.users.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			a.NotFound(c)
			return
		}
		a.renderServerError(c)
		return
	}

	viewer := currentUserID(c)
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	filter := service.PostFilter{AuthorID: profile.ID, Page: page}

	var posts *service.PostListResult
	if viewer == profile.ID {
		posts, err = a.posts.ListAll(filter)
	} else {
		posts, err = a.posts.ListPublished(filter, time.Now())
	}
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"title":      profile.Username,
		"profile":    profile,
		"posts":      posts.Posts,
		"page":       posts.Page,
		"totalPages": posts.TotalPages,
		"isOwner":    viewer == profile.ID,
		"viewer":     currentUsername(c),
	})
}

// ShowProfileEdit 渲染编辑个人资料表单
func (a *API) ShowProfileEdit(c *gin.Context) {
	user, err := a.users.GetByUsername(currentUsername(c))
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "profile_edit.html", gin.H{
		"title":     "Edit profile",
		"user":      user,
		"viewer":    user.Username,
		"csrfToken": csrfToken(c),
	})
}

// UpdateProfile 处理编辑个人资料请求
func (a *API) UpdateProfile(c *gin.Context) {
	input := service.ProfileInput{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
	}

	user, err := a.users.UpdateProfile(currentUserID(c), input)
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s", user.Username))
}
