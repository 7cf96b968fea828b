package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowPostCreate 渲染新建文章表单
func (a *API) ShowPostCreate(c *gin.Context) {
	a.renderPostForm(c, http.StatusOK, nil, "")
}

// CreatePost 处理新建文章请求
func (a *API) CreatePost(c *gin.Context) {
	input := a.postInputFromForm(c)
	input.AuthorID = currentUserID(c)

	if _, err := a.posts.Create(input); err != nil {
		if errors.Is(err, service.ErrPostInvalid) {
			a.renderPostForm(c, http.StatusBadRequest, nil, "Title and text are required")
			return
		}
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s", currentUsername(c)))
}

// ShowPostEdit 渲染编辑文章表单，非作者软拒绝重定向到详情页。
func (a *API) ShowPostEdit(c *gin.Context) {
	post, ok := a.postMutationGate(c)
	if !ok {
		return
	}
	a.renderPostForm(c, http.StatusOK, post, "")
}

// UpdatePost 处理编辑文章请求
func (a *API) UpdatePost(c *gin.Context) {
	post, ok := a.postMutationGate(c)
	if !ok {
		return
	}

	input := a.postInputFromForm(c)
	if _, err := a.posts.Update(post.ID, input); err != nil {
		if errors.Is(err, service.ErrPostInvalid) {
			a.renderPostForm(c, http.StatusBadRequest, post, "Title and text are required")
			return
		}
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

// ShowPostDelete 渲染删除确认页
func (a *API) ShowPostDelete(c *gin.Context) {
	post, ok := a.postMutationGate(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "post_confirm_delete.html", gin.H{
		"title":     "Delete post",
		"post":      post,
		"viewer":    currentUsername(c),
		"csrfToken": csrfToken(c),
	})
}

// DeletePost 删除文章及其全部评论
func (a *API) DeletePost(c *gin.Context) {
	post, ok := a.postMutationGate(c)
	if !ok {
		return
	}

	if err := a.posts.Delete(post.ID); err != nil {
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s", currentUsername(c)))
}

// postMutationGate 解析并校验文章归属。文章不存在返回 404；
// 非作者重定向到详情页（软拒绝，不泄露原因）。
func (a *API) postMutationGate(c *gin.Context) (*db.Post, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.NotFound(c)
		return nil, false
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.NotFound(c)
			return nil, false
		}
		a.renderServerError(c)
		return nil, false
	}

	if err := a.posts.AuthorizeMutation(post, currentUserID(c)); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		c.Abort()
		return nil, false
	}

	return post, true
}

func (a *API) postInputFromForm(c *gin.Context) service.PostInput {
	pubDate := parsePubDate(c.PostForm("pub_date"))
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	return service.PostInput{
		Title:       c.PostForm("title"),
		Text:        c.PostForm("text"),
		PubDate:     pubDate,
		IsPublished: c.PostForm("is_published") != "",
		ImageURL:    c.PostForm("image_url"),
		CategoryID:  parseOptionalUint(c.PostForm("category_id")),
		LocationID:  parseOptionalUint(c.PostForm("location_id")),
		AuthorID:    currentUserID(c),
	}
}

func (a *API) renderPostForm(c *gin.Context, status int, post *db.Post, errorMessage string) {
	categories, err := a.categories.ListPublished()
	if err != nil {
		a.renderServerError(c)
		return
	}
	locations, err := a.locations.ListPublished()
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.HTML(status, "post_form.html", gin.H{
		"title":      "Post",
		"post":       post,
		"categories": categories,
		"locations":  locations,
		"error":      errorMessage,
		"viewer":     currentUsername(c),
		"csrfToken":  csrfToken(c),
	})
}
