package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowFeed renders the public home page with the published feed.
func (a *API) ShowFeed(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	posts, err := a.posts.ListPublished(service.PostFilter{Page: page}, time.Now())
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "Blogicum",
		"posts":      posts.Posts,
		"page":       posts.Page,
		"totalPages": posts.TotalPages,
		"viewer":     currentUsername(c),
	})
}

// ShowCategory renders the published feed restricted to one category. The
// category itself must exist and be published, otherwise 404.
func (a *API) ShowCategory(c *gin.Context) {
	category, err := a.categories.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			a.NotFound(c)
			return
		}
		a.renderServerError(c)
		return
	}

	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	posts, err := a.posts.ListPublished(service.PostFilter{CategoryID: category.ID, Page: page}, time.Now())
	if err != nil {
		a.renderServerError(c)
		return
	}

	c.HTML(http.StatusOK, "category.html", gin.H{
		"title":      category.Title,
		"category":   category,
		"posts":      posts.Posts,
		"page":       posts.Page,
		"totalPages": posts.TotalPages,
		"viewer":     currentUsername(c),
	})
}

// ShowPostDetail renders a single post with its comments. The author sees
// their own unpublished or scheduled post with a draft indicator; everyone
// else gets 404 unless the public predicate holds.
func (a *API) ShowPostDetail(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.NotFound(c)
		return
	}

	now := time.Now()
	viewer := currentUserID(c)

	post, err := a.posts.GetVisible(id, viewer, now)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			a.NotFound(c)
			return
		}
		a.renderServerError(c)
		return
	}

	comments, err := a.comments.ListForPost(post.ID)
	if err != nil {
		a.renderServerError(c)
		return
	}

	rendered, err := renderMarkdown(post.Text)
	if err != nil {
		rendered = template.HTML(template.HTMLEscapeString(post.Text))
	}

	isOwner := viewer != 0 && viewer == post.AuthorID

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"title":      post.Title,
		"post":       post,
		"text":       rendered,
		"comments":   comments,
		"isOwner":    isOwner,
		"isDraft":    isOwner && !service.PubliclyVisible(post, now),
		"canComment": viewer != 0,
		"viewer":     currentUsername(c),
		"csrfToken":  csrfToken(c),
	})
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
