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

// CreateComment 处理提交评论请求。父文章对提交者不可见时返回 404。
func (a *API) CreateComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.NotFound(c)
		return
	}

	actor := currentUserID(c)
	detailURL := fmt.Sprintf("/posts/%d", postID)

	if _, err := a.comments.Create(postID, actor, c.PostForm("text"), time.Now()); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			a.NotFound(c)
		case errors.Is(err, service.ErrCommentInvalid):
			c.Redirect(http.StatusFound, detailURL)
		default:
			a.renderServerError(c)
		}
		return
	}

	c.Redirect(http.StatusFound, detailURL)
}

// ShowCommentEdit 渲染编辑评论表单
func (a *API) ShowCommentEdit(c *gin.Context) {
	comment, ok := a.commentMutationGate(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "comment_form.html", gin.H{
		"title":     "Edit comment",
		"comment":   comment,
		"isDelete":  false,
		"viewer":    currentUsername(c),
		"csrfToken": csrfToken(c),
	})
}

// UpdateComment 处理编辑评论请求
func (a *API) UpdateComment(c *gin.Context) {
	comment, ok := a.commentMutationGate(c)
	if !ok {
		return
	}

	detailURL := fmt.Sprintf("/posts/%d", comment.PostID)
	if _, err := a.comments.Update(comment.ID, c.PostForm("text")); err != nil {
		if errors.Is(err, service.ErrCommentInvalid) {
			c.Redirect(http.StatusFound, detailURL)
			return
		}
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, detailURL)
}

// ShowCommentDelete 渲染删除评论确认页
func (a *API) ShowCommentDelete(c *gin.Context) {
	comment, ok := a.commentMutationGate(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "comment_form.html", gin.H{
		"title":     "Delete comment",
		"comment":   comment,
		"isDelete":  true,
		"viewer":    currentUsername(c),
		"csrfToken": csrfToken(c),
	})
}

// DeleteComment 删除评论
func (a *API) DeleteComment(c *gin.Context) {
	comment, ok := a.commentMutationGate(c)
	if !ok {
		return
	}

	if err := a.comments.Delete(comment.ID); err != nil {
		a.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", comment.PostID))
}

// commentMutationGate 解析并校验评论归属：评论缺失或不属于 URL 中的文章
// 返回 404；非作者软拒绝重定向到详情页；最后复核父文章当前对操作者可见
// （公开可见或操作者为文章作者），防止对已下线文章的遗留评论操作。
func (a *API) commentMutationGate(c *gin.Context) (*db.Comment, bool) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.NotFound(c)
		return nil, false
	}
	commentID, err := parseUintParam(c, "cid")
	if err != nil {
		a.NotFound(c)
		return nil, false
	}

	comment, err := a.comments.Get(commentID)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			a.NotFound(c)
			return nil, false
		}
		a.renderServerError(c)
		return nil, false
	}
	if comment.PostID != postID {
		a.NotFound(c)
		return nil, false
	}

	actor := currentUserID(c)
	if err := a.comments.AuthorizeMutation(comment, actor); err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", comment.PostID))
		c.Abort()
		return nil, false
	}

	if _, err := a.posts.GetVisible(comment.PostID, actor, time.Now()); err != nil {
		a.NotFound(c)
		return nil, false
	}

	return comment, true
}
