package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowAbout 渲染关于页面
func (a *API) ShowAbout(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"title":  "About",
		"viewer": currentUsername(c),
	})
}

// ShowRules 渲染规则页面
func (a *API) ShowRules(c *gin.Context) {
	c.HTML(http.StatusOK, "rules.html", gin.H{
		"title":  "Rules",
		"viewer": currentUsername(c),
	})
}

// NotFound 渲染静态 404 页面。不可见与不存在在这里不可区分。
func (a *API) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"title": "Page not found"})
}

// CSRFFailure 渲染静态 403 页面，供 CSRF 中间件的 ErrorFunc 使用。
func (a *API) CSRFFailure(c *gin.Context) {
	c.HTML(http.StatusForbidden, "403csrf.html", gin.H{"title": "CSRF check failed"})
	c.Abort()
}

// ServerError 供 panic 恢复中间件使用，渲染静态 500 页面。
func (a *API) ServerError(c *gin.Context, _ any) {
	a.renderServerError(c)
}

func (a *API) renderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{"title": "Server error"})
	c.Abort()
}
