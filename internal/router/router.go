package router

import (
	"html/template"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
)

// Setup 配置 Gin 引擎和路由
func Setup(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(api.ServerError))

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("blogicum_session", store))

	if cfg.EnableCSRF {
		r.Use(csrf.Middleware(csrf.Options{
			Secret:    cfg.SessionSecret,
			ErrorFunc: api.CSRFFailure,
		}))
	}

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	// 静态文件服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	// 公开页面
	r.GET("/", api.ShowFeed)
	r.GET("/posts/:id", api.ShowPostDetail)
	r.GET("/category/:slug", api.ShowCategory)
	r.GET("/profile/:username", api.ShowProfile)
	r.GET("/pages/about", api.ShowAbout)
	r.GET("/pages/rules", api.ShowRules)

	// 会话认证
	auth := r.Group("/auth")
	{
		auth.GET("/login", api.ShowLoginPage)
		auth.POST("/login", api.Login)
		auth.GET("/logout", api.Logout)
		auth.GET("/registration", api.ShowRegistration)
		auth.POST("/registration", api.Register)
	}

	// 需要登录的路由
	private := r.Group("")
	private.Use(handler.AuthRequired())
	{
		private.GET("/posts/new", api.ShowPostCreate)
		private.POST("/posts/new", api.CreatePost)
		private.GET("/posts/:id/edit", api.ShowPostEdit)
		private.POST("/posts/:id/edit", api.UpdatePost)
		private.GET("/posts/:id/delete", api.ShowPostDelete)
		private.POST("/posts/:id/delete", api.DeletePost)

		private.POST("/posts/:id/comment", api.CreateComment)
		private.GET("/posts/:id/comment/:cid/edit", api.ShowCommentEdit)
		private.POST("/posts/:id/comment/:cid/edit", api.UpdateComment)
		private.GET("/posts/:id/comment/:cid/delete", api.ShowCommentDelete)
		private.POST("/posts/:id/comment/:cid/delete", api.DeleteComment)

		private.GET("/profile/edit", api.ShowProfileEdit)
		private.POST("/profile/edit", api.UpdateProfile)

		private.POST("/api/upload", api.UploadImage)
	}

	r.NoRoute(api.NotFound)

	return r
}
