package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}

// currentUserID 返回当前会话用户的 ID，未登录时为 0。
func currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get("user_id").(uint); ok {
		return id
	}
	return 0
}

// currentUsername 返回当前会话用户名，未登录时为空串。
func currentUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if name, ok := session.Get("username").(string); ok {
		return name
	}
	return ""
}

// csrfToken 在启用了 CSRF 中间件时返回表单令牌，否则为空串。
func csrfToken(c *gin.Context) string {
	if _, ok := c.Get("csrfSecret"); !ok {
		return ""
	}
	return csrf.GetToken(c)
}

// parsePubDate 解析表单中的发布时间（datetime-local 格式），
// 解析失败时返回零值由调用方决定默认行为。
func parsePubDate(value string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func parseOptionalUint(value string) *uint {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		return nil
	}
	id := uint(parsed)
	return &id
}
