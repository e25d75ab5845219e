package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// probePaths - опросы мониторинга; их не пишем, чтобы не забивать журнал пайплайна.
var probePaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/healthz": {},
}

// RequestLogger - одна строка на запрос к служебному эндпоинту.
// Ответы 5xx пишутся предупреждением. request_id и trace_id логгер берёт из контекста сам.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if _, ok := probePaths[path]; ok && status < http.StatusInternalServerError {
			return
		}

		logf := log.Infof
		if status >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		logf(
			c.Request.Context(),
			"http request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
