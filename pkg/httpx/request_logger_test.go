package httpx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/lmnh_kiosk/pkg/httpx"
)

// recLogger - запоминает строки по уровням.
type recLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recLogger) Infof(_ context.Context, f string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(f, a...))
}

func (l *recLogger) Warnf(_ context.Context, f string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(f, a...))
}

func (l *recLogger) Errorf(context.Context, string, ...any) {}

func newLoggedRouter(log *recLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })
	r.GET("/stats", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func hit(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func TestRequestLogger_SkipsHealthyProbes(t *testing.T) {
	log := &recLogger{}
	hit(newLoggedRouter(log), "/ping")

	require.Empty(t, log.infos)
	require.Empty(t, log.warns)
}

func TestRequestLogger_LogsRegularRequest(t *testing.T) {
	log := &recLogger{}
	hit(newLoggedRouter(log), "/stats")

	require.Len(t, log.infos, 1)
	require.Contains(t, log.infos[0], "method=GET path=/stats status=200")
}

func TestRequestLogger_ServerErrorAsWarning(t *testing.T) {
	log := &recLogger{}
	r := newLoggedRouter(log)
	hit(r, "/boom")
	hit(r, "/healthz")

	require.Empty(t, log.infos)
	require.Len(t, log.warns, 2)
	require.Contains(t, log.warns[0], "status=500")
	require.Contains(t, log.warns[1], "path=/healthz status=503")
}

func TestRequestLogger_UnknownRouteUsesURLPath(t *testing.T) {
	log := &recLogger{}
	hit(newLoggedRouter(log), "/missing")

	require.Len(t, log.infos, 1)
	require.Contains(t, log.infos[0], "path=/missing status=404")
}
