package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func enforcerRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	enforcer := NewHTTPSEnforcer(zap.NewNop())
	enforcer.SetEnabled(enabled)

	router := gin.New()
	router.Use(enforcer.HTTPSMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func serveEnforced(router *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/health", nil)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHTTPSEnforcerRedirectsPlainRequests(t *testing.T) {
	RegisterTestingT(t)

	recorder := serveEnforced(enforcerRouter(true), map[string]string{
		"Host": "memos.example.com",
	})

	Expect(recorder.Code).To(Equal(http.StatusMovedPermanently))
	Expect(recorder.Header().Get("Location")).To(Equal("https://memos.example.com/health"))
}

func TestHTTPSEnforcerTrustsUpstreamTermination(t *testing.T) {
	RegisterTestingT(t)

	recorder := serveEnforced(enforcerRouter(true), map[string]string{
		"Host":              "memos.example.com",
		"X-Forwarded-Proto": "https",
	})

	Expect(recorder.Code).To(Equal(http.StatusOK))
}

func TestHTTPSEnforcerSkipsLocalHosts(t *testing.T) {
	RegisterTestingT(t)

	recorder := serveEnforced(enforcerRouter(true), map[string]string{
		"Host": "localhost:8080",
	})

	Expect(recorder.Code).To(Equal(http.StatusOK))
}

func TestHTTPSEnforcerDisabledPassesThrough(t *testing.T) {
	RegisterTestingT(t)

	recorder := serveEnforced(enforcerRouter(false), nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))
}
