package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPSEnforcer redirects plain HTTP traffic to HTTPS. The memo API sits
// behind a proxy in production, so the X-Forwarded-Proto header counts as
// proof of TLS termination upstream.
type HTTPSEnforcer struct {
	enabled bool
	logger  *zap.Logger
}

// NewHTTPSEnforcer enables enforcement in release mode or when
// ENFORCE_HTTPS=true. AppConfig.EnforceHTTPS overrides this via SetEnabled.
func NewHTTPSEnforcer(logger *zap.Logger) *HTTPSEnforcer {
	enabled := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENFORCE_HTTPS") == "true"

	return &HTTPSEnforcer{
		enabled: enabled,
		logger:  logger,
	}
}

func (he *HTTPSEnforcer) HTTPSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !he.enabled || he.isSecure(c) {
			c.Next()
			return
		}

		host := c.GetHeader("Host")
		target := "https://" + host + c.Request.RequestURI

		he.logger.Info("Insecure memo API request, redirecting",
			zap.String("requested_url", c.Request.URL.String()),
			zap.String("redirect_target", target))

		c.Redirect(http.StatusMovedPermanently, target)
		c.Abort()
	}
}

// isSecure reports whether the request already arrived over TLS, was
// terminated upstream, or targets a local development host.
func (he *HTTPSEnforcer) isSecure(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}

	if c.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}

	host := c.GetHeader("Host")

	return strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1")
}

func (he *HTTPSEnforcer) SetEnabled(enabled bool) {
	he.enabled = enabled
}

func (he *HTTPSEnforcer) IsEnabled() bool {
	return he.enabled
}
