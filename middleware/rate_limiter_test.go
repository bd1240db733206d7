package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fairway/config"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func ping(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitUsesConfiguredBudget(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 2
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	r := newLimitedRouter()
	for i := 0; i < 2; i++ {
		if code := ping(r, "203.0.113.7"); code != http.StatusOK {
			t.Fatalf("request %d within budget got %d", i+1, code)
		}
	}
	if code := ping(r, "203.0.113.7"); code != http.StatusTooManyRequests {
		t.Fatalf("request over budget got %d, want 429", code)
	}
	// A different client keeps its own budget.
	if code := ping(r, "203.0.113.8"); code != http.StatusOK {
		t.Fatalf("fresh client got %d, want 200", code)
	}
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.1:4321"
	c.Request.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.2")
	if ip := getClientIP(c); ip != "198.51.100.9" {
		t.Fatalf("got %q, want first forwarded entry", ip)
	}

	c.Request.Header.Del("X-Forwarded-For")
	c.Request.Header.Set("X-Real-IP", "198.51.100.10")
	if ip := getClientIP(c); ip != "198.51.100.10" {
		t.Fatalf("got %q, want X-Real-IP", ip)
	}

	c.Request.Header.Del("X-Real-IP")
	if ip := getClientIP(c); ip != "10.0.0.1" {
		t.Fatalf("got %q, want socket peer host", ip)
	}
}
