package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A near-zero refill rate means only the burst tokens are available.
	rl := NewRateLimiter(0.0001, 2, KeyByClientIP())

	r := gin.New()
	r.Use(RequestID(), rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests rejected: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request not limited: %v", codes)
	}
}

func TestRateLimiter_429CarriesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(0.0001, 1, KeyByClientIP())
	r := gin.New()
	r.Use(RequestID(), rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Drain the single burst token.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"too_many_requests"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRateLimiter_ZeroRPSDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(0, 1, KeyByClientIP())
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d limited with rps=0", i)
		}
	}
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByClientIP())
	rl.ttl = 10 * time.Millisecond

	rl.allow("ip:1.2.3.4")
	if len(rl.visitors) != 1 {
		t.Fatalf("visitors = %d", len(rl.visitors))
	}

	time.Sleep(25 * time.Millisecond)
	rl.allow("ip:5.6.7.8") // triggers opportunistic GC
	if _, stale := rl.visitors["ip:1.2.3.4"]; stale {
		t.Fatalf("idle visitor not evicted")
	}
}

func TestKeyByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.9:1234"

	if got := KeyByClientIP()(c); got != "ip:192.0.2.9" {
		t.Fatalf("key = %q", got)
	}
}
