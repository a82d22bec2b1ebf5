package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowsBurstThenRefills(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	l := NewRateLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected", i)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("request beyond burst allowed")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatal("other client throttled")
	}

	now = now.Add(20 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Fatal("token not refilled after one interval")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	l := NewRateLimiter(10, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(2 * time.Minute)
	l.Allow("b")

	now = now.Add(2 * time.Minute)
	if removed := l.Sweep(); removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	if _, ok := l.visitors["b"]; !ok {
		t.Fatal("active visitor swept")
	}
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewRateLimiter(1, time.Minute)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("origin outside the allow list echoed")
	}
}
