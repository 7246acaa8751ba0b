package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/things/:id", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/things/:id", "200"))
	if after != before+1 {
		t.Fatalf("counter %v -> %v, want +1", before, after)
	}
}

func TestMetrics_UnmatchedRouteUsesRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nowhere", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nowhere", "404"))
	if after != before+1 {
		t.Fatalf("counter %v -> %v, want +1", before, after)
	}
}

func TestCountEstimate(t *testing.T) {
	before := testutil.ToFloat64(estimatesComputed.WithLabelValues("one_shot"))
	CountEstimate("one_shot")
	after := testutil.ToFloat64(estimatesComputed.WithLabelValues("one_shot"))
	if after != before+1 {
		t.Fatalf("estimate counter %v -> %v, want +1", before, after)
	}
}
