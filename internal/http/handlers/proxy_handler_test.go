package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Nicolasb03/soumissiontoiture/internal/upstream"
)

func newProxyRouter(g GoogleAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubEstSvc{}, stubConvSvc{}, stubLeadSvc{}, g)
	r := gin.New()
	r.POST("/geocode", h.Geocode)
	r.POST("/solar-analysis", h.SolarAnalysis)
	return r
}

func TestGeocode_Validation(t *testing.T) {
	r := newProxyRouter(stubGoogle{})

	for _, body := range []string{"{bad", `{}`, `{"address":" "}`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/geocode", bytes.NewBufferString(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q -> %d, want 400", body, w.Code)
		}
	}
}

func TestGeocode_PassThrough(t *testing.T) {
	var gotAddr string
	r := newProxyRouter(stubGoogle{
		geocode: func(ctx context.Context, address string) ([]byte, error) {
			gotAddr = address
			return []byte(`{"status":"OK","results":[{"place_id":"p1"}]}`), nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/geocode",
		bytes.NewBufferString(`{"address":"1 rue Test, Paris"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("geocode -> %d", w.Code)
	}
	if gotAddr != "1 rue Test, Paris" {
		t.Errorf("address = %q", gotAddr)
	}
	// Body is relayed verbatim.
	if w.Body.String() != `{"status":"OK","results":[{"place_id":"p1"}]}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGeocode_MissingKeyIsConfigError(t *testing.T) {
	r := newProxyRouter(stubGoogle{
		geocode: func(ctx context.Context, address string) ([]byte, error) {
			return nil, upstream.ErrMissingAPIKey
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/geocode",
		bytes.NewBufferString(`{"address":"x"}`)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("missing key -> %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != ErrCodeConfig {
		t.Errorf("code = %q, want %q", resp.Code, ErrCodeConfig)
	}
}

func TestGeocode_UpstreamFailure(t *testing.T) {
	r := newProxyRouter(stubGoogle{
		geocode: func(ctx context.Context, address string) ([]byte, error) {
			return nil, &upstream.UpstreamError{API: "geocoding", Status: 403}
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/geocode",
		bytes.NewBufferString(`{"address":"x"}`)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("upstream failure -> %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != ErrCodeUpstream {
		t.Errorf("code = %q, want %q", resp.Code, ErrCodeUpstream)
	}

	// Any other transport error maps to upstream_error as well.
	r = newProxyRouter(stubGoogle{
		geocode: func(ctx context.Context, address string) ([]byte, error) {
			return nil, errors.New("dial tcp: timeout")
		},
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/geocode",
		bytes.NewBufferString(`{"address":"x"}`)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("transport failure -> %d", w.Code)
	}
}

func TestSolarAnalysis_Validation_And_Success(t *testing.T) {
	var gotLat, gotLng float64
	r := newProxyRouter(stubGoogle{
		solar: func(ctx context.Context, lat, lng float64) ([]byte, error) {
			gotLat, gotLng = lat, lng
			return []byte(`{"solarPotential":{}}`), nil
		},
	})

	// Both coordinates are required.
	for _, body := range []string{"{bad", `{}`, `{"lat":48.85}`, `{"lng":2.35}`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/solar-analysis", bytes.NewBufferString(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q -> %d, want 400", body, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/solar-analysis",
		bytes.NewBufferString(`{"lat":48.8566,"lng":2.3522}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("solar -> %d body=%s", w.Code, w.Body.String())
	}
	if gotLat != 48.8566 || gotLng != 2.3522 {
		t.Errorf("coords = %v,%v", gotLat, gotLng)
	}
	if w.Body.String() != `{"solarPotential":{}}` {
		t.Errorf("body = %s", w.Body.String())
	}
}
