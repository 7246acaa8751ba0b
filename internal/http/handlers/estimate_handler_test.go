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

	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
)

func TestCreateEstimate_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := New(stubEstSvc{}, stubConvSvc{}, stubLeadSvc{}, stubGoogle{})
	r := gin.New()
	r.POST("/estimate", h.CreateEstimate)

	for _, body := range []string{"{bad", `{}`, `{"address":"  "}`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/estimate", bytes.NewBufferString(body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q -> %d, want 400", body, w.Code)
		}
	}
}

func TestCreateEstimate_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	est := stubEstSvc{
		estimate: func(ctx context.Context, address string) (*pricing.Estimation, error) {
			return &pricing.Estimation{
				Address:          address,
				RoofAreaSqm:      120,
				EstimatedCostMin: 8000,
				EstimatedCostMax: 14000,
				MaterialType:     "zinc",
				Complexity:       "simple",
				Factors:          []string{"Surface de toiture: 120 m²"},
			}, nil
		},
	}
	h := New(est, stubConvSvc{}, stubLeadSvc{}, stubGoogle{})
	r := gin.New()
	r.POST("/estimate", h.CreateEstimate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/estimate",
		bytes.NewBufferString(`{"address":"3 rue Test, Lille"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("estimate -> %d body=%s", w.Code, w.Body.String())
	}

	var out pricing.Estimation
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Address != "3 rue Test, Lille" || out.EstimatedCostMin != 8000 || out.MaterialType != "zinc" {
		t.Errorf("estimation = %#v", out)
	}
}

func TestCreateEstimate_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	est := stubEstSvc{
		estimate: func(ctx context.Context, address string) (*pricing.Estimation, error) {
			return nil, errors.New("boom")
		},
	}
	h := New(est, stubConvSvc{}, stubLeadSvc{}, stubGoogle{})
	r := gin.New()
	r.POST("/estimate", h.CreateEstimate)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/estimate",
		bytes.NewBufferString(`{"address":"x"}`)))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("error -> %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != ErrCodeEstimateFailed {
		t.Errorf("code = %q", resp.Code)
	}
}
