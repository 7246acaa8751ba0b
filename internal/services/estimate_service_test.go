package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
)

func TestEstimateService_Estimate(t *testing.T) {
	svc := &EstimateService{
		Estimator: pricing.Estimator{Sampler: fixedSampler{pricing.RoofSample{
			AreaSqm:    100,
			Material:   "ardoise",
			Complexity: "moyenne",
		}}},
	}
	ctx := context.Background()

	if _, err := svc.Estimate(ctx, "  "); !errors.Is(err, ErrEmptyAddress) {
		t.Fatalf("blank address err = %v", err)
	}

	est, err := svc.Estimate(ctx, " 7 rue des Lilas, Nantes ")
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if est.Address != "7 rue des Lilas, Nantes" {
		t.Errorf("address not trimmed: %q", est.Address)
	}
	if est.EstimatedCostMin != 10200 || est.EstimatedCostMax != 15000 {
		t.Errorf("estimate = %d-%d, want 10200-15000", est.EstimatedCostMin, est.EstimatedCostMax)
	}
	if est.MaterialType != "ardoise" {
		t.Errorf("material = %q", est.MaterialType)
	}
}
