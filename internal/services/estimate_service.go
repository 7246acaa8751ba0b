// Package services – EstimateService
//
// This file implements the one-shot estimation use case: a single address in,
// a cost range out, with roof data fabricated by the pricing.Sampler. The
// randomness lives behind that interface on purpose (it stands in for an
// unimplemented measurement step), so this service stays trivially testable
// with a deterministic sampler.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
)

// EstimateService computes one-shot estimates.
type EstimateService struct {
	Estimator pricing.Estimator
}

// Estimate validates the address and returns a one-shot estimation.
// A blank address yields ErrEmptyAddress.
func (s *EstimateService) Estimate(ctx context.Context, address string) (*pricing.Estimation, error) {
	tr := otel.Tracer("services/EstimateService")
	_, span := tr.Start(ctx, "Estimate")
	defer span.End()

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	span.SetAttributes(attribute.String("estimate.address", address))

	est := s.Estimator.Estimate(address, 0)
	return &est, nil
}
