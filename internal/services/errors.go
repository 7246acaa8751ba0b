// Package services defines the business logic for estimates, conversations,
// and leads. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrEmptyAddress is returned when an operation requires a property
	// address and none (or a blank one) was provided.
	ErrEmptyAddress = errors.New("address is required")

	// ErrSessionNotFound indicates that the requested conversation session
	// does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyAnswer is returned when a submit-answer request carries no
	// usable answer value.
	ErrEmptyAnswer = errors.New("answer is required")

	// ErrLeadNotFound indicates that the requested lead does not exist.
	ErrLeadNotFound = errors.New("lead not found")

	// ErrMissingCostRange is returned when a lead is created without both
	// ends of the estimated cost range.
	ErrMissingCostRange = errors.New("estimated_cost_min and estimated_cost_max are required")
)
