// One-shot estimate HTTP handler.
//
// This file exposes the instant estimation endpoint:
//   - POST /estimate  (address in, randomized cost range out)
//
// It also declares the service contracts consumed by the whole handler set
// and the Handlers wiring shared across the package. Handlers are
// transport-thin: they validate input, call application services, and
// translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
	"github.com/Nicolasb03/soumissiontoiture/internal/http/middleware"
	"github.com/Nicolasb03/soumissiontoiture/internal/pricing"
	"github.com/Nicolasb03/soumissiontoiture/internal/services"
)

//
// Service contracts (context-aware)
//

// EstimateService computes one-shot estimates from an address alone.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EstimateService interface {
	// Estimate returns a cost range for the given address.
	Estimate(ctx context.Context, address string) (*pricing.Estimation, error)
}

// ConversationService defines the scripted-dialogue operations consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ConversationService interface {
	// Start opens a new session for an address and returns the first question.
	Start(ctx context.Context, address string) (*services.StartResult, error)
	// SubmitAnswer records an answer and returns the next question or the
	// final estimation.
	SubmitAnswer(ctx context.Context, sessionID string, answer domain.AnswerValue) (*services.AnswerResult, error)
	// Get returns a full session snapshot.
	Get(ctx context.Context, id string) (*domain.ConversationSession, error)
	// List returns all sessions, newest first.
	List(ctx context.Context) ([]domain.ConversationSession, error)
	// ListPage returns a page of sessions, newest first, and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.ConversationSession, int64, error)
}

// LeadService defines lead capture and retrieval operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type LeadService interface {
	// Create validates and persists a new lead.
	Create(ctx context.Context, in services.CreateLeadInput) (*domain.Lead, error)
	// Get fetches a lead by id.
	Get(ctx context.Context, id uint) (*domain.Lead, error)
	// List returns all leads, newest first.
	List(ctx context.Context) ([]domain.Lead, error)
	// ListPage returns a page of leads, newest first, and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error)
}

// GoogleAPI defines the upstream Google proxy operations.
type GoogleAPI interface {
	// Geocode resolves an address and returns the raw upstream JSON.
	Geocode(ctx context.Context, address string) ([]byte, error)
	// SolarAnalysis fetches building insights for a coordinate pair.
	SolarAnalysis(ctx context.Context, lat, lng float64) ([]byte, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for estimates, conversations, leads, and the
// Google proxies. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	estSvc  EstimateService
	convSvc ConversationService
	leadSvc LeadService
	google  GoogleAPI
}

// New constructs and returns a Handlers instance bound to the given services.
func New(estSvc EstimateService, convSvc ConversationService, leadSvc LeadService, google GoogleAPI) *Handlers {
	return &Handlers{estSvc: estSvc, convSvc: convSvc, leadSvc: leadSvc, google: google}
}

//
// DTOs
//

// EstimateRequest is the JSON payload for a one-shot estimate.
type EstimateRequest struct {
	// Address is the property address to estimate for.
	Address string `json:"address" binding:"required" example:"12 rue de la Paix, 75002 Paris"`
}

//
// Handlers
//

// CreateEstimate godoc
// @ID          createEstimate
// @Summary     Compute a one-shot estimate
// @Description Returns an instant renovation cost range for an address. Roof data is synthesized server-side.
// @Tags        Estimates
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.EstimateRequest  true  "Estimate payload"
//
// @Success     200  {object}  pricing.Estimation
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /estimate [post]
func (h *Handlers) CreateEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
		return
	}

	est, err := h.estSvc.Estimate(c.Request.Context(), req.Address)
	if err != nil {
		if err == services.ErrEmptyAddress {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeEstimateFailed, err.Error())
		return
	}

	middleware.CountEstimate("one_shot")
	ok(c, http.StatusOK, est)
}
