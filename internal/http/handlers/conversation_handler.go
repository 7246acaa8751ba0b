// Conversation HTTP handlers.
//
// This file exposes REST endpoints for the scripted estimation dialogue:
//   - POST /conversation/start        (open a session, first question)
//   - POST /conversation/answer       (record an answer, next question or final)
//   - GET  /conversation/session/{id} (session snapshot)
//   - GET  /conversation/sessions     (list, newest first, ETag support)
//
// The answer endpoint returns one of two shapes: an intermediate payload with
// the next question and the running estimate, or a final payload with the
// conversation summary once the sequence is exhausted.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/conversation"
	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
	"github.com/Nicolasb03/soumissiontoiture/internal/http/middleware"
	"github.com/Nicolasb03/soumissiontoiture/internal/repo"
	"github.com/Nicolasb03/soumissiontoiture/internal/services"
)

//
// DTOs
//

// StartConversationRequest is the JSON payload for opening a session.
type StartConversationRequest struct {
	// Address is the property address the dialogue refines an estimate for.
	Address string `json:"address" binding:"required" example:"12 rue de la Paix, 75002 Paris"`
}

// StartConversationResponse is returned when a session is created. It echoes
// the address and the synthesized roof area alongside the first question.
type StartConversationResponse struct {
	SessionID      string                `json:"session_id"`
	Address        string                `json:"address"`
	RoofAreaSqm    float64               `json:"roof_area_sqm"`
	Question       conversation.Question `json:"question"`
	Progress       int                   `json:"progress"`
	TotalQuestions int                   `json:"total_questions"`
}

// AnswerRequest is the JSON payload for submitting an answer. Answer accepts
// either a bare string (single choice) or an array of strings (multiple
// choice).
type AnswerRequest struct {
	SessionID string             `json:"session_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Answer    domain.AnswerValue `json:"answer"`
}

// AnswerResponse is the intermediate answer payload: the next question plus
// the running estimate.
type AnswerResponse struct {
	SessionID        string                 `json:"session_id"`
	Completed        bool                   `json:"completed"`
	Question         *conversation.Question `json:"question,omitempty"`
	Progress         int                    `json:"progress"`
	TotalQuestions   int                    `json:"total_questions"`
	EstimatedCostMin int                    `json:"estimated_cost_min"`
	EstimatedCostMax int                    `json:"estimated_cost_max"`
}

// FinalAnswerResponse is the closing answer payload once all questions are
// answered.
type FinalAnswerResponse struct {
	SessionID       string                   `json:"session_id"`
	Completed       bool                     `json:"completed"`
	FinalEstimation services.FinalEstimation `json:"final_estimation"`
}

// ListSessionsResponse wraps a page of sessions and pagination information.
type ListSessionsResponse struct {
	Sessions   []domain.ConversationSession `json:"sessions"`
	Pagination Pagination                   `json:"pagination"`
}

//
// Handlers
//

// StartConversation godoc
// @ID          startConversation
// @Summary     Start an estimation conversation
// @Description Opens a new session for an address and returns the first question.
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.StartConversationRequest  true  "Start payload"
//
// @Success     201  {object}  handlers.StartConversationResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversation/start [post]
func (h *Handlers) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
		return
	}

	res, err := h.convSvc.Start(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, services.ErrEmptyAddress) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	ok(c, http.StatusCreated, StartConversationResponse{
		SessionID:      res.Session.ID,
		Address:        res.Session.Address,
		RoofAreaSqm:    res.Session.RoofAreaSqm,
		Question:       res.Question,
		Progress:       res.Progress,
		TotalQuestions: res.TotalQuestions,
	})
}

// SubmitAnswer godoc
// @ID          submitAnswer
// @Summary     Answer the current question
// @Description Records an answer, refines the estimate, and returns the next question or the final estimation.
// @Tags        Conversations
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AnswerRequest  true  "Answer payload"
//
// @Success     200  {object}  handlers.AnswerResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversation/answer [post]
func (h *Handlers) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "session_id is required")
		return
	}

	res, err := h.convSvc.SubmitAnswer(c.Request.Context(), req.SessionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		case errors.Is(err, services.ErrEmptyAnswer):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "answer is required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeAnswerFailed, err.Error())
		}
		return
	}

	middleware.CountEstimate("refined")

	if res.Completed {
		ok(c, http.StatusOK, FinalAnswerResponse{
			SessionID:       res.SessionID,
			Completed:       true,
			FinalEstimation: *res.Final,
		})
		return
	}

	ok(c, http.StatusOK, AnswerResponse{
		SessionID:        res.SessionID,
		Question:         res.NextQuestion,
		Progress:         res.Progress,
		TotalQuestions:   res.TotalQuestions,
		EstimatedCostMin: res.CostMin,
		EstimatedCostMax: res.CostMax,
	})
}

// GetSession godoc
// @ID          getSession
// @Summary     Fetch a session snapshot
// @Description Returns the full persisted state of a conversation session.
// @Tags        Conversations
// @Produce     json
//
// @Param       id  path  string  true  "Session ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.ConversationSession
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /conversation/session/{id} [get]
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.convSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, sess)
}

// ListSessions godoc
// @ID          listSessions
// @Summary     List sessions
// @Description Returns all conversation sessions newest first, or a page when page/page_size are supplied. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Conversations
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListSessionsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /conversation/sessions [get]
func (h *Handlers) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okCast := h.convSvc.(*services.ConversationService); okCast {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.SessionsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"sessions:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Without explicit paging the full list is returned.
	if c.Query("page") == "" && c.Query("page_size") == "" {
		items, err := h.convSvc.List(ctx)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, ListSessionsResponse{
			Sessions:   items,
			Pagination: fullListPagination(len(items)),
		})
		return
	}

	page, pageSize := clampPagination(c)
	items, total, err := h.convSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListSessionsResponse{
		Sessions:   items,
		Pagination: paginate(page, pageSize, total),
	})
}
