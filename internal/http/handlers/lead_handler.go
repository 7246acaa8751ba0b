// Lead HTTP handlers.
//
// This file exposes REST endpoints for captured prospects:
//   - POST /leads       (create)
//   - GET  /leads       (list, newest first, ETag support)
//   - GET  /leads/{id}  (fetch one)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Nicolasb03/soumissiontoiture/internal/domain"
	"github.com/Nicolasb03/soumissiontoiture/internal/repo"
	"github.com/Nicolasb03/soumissiontoiture/internal/services"
	"github.com/Nicolasb03/soumissiontoiture/internal/utils"
)

//
// DTOs
//

// CreateLeadRequest is the JSON payload for recording a lead. The cost range
// uses pointers so a missing field is distinguishable from an explicit zero.
type CreateLeadRequest struct {
	Address          string   `json:"address" binding:"required" example:"12 rue de la Paix, 75002 Paris"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	RoofAreaSqm      *float64 `json:"roof_area_sqm,omitempty"`
	EstimatedCostMin *int     `json:"estimated_cost_min"`
	EstimatedCostMax *int     `json:"estimated_cost_max"`
	ClientName       string   `json:"client_name,omitempty"`
	ClientEmail      string   `json:"client_email,omitempty"`
	ClientPhone      string   `json:"client_phone,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListLeadsResponse wraps a page of leads and pagination information.
type ListLeadsResponse struct {
	Leads      []domain.Lead `json:"leads"`
	Pagination Pagination    `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate computes the pagination envelope for a page result.
func paginate(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// fullListPagination describes an unpaginated full-list response: one page
// holding every item.
func fullListPagination(n int) Pagination {
	totalPages := 0
	if n > 0 {
		totalPages = 1
	}
	return Pagination{
		Page:       1,
		PageSize:   n,
		Total:      int64(n),
		TotalPages: totalPages,
		HasNext:    false,
	}
}

//
// Handlers
//

// CreateLead godoc
// @ID          createLead
// @Summary     Record a lead
// @Description Persists a qualified prospect with their estimate and contact details.
// @Tags        Leads
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateLeadRequest  true  "Lead payload"
//
// @Success     201  {object}  domain.Lead
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /leads [post]
func (h *Handlers) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.leadSvc.Create(c.Request.Context(), services.CreateLeadInput{
		Address:          req.Address,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		RoofAreaSqm:      req.RoofAreaSqm,
		EstimatedCostMin: req.EstimatedCostMin,
		EstimatedCostMax: req.EstimatedCostMax,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyAddress):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
		case errors.Is(err, services.ErrMissingCostRange):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "estimated_cost_min and estimated_cost_max are required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, lead)
}

// ListLeads godoc
// @ID          listLeads
// @Summary     List leads
// @Description Returns all leads newest first, or a page when page/page_size are supplied. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Leads
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListLeadsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /leads [get]
func (h *Handlers) ListLeads(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okCast := h.leadSvc.(*services.LeadService); okCast {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.LeadsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"leads:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Without explicit paging the full list is returned.
	if c.Query("page") == "" && c.Query("page_size") == "" {
		items, err := h.leadSvc.List(ctx)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, ListLeadsResponse{
			Leads:      items,
			Pagination: fullListPagination(len(items)),
		})
		return
	}

	page, pageSize := clampPagination(c)
	items, total, err := h.leadSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, ListLeadsResponse{
		Leads:      items,
		Pagination: paginate(page, pageSize, total),
	})
}

// GetLead godoc
// @ID          getLead
// @Summary     Fetch a lead
// @Description Returns a single lead by its numeric id.
// @Tags        Leads
// @Produce     json
//
// @Param       id  path  int  true  "Lead ID"  minimum(1)
//
// @Success     200  {object}  domain.Lead
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Lead not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /leads/{id} [get]
func (h *Handlers) GetLead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "lead id must be a positive integer")
		return
	}

	lead, err := h.leadSvc.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrLeadNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "lead not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, lead)
}
