// Google proxy HTTP handlers.
//
// This file exposes thin pass-through endpoints for the Google APIs the
// frontend cannot call directly (the key must stay server-side):
//   - POST /geocode        (Google Geocoding API)
//   - POST /solar-analysis (Google Solar API)
//
// Upstream JSON payloads are relayed verbatim; only the key injection and
// error translation happen here.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nicolasb03/soumissiontoiture/internal/upstream"
)

//
// DTOs
//

// GeocodeRequest is the JSON payload for the geocoding proxy.
type GeocodeRequest struct {
	Address string `json:"address" binding:"required" example:"12 rue de la Paix, 75002 Paris"`
}

// SolarAnalysisRequest is the JSON payload for the solar proxy. Pointers keep
// an explicit zero coordinate distinguishable from an absent field.
type SolarAnalysisRequest struct {
	Lat *float64 `json:"lat" binding:"required" example:"48.8566"`
	Lng *float64 `json:"lng" binding:"required" example:"2.3522"`
}

// relayUpstream translates upstream client failures into the standard error
// envelope, or writes the raw upstream JSON through untouched.
func relayUpstream(c *gin.Context, body []byte, err error) {
	if err != nil {
		var ue *upstream.UpstreamError
		switch {
		case errors.Is(err, upstream.ErrMissingAPIKey):
			fail(c, http.StatusInternalServerError, ErrCodeConfig, "google api key is not configured")
		case errors.As(err, &ue):
			fail(c, http.StatusInternalServerError, ErrCodeUpstream, ue.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpstream, err.Error())
		}
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

//
// Handlers
//

// Geocode godoc
// @ID          geocode
// @Summary     Geocode an address
// @Description Proxies the Google Geocoding API and relays the upstream JSON verbatim.
// @Tags        Proxies
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.GeocodeRequest  true  "Geocode payload"
//
// @Success     200  {object}  map[string]any  "Upstream Geocoding payload"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Configuration or upstream error"
// @Router      /geocode [post]
func (h *Handlers) Geocode(c *gin.Context) {
	var req GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "address is required")
		return
	}

	body, err := h.google.Geocode(c.Request.Context(), req.Address)
	relayUpstream(c, body, err)
}

// SolarAnalysis godoc
// @ID          solarAnalysis
// @Summary     Analyze solar potential
// @Description Proxies the Google Solar API for a coordinate pair and relays the upstream JSON verbatim.
// @Tags        Proxies
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SolarAnalysisRequest  true  "Solar payload"
//
// @Success     200  {object}  map[string]any  "Upstream Solar payload"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Configuration or upstream error"
// @Router      /solar-analysis [post]
func (h *Handlers) SolarAnalysis(c *gin.Context) {
	var req SolarAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lng == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "lat and lng are required")
		return
	}

	body, err := h.google.SolarAnalysis(c.Request.Context(), *req.Lat, *req.Lng)
	relayUpstream(c, body, err)
}
