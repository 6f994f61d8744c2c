package handlers

import (
	"net/http"
	"strings"

	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/services"
	"github.com/gin-gonic/gin"
)

// SecurityHandler handles security, earnings date and list change endpoints
type SecurityHandler struct {
	securitySvc *services.SecurityService
	earningsSvc *services.EarningsService
}

// NewSecurityHandler creates a new SecurityHandler
func NewSecurityHandler(securitySvc *services.SecurityService, earningsSvc *services.EarningsService) *SecurityHandler {
	return &SecurityHandler{
		securitySvc: securitySvc,
		earningsSvc: earningsSvc,
	}
}

// Search handles GET /securities?name=
// @Summary Search securities by name
// @Tags securities
// @Produce json
// @Param name query string true "Case-insensitive name fragment"
// @Success 200 {array} models.SecurityInfoResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /securities [get]
func (h *SecurityHandler) Search(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		badRequest(c, "name query parameter is required")
		return
	}

	results, err := h.securitySvc.Search(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// All handles GET /securities/all
// @Summary List all securities
// @Description Every security followed by every alternate name, each with its country
// @Tags securities
// @Produce json
// @Success 200 {array} models.SecurityCountryResult
// @Failure 500 {object} models.ErrorResponse
// @Router /securities/all [get]
func (h *SecurityHandler) All(c *gin.Context) {
	results, err := h.securitySvc.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Detail handles GET /securities/:ticker
// @Summary Get security detail
// @Description Security row, points over the default window, history by list and earnings dates
// @Tags securities
// @Produce json
// @Param ticker path string true "Security ticker"
// @Success 200 {object} models.SecurityDetailResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /securities/{ticker} [get]
func (h *SecurityHandler) Detail(c *gin.Context) {
	detail, err := h.securitySvc.Detail(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Earnings handles GET /securities/:ticker/earnings
// @Summary Get earnings dates
// @Tags securities
// @Produce json
// @Param ticker path string true "Security ticker"
// @Success 200 {object} models.EarningsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /securities/{ticker}/earnings [get]
func (h *SecurityHandler) Earnings(c *gin.Context) {
	resp, err := h.earningsSvc.Earnings(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /securities
// @Summary Add a security
// @Tags securities
// @Accept json
// @Produce json
// @Param request body models.CreateSecurityRequest true "Security"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /securities [post]
func (h *SecurityHandler) Create(c *gin.Context) {
	var req models.CreateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.securitySvc.AddSecurity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Ticker: req.Ticker})
}

// AddAltName handles POST /securities/:ticker/alt-names
// @Summary Add an alternate security name
// @Tags securities
// @Accept json
// @Produce json
// @Param ticker path string true "Security ticker"
// @Param request body models.CreateAltNameRequest true "Alternate name"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /securities/{ticker}/alt-names [post]
func (h *SecurityHandler) AddAltName(c *gin.Context) {
	var req models.CreateAltNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ticker := c.Param("ticker")
	if err := h.securitySvc.AddAltName(c.Request.Context(), ticker, req.AltName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{Ticker: ticker, Name: req.AltName})
}

// AddEarningsDate handles POST /earnings
// @Summary Add an earnings date
// @Description Records a native (default) or Bloomberg earnings date
// @Tags earnings
// @Accept json
// @Produce json
// @Param request body models.CreateEarningsDateRequest true "Earnings date"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /earnings [post]
func (h *SecurityHandler) AddEarningsDate(c *gin.Context) {
	var req models.CreateEarningsDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.earningsSvc.AddEarningsDate(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{Ticker: req.Ticker})
}

// AddListChange handles POST /list-changes
// @Summary Record a list change
// @Description Adds an event for a security on a list. The date is dd.mm.yy, stored as local midnight.
// @Tags lists
// @Accept json
// @Produce json
// @Param request body models.CreateListChangeRequest true "List change"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /list-changes [post]
func (h *SecurityHandler) AddListChange(c *gin.Context) {
	var req models.CreateListChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.securitySvc.AddListChange(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{Ticker: req.Ticker})
}
