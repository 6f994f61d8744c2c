package handlers

import (
	"net/http"

	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AdminHandler handles admin endpoints: catalog inserts, bulk imports and
// earnings syncs
type AdminHandler struct {
	catalogSvc  *services.CatalogService
	importSvc   *services.ImportService
	earningsSvc *services.EarningsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(catalogSvc *services.CatalogService, importSvc *services.ImportService, earningsSvc *services.EarningsService) *AdminHandler {
	return &AdminHandler{
		catalogSvc:  catalogSvc,
		importSvc:   importSvc,
		earningsSvc: earningsSvc,
	}
}

// AddWeight handles POST /admin/weights
// @Summary Add a weight
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateWeightRequest true "Weight"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/weights [post]
func (h *AdminHandler) AddWeight(c *gin.Context) {
	var req models.CreateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.catalogSvc.AddWeight(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Name: req.Name})
}

// AddCountry handles POST /admin/countries
// @Summary Add a country
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateDimensionRequest true "Country"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/countries [post]
func (h *AdminHandler) AddCountry(c *gin.Context) {
	var req models.CreateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.catalogSvc.AddCountry(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Ticker: req.Ticker, Name: req.Name})
}

// AddCurrency handles POST /admin/currencies
// @Summary Add a currency
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateDimensionRequest true "Currency"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/currencies [post]
func (h *AdminHandler) AddCurrency(c *gin.Context) {
	var req models.CreateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.catalogSvc.AddCurrency(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Ticker: req.Ticker, Name: req.Name})
}

// AddList handles POST /admin/lists
// @Summary Add a preference list
// @Description Creates a list, as a child of parent when one is given
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateListRequest true "List"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/lists [post]
func (h *AdminHandler) AddList(c *gin.Context) {
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.catalogSvc.AddList(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Ticker: req.Ticker, Name: req.Name})
}

// AddEvent handles POST /admin/events
// @Summary Add a list change event kind
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateEventRequest true "Event"
// @Success 201 {object} models.CreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/events [post]
func (h *AdminHandler) AddEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if *req.ValueSign < -1 || *req.ValueSign > 1 {
		badRequest(c, "value_sign must be -1, 0 or 1")
		return
	}

	id, err := h.catalogSvc.AddEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: int64(id), Ticker: req.Ticker, Name: req.Name})
}

// ReloadCatalog handles POST /admin/catalog/reload
// @Summary Reload the catalog index
// @Description Re-reads weights, countries, currencies, lists and events from the store
// @Tags admin
// @Produce json
// @Success 200 {object} cache.CatalogStats
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/catalog/reload [post]
func (h *AdminHandler) ReloadCatalog(c *gin.Context) {
	stats, err := h.catalogSvc.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	log.Infof("Catalog reloaded: %s", stats)
	c.JSON(http.StatusOK, stats)
}

// ImportListChanges handles POST /admin/list-changes/import
// @Summary Import list changes from CSV
// @Description Multipart upload with a "file" part holding ticker,list,event,date[,note] rows. Each row is applied on its own; rejected rows are reported.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} models.ImportListChangesResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/list-changes/import [post]
func (h *AdminHandler) ImportListChanges(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required: "+err.Error())
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer f.Close()

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	rows, err := ParseListChangesCSV(warnCtx, f)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	resp := h.importSvc.ImportListChanges(warnCtx, rows)
	resp.Warnings = wc.Warnings()
	log.Infof("Imported %d list changes from %s, %d rejected", resp.Imported, fh.Filename, len(resp.Rejected))
	c.JSON(http.StatusOK, resp)
}

// SyncEarnings handles POST /admin/earnings/sync/:ticker
// @Summary Sync earnings dates from AlphaVantage
// @Description Stores upcoming report dates from the earnings calendar that are not already known
// @Tags admin
// @Produce json
// @Param ticker path string true "Security ticker"
// @Success 200 {object} models.SyncEarningsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /admin/earnings/sync/{ticker} [post]
func (h *AdminHandler) SyncEarnings(c *gin.Context) {
	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.earningsSvc.SyncEarnings(warnCtx, c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Warnings = wc.Warnings()
	c.JSON(http.StatusOK, resp)
}
