package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/epeers/preflists/internal/services"
	"github.com/epeers/preflists/internal/util"
	"github.com/gin-gonic/gin"
)

// PointsHandler handles the raw and time-weighted ranking endpoints
type PointsHandler struct {
	pointsSvc *services.PointsService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsSvc *services.PointsService) *PointsHandler {
	return &PointsHandler{pointsSvc: pointsSvc}
}

// parseDays reads the optional days query parameter. 0 selects the
// configured default window.
func parseDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return 0, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		badRequest(c, "days must be a positive integer")
		return 0, false
	}
	if days > util.MaxWindowDays {
		badRequest(c, fmt.Sprintf("days must not exceed %d", util.MaxWindowDays))
		return 0, false
	}
	return days, true
}

// optionalQuery returns a pointer to the trimmed query value, or nil when absent
func optionalQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// Points handles GET /points
// @Summary Raw points ranking
// @Description Sums event values per security over the trailing window
// @Tags points
// @Produce json
// @Param days query int false "Window length in days, at most 36500"
// @Param ticker query string false "Restrict to one security"
// @Success 200 {object} models.PointsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /points [get]
func (h *PointsHandler) Points(c *gin.Context) {
	days, ok := parseDays(c)
	if !ok {
		return
	}

	resp, err := h.pointsSvc.Points(c.Request.Context(), days, optionalQuery(c, "ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Weighted handles GET /points/weighted
// @Summary Time-weighted ranking
// @Description Ranks securities by linearly decayed points, highest first. Securities with a non-positive score are omitted.
// @Tags points
// @Produce json
// @Param days query int false "Window length in days, at most 36500"
// @Param ticker query string false "Restrict to one security"
// @Param country query string false "Restrict to one country ticker"
// @Success 200 {object} models.WeightedPointsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /points/weighted [get]
func (h *PointsHandler) Weighted(c *gin.Context) {
	days, ok := parseDays(c)
	if !ok {
		return
	}

	resp, err := h.pointsSvc.WeightedRanking(c.Request.Context(), days,
		optionalQuery(c, "ticker"), optionalQuery(c, "country"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
