package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/preflists/internal/alphavantage"
	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/scoring"
	"github.com/epeers/preflists/internal/services"
	"github.com/epeers/preflists/internal/util"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusFor maps a service error to an HTTP status and error code
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrSecurityNotFound),
		errors.Is(err, repository.ErrListNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAmbiguousMatch):
		return http.StatusConflict, "ambiguous"
	case errors.Is(err, database.ErrIntegrityViolation):
		return http.StatusConflict, "conflict"
	case errors.Is(err, util.ErrInvalidDate),
		errors.Is(err, repository.ErrInvalidEarningsSource),
		errors.Is(err, scoring.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, services.ErrSyncDisabled),
		errors.Is(err, alphavantage.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, alphavantage.ErrAPIMessage):
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondError writes err as an ErrorResponse
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		if errors.Is(err, scoring.ErrOutOfWindow) || errors.Is(err, scoring.ErrUnorderedStream) {
			log.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		} else {
			log.Warnf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}
	}
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
	})
}
