package handlers

import (
	"net/http"

	"github.com/epeers/preflists/internal/services"
	"github.com/gin-gonic/gin"
)

// ListHandler handles preference list endpoints
type ListHandler struct {
	listSvc *services.ListService
}

// NewListHandler creates a new ListHandler
func NewListHandler(listSvc *services.ListService) *ListHandler {
	return &ListHandler{listSvc: listSvc}
}

// Get handles GET /lists/:ticker
// @Summary Get a preference list
// @Description Returns the list's weights and its current members with earnings dates
// @Tags lists
// @Produce json
// @Param ticker path string true "List ticker"
// @Success 200 {object} models.ListResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /lists/{ticker} [get]
func (h *ListHandler) Get(c *gin.Context) {
	list, err := h.listSvc.List(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Children handles GET /lists/:ticker/children
// @Summary Get child lists
// @Description Returns every child of a list, each with its current members
// @Tags lists
// @Produce json
// @Param ticker path string true "Parent list ticker"
// @Success 200 {object} models.ChildListsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /lists/{ticker}/children [get]
func (h *ListHandler) Children(c *gin.Context) {
	children, err := h.listSvc.Children(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, children)
}

// History handles GET /lists/:ticker/history
// @Summary Get list history
// @Description Returns every change recorded on a list, newest first
// @Tags lists
// @Produce json
// @Param ticker path string true "List ticker"
// @Success 200 {object} models.ListHistoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /lists/{ticker}/history [get]
func (h *ListHandler) History(c *gin.Context) {
	history, err := h.listSvc.History(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
