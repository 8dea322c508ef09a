package handler

import (
	localtradeapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/localtrade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReturnCaseHandler handles local-trade return case API endpoints
type ReturnCaseHandler struct {
	BaseHandler
	returnService *localtradeapp.ReturnCaseService
}

// NewReturnCaseHandler creates a new ReturnCaseHandler
func NewReturnCaseHandler(returnService *localtradeapp.ReturnCaseService) *ReturnCaseHandler {
	return &ReturnCaseHandler{returnService: returnService}
}

// Create opens a return case against an invoice
func (h *ReturnCaseHandler) Create(c *gin.Context) {
	var req localtradeapp.CreateReturnCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	returnCase, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, returnCase)
}

// Resolve closes a return case with its final margin
func (h *ReturnCaseHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return case ID format")
		return
	}

	var req localtradeapp.ResolveReturnCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	returnCase, err := h.returnService.Resolve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, returnCase)
}

// GetByID retrieves a return case by ID
func (h *ReturnCaseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid return case ID format")
		return
	}

	returnCase, err := h.returnService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, returnCase)
}

// List retrieves return cases matching the filter
func (h *ReturnCaseHandler) List(c *gin.Context) {
	var filter localtradeapp.ReturnCaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cases, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cases)
}
