package handler

import (
	localtradeapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/localtrade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartyHandler handles local-trade party API endpoints
type PartyHandler struct {
	BaseHandler
	partyService *localtradeapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partyService *localtradeapp.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// Create registers a local-trade counterparty
func (h *PartyHandler) Create(c *gin.Context) {
	var req localtradeapp.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	party, err := h.partyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, party)
}

// GetByID retrieves a party by ID
func (h *PartyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	party, err := h.partyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, party)
}

// List retrieves a paginated list of parties
func (h *PartyHandler) List(c *gin.Context) {
	var filter localtradeapp.PartyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	parties, total, err := h.partyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, parties, total, filter.Page, filter.PageSize)
}

// Update applies a partial update to a party
func (h *PartyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	var req localtradeapp.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	party, err := h.partyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, party)
}

// Summary returns the party's current balance and activity counts
func (h *PartyHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	summary, err := h.partyService.Summary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Timeline returns the party's ledger with running balances
func (h *PartyHandler) Timeline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	timeline, err := h.partyService.Timeline(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, timeline)
}
