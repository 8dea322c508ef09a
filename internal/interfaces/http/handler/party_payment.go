package handler

import (
	localtradeapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/localtrade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartyPaymentHandler handles local-trade party payment API endpoints
type PartyPaymentHandler struct {
	BaseHandler
	paymentService *localtradeapp.PartyPaymentService
}

// NewPartyPaymentHandler creates a new PartyPaymentHandler
func NewPartyPaymentHandler(paymentService *localtradeapp.PartyPaymentService) *PartyPaymentHandler {
	return &PartyPaymentHandler{paymentService: paymentService}
}

// Create records a payment to or from a party
func (h *PartyPaymentHandler) Create(c *gin.Context) {
	var req localtradeapp.CreatePartyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// GetByID retrieves a party payment by ID
func (h *PartyPaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// ListByParty retrieves a party's payments, newest first
func (h *PartyPaymentHandler) ListByParty(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	payments, err := h.paymentService.ListByParty(c.Request.Context(), partyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}
