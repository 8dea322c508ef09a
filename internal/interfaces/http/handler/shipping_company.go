package handler

import (
	partnerapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShippingCompanyHandler handles shipping company API endpoints
type ShippingCompanyHandler struct {
	BaseHandler
	companyService *partnerapp.ShippingCompanyService
}

// NewShippingCompanyHandler creates a new ShippingCompanyHandler
func NewShippingCompanyHandler(companyService *partnerapp.ShippingCompanyService) *ShippingCompanyHandler {
	return &ShippingCompanyHandler{companyService: companyService}
}

// Create registers a new shipping company
func (h *ShippingCompanyHandler) Create(c *gin.Context) {
	var req partnerapp.CreateShippingCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, company)
}

// GetByID retrieves a shipping company by ID
func (h *ShippingCompanyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipping company ID format")
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// List retrieves a paginated list of shipping companies
func (h *ShippingCompanyHandler) List(c *gin.Context) {
	var filter partnerapp.ListFilter
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

	companies, total, err := h.companyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, companies, total, filter.Page, filter.PageSize)
}

// Update applies a partial update to a shipping company
func (h *ShippingCompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipping company ID format")
		return
	}

	var req partnerapp.UpdateShippingCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// Delete removes a shipping company, or deactivates it when shipment history
// references it.
func (h *ShippingCompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipping company ID format")
		return
	}

	result, err := h.companyService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
