package handler

import (
	reportapp "github.com/KhaledMKhaled/FullTracker-sub002/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles the accounting report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Movement returns the movement report: cost entries and payments merged
// into one dated ledger with totals.
func (h *ReportHandler) Movement(c *gin.Context) {
	var filter reportapp.MovementReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Movement(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// PaymentMethods returns outgoing payments bucketed by method with each
// bucket's share of the total.
func (h *ReportHandler) PaymentMethods(c *gin.Context) {
	var filter reportapp.MovementReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.PaymentMethods(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
