// Package router wires the HTTP handlers into the versioned API surface.
package router

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/interfaces/http/handler"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	Auth            *handler.AuthHandler
	Supplier        *handler.SupplierHandler
	ShippingCompany *handler.ShippingCompanyHandler
	Shipment        *handler.ShipmentHandler
	Payment         *handler.PaymentHandler
	Party           *handler.PartyHandler
	Invoice         *handler.InvoiceHandler
	PartyPayment    *handler.PartyPaymentHandler
	ReturnCase      *handler.ReturnCaseHandler
	Report          *handler.ReportHandler
	Backup          *handler.BackupHandler
}

// Setup registers all routes under /api/v1. Authentication is applied by the
// JWT middleware installed on the engine; destructive partner and backup
// operations additionally require the admin role.
func Setup(engine *gin.Engine, h Handlers) {
	api := engine.Group("/api/v1")
	admin := middleware.RequireAdmin()

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)

	partner := api.Group("/partner")
	partner.POST("/suppliers", h.Supplier.Create)
	partner.GET("/suppliers", h.Supplier.List)
	partner.GET("/suppliers/:id", h.Supplier.GetByID)
	partner.PUT("/suppliers/:id", h.Supplier.Update)
	partner.DELETE("/suppliers/:id", admin, h.Supplier.Delete)

	partner.POST("/shipping-companies", h.ShippingCompany.Create)
	partner.GET("/shipping-companies", h.ShippingCompany.List)
	partner.GET("/shipping-companies/:id", h.ShippingCompany.GetByID)
	partner.PUT("/shipping-companies/:id", h.ShippingCompany.Update)
	partner.DELETE("/shipping-companies/:id", admin, h.ShippingCompany.Delete)

	shipments := api.Group("/shipments")
	shipments.POST("", h.Shipment.Create)
	shipments.GET("", h.Shipment.List)
	shipments.GET("/:id", h.Shipment.GetByID)
	shipments.PUT("/:id", h.Shipment.UpdateBasics)
	shipments.PUT("/:id/items", h.Shipment.ReplaceItems)
	shipments.PUT("/:id/shipping-details", h.Shipment.SetShippingDetails)
	shipments.PATCH("/:id/missing-pieces", h.Shipment.UpdateMissingPieces)
	shipments.POST("/:id/advance", h.Shipment.Advance)
	shipments.POST("/:id/archive", h.Shipment.Archive)
	shipments.GET("/:id/goods-summary", h.Shipment.GoodsSummary)
	shipments.GET("/:id/suppliers/:supplier_id/goods-summary", h.Shipment.SupplierGoodsSummary)

	payments := api.Group("/payments")
	payments.POST("", h.Payment.Create)
	payments.GET("", h.Payment.List)
	payments.GET("/:id", h.Payment.GetByID)
	payments.POST("/:id/attachment", h.Payment.AttachReceipt)
	payments.GET("/:id/attachment", h.Payment.DownloadReceipt)
	payments.GET("/:id/attachment/preview", h.Payment.PreviewReceipt)

	localtrade := api.Group("/local-trade")
	localtrade.POST("/parties", h.Party.Create)
	localtrade.GET("/parties", h.Party.List)
	localtrade.GET("/parties/:id", h.Party.GetByID)
	localtrade.PUT("/parties/:id", h.Party.Update)
	localtrade.GET("/parties/:id/summary", h.Party.Summary)
	localtrade.GET("/parties/:id/timeline", h.Party.Timeline)
	localtrade.GET("/parties/:id/payments", h.PartyPayment.ListByParty)

	localtrade.POST("/invoices", h.Invoice.Create)
	localtrade.GET("/invoices", h.Invoice.List)
	localtrade.GET("/invoices/:id", h.Invoice.GetByID)
	localtrade.POST("/invoices/:id/issue", h.Invoice.Issue)
	localtrade.POST("/invoices/:id/receive", h.Invoice.MarkReceived)

	localtrade.POST("/payments", h.PartyPayment.Create)
	localtrade.GET("/payments/:id", h.PartyPayment.GetByID)

	localtrade.POST("/return-cases", h.ReturnCase.Create)
	localtrade.GET("/return-cases", h.ReturnCase.List)
	localtrade.GET("/return-cases/:id", h.ReturnCase.GetByID)
	localtrade.POST("/return-cases/:id/resolve", h.ReturnCase.Resolve)

	accounting := api.Group("/accounting")
	accounting.GET("/movement-report", h.Report.Movement)
	accounting.GET("/payment-methods-report", h.Report.PaymentMethods)

	backups := api.Group("/backups")
	backups.POST("", admin, h.Backup.StartBackup)
	backups.POST("/restore", admin, h.Backup.StartRestore)
	backups.POST("/uploads", admin, h.Backup.UploadArchive)
	backups.GET("", h.Backup.ListJobs)
	backups.GET("/:id", h.Backup.GetJob)
	backups.GET("/:id/download", admin, h.Backup.Download)
}
