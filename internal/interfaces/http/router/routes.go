package router

import (
	"github.com/gin-gonic/gin"
	"github.com/invoicehub/backend/internal/interfaces/http/handler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles the API handlers for route registration
type Handlers struct {
	Invoice  *handler.InvoiceHandler
	Template *handler.TemplateHandler
	Tenant   *handler.TenantHandler
	Vendor   *handler.VendorHandler
	Assist   *handler.AssistHandler
	Words    *handler.WordsHandler
	System   *handler.SystemHandler
}

// Setup registers the full API surface under /api/v1 plus the unversioned
// health and metrics endpoints.
func Setup(engine *gin.Engine, h Handlers, gatherer prometheus.Gatherer) {
	engine.GET("/health", h.System.Health)
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))

	invoices := NewDomainGroup("invoices", "/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id", h.Invoice.Update)
	invoices.DELETE("/:id", h.Invoice.Delete)
	invoices.POST("/:id/status", h.Invoice.SetStatus)
	invoices.POST("/:id/send", h.Invoice.Send)
	invoices.POST("/:id/view", h.Invoice.MarkViewed)
	invoices.GET("/:id/render", h.Invoice.RenderHTML)
	invoices.GET("/:id/pdf", h.Invoice.RenderPDF)
	invoices.POST("/:id/payments", h.Invoice.RecordPayment)
	invoices.GET("/:id/payments", h.Invoice.ListPayments)
	invoices.DELETE("/:id/payments/:paymentID", h.Invoice.DeletePayment)

	templates := NewDomainGroup("templates", "/templates")
	templates.GET("", h.Template.List)
	templates.POST("", h.Template.Create)
	templates.GET("/:id", h.Template.GetByID)
	templates.PUT("/:id", h.Template.Update)
	templates.POST("/:id/default", h.Template.SetDefault)
	templates.DELETE("/:id", h.Template.Delete)

	tenants := NewDomainGroup("tenants", "/tenants")
	tenants.GET("/me", h.Tenant.Me)
	tenants.PUT("/me", h.Tenant.UpdateMe)

	vendor := NewDomainGroup("vendor", "/vendor")
	vendor.GET("", h.Vendor.Get)
	vendor.PUT("", h.Vendor.Upsert)

	assist := NewDomainGroup("assist", "/assist")
	assist.POST("/description", h.Assist.SuggestDescription)

	words := NewDomainGroup("words", "/amount-in-words")
	words.GET("", h.Words.AmountInWords)

	health := NewDomainGroup("health", "/health")
	health.GET("", h.System.Health)

	r.Register(invoices).
		Register(templates).
		Register(tenants).
		Register(vendor).
		Register(assist).
		Register(words).
		Register(health)

	r.Setup()
}
