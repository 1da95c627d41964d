package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/application/assist"
	billingapp "github.com/invoicehub/backend/internal/application/billing"
	identityapp "github.com/invoicehub/backend/internal/application/identity"
	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	templatingapp "github.com/invoicehub/backend/internal/application/templating"
	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/infrastructure/cache"
	"github.com/invoicehub/backend/internal/infrastructure/config"
	"github.com/invoicehub/backend/internal/infrastructure/logger"
	"github.com/invoicehub/backend/internal/infrastructure/mail"
	"github.com/invoicehub/backend/internal/infrastructure/persistence"
	"github.com/invoicehub/backend/internal/infrastructure/rendering"
	"github.com/invoicehub/backend/internal/infrastructure/scheduler"
	"github.com/invoicehub/backend/internal/interfaces/http/handler"
	"github.com/invoicehub/backend/internal/interfaces/http/middleware"
	"github.com/invoicehub/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting InvoiceHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	billingTxScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Rendering pipeline: HTML always, PDF only when Chrome is available
	renderEngine := rendering.NewEngine()
	var rendererOpts []rendering.InvoiceRendererOption
	var pdfRenderer *rendering.ChromedpRenderer
	if cfg.Render.PDFEnabled {
		pdfRenderer, err = rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
			Timeout:    cfg.Render.RenderTimeout,
			ChromePath: cfg.Render.ChromePath,
			Logger:     log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = pdfRenderer.Close()
		}()
		rendererOpts = append(rendererOpts, rendering.WithPDFRenderer(pdfRenderer))
	}
	invoiceRenderer := rendering.NewInvoiceRenderer(renderEngine, templateRepo, log, rendererOpts...)

	// Invoice service with optional delivery and archival backends
	invoiceOpts := []billingapp.InvoiceServiceOption{
		billingapp.WithRenderer(invoiceRenderer),
	}
	if cfg.Mail.Enabled {
		mailer, err := mail.NewSMTPMailer(&cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to initialize mailer", zap.Error(err))
		}
		invoiceOpts = append(invoiceOpts, billingapp.WithMailer(mailer))
		log.Info("Invoice mail delivery enabled", zap.String("host", cfg.Mail.Host))
	}
	if cfg.Storage.Enabled {
		artifacts, err := rendering.NewS3ArtifactStore(&cfg.Storage, rendering.WithArtifactLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize artifact store", zap.Error(err))
		}
		invoiceOpts = append(invoiceOpts, billingapp.WithArtifactStore(artifacts))
		log.Info("PDF artifact archival enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Application services
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, tenantRepo, vendorRepo, log, invoiceOpts...)
	paymentService := billingapp.NewPaymentService(billingTxScope, log)
	tenantService := identityapp.NewTenantService(tenantRepo, log)
	templateService := templatingapp.NewTemplateService(templateRepo, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, log)
	assistService := buildAssistService(cfg, tenantRepo, log)

	// Gin mode follows the environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, panic recovery,
	// request logging, security headers, CORS, body cap, metrics, rate
	// limiting, then tenant resolution.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)
	engine.Use(httpMetrics.Middleware())

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	tenantCfg := middleware.DefaultTenantConfig()
	tenantCfg.Validator = &tenantGate{tenants: tenantRepo}
	tenantCfg.Logger = log
	engine.Use(middleware.TenantWithConfig(tenantCfg))

	// Routes
	router.Setup(engine, router.Handlers{
		Invoice:  handler.NewInvoiceHandler(invoiceService, paymentService),
		Template: handler.NewTemplateHandler(templateService),
		Tenant:   handler.NewTenantHandler(tenantService),
		Vendor:   handler.NewVendorHandler(vendorService),
		Assist:   handler.NewAssistHandler(assistService),
		Words:    handler.NewWordsHandler(),
		System:   handler.NewSystemHandler(version),
	}, registry)

	// Background overdue sweep
	sweepCfg := scheduler.DefaultOverdueSweeperConfig()
	sweepCfg.Enabled = cfg.Sweeper.Enabled
	if cfg.Sweeper.Interval > 0 {
		sweepCfg.Interval = cfg.Sweeper.Interval
	}
	if cfg.Sweeper.BatchSize > 0 {
		sweepCfg.BatchSize = cfg.Sweeper.BatchSize
	}
	sweeper, err := scheduler.NewOverdueSweeper(sweepCfg, tenantRepo, invoiceService, log)
	if err != nil {
		log.Fatal("Failed to create overdue sweeper", zap.Error(err))
	}
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start overdue sweeper", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sweeper.Stop(ctx); err != nil {
		log.Warn("Overdue sweeper did not stop cleanly", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildAssistService wires the description assistant. Without an API key the
// service still answers validation paths but reports assistance as disabled.
func buildAssistService(cfg *config.Config, tenantRepo identity.TenantRepository, log *zap.Logger) *assist.Service {
	var client assist.ChatCompleter
	if cfg.Assist.Enabled && cfg.Assist.APIKey != "" {
		client = openai.NewClient(cfg.Assist.APIKey)
	}

	var quotas assist.QuotaStore
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisQuotaStore(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		quotas = store
		log.Info("Assist quota tracking backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		quotas = cache.NewMemoryQuotaStore()
	}

	var opts []assist.Option
	if cfg.Assist.Model != "" {
		opts = append(opts, assist.WithModel(cfg.Assist.Model))
	}
	if cfg.Assist.CacheTTL > 0 {
		opts = append(opts, assist.WithCacheTTL(cfg.Assist.CacheTTL))
	}
	return assist.NewService(client, tenantRepo, quotas, log, opts...)
}

// tenantGate verifies the tenant on each request. Suspended tenants keep
// their data but lose API access until reactivated.
type tenantGate struct {
	tenants identity.TenantRepository
}

func (g *tenantGate) ValidateTenant(c *gin.Context, tenantID uuid.UUID) error {
	tenant, err := g.tenants.FindByID(c.Request.Context(), tenantID)
	if err != nil {
		return err
	}
	if !tenant.IsActive() {
		return shared.NewInvalidOperationError("Tenant is suspended")
	}
	return nil
}
