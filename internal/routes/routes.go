package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/photo-studio/internal/audit"
	"github.com/BruksfildServices01/photo-studio/internal/auth"
	"github.com/BruksfildServices01/photo-studio/internal/handlers"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	"github.com/BruksfildServices01/photo-studio/internal/middleware"
	ucStudio "github.com/BruksfildServices01/photo-studio/internal/usecase/studio"
)

// Deps reúne o que o main já montou. Payments e Exporter podem ficar nil
// (as rotas respondem 503).
type Deps struct {
	Studio      *ucStudio.Studio
	Auth        *auth.Service
	AuditReader audit.Reader
	Payments    handlers.PaymentService
	Exporter    handlers.Exporter
	Location    *time.Location
	CORSOrigins []string
	Logger      *applog.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(applog.GinMiddleware(deps.Logger))
	r.Use(middleware.CORSMiddleware(deps.CORSOrigins))

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.Auth)
	meHandler := handlers.NewMeHandler(deps.Auth)
	stateHandler := handlers.NewStateHandler(deps.Studio)
	clientHandler := handlers.NewClientHandler(deps.Studio)
	sessionHandler := handlers.NewSessionHandler(deps.Studio)
	dashboardHandler := handlers.NewDashboardHandler(deps.Studio)
	paymentHandler := handlers.NewPaymentHandler(deps.Payments, deps.Logger)
	exportHandler := handlers.NewExportHandler(deps.Studio, deps.Exporter)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditReader, deps.Location)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/password-reset", authHandler.PasswordReset)
		api.POST("/auth/password-reset/confirm", authHandler.PasswordResetConfirm)

		// notificações do Mercado Pago chegam sem token
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Auth))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/state", stateHandler.Get)
			secured.POST("/state/reload", stateHandler.Reload)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// SESSIONS
			// ------------------------------
			secured.GET("/sessions", sessionHandler.List)
			secured.POST("/sessions", sessionHandler.Create)
			secured.PATCH("/sessions/:id", sessionHandler.Update)
			secured.PATCH("/sessions/:id/status", sessionHandler.UpdateStatus)
			secured.PATCH("/sessions/:id/payment-status", sessionHandler.UpdatePaymentStatus)
			secured.DELETE("/sessions/:id", sessionHandler.Delete)
			secured.POST("/sessions/:id/checkout", paymentHandler.Checkout)

			secured.GET("/dashboard", dashboardHandler.Get)
			secured.GET("/audit-logs", auditLogsHandler.List)
			secured.POST("/export", exportHandler.Export)
		}
	}
}
