package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"voice-order-assistant/internal/middleware"
	orderHTTP "voice-order-assistant/internal/order/delivery/http"
	"voice-order-assistant/pkg/response"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l, srv.allowedOrigin)

	srv.gin.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		srv.l.Errorf(c.Request.Context(), "panic recovered: %v", recovered)
		response.InternalError(c)
		c.Abort()
	}))
	srv.gin.Use(mw.RequestID())
	srv.gin.Use(mw.CORS())
	srv.gin.Use(mw.BodySizeLimit())

	ctx := context.Background()
	srv.l.Infof(ctx, "CORS allowed origin: %s", srv.allowedOrigin)
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")
	orderHTTP.RegisterRoutes(api, srv.orderHandler)
	orderHTTP.RegisterLegacyRoutes(srv.gin, srv.orderHandler)
	srv.l.Infof(ctx, "Voice order routes registered under /api/v1/voice")

	if srv.fulfillmentHandler != nil {
		srv.gin.POST("/webhook/dialogflow", srv.fulfillmentHandler.HandleDialogflowWebhook)
		srv.l.Infof(ctx, "Dialogflow fulfillment webhook registered at POST /webhook/dialogflow")
	} else {
		srv.l.Infof(ctx, "Fulfillment handler not configured, skipping webhook route")
	}

	return nil
}
