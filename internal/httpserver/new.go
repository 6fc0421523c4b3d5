package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"voice-order-assistant/internal/fulfillment"
	orderHTTP "voice-order-assistant/internal/order/delivery/http"
	"voice-order-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin           *gin.Engine
	l             log.Logger
	port          int
	mode          string
	environment   string
	allowedOrigin string

	// Voice order domain
	orderHandler orderHTTP.Handler

	// Dialogflow fulfillment webhook (optional)
	fulfillmentHandler *fulfillment.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger        log.Logger
	Port          int
	Mode          string
	Environment   string
	AllowedOrigin string

	OrderHandler       orderHTTP.Handler
	FulfillmentHandler *fulfillment.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                  logger,
		gin:                gin.New(),
		port:               cfg.Port,
		mode:               cfg.Mode,
		environment:        cfg.Environment,
		allowedOrigin:      cfg.AllowedOrigin,
		orderHandler:       cfg.OrderHandler,
		fulfillmentHandler: cfg.FulfillmentHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.orderHandler == nil {
		return errors.New("order handler is required")
	}
	return nil
}
