package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"goflare.io/checkout/handlers"
)

type Server struct {
	echo     *echo.Echo
	Checkout handlers.CheckoutHandler
	Webhook  handlers.WebhookHandler
}

func NewServer(
	Checkout handlers.CheckoutHandler,
	Webhook handlers.WebhookHandler,
) *Server {
	return &Server{
		echo:     echo.New(),
		Checkout: Checkout,
		Webhook:  Webhook,
	}
}

// Start initializes the server by registering middlewares and routes, and starts listening for connections on the provided address.
// It returns an error if there is an issue starting the server.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine and blocks until an interrupt or
// SIGTERM arrives, then shuts it down with a five-second grace period.
func (s *Server) Run(address string) error {

	go func() {
		if err := s.Start(address); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
}

func (s *Server) registerRoutes() {

	s.echo.POST("/checkout", s.Checkout.CreateCheckoutSession)
	s.echo.POST("/webhook", s.Webhook.HandleStripeWebhook)
}
