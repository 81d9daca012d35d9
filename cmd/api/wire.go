//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"goflare.io/checkout"
	"goflare.io/checkout/config"
	"goflare.io/checkout/customer"
	"goflare.io/checkout/driver"
	"goflare.io/checkout/event"
	"goflare.io/checkout/handlers"
	"goflare.io/checkout/identity"
	"goflare.io/checkout/payment"
	"goflare.io/checkout/server"
	"goflare.io/checkout/subscription"
	"goflare.io/checkout/user"
)

func InitializeCheckoutService() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvidePostgresConn,
		config.ProvideRedisConn,
		driver.NewTransactionManager,
		customer.NewRepository,
		customer.NewService,
		subscription.NewRepository,
		subscription.NewService,
		user.NewRepository,
		payment.NewRepository,
		payment.NewService,
		event.NewService,
		identity.NewJWTVerifier,
		checkout.NewStripeGateway,
		checkout.NewNoopProvisioner,
		checkout.NewStripeCheckout,
		handlers.NewCheckoutHandler,
		handlers.NewWebhookHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
