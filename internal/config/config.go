package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds all runtime configuration, populated from environment variables.
type App struct {
	Port          string `envconfig:"PORT" default:"8080"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	SiteBaseURL   string `envconfig:"SITE_BASE_URL" default:"https://travelholiceg.com"`
	Currency      string `envconfig:"PAYMENT_CURRENCY" default:"EGP"`

	// Correlation store
	RedisURL string `envconfig:"REDIS_URL" default:"redis://localhost:6379"`

	// Optional callback audit log; history is disabled when empty
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Hostaway PMS
	HostawayBaseURL     string `envconfig:"HOSTAWAY_BASE_URL" default:"https://api.hostaway.com"`
	HostawayBearerToken string `envconfig:"HOSTAWAY_BEARER_TOKEN" required:"true"`

	// Superpay gateway
	SuperpayBaseURL      string `envconfig:"SUPERPAY_BASE_URL" required:"true"`
	SuperpayMerchantCode string `envconfig:"SUPERPAY_MERCHANT_CODE" required:"true"`
	SuperpayAPIKey       string `envconfig:"SUPERPAY_API_KEY" required:"true"`
	SuperpaySecretKey    string `envconfig:"SUPERPAY_SECRET_KEY" required:"true"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
