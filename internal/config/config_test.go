package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("HOSTAWAY_BEARER_TOKEN", "hostaway-token")
	t.Setenv("SUPERPAY_BASE_URL", "https://superpay.example")
	t.Setenv("SUPERPAY_MERCHANT_CODE", "MERCH1")
	t.Setenv("SUPERPAY_API_KEY", "api-key")
	t.Setenv("SUPERPAY_SECRET_KEY", "secret-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q; want default 8080", cfg.Port)
	}
	if cfg.Currency != "EGP" {
		t.Errorf("Currency = %q; want default EGP", cfg.Currency)
	}
	if cfg.HostawayBaseURL != "https://api.hostaway.com" {
		t.Errorf("HostawayBaseURL = %q; want default", cfg.HostawayBaseURL)
	}
	if cfg.SuperpayMerchantCode != "MERCH1" {
		t.Errorf("SuperpayMerchantCode = %q; want MERCH1", cfg.SuperpayMerchantCode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOSTAWAY_BEARER_TOKEN", "hostaway-token")
	t.Setenv("SUPERPAY_BASE_URL", "https://superpay.example")
	t.Setenv("SUPERPAY_MERCHANT_CODE", "MERCH1")
	t.Setenv("SUPERPAY_API_KEY", "api-key")
	t.Setenv("SUPERPAY_SECRET_KEY", "secret-key")
	t.Setenv("PORT", "9090")
	t.Setenv("PAYMENT_CURRENCY", "USD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q; want 9090", cfg.Port)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q; want USD", cfg.Currency)
	}
}
