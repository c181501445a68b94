package config

import (
	"testing"
	"time"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", " shoppy.myshopify.com ")
	t.Setenv("SHOPIFY_STOREFRONT_TOKEN", "token")
	t.Setenv("CACHE_TTL_SECONDS", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	if cfg.Shopify.StoreDomain != "shoppy.myshopify.com" {
		t.Errorf("store domain not trimmed: %q", cfg.Shopify.StoreDomain)
	}
	if cfg.Shopify.StorefrontToken != "token" {
		t.Errorf("unexpected token %q", cfg.Shopify.StorefrontToken)
	}
	if cfg.Cache.TTL != 10*time.Second {
		t.Errorf("unexpected cache ttl %v", cfg.Cache.TTL)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_MissingCredentialsDegradeToEmpty(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_DOMAIN", "")
	t.Setenv("SHOPIFY_STOREFRONT_TOKEN", "")

	cfg := Load()

	if cfg.Shopify.StoreDomain != "" || cfg.Shopify.StorefrontToken != "" {
		t.Errorf("expected empty credentials, got %+v", cfg.Shopify)
	}
	if cfg.Shopify.APIVersion == "" {
		t.Error("expected default API version")
	}
	if cfg.Database.Enabled() && cfg.Database.Host == "" {
		t.Error("database must be disabled without a host")
	}
}
