package config

import "testing"

func TestLoad_RequiresGatewayCredentials(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected Load to fail without gateway credentials")
	}

	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	if _, err := Load(); err == nil {
		t.Error("expected Load to fail with only the key id set")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Admin.EmailDomain != "@eventbroker.com" {
		t.Errorf("expected default admin domain, got %s", cfg.Admin.EmailDomain)
	}
	if cfg.Session.Secret == "" {
		t.Error("expected a development session secret fallback")
	}
}

func TestLoad_SessionSecretRequiredInProduction(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected Load to fail without a session secret in production")
	}
}
