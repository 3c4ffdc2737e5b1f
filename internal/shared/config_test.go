package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "JWT_SECRET", "JWT_TTL", "ALLOWED_ORIGINS", "CACHE_TTL_SECONDS", "KAFKA_TOPIC"} {
		t.Setenv(k, "")
	}
	t.Setenv("APP_ENV", "dev")
	c := Load()
	if c.StoreDriver != "memory" || c.KafkaTopic != "bookings.updated" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.JWTSecret != devJWTSecret || c.JWTTTL != 24*time.Hour || c.CacheTTL != 900*time.Second {
		t.Fatalf("unexpected auth/cache defaults: %+v", c)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", c.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MySQL")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SEED_WORKERS", "oops")

	c := Load()
	if c.StoreDriver != "mysql" {
		t.Fatalf("driver: %q", c.StoreDriver)
	}
	if c.JWTTTL != 90*time.Minute {
		t.Fatalf("ttl: %v", c.JWTTTL)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins: %v", c.AllowedOrigins)
	}
	if c.SeedWorkers != 4 {
		t.Fatalf("workers should fall back to default, got %d", c.SeedWorkers)
	}
}

func TestDuration_Seconds(t *testing.T) {
	t.Setenv("X_TTL", "30")
	if d := duration("X_TTL", time.Minute); d != 30*time.Second {
		t.Fatalf("got %v", d)
	}
}

func TestLoad_NoSecretOutsideDev(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")

	c := Load()
	if c.AppEnv != "prod" {
		t.Fatalf("env: %q", c.AppEnv)
	}
	if c.JWTSecret != "" {
		t.Fatalf("secret must not fall back outside dev, got %q", c.JWTSecret)
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to reject a missing secret")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"prod with secret", Config{AppEnv: "prod", JWTSecret: "s3cr3t"}, false},
		{"prod without secret", Config{AppEnv: "prod"}, true},
		{"prod with dev secret", Config{AppEnv: "prod", JWTSecret: devJWTSecret}, true},
		{"dev with dev secret", Config{AppEnv: "dev", JWTSecret: devJWTSecret}, false},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
			t.Errorf("%s: err=%v wantErr=%v", tc.name, err, tc.wantErr)
		}
	}
}
