package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuildDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	c, err := Build(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.AppPort != "5000" || c.UploadDir != "uploads" || c.TokenTTLHours != 72 || c.RateLimitPerMinute != 60 {
		t.Errorf("defaults = %+v", c)
	}
	if c.LoginMaxFailures != 10 || c.LoginBanMinutes != 15 {
		t.Errorf("login lockout defaults = %d/%d", c.LoginMaxFailures, c.LoginBanMinutes)
	}
	if c.MirrorEnabled() {
		t.Error("MirrorEnabled() = true without database settings")
	}
	if c.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q", c.JWTSecret)
	}
}

func TestBuildGroupedJSONAndEnvPrecedence(t *testing.T) {
	path := writeConfig(t, `{
		"app": {"AppPort": "8081", "JWTSecret": "file-secret", "AllowedOrigins": ["https://a.example"], "DisableSeedUsers": true},
		"database": {"DBHost": "db.local", "DBName": "posts"},
		"log": {"LogLevel": "debug", "LogMaxBackups": 9}
	}`)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example, https://c.example ,")

	c, err := Build(path)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.AppPort != "9090" {
		t.Errorf("AppPort = %q, want env override 9090", c.AppPort)
	}
	if c.JWTSecret != "file-secret" || !c.DisableSeedUsers || c.LogLevel != "debug" || c.LogMaxBackups != 9 {
		t.Errorf("file values not applied: %+v", c)
	}
	if want := []string{"https://b.example", "https://c.example"}; !reflect.DeepEqual(c.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", c.AllowedOrigins, want)
	}
	if !c.MirrorEnabled() {
		t.Error("MirrorEnabled() = false with DBHost set")
	}
	if want := "root:@tcp(db.local:3306)/posts?charset=utf8mb4&parseTime=True&loc=Local"; c.DSN() != want {
		t.Errorf("DSN() = %q, want %q", c.DSN(), want)
	}
}

func TestBuildMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Build(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Build() error = %v, want ErrMissingSecret", err)
	}
}

func TestBuildInvalidInput(t *testing.T) {
	if _, err := Build(writeConfig(t, "{not json")); err == nil {
		t.Error("Build() with broken JSON error = nil")
	}

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("REDIS_PORT", "six")
	if _, err := Build(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Build() with non-numeric REDIS_PORT error = nil")
	}
}

func TestSetInstallsConfigWithDefaults(t *testing.T) {
	Set(AppConfig{JWTSecret: "s", UploadDir: "/tmp/up"})
	got := Get()
	if got.JWTSecret != "s" || got.UploadDir != "/tmp/up" || got.AppPort != "5000" {
		t.Errorf("Get() = %+v", got)
	}
}
