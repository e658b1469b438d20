package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Port != "3001" {
		t.Fatalf("expected default port 3001, got %q", cfg.App.Port)
	}
	if cfg.Telegram.BaseURL != "https://api.telegram.org" {
		t.Fatalf("unexpected telegram base url %q", cfg.Telegram.BaseURL)
	}
	if cfg.Telegram.ParseMode != "Markdown" {
		t.Fatalf("unexpected parse mode %q", cfg.Telegram.ParseMode)
	}
	if got := cfg.Telegram.Timeout; got != 10*time.Second {
		t.Fatalf("expected telegram timeout 10s, got %v", got)
	}
	if cfg.Cart.Key != "cart" || cfg.Cart.Storage != CartStorageDB {
		t.Fatalf("unexpected cart config %+v", cfg.Cart)
	}
	if cfg.DB.Driver != DBDriverSQLite {
		t.Fatalf("expected sqlite driver by default, got %q", cfg.DB.Driver)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url/addr")
	}
	if err := cfg.Telegram.Validate(); err != nil {
		t.Fatalf("telegram config should validate: %v", err)
	}
}

func TestLoad_RejectsPostgresWithoutDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres without DSN to fail")
	}
}

func TestLoad_RejectsUnknownCartStorage(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartStorage, "localstorage")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown cart storage to fail")
	}
}

func TestTelegramValidateListsMissing(t *testing.T) {
	err := TelegramConfig{}.Validate()
	if err == nil {
		t.Fatal("expected error for empty telegram config")
	}
	want := "missing telegram settings: " + EnvTelegramBotToken + ", " + EnvTelegramAdminChatID
	if err.Error() != want {
		t.Fatalf("unexpected error %q", err.Error())
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{EnvPort, EnvDBDriver, EnvDBDSN, EnvCartStorage, EnvCartKey, EnvRedisURL, EnvRedisAddr, EnvCORSOrigins, EnvTelegramBaseURL, EnvTelegramTimeout} {
		// register restore, then unset so envconfig defaults apply
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvTelegramBotToken, "123:abc")
	t.Setenv(EnvTelegramAdminChatID, "1208908312")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}

func TestTelegramAdminChat(t *testing.T) {
	id, err := TelegramConfig{AdminChatID: " -100123 "}.AdminChat()
	if err != nil || id != -100123 {
		t.Fatalf("expected -100123, got %d (%v)", id, err)
	}
	if _, err := (TelegramConfig{AdminChatID: "abc"}).AdminChat(); err == nil {
		t.Fatalf("expected error for non-numeric chat id")
	}
	err = TelegramConfig{BotToken: "t", AdminChatID: "chat"}.Validate()
	if err == nil || !strings.Contains(err.Error(), EnvTelegramAdminChatID) {
		t.Fatalf("expected admin chat id error, got %v", err)
	}
}
