package config

import (
	"testing"

	"github.com/pakincht-bit/SmashX-2.0/constants"
)

func validConfig() *Config {
	return &Config{
		Discord: DiscordConfig{Token: "test-token", ChannelID: "123"},
		Logging: LoggingConfig{Level: constants.LogLevelInfo},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"정상 설정", func(c *Config) {}, ""},
		{"토큰 누락", func(c *Config) { c.Discord.Token = "" }, "Discord.Token"},
		{"잘못된 로그 레벨", func(c *Config) { c.Logging.Level = "VERBOSE" }, "Logging.Level"},
		{"소문자 로그 레벨 허용", func(c *Config) { c.Logging.Level = "debug" }, ""},
		{"텔레메트리 프로젝트 누락", func(c *Config) { c.Telemetry.Enabled = true }, "Telemetry.ProjectID"},
		{"텔레메트리 정상", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.ProjectID = "my-project"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Unexpected validation error: %v", err)
				}
				return
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Expected *ConfigError, got %T (%v)", err, err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Expected error on field %s, got %s", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		constants.EnvDiscordToken, constants.EnvChannelID, constants.EnvLogLevel,
		constants.EnvDebugMode, constants.EnvBillSpreadsheetID,
		"SESSION_ID", "ENABLE_AUTO_END", "TELEMETRY_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Logging.Level != constants.LogLevelInfo {
		t.Errorf("Default log level should be INFO, got %s", cfg.Logging.Level)
	}
	if !cfg.Features.EnableAutoEnd {
		t.Error("Auto-end should default to enabled")
	}
	if cfg.Features.EnableBillExport {
		t.Error("Bill export should be off without a spreadsheet ID")
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry should default to disabled")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(constants.EnvDiscordToken, "env-token")
	t.Setenv(constants.EnvBillSpreadsheetID, "sheet-1")
	t.Setenv("SESSION_ID", "s1")
	t.Setenv("ENABLE_AUTO_END", "false")
	t.Setenv("TELEMETRY_ENABLED", "true")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")

	cfg := Load()

	if cfg.Discord.Token != "env-token" {
		t.Errorf("Expected token from env, got %s", cfg.Discord.Token)
	}
	if cfg.Session.SessionID != "s1" {
		t.Errorf("Expected session ID s1, got %s", cfg.Session.SessionID)
	}
	if cfg.Features.EnableAutoEnd {
		t.Error("ENABLE_AUTO_END=false should disable auto-end")
	}
	if !cfg.Features.EnableBillExport {
		t.Error("Spreadsheet ID should enable bill export")
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.ProjectID != "my-project" {
		t.Error("Telemetry env settings were not picked up")
	}
}

func TestIsDebugMode(t *testing.T) {
	cfg := validConfig()
	if cfg.IsDebugMode() {
		t.Error("INFO level without debug flag is not debug mode")
	}

	cfg.Logging.Level = "debug"
	if !cfg.IsDebugMode() {
		t.Error("DEBUG level should enable debug mode")
	}

	cfg.Logging.Level = constants.LogLevelInfo
	cfg.Logging.DebugMode = true
	if !cfg.IsDebugMode() {
		t.Error("Debug flag should enable debug mode")
	}
}
