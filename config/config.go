package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pakincht-bit/SmashX-2.0/constants"
)

// Config 애플리케이션의 전체 설정을 관리합니다
type Config struct {
	Discord   DiscordConfig
	Session   SessionConfig
	Logging   LoggingConfig
	Features  FeatureFlags
	Telemetry TelemetryConfig
}

type DiscordConfig struct {
	Token     string
	ChannelID string
}

type SessionConfig struct {
	// SessionID 봇이 조율할 세션 문서 ID. 비어 있으면 명령어로 지정할 때까지 대기.
	SessionID string
}

type LoggingConfig struct {
	Level     string
	DebugMode bool
}

type FeatureFlags struct {
	EnableAutoEnd        bool
	EnableBillExport     bool
	EnableDetailedErrors bool
}

type TelemetryConfig struct {
	Enabled   bool
	ProjectID string
}

// Load는 환경변수에서 설정을 로드합니다
func Load() *Config {
	return &Config{
		Discord: DiscordConfig{
			Token:     getEnv(constants.EnvDiscordToken, ""),
			ChannelID: getEnv(constants.EnvChannelID, ""),
		},
		Session: SessionConfig{
			SessionID: getEnv("SESSION_ID", ""),
		},
		Logging: LoggingConfig{
			Level:     getEnv(constants.EnvLogLevel, constants.LogLevelInfo),
			DebugMode: getEnvBool(constants.EnvDebugMode, false),
		},
		Features: FeatureFlags{
			EnableAutoEnd:        getEnvBool("ENABLE_AUTO_END", true),
			EnableBillExport:     getEnv(constants.EnvBillSpreadsheetID, "") != "",
			EnableDetailedErrors: getEnvBool("ENABLE_DETAILED_ERRORS", false),
		},
		Telemetry: TelemetryConfig{
			Enabled:   getEnvBool("TELEMETRY_ENABLED", false),
			ProjectID: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		},
	}
}

// Validate 설정의 유효성을 검사합니다
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return &ConfigError{
			Field:   "Discord.Token",
			Message: "Discord bot token is required",
		}
	}

	validLogLevels := map[string]bool{
		constants.LogLevelDebug: true,
		constants.LogLevelInfo:  true,
		constants.LogLevelWarn:  true,
		constants.LogLevelError: true,
	}
	if !validLogLevels[strings.ToUpper(c.Logging.Level)] {
		return &ConfigError{
			Field:   "Logging.Level",
			Message: "LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR (got: " + c.Logging.Level + ")",
		}
	}

	if c.Telemetry.Enabled && c.Telemetry.ProjectID == "" {
		return &ConfigError{
			Field:   "Telemetry.ProjectID",
			Message: "GOOGLE_CLOUD_PROJECT is required when telemetry is enabled",
		}
	}

	return nil
}

// IsDebugMode 디버그 모드 여부를 반환합니다
func (c *Config) IsDebugMode() bool {
	return c.Logging.DebugMode || strings.ToUpper(c.Logging.Level) == constants.LogLevelDebug
}

// ConfigError 설정 관련 오류를 나타냅니다
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in " + e.Field + ": " + e.Message
}

// 헬퍼 함수들
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
