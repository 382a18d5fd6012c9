package constants

import "time"

// 환경변수 키
const (
	EnvFirebaseCredentials = "FIREBASE_CREDENTIALS_JSON"
	EnvDiscordToken        = "DISCORD_BOT_TOKEN"
	EnvChannelID           = "DISCORD_CHANNEL_ID"
	EnvLogLevel            = "LOG_LEVEL"
	EnvDebugMode           = "DEBUG_MODE"
	EnvBillSpreadsheetID   = "BILL_SPREADSHEET_ID"
)

// 로그 레벨
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// 캐시 및 재시도 설정 상수
const (
	ParticipantCacheTTL  = 5 * time.Minute // 참가자 프로필 캐시 만료 시간
	CacheCleanupInterval = 5 * time.Minute // 캐시 정리 간격

	MaxWriteRetries = 3               // Firestore 재연결 최대 시도 횟수
	WriteRetryDelay = 2 * time.Second // 재연결 기본 지연 시간
)

// HTTP 서버
const (
	DefaultHTTPPort = "8080"
)
