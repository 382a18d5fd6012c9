package constants

import "time"

// 매칭 알고리즘 관련 상수
const (
	PoolSize             = 6 // 다음 경기 후보군 크기 (대기열 상위 N명)
	PlayersPerMatch      = 4 // 복식 경기 인원
	RecentMatchThreshold = 3 // 다양성 점수 계산 시 참조하는 최근 경기 수
	PlayersPerCourt      = 6 // 코트당 정원 (maxPlayers = courtCount * 6)
)

// 레이팅 관련 상수
const (
	DefaultRating     = 1000 // 신규 참가자 기본 레이팅
	RatingPointsDelta = 25   // 경기당 고정 레이팅 변동폭
)

// 세션 수명주기 관련 상수
const (
	// 예정 종료 시각 이후 이 시간이 지나면 세션이 자동 종료 대상이 됩니다
	AutoEndGracePeriod   = 30 * time.Minute
	AutoEndSweepInterval = 5 * time.Minute
)

// Discord 관련 상수
const (
	MaxDiscordRetries = 3
	BaseRetryDelay    = 1 * time.Second

	CommandPrefix       = "!"
	CommandPrefixLength = len(CommandPrefix)

	BotStatusMessage = "🏸 오픈 플레이 진행 중"
)

// 이모지 상수
const (
	EmojiSuccess = "✅"
	EmojiError   = "❌"
	EmojiInfo    = "ℹ️"
	EmojiWarning = "⚠️"
	EmojiTrophy  = "🏆"
	EmojiShuttle = "🏸"
	EmojiClock   = "⏰"
	EmojiMoney   = "💰"
	EmojiPeople  = "👥"
	EmojiQueue   = "📋"
)

// 날짜 형식
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "15:04:05"
	DateTimeFormat = "2006-01-02 15:04:05"
)
