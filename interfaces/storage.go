package interfaces

import (
	"context"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

// 부분 필드 쓰기에 사용하는 저장소 필드 이름
const (
	FieldTitle              = "title"
	FieldLocation           = "location"
	FieldStartTime          = "startTime"
	FieldEndTime            = "endTime"
	FieldCourtCount         = "courtCount"
	FieldMaxPlayers         = "maxPlayers"
	FieldPlayerIDs          = "playerIds"
	FieldStarted            = "started"
	FieldCheckedInPlayerIDs = "checkedInPlayerIds"
	FieldCheckInTimes       = "checkInTimes"
	FieldCourtAssignments   = "courtAssignments"
	FieldMatchStartTimes    = "matchStartTimes"
	FieldMatches            = "matches"
	FieldNextMatchups       = "nextMatchups"
	FieldFinalBill          = "finalBill"
)

// SessionRepository 세션 애그리거트 저장소 인터페이스입니다.
// 쓰기는 전체가 아니라 변경된 필드 단위로 이루어지며, 서버 측 잠금은 없습니다.
type SessionRepository interface {
	// 조회
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	ListActiveSessions(ctx context.Context, endedAfter time.Time) ([]models.Session, error)

	// 생성/삭제
	CreateSession(ctx context.Context, session *models.Session) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// 부분 필드 쓰기. fields의 키는 저장소 필드 이름입니다.
	UpdateSessionFields(ctx context.Context, sessionID string, fields map[string]interface{}) error

	// 경기 기록 직전의 최신 상태 재조회 (stale 스냅샷 기준 쓰기 방지)
	FetchMatchState(ctx context.Context, sessionID string) ([]models.MatchResult, map[string]time.Time, error)

	// 리소스 정리
	Close() error
}

// ParticipantRepository 참가자 프로필 저장소 인터페이스입니다
type ParticipantRepository interface {
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	GetParticipants(ctx context.Context, participantIDs []string) ([]models.Participant, error)
	UpsertParticipants(ctx context.Context, participants []models.Participant) error
}
