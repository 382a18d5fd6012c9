package session

import (
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// Phase 세션 수명주기 단계
type Phase int

const (
	PhaseOpen    Phase = iota // 생성됨, 아직 시작 전
	PhasePlaying              // 진행 중 - 체크인/배정/기록 가능
	PhaseEnded                // 종료됨 - 경기 기록 동결
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "OPEN"
	case PhasePlaying:
		return "PLAYING"
	case PhaseEnded:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// PhaseOf 세션의 현재 단계를 판정합니다.
// 정산서가 확정되었거나, 예정 종료 시각 + 유예 기간이 지나면 END입니다.
func PhaseOf(session *models.Session, now time.Time) Phase {
	if session.FinalBill != nil {
		return PhaseEnded
	}
	if now.After(session.EndTime.Add(constants.AutoEndGracePeriod)) {
		return PhaseEnded
	}
	if session.Started {
		return PhasePlaying
	}
	return PhaseOpen
}

// IsPastGracePeriod 예정 종료 시각 + 유예 기간을 지났는지 확인합니다 (자동 종료 대상)
func IsPastGracePeriod(session *models.Session, now time.Time) bool {
	return now.After(session.EndTime.Add(constants.AutoEndGracePeriod))
}
