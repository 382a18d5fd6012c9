package session

import (
	"fmt"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// RecordResult 코트의 경기 결과를 기록합니다.
//
//   - 팀 분할은 배정 시점 순서 기준 ceil(n/2)에서 자릅니다. 재계산하지 않습니다.
//   - 같은 ID의 기록이 이미 있으면 이력을 건드리지 않습니다 (재시도 안전).
//   - 코트 배정과 경기 시작 시각을 비우고, 경기했던 전원의 체크인 시각을 now로
//     초기화해 대기열 맨 뒤로 보냅니다. 이것이 공정성의 핵심 동작입니다.
//   - 레이팅은 여기서 바꾸지 않습니다. 반환된 MatchResult를 rating.Engine에
//     넘기는 것은 호출자의 후속 단계입니다.
//
// 배정이 없는 코트는 no-op으로 nil을 반환합니다.
func RecordResult(session *models.Session, courtIndex, winningTeamIndex int, matchID string, now time.Time) (*models.MatchResult, error) {
	if session.FinalBill != nil {
		return nil, errors.NewValidationError("SESSION_CLOSED",
			"match recording is frozen after settlement",
			"이미 정산이 완료된 세션입니다.")
	}
	if winningTeamIndex != 1 && winningTeamIndex != 2 {
		return nil, errors.NewValidationError("INVALID_WINNING_TEAM",
			fmt.Sprintf("winning team index must be 1 or 2, got %d", winningTeamIndex),
			"승리 팀 번호가 올바르지 않습니다.")
	}

	assigned := session.CourtAssignments[courtIndex]
	if len(assigned) == 0 {
		return nil, nil
	}

	mid := (len(assigned) + 1) / 2
	team1 := append([]string(nil), assigned[:mid]...)
	team2 := append([]string(nil), assigned[mid:]...)

	result := models.MatchResult{
		ID:               matchID,
		Timestamp:        now,
		Team1IDs:         team1,
		Team2IDs:         team2,
		WinningTeamIndex: winningTeamIndex,
		PointsChange:     constants.RatingPointsDelta,
	}

	if !session.HasMatch(matchID) {
		session.Matches = append(session.Matches, result)
	}

	delete(session.CourtAssignments, courtIndex)
	delete(session.MatchStartTimes, courtIndex)

	if session.CheckInTimes == nil {
		session.CheckInTimes = make(map[string]time.Time)
	}
	for _, pid := range assigned {
		session.CheckInTimes[pid] = now
	}

	return &result, nil
}

// MergeMatches 두 경기 이력을 ID 기준으로 중복 없이 병합합니다.
// base의 순서를 유지하고 base에 없는 incoming 기록만 뒤에 붙입니다.
// stale 스냅샷끼리의 동시 기록에서도 이력이 유실되거나 중복되지 않습니다.
func MergeMatches(base, incoming []models.MatchResult) []models.MatchResult {
	seen := make(map[string]bool, len(base))
	merged := make([]models.MatchResult, 0, len(base)+len(incoming))
	for _, m := range base {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, m)
	}
	for _, m := range incoming {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, m)
	}
	return merged
}
