package session

import (
	"fmt"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/queue"
)

// 이 파일의 함수들은 전부 Session 애그리거트에 대한 순수 데이터 변경입니다.
// I/O는 일절 없으며, 영속화와 롤백은 live.Coordinator가 담당합니다.

// Join 참가자를 세션 명단에 추가합니다. 이미 있으면 no-op입니다.
func Join(session *models.Session, playerID string) error {
	for _, id := range session.PlayerIDs {
		if id == playerID {
			return nil
		}
	}
	if len(session.PlayerIDs) >= constants.MaxRosterSize {
		return errors.NewValidationError("ROSTER_FULL",
			fmt.Sprintf("roster size limit %d reached", constants.MaxRosterSize),
			"세션 정원이 가득 찼습니다.")
	}
	session.PlayerIDs = append(session.PlayerIDs, playerID)
	return nil
}

// Leave 참가자를 세션 명단에서 제거합니다. 없으면 no-op입니다.
func Leave(session *models.Session, playerID string) {
	for i, id := range session.PlayerIDs {
		if id == playerID {
			session.PlayerIDs = append(session.PlayerIDs[:i], session.PlayerIDs[i+1:]...)
			return
		}
	}
}

// Start 호스트가 세션을 시작합니다. 초기 체크인 인원 전원에게 동일한
// 체크인 시각이 찍히고, 세션은 PLAYING으로 넘어갑니다.
func Start(session *models.Session, initialCheckInIDs []string, now time.Time) {
	session.Started = true
	session.CheckedInPlayerIDs = append([]string(nil), initialCheckInIDs...)
	session.CheckInTimes = make(map[string]time.Time, len(initialCheckInIDs))
	for _, id := range initialCheckInIDs {
		session.CheckInTimes[id] = now
	}
}

// CheckIn 참가자를 체크인하고 시각을 기록합니다. 이미 체크인 상태면 no-op입니다.
func CheckIn(session *models.Session, playerID string, now time.Time) {
	if session.IsCheckedIn(playerID) {
		return
	}
	session.CheckedInPlayerIDs = append(session.CheckedInPlayerIDs, playerID)
	if session.CheckInTimes == nil {
		session.CheckInTimes = make(map[string]time.Time)
	}
	session.CheckInTimes[playerID] = now
	if len(session.CheckedInPlayerIDs) > 0 {
		session.Started = true
	}
}

// CheckOut 참가자를 체크아웃하고 체크인 시각을 지웁니다. 미체크인 상태면 no-op입니다.
func CheckOut(session *models.Session, playerID string) {
	for i, id := range session.CheckedInPlayerIDs {
		if id == playerID {
			session.CheckedInPlayerIDs = append(session.CheckedInPlayerIDs[:i], session.CheckedInPlayerIDs[i+1:]...)
			delete(session.CheckInTimes, playerID)
			return
		}
	}
}

// SkipTurn 대기 순서를 한 칸 양보합니다. 바로 뒤 대기자와 대기 시작 시각을
// 맞바꾸고, 두 시각이 같으면 본인을 1초 늦춰 뒤로 보냅니다.
// 마지막 순번이거나 대기 중이 아니면 맨 뒤(now)로 이동합니다.
// 실제로 교체가 일어났으면 true를 반환합니다.
func SkipTurn(session *models.Session, playerID string, now time.Time) bool {
	if session.CheckInTimes == nil {
		session.CheckInTimes = make(map[string]time.Time)
	}

	q := queue.CalculateQueue(session, now)
	available := queue.AvailablePlayers(q)

	currentIndex := -1
	for i, p := range available {
		if p.ID == playerID {
			currentIndex = i
			break
		}
	}

	if currentIndex != -1 && currentIndex < len(available)-1 {
		next := available[currentIndex+1]
		mine := available[currentIndex].WaitingSince

		if mine.Equal(next.WaitingSince) {
			// 동률이면 본인만 1초 늦춰도 교체와 같은 효과
			session.CheckInTimes[playerID] = mine.Add(time.Second)
		} else {
			session.CheckInTimes[playerID] = next.WaitingSince
			session.CheckInTimes[next.ID] = mine
		}
		return true
	}

	session.CheckInTimes[playerID] = now
	return false
}

// Assign 코트에 참가자들을 배정합니다. 인원은 0/2/4명만 허용되며,
// 비어 있지 않은 배정은 경기 시작 시각을 now로 기록하고, 빈 배정은 코트를 비웁니다.
// 코트 간 중복 배정 방지는 호출자 책임입니다 (후보군 단계에서 경기 중인
// 참가자가 이미 제외됩니다).
func Assign(session *models.Session, courtIndex int, playerIDs []string, now time.Time) error {
	if courtIndex < 0 || courtIndex >= session.CourtCount {
		return errors.NewValidationError("COURT_OUT_OF_RANGE",
			fmt.Sprintf("court index %d out of range [0, %d)", courtIndex, session.CourtCount),
			"존재하지 않는 코트입니다.")
	}
	if n := len(playerIDs); n != 0 && n != 2 && n != 4 {
		return errors.NewValidationError("INVALID_PLAYER_COUNT",
			fmt.Sprintf("court assignment must have 0, 2 or 4 players, got %d", n),
			"코트 배정 인원은 0명, 2명 또는 4명이어야 합니다.")
	}

	if session.CourtAssignments == nil {
		session.CourtAssignments = make(map[int][]string)
	}
	if session.MatchStartTimes == nil {
		session.MatchStartTimes = make(map[int]time.Time)
	}

	if len(playerIDs) == 0 {
		delete(session.CourtAssignments, courtIndex)
		delete(session.MatchStartTimes, courtIndex)
		return nil
	}

	session.CourtAssignments[courtIndex] = append([]string(nil), playerIDs...)
	session.MatchStartTimes[courtIndex] = now
	return nil
}

// EnqueueMatchup 미리 짠 경기 조합을 FIFO 대기 목록 끝에 추가합니다.
func EnqueueMatchup(session *models.Session, matchupID string, playerIDs []string) {
	session.NextMatchups = append(session.NextMatchups, models.NextMatchup{
		ID:        matchupID,
		PlayerIDs: append([]string(nil), playerIDs...),
	})
}

// DequeueMatchup 대기 목록에서 해당 조합을 제거합니다. 없으면 no-op입니다.
func DequeueMatchup(session *models.Session, matchupID string) {
	for i, m := range session.NextMatchups {
		if m.ID == matchupID {
			session.NextMatchups = append(session.NextMatchups[:i], session.NextMatchups[i+1:]...)
			return
		}
	}
}

// PromoteMatchup 대기 중인 조합을 목록에서 빼서 코트에 배정합니다.
// 조합이 이미 없으면 no-op입니다 (다른 기기가 먼저 올렸을 수 있음).
func PromoteMatchup(session *models.Session, matchupID string, courtIndex int, now time.Time) error {
	var found *models.NextMatchup
	for i := range session.NextMatchups {
		if session.NextMatchups[i].ID == matchupID {
			found = &session.NextMatchups[i]
			break
		}
	}
	if found == nil {
		return nil
	}

	playerIDs := append([]string(nil), found.PlayerIDs...)
	DequeueMatchup(session, matchupID)
	return Assign(session, courtIndex, playerIDs, now)
}
