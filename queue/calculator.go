package queue

import (
	"sort"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

// CalculateQueue 체크인한 전체 참가자의 통합 대기열을 계산합니다.
// 코트에서 경기 중인 참가자도 포함되며, 그들의 대기 시작 시각은 해당 코트의
// 경기 시작 시각입니다 (기록이 없으면 now). 대기 중인 참가자는 체크인 시각을
// 사용합니다 (기록이 없으면 now). 결과는 대기 시작 시각 오름차순으로 정렬되고,
// 정렬 후 1-기반 순번이 부여됩니다.
//
// 순수 함수이며 어떤 입력에도 오류를 내지 않습니다. 빈 입력은 빈 결과가 됩니다.
func CalculateQueue(session *models.Session, now time.Time) []models.QueuedPlayer {
	result := make([]models.QueuedPlayer, 0, len(session.CheckedInPlayerIDs))

	// 현재 코트에 있는 참가자 집합 구성
	type courtSlot struct {
		courtIndex int
		startTime  time.Time
	}
	playing := make(map[string]courtSlot)
	for courtIdx, playerIDs := range session.CourtAssignments {
		startTime, ok := session.MatchStartTimes[courtIdx]
		if !ok {
			startTime = now
		}
		for _, pid := range playerIDs {
			playing[pid] = courtSlot{courtIndex: courtIdx, startTime: startTime}
		}
	}

	for _, pid := range session.CheckedInPlayerIDs {
		if slot, ok := playing[pid]; ok {
			result = append(result, models.QueuedPlayer{
				ID:               pid,
				WaitingSince:     slot.startTime,
				CurrentlyPlaying: true,
				CourtIndex:       slot.courtIndex,
			})
		} else {
			waitingSince, ok := session.CheckInTimes[pid]
			if !ok {
				waitingSince = now
			}
			result = append(result, models.QueuedPlayer{
				ID:           pid,
				WaitingSince: waitingSince,
				CourtIndex:   -1,
			})
		}
	}

	// 오래 기다린 순서대로 정렬. 동률은 체크인 순서 유지.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WaitingSince.Before(result[j].WaitingSince)
	})

	for i := range result {
		result[i].Position = i + 1
	}

	return result
}

// AvailablePlayers 대기열에서 경기 중이 아닌 참가자만 순서를 유지한 채 추립니다.
func AvailablePlayers(queue []models.QueuedPlayer) []models.QueuedPlayer {
	available := make([]models.QueuedPlayer, 0, len(queue))
	for _, p := range queue {
		if !p.CurrentlyPlaying {
			available = append(available, p)
		}
	}
	return available
}
