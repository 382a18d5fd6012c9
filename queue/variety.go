package queue

import (
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// WereRecentTeammates 두 참가자가 최근 threshold 경기 안에서 같은 팀이었는지 확인합니다.
// 기준은 후보군이 아니라 세션 전체 경기 이력입니다.
func WereRecentTeammates(player1, player2 string, matches []models.MatchResult, threshold int) bool {
	start := len(matches) - threshold
	if start < 0 {
		start = 0
	}
	for i := start; i < len(matches); i++ {
		m := &matches[i]
		if (containsID(m.Team1IDs, player1) && containsID(m.Team1IDs, player2)) ||
			(containsID(m.Team2IDs, player1) && containsID(m.Team2IDs, player2)) {
			return true
		}
	}
	return false
}

// RecentTeammatePairs 후보군 안에서 최근 같은 팀이었던 쌍을 모두 반환합니다.
// 경고 표시용이며 선택 결과에는 영향을 주지 않습니다.
func RecentTeammatePairs(playerIDs []string, matches []models.MatchResult) [][2]string {
	var pairs [][2]string
	for i := 0; i < len(playerIDs); i++ {
		for j := i + 1; j < len(playerIDs); j++ {
			if WereRecentTeammates(playerIDs[i], playerIDs[j], matches, constants.RecentMatchThreshold) {
				pairs = append(pairs, [2]string{playerIDs[i], playerIDs[j]})
			}
		}
	}
	return pairs
}

// VarietyScore 후보 조합의 다양성 점수를 계산합니다.
// 최근 같은 팀이었던 쌍의 개수이며, 낮을수록 다양한 조합입니다.
func VarietyScore(playerIDs []string, matches []models.MatchResult) int {
	score := 0
	for i := 0; i < len(playerIDs); i++ {
		for j := i + 1; j < len(playerIDs); j++ {
			if WereRecentTeammates(playerIDs[i], playerIDs[j], matches, constants.RecentMatchThreshold) {
				score++
			}
		}
	}
	return score
}

// combinations arr에서 k개를 뽑는 모든 조합을 입력 순서대로 생성합니다.
// 후보군이 최대 6명이므로 조합 수는 C(6,4)=15를 넘지 않습니다.
// 이 전수 탐색은 의도된 설계이며 휴리스틱으로 대체하지 않습니다.
func combinations(arr []string, k int) [][]string {
	if k == 0 {
		return [][]string{{}}
	}
	if len(arr) < k {
		return nil
	}

	var result [][]string
	combo := make([]string, 0, k)

	var combine func(start int)
	combine = func(start int) {
		if len(combo) == k {
			picked := make([]string, k)
			copy(picked, combo)
			result = append(result, picked)
			return
		}
		for i := start; i < len(arr); i++ {
			combo = append(combo, arr[i])
			combine(i + 1)
			combo = combo[:len(combo)-1]
		}
	}

	combine(0)
	return result
}

// SelectBestFour 후보군에서 다양성 점수가 가장 낮은 4인 조합을 고릅니다.
// 동점이면 먼저 열거된 조합이 선택됩니다. 조합 열거는 후보군의 우선순위 순서를
// 따르므로 오래 기다린 참가자가 유리합니다.
// 후보군이 4명 이하이면 탐색 없이 그대로 반환합니다.
func SelectBestFour(poolPlayerIDs []string, matches []models.MatchResult) []string {
	if len(poolPlayerIDs) <= constants.PlayersPerMatch {
		return poolPlayerIDs
	}

	combos := combinations(poolPlayerIDs, constants.PlayersPerMatch)
	if len(combos) == 0 {
		return poolPlayerIDs[:constants.PlayersPerMatch]
	}

	best := combos[0]
	bestScore := VarietyScore(best, matches)

	for _, combo := range combos[1:] {
		score := VarietyScore(combo, matches)
		if score < bestScore {
			bestScore = score
			best = combo
		}
	}

	return best
}

// SuggestMatch 다음 경기에 올릴 4인 조합을 제안합니다.
// 대기 인원이 4명 미만이면 경기 중인 참가자까지 포함한 전체 대기열로 후보군을
// 확장하되, 배정하려는 코트에 이미 있는 참가자는 제외합니다.
func SuggestMatch(session *models.Session, courtIndex int, now time.Time) []string {
	q := CalculateQueue(session, now)
	poolIDs := PoolIDs(q, constants.PoolSize)

	if len(poolIDs) < constants.PlayersPerMatch {
		currentCourt := session.CourtAssignments[courtIndex]
		expanded := make([]string, 0, len(q))
		for _, p := range q {
			if containsID(currentCourt, p.ID) {
				continue
			}
			expanded = append(expanded, p.ID)
		}
		if len(expanded) > constants.PoolSize {
			expanded = expanded[:constants.PoolSize]
		}
		return SelectBestFour(expanded, session.Matches)
	}

	return SelectBestFour(poolIDs, session.Matches)
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
