package models

import (
	"testing"
	"time"
)

func TestMatchResultWinnersLosers(t *testing.T) {
	m := &MatchResult{
		Team1IDs:         []string{"a", "b"},
		Team2IDs:         []string{"c", "d"},
		WinningTeamIndex: 1,
	}

	winners := m.Winners()
	if len(winners) != 2 || winners[0] != "a" {
		t.Errorf("팀1 승리 시 Winners가 [a b]여야 합니다. 실제값: %v", winners)
	}
	losers := m.Losers()
	if len(losers) != 2 || losers[0] != "c" {
		t.Errorf("팀1 승리 시 Losers가 [c d]여야 합니다. 실제값: %v", losers)
	}

	m.WinningTeamIndex = 2
	if m.Winners()[0] != "c" {
		t.Errorf("팀2 승리 시 Winners가 [c d]여야 합니다. 실제값: %v", m.Winners())
	}

	all := m.PlayerIDs()
	expected := []string{"a", "b", "c", "d"}
	for i, id := range expected {
		if all[i] != id {
			t.Errorf("PlayerIDs[%d]가 %s이어야 합니다. 실제값: %s", i, id, all[i])
		}
	}
}

func TestSessionIsCheckedIn(t *testing.T) {
	sess := &Session{CheckedInPlayerIDs: []string{"a", "b"}}

	if !sess.IsCheckedIn("a") {
		t.Error("체크인된 참가자가 조회되지 않습니다")
	}
	if sess.IsCheckedIn("ghost") {
		t.Error("체크인하지 않은 참가자가 체크인으로 조회됩니다")
	}
}

func TestSessionCourtOf(t *testing.T) {
	sess := &Session{
		CourtAssignments: map[int][]string{
			0: {"a", "b"},
			1: {"c", "d", "e", "f"},
		},
	}

	if got := sess.CourtOf("d"); got != 1 {
		t.Errorf("참가자 d는 1번 코트여야 합니다. 실제값: %d", got)
	}
	if got := sess.CourtOf("ghost"); got != -1 {
		t.Errorf("배정되지 않은 참가자는 -1이어야 합니다. 실제값: %d", got)
	}
}

func TestSessionAppearanceCount(t *testing.T) {
	sess := &Session{
		Matches: []MatchResult{
			{ID: "m1", Team1IDs: []string{"a", "b"}, Team2IDs: []string{"c", "d"}},
			{ID: "m2", Team1IDs: []string{"a", "c"}, Team2IDs: []string{"b", "d"}},
		},
	}

	if got := sess.AppearanceCount("a"); got != 2 {
		t.Errorf("참가자 a의 참여 횟수가 2여야 합니다. 실제값: %d", got)
	}
	if got := sess.AppearanceCount("ghost"); got != 0 {
		t.Errorf("경기하지 않은 참가자는 0이어야 합니다. 실제값: %d", got)
	}
}

func TestSessionHasMatch(t *testing.T) {
	sess := &Session{Matches: []MatchResult{{ID: "m1"}}}

	if !sess.HasMatch("m1") {
		t.Error("존재하는 경기 ID를 찾지 못합니다")
	}
	if sess.HasMatch("m2") {
		t.Error("없는 경기 ID가 존재하는 것으로 조회됩니다")
	}
}

func TestSessionCloneIsDeep(t *testing.T) {
	now := time.Date(2025, 11, 8, 19, 0, 0, 0, time.UTC)
	sess := &Session{
		ID:                 "s1",
		PlayerIDs:          []string{"a"},
		CheckedInPlayerIDs: []string{"a"},
		CheckInTimes:       map[string]time.Time{"a": now},
		CourtAssignments:   map[int][]string{0: {"a", "b"}},
		MatchStartTimes:    map[int]time.Time{0: now},
		Matches:            []MatchResult{{ID: "m1", Team1IDs: []string{"a"}}},
		NextMatchups:       []NextMatchup{{ID: "n1", PlayerIDs: []string{"a"}}},
		FinalBill:          &FinalBill{Items: []BillItem{{UserID: "a", Amount: 100}}},
	}

	clone := sess.Clone()

	// 복사본을 바꿔도 원본이 변하지 않아야 합니다
	clone.PlayerIDs[0] = "mutated"
	clone.CheckInTimes["a"] = now.Add(time.Hour)
	clone.CourtAssignments[0][0] = "mutated"
	clone.Matches[0].Team1IDs[0] = "mutated"
	clone.NextMatchups[0].PlayerIDs[0] = "mutated"
	clone.FinalBill.Items[0].Amount = 999

	if sess.PlayerIDs[0] != "a" {
		t.Error("PlayerIDs가 얕은 복사되었습니다")
	}
	if !sess.CheckInTimes["a"].Equal(now) {
		t.Error("CheckInTimes가 얕은 복사되었습니다")
	}
	if sess.CourtAssignments[0][0] != "a" {
		t.Error("CourtAssignments가 얕은 복사되었습니다")
	}
	if sess.Matches[0].Team1IDs[0] != "a" {
		t.Error("Matches가 얕은 복사되었습니다")
	}
	if sess.NextMatchups[0].PlayerIDs[0] != "a" {
		t.Error("NextMatchups가 얕은 복사되었습니다")
	}
	if sess.FinalBill.Items[0].Amount != 100 {
		t.Error("FinalBill이 얕은 복사되었습니다")
	}
}
