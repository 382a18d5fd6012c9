package session

import (
	"testing"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

func TestMergeRemotePreservesPendingFields(t *testing.T) {
	local := newTestSession()
	local.CheckInTimes = map[string]time.Time{"a": testTime}
	local.CourtAssignments = map[int][]string{0: {"a", "b"}}
	local.NextMatchups = []models.NextMatchup{{ID: "n1", PlayerIDs: []string{"a", "b", "c", "d"}}}

	// 원격 교체본에는 방금 로컬에서 바꾼 필드가 아직 비어 있습니다
	remote := newTestSession()
	remote.Title = "원격에서 수정된 제목"

	pending := PendingFields{
		CheckInTimes:     true,
		CourtAssignments: true,
		NextMatchups:     true,
	}

	merged := MergeRemote(local, remote, pending)

	// 원격 값이 있는 필드는 원격을 따릅니다
	if merged.Title != "원격에서 수정된 제목" {
		t.Errorf("Remote title should win, got %s", merged.Title)
	}

	// 미확정 필드는 로컬 값이 보호됩니다
	if len(merged.CheckInTimes) != 1 {
		t.Error("Pending check-in times must survive an empty remote payload")
	}
	if len(merged.CourtAssignments[0]) != 2 {
		t.Error("Pending court assignments must survive an empty remote payload")
	}
	if len(merged.NextMatchups) != 1 {
		t.Error("Pending matchups must survive an empty remote payload")
	}
}

func TestMergeRemoteWithoutPendingFollowsRemote(t *testing.T) {
	local := newTestSession()
	local.CheckInTimes = map[string]time.Time{"a": testTime}
	local.CourtAssignments = map[int][]string{0: {"a", "b"}}

	remote := newTestSession()

	merged := MergeRemote(local, remote, PendingFields{})

	// 미확정 표시가 없으면 원격의 "없음"도 그대로 받아들입니다
	if len(merged.CheckInTimes) != 0 {
		t.Error("Without pending marks, remote emptiness wins")
	}
	if len(merged.CourtAssignments) != 0 {
		t.Error("Without pending marks, remote emptiness wins for assignments")
	}
}

func TestMergeRemoteAlwaysMergesMatchHistory(t *testing.T) {
	local := newTestSession()
	local.Matches = []models.MatchResult{{ID: "local-1"}}

	remote := newTestSession()
	remote.Matches = []models.MatchResult{{ID: "remote-1"}, {ID: "local-1"}}

	merged := MergeRemote(local, remote, PendingFields{Matches: true})

	if len(merged.Matches) != 2 {
		t.Fatalf("Expected union of 2 matches, got %d", len(merged.Matches))
	}
	// 원격 순서가 base가 됩니다
	if merged.Matches[0].ID != "remote-1" || merged.Matches[1].ID != "local-1" {
		t.Errorf("Unexpected merged order: %v", merged.Matches)
	}
}

func TestMergeRemoteNilInputs(t *testing.T) {
	local := newTestSession()
	local.Matches = []models.MatchResult{{ID: "m1"}}

	if merged := MergeRemote(local, nil, PendingFields{}); len(merged.Matches) != 1 {
		t.Error("Nil remote should return a clone of local")
	}

	remote := newTestSession()
	remote.Matches = []models.MatchResult{{ID: "m2"}}
	if merged := MergeRemote(nil, remote, PendingFields{}); len(merged.Matches) != 1 {
		t.Error("Nil local should return a clone of remote")
	}
}

func TestMergeRemoteDoesNotMutateInputs(t *testing.T) {
	local := newTestSession()
	local.Matches = []models.MatchResult{{ID: "local-1"}}
	remote := newTestSession()
	remote.Matches = []models.MatchResult{{ID: "remote-1"}}

	merged := MergeRemote(local, remote, PendingFields{Matches: true})
	merged.Matches[0].ID = "mutated"
	merged.Title = "mutated"

	if local.Matches[0].ID != "local-1" || remote.Matches[0].ID != "remote-1" {
		t.Error("Merge result must be an independent copy")
	}
}

func TestPendingFieldsAny(t *testing.T) {
	if (PendingFields{}).Any() {
		t.Error("Zero value should report no pending fields")
	}
	if !(PendingFields{FinalBill: true}).Any() {
		t.Error("Set flag should report pending")
	}
}
