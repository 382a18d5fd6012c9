package session

import (
	"time"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

// PendingFields 로컬에서 낙관적으로 변경했지만 아직 쓰기 확인을 받지 못한
// 필드를 표시합니다. 변경 피드가 이 필드를 "없음"으로 실어 보내도
// 로컬 값을 덮어쓰지 않습니다.
type PendingFields struct {
	CheckInTimes     bool
	CourtAssignments bool
	Matches          bool
	NextMatchups     bool
	FinalBill        bool
}

// Any 대기 중인 필드가 하나라도 있는지 확인합니다.
func (p PendingFields) Any() bool {
	return p.CheckInTimes || p.CourtAssignments || p.Matches || p.NextMatchups || p.FinalBill
}

// MergeRemote 변경 피드로 들어온 세션 교체본을 로컬 스냅샷과 병합합니다.
//
// 우선순위: 로컬 미확정 변경 > 원격 값 존재 > 원격 null(없음으로 해석).
// 피드는 전체 또는 부분 교체본을 보낼 수 있어서, 누락된 필드를 무조건
// 덮어쓰면 방금 적용한 낙관적 변경이 사라져 버립니다.
// 경기 이력은 항상 ID 기준으로 중복 없이 병합됩니다.
//
// 입력은 변경하지 않고 병합 결과의 새 복사본을 반환합니다.
func MergeRemote(local, remote *models.Session, pending PendingFields) *models.Session {
	if remote == nil {
		return local.Clone()
	}
	if local == nil {
		return remote.Clone()
	}

	merged := remote.Clone()
	merged.ID = local.ID

	if pending.CheckInTimes && len(remote.CheckInTimes) == 0 && len(local.CheckInTimes) > 0 {
		// 체크인 시각과 체크인 명단은 항상 한 쌍으로 움직입니다
		merged.CheckInTimes = cloneTimes(local.CheckInTimes)
		merged.CheckedInPlayerIDs = append([]string(nil), local.CheckedInPlayerIDs...)
		if local.Started {
			merged.Started = true
		}
	}
	if pending.CourtAssignments && len(remote.CourtAssignments) == 0 && len(local.CourtAssignments) > 0 {
		merged.CourtAssignments = cloneAssignments(local.CourtAssignments)
	}
	if pending.NextMatchups && len(remote.NextMatchups) == 0 && len(local.NextMatchups) > 0 {
		merged.NextMatchups = append([]models.NextMatchup(nil), local.NextMatchups...)
	}
	if pending.FinalBill && remote.FinalBill == nil && local.FinalBill != nil {
		bill := *local.FinalBill
		bill.Items = append([]models.BillItem(nil), local.FinalBill.Items...)
		merged.FinalBill = &bill
	}

	if pending.Matches {
		merged.Matches = MergeMatches(remote.Matches, local.Matches)
	}

	return merged
}

func cloneTimes(src map[string]time.Time) map[string]time.Time {
	dst := make(map[string]time.Time, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneAssignments(src map[int][]string) map[int][]string {
	dst := make(map[int][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}
