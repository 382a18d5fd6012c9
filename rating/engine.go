package rating

import (
	"context"
	"fmt"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// Engine 경기 결과를 참가자 레이팅에 반영합니다.
// 승자는 +delta, 패자는 -delta로 합이 항상 0입니다. 하한/상한은 없습니다.
type Engine struct {
	participants interfaces.ParticipantRepository
	tierManager  *models.TierManager
}

func NewEngine(participants interfaces.ParticipantRepository, tierManager *models.TierManager) *Engine {
	return &Engine{
		participants: participants,
		tierManager:  tierManager,
	}
}

// ApplyResult 경기 결과를 저장소의 레이팅에 반영합니다.
//
// 여러 기기가 거의 동시에 결과를 기록할 수 있으므로, 반드시 저장소에서
// 최신 레이팅을 다시 읽은 직후 델타를 적용합니다. 로컬 스냅샷의 레이팅으로
// 계산하면 다른 기기의 변경이 덮어써집니다.
func (e *Engine) ApplyResult(ctx context.Context, result *models.MatchResult) ([]models.Participant, error) {
	playerIDs := result.PlayerIDs()
	if len(playerIDs) == 0 {
		return nil, nil
	}

	fresh, err := e.participants.GetParticipants(ctx, playerIDs)
	if err != nil {
		return nil, errors.NewSystemError("RATING_FETCH_FAILED",
			fmt.Sprintf("failed to fetch fresh ratings for match %s", result.ID), err)
	}

	byID := make(map[string]models.Participant, len(fresh))
	for _, p := range fresh {
		byID[p.ID] = p
	}

	winners := make(map[string]bool)
	for _, id := range result.Winners() {
		winners[id] = true
	}

	delta := result.PointsChange
	if delta == 0 {
		delta = constants.RatingPointsDelta
	}

	updated := make([]models.Participant, 0, len(playerIDs))
	for _, pid := range playerIDs {
		p, ok := byID[pid]
		if !ok {
			// 프로필이 아직 없는 참가자는 기본 레이팅에서 출발
			p = models.Participant{ID: pid, Rating: constants.DefaultRating}
		}
		if winners[pid] {
			p.Rating += delta
		} else {
			p.Rating -= delta
		}
		p.TierName = e.tierManager.GetTierName(p.Rating)
		updated = append(updated, p)
	}

	if err := e.participants.UpsertParticipants(ctx, updated); err != nil {
		return nil, errors.NewSystemError("RATING_WRITE_FAILED",
			fmt.Sprintf("failed to persist ratings for match %s", result.ID), err)
	}

	utils.Info("Applied rating delta %d for match %s (%d players)", delta, result.ID, len(updated))
	return updated, nil
}

// Preview 저장소를 거치지 않고 레이팅 변동을 미리 계산합니다 (낙관적 표시용).
// 입력 슬라이스는 변경하지 않습니다.
func Preview(participants []models.Participant, result *models.MatchResult, tierManager *models.TierManager) []models.Participant {
	winners := make(map[string]bool)
	for _, id := range result.Winners() {
		winners[id] = true
	}
	involved := make(map[string]bool)
	for _, id := range result.PlayerIDs() {
		involved[id] = true
	}

	delta := result.PointsChange
	if delta == 0 {
		delta = constants.RatingPointsDelta
	}

	out := make([]models.Participant, len(participants))
	copy(out, participants)
	for i := range out {
		if !involved[out[i].ID] {
			continue
		}
		if winners[out[i].ID] {
			out[i].Rating += delta
		} else {
			out[i].Rating -= delta
		}
		out[i].TierName = tierManager.GetTierName(out[i].Rating)
	}
	return out
}
