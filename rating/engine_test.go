package rating

import (
	"context"
	"fmt"
	"testing"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// fakeParticipantRepo 테스트용 참가자 저장소
type fakeParticipantRepo struct {
	participants map[string]models.Participant
	fetchCount   int
	failFetch    bool
	failUpsert   bool
}

func newFakeParticipantRepo(participants ...models.Participant) *fakeParticipantRepo {
	repo := &fakeParticipantRepo{participants: make(map[string]models.Participant)}
	for _, p := range participants {
		repo.participants[p.ID] = p
	}
	return repo
}

func (r *fakeParticipantRepo) GetParticipant(ctx context.Context, id string) (*models.Participant, error) {
	p, ok := r.participants[id]
	if !ok {
		return nil, fmt.Errorf("participant not found: %s", id)
	}
	return &p, nil
}

func (r *fakeParticipantRepo) GetParticipants(ctx context.Context, ids []string) ([]models.Participant, error) {
	r.fetchCount++
	if r.failFetch {
		return nil, fmt.Errorf("injected fetch failure")
	}
	var result []models.Participant
	for _, id := range ids {
		if p, ok := r.participants[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeParticipantRepo) UpsertParticipants(ctx context.Context, participants []models.Participant) error {
	if r.failUpsert {
		return fmt.Errorf("injected upsert failure")
	}
	for _, p := range participants {
		r.participants[p.ID] = p
	}
	return nil
}

func doublesResult(winningTeam int) *models.MatchResult {
	return &models.MatchResult{
		ID:               "m1",
		Team1IDs:         []string{"a", "b"},
		Team2IDs:         []string{"c", "d"},
		WinningTeamIndex: winningTeam,
		PointsChange:     constants.RatingPointsDelta,
	}
}

func TestApplyResultSymmetry(t *testing.T) {
	repo := newFakeParticipantRepo(
		models.Participant{ID: "a", Name: "A", Rating: 1000},
		models.Participant{ID: "b", Name: "B", Rating: 1200},
		models.Participant{ID: "c", Name: "C", Rating: 1100},
		models.Participant{ID: "d", Name: "D", Rating: 900},
	)
	engine := NewEngine(repo, models.GetTierManager())

	updated, err := engine.ApplyResult(context.Background(), doublesResult(1))
	if err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}
	if len(updated) != 4 {
		t.Fatalf("Expected 4 updated participants, got %d", len(updated))
	}

	// 승자 +25, 패자 -25: 총합 변동 0
	expected := map[string]int{"a": 1025, "b": 1225, "c": 1075, "d": 875}
	for id, rating := range expected {
		if repo.participants[id].Rating != rating {
			t.Errorf("Player %s: expected rating %d, got %d", id, rating, repo.participants[id].Rating)
		}
	}

	// 쓰기 직전에 저장소를 반드시 다시 읽어야 합니다
	if repo.fetchCount != 1 {
		t.Errorf("Expected exactly 1 fresh fetch, got %d", repo.fetchCount)
	}
}

func TestApplyResultMissingProfileStartsAtDefault(t *testing.T) {
	// 프로필이 없는 참가자는 기본 레이팅에서 출발합니다
	repo := newFakeParticipantRepo(
		models.Participant{ID: "a", Rating: 1000},
	)
	engine := NewEngine(repo, models.GetTierManager())

	if _, err := engine.ApplyResult(context.Background(), doublesResult(2)); err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}

	if got := repo.participants["c"].Rating; got != constants.DefaultRating+constants.RatingPointsDelta {
		t.Errorf("New winner should be %d, got %d", constants.DefaultRating+constants.RatingPointsDelta, got)
	}
	if got := repo.participants["b"].Rating; got != constants.DefaultRating-constants.RatingPointsDelta {
		t.Errorf("New loser should be %d, got %d", constants.DefaultRating-constants.RatingPointsDelta, got)
	}
}

func TestApplyResultAllowsNegativeRatings(t *testing.T) {
	repo := newFakeParticipantRepo(
		models.Participant{ID: "a", Rating: 10},
		models.Participant{ID: "b", Rating: 10},
		models.Participant{ID: "c", Rating: 1000},
		models.Participant{ID: "d", Rating: 1000},
	)
	engine := NewEngine(repo, models.GetTierManager())

	if _, err := engine.ApplyResult(context.Background(), doublesResult(2)); err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}

	// 레이팅에 하한은 없지만 티어는 최하위로 처리됩니다
	if got := repo.participants["a"].Rating; got != -15 {
		t.Errorf("Expected rating -15, got %d", got)
	}
	if got := repo.participants["a"].TierName; got != "Unpolished" {
		t.Errorf("Negative rating should map to the lowest tier, got %s", got)
	}
}

func TestApplyResultUpdatesTiers(t *testing.T) {
	repo := newFakeParticipantRepo(
		models.Participant{ID: "a", Rating: 1090, TierName: "Unpolished"},
		models.Participant{ID: "b", Rating: 1000},
		models.Participant{ID: "c", Rating: 1000},
		models.Participant{ID: "d", Rating: 1000},
	)
	engine := NewEngine(repo, models.GetTierManager())

	if _, err := engine.ApplyResult(context.Background(), doublesResult(1)); err != nil {
		t.Fatalf("ApplyResult failed: %v", err)
	}

	// 1090 + 25 = 1115 → Spark 승급
	if got := repo.participants["a"].TierName; got != "Spark" {
		t.Errorf("Expected tier promotion to Spark, got %s", got)
	}
}

func TestApplyResultFailures(t *testing.T) {
	repo := newFakeParticipantRepo()
	repo.failFetch = true
	engine := NewEngine(repo, models.GetTierManager())

	if _, err := engine.ApplyResult(context.Background(), doublesResult(1)); err == nil {
		t.Error("Fetch failure should propagate")
	}

	repo.failFetch = false
	repo.failUpsert = true
	if _, err := engine.ApplyResult(context.Background(), doublesResult(1)); err == nil {
		t.Error("Upsert failure should propagate")
	}
}

func TestPreviewDoesNotMutateInput(t *testing.T) {
	participants := []models.Participant{
		{ID: "a", Rating: 1000},
		{ID: "b", Rating: 1000},
		{ID: "c", Rating: 1000},
		{ID: "d", Rating: 1000},
		{ID: "e", Rating: 1500}, // 경기와 무관한 참가자
	}

	preview := Preview(participants, doublesResult(1), models.GetTierManager())

	for _, p := range participants {
		if p.Rating != 1000 && p.ID != "e" {
			t.Errorf("Input slice was mutated for %s", p.ID)
		}
	}
	for _, p := range preview {
		switch p.ID {
		case "a", "b":
			if p.Rating != 1025 {
				t.Errorf("Winner %s preview should be 1025, got %d", p.ID, p.Rating)
			}
		case "c", "d":
			if p.Rating != 975 {
				t.Errorf("Loser %s preview should be 975, got %d", p.ID, p.Rating)
			}
		case "e":
			if p.Rating != 1500 {
				t.Errorf("Uninvolved player must keep rating, got %d", p.Rating)
			}
		}
	}
}
