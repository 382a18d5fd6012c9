package settlement

import (
	"testing"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

func settleSession(checkedIn []string, matches []models.MatchResult) *models.Session {
	return &models.Session{
		ID:                 "s1",
		CheckedInPlayerIDs: checkedIn,
		Matches:            matches,
	}
}

func itemsByUser(bill *models.FinalBill) map[string]int {
	out := make(map[string]int, len(bill.Items))
	for _, item := range bill.Items {
		out[item.UserID] = item.Amount
	}
	return out
}

func TestSettleEqualSplit(t *testing.T) {
	sess := settleSession([]string{"a", "b", "c"}, nil)

	bill := Settle(sess, Input{
		ShuttlesUsed:    4,
		PricePerShuttle: 25000,
		TotalCourtPrice: 60000,
		SplitMode:       models.SplitEqual,
	})

	if bill.TotalShuttlePrice != 100000 {
		t.Errorf("Expected shuttle total 100000, got %d", bill.TotalShuttlePrice)
	}
	if bill.TotalCost != 160000 {
		t.Errorf("Expected total cost 160000, got %d", bill.TotalCost)
	}

	// 160000 / 3 = 53333.33 → 반올림 53333
	amounts := itemsByUser(bill)
	for _, id := range []string{"a", "b", "c"} {
		if amounts[id] != 53333 {
			t.Errorf("Player %s: expected 53333, got %d", id, amounts[id])
		}
	}
}

func TestSettleMatchesSplit(t *testing.T) {
	matches := []models.MatchResult{
		{ID: "m1", Team1IDs: []string{"a", "b"}, Team2IDs: []string{"c", "d"}},
		{ID: "m2", Team1IDs: []string{"a", "c"}, Team2IDs: []string{"b", "d"}},
		{ID: "m3", Team1IDs: []string{"a", "b"}, Team2IDs: []string{"c", "d"}},
	}
	// a: 3경기, b/c/d: 2경기, e: 0경기
	sess := settleSession([]string{"a", "b", "c", "d", "e"}, matches)

	bill := Settle(sess, Input{
		TotalCourtPrice: 90000,
		SplitMode:       models.SplitMatches,
	})

	amounts := itemsByUser(bill)
	if amounts["a"] != 30000 {
		t.Errorf("Player a (3 matches of 9) should pay 30000, got %d", amounts["a"])
	}
	if amounts["b"] != 20000 {
		t.Errorf("Player b (2 matches of 9) should pay 20000, got %d", amounts["b"])
	}
	// 경기를 안 뛴 참가자는 0원
	if amounts["e"] != 0 {
		t.Errorf("Player e (0 matches) should pay nothing, got %d", amounts["e"])
	}
}

func TestSettleMatchesFallsBackToEqual(t *testing.T) {
	// 경기 이력이 전혀 없으면 가중치 합이 0이라 균등 분배로 동작합니다
	sess := settleSession([]string{"a", "b"}, nil)

	bill := Settle(sess, Input{
		TotalCourtPrice: 50000,
		SplitMode:       models.SplitMatches,
	})

	amounts := itemsByUser(bill)
	if amounts["a"] != 25000 || amounts["b"] != 25000 {
		t.Errorf("Zero-weight settlement should split equally, got %v", amounts)
	}
}

func TestSettleEmptySession(t *testing.T) {
	sess := settleSession(nil, nil)

	bill := Settle(sess, Input{
		ShuttlesUsed:    2,
		PricePerShuttle: 20000,
		TotalCourtPrice: 40000,
		SplitMode:       models.SplitEqual,
	})

	if len(bill.Items) != 0 {
		t.Errorf("Empty session should produce no bill items, got %d", len(bill.Items))
	}
	// 총비용 자체는 기록됩니다
	if bill.TotalCost != 80000 {
		t.Errorf("Expected total cost 80000, got %d", bill.TotalCost)
	}
}

func TestSettleZeroCost(t *testing.T) {
	sess := settleSession([]string{"a", "b"}, nil)

	bill := Settle(sess, Input{SplitMode: models.SplitEqual})

	amounts := itemsByUser(bill)
	if amounts["a"] != 0 || amounts["b"] != 0 {
		t.Errorf("Zero cost should produce zero amounts, got %v", amounts)
	}
}

func TestSettleDoesNotMutateSession(t *testing.T) {
	sess := settleSession([]string{"a"}, nil)

	Settle(sess, Input{TotalCourtPrice: 10000, SplitMode: models.SplitEqual})

	if sess.FinalBill != nil {
		t.Error("Settle must not attach the bill to the session")
	}
}
