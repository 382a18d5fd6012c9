package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/storage"
)

var testTime = time.Date(2025, 11, 8, 22, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func seedSession(t *testing.T, store *storage.InMemoryStorage, endTime time.Time, settled bool) string {
	t.Helper()
	sess := &models.Session{
		Title:              "테스트 세션",
		CourtCount:         2,
		StartTime:          endTime.Add(-3 * time.Hour),
		EndTime:            endTime,
		Started:            true,
		CheckedInPlayerIDs: []string{"a", "b"},
	}
	if settled {
		sess.FinalBill = &models.FinalBill{}
	}
	id, err := store.CreateSession(context.Background(), sess)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return id
}

func TestSweepOnceEndsOverdueSessions(t *testing.T) {
	store := storage.NewInMemoryStorage()
	clock := &fakeClock{now: testTime}
	sched := NewScheduler(store, clock)

	// 유예 기간을 넘긴 세션
	overdueID := seedSession(t, store, testTime.Add(-constants.AutoEndGracePeriod-time.Minute), false)
	// 아직 유예 기간 내인 세션
	activeID := seedSession(t, store, testTime.Add(-10*time.Minute), false)
	// 이미 정산된 세션은 스캔 대상이 아닙니다
	seedSession(t, store, testTime.Add(-2*constants.AutoEndGracePeriod), true)

	ended := sched.SweepOnce(context.Background())
	if ended != 1 {
		t.Fatalf("Expected 1 session auto-ended, got %d", ended)
	}

	overdue, _ := store.GetSession(context.Background(), overdueID)
	if overdue.FinalBill == nil {
		t.Fatal("Overdue session should be frozen with a final bill")
	}
	// 비용 입력 없이 닫힌 세션은 0원 정산서를 갖습니다
	if overdue.FinalBill.TotalCost != 0 {
		t.Errorf("Auto-end bill should be zero-cost, got %d", overdue.FinalBill.TotalCost)
	}
	if len(overdue.FinalBill.Items) != 2 {
		t.Errorf("Bill should cover both checked-in players, got %d items", len(overdue.FinalBill.Items))
	}

	active, _ := store.GetSession(context.Background(), activeID)
	if active.FinalBill != nil {
		t.Error("Session within the grace period must not be touched")
	}
}

func TestSweepOnceIgnoresStaleSessions(t *testing.T) {
	store := storage.NewInMemoryStorage()
	clock := &fakeClock{now: testTime}
	sched := NewScheduler(store, clock)

	// 하루 이상 지난 세션은 스캔 범위 밖입니다
	staleID := seedSession(t, store, testTime.Add(-25*time.Hour), false)

	if ended := sched.SweepOnce(context.Background()); ended != 0 {
		t.Errorf("Stale sessions should be skipped, ended %d", ended)
	}

	stale, _ := store.GetSession(context.Background(), staleID)
	if stale.FinalBill != nil {
		t.Error("Stale session must not be auto-ended")
	}
}

func TestSweepOnceIdempotent(t *testing.T) {
	store := storage.NewInMemoryStorage()
	clock := &fakeClock{now: testTime}
	sched := NewScheduler(store, clock)

	seedSession(t, store, testTime.Add(-constants.AutoEndGracePeriod-time.Minute), false)

	if ended := sched.SweepOnce(context.Background()); ended != 1 {
		t.Fatalf("First sweep should end 1 session, got %d", ended)
	}
	// 정산서가 붙은 세션은 다음 스위프에서 제외됩니다
	if ended := sched.SweepOnce(context.Background()); ended != 0 {
		t.Errorf("Second sweep should find nothing, got %d", ended)
	}
}

func TestSchedulerStop(t *testing.T) {
	store := storage.NewInMemoryStorage()
	sched := NewScheduler(store, nil)

	sched.StartAutoEndSweep()
	sched.Stop()

	// 시작하지 않은 스케줄러의 Stop도 안전해야 합니다
	NewScheduler(store, nil).Stop()
}
