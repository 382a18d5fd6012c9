package scheduler

import (
	"context"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/session"
	"github.com/pakincht-bit/SmashX-2.0/settlement"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// Scheduler 자동 종료 스위퍼입니다.
// 예정 종료 시각에서 유예 기간까지 지났는데도 호스트가 정산하지 않은 세션을
// 찾아서 비용 0원짜리 정산서로 동결합니다. 비용 정산은 나중에 호스트가
// 수동으로 정정할 수 있도록 시트 기록만 남깁니다.
type Scheduler struct {
	sessions interfaces.SessionRepository
	clock    interfaces.Clock
	ticker   *time.Ticker
	stopChan chan bool
}

func NewScheduler(sessions interfaces.SessionRepository, clock interfaces.Clock) *Scheduler {
	if clock == nil {
		clock = interfaces.RealClock{}
	}
	return &Scheduler{
		sessions: sessions,
		clock:    clock,
		stopChan: make(chan bool),
	}
}

// StartAutoEndSweep 자동 종료 스위프를 주기적으로 실행합니다.
func (s *Scheduler) StartAutoEndSweep() {
	s.ticker = time.NewTicker(constants.AutoEndSweepInterval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.SweepOnce(context.Background())
			case <-s.stopChan:
				return
			}
		}
	}()

	utils.Info("Auto-end sweep started (interval: %v, grace: %v)",
		constants.AutoEndSweepInterval, constants.AutoEndGracePeriod)
}

// SweepOnce 유예 기간을 넘긴 세션을 한 번 스캔해서 종료합니다.
// 종료된 세션 수를 반환합니다.
func (s *Scheduler) SweepOnce(ctx context.Context) int {
	now := s.clock.Now()

	// 스캔 범위 제한: 하루 이상 지난 세션은 이미 처리되었거나 버려진 것으로 간주
	candidates, err := s.sessions.ListActiveSessions(ctx, now.Add(-24*time.Hour))
	if err != nil {
		utils.Error("Auto-end sweep failed to list sessions: %v", err)
		return 0
	}

	ended := 0
	for i := range candidates {
		sess := &candidates[i]
		if !session.IsPastGracePeriod(sess, now) {
			continue
		}
		if err := s.autoEnd(ctx, sess); err != nil {
			utils.Error("Failed to auto-end session %s: %v", sess.ID, err)
			continue
		}
		ended++
	}

	if ended > 0 {
		utils.Info("Auto-end sweep closed %d sessions", ended)
	}
	return ended
}

func (s *Scheduler) autoEnd(ctx context.Context, sess *models.Session) error {
	bill := settlement.Settle(sess, settlement.Input{SplitMode: models.SplitEqual})

	err := s.sessions.UpdateSessionFields(ctx, sess.ID, map[string]interface{}{
		interfaces.FieldFinalBill: bill,
	})
	if err != nil {
		return err
	}

	utils.Info("Auto-ended session %s (%s) past grace period", sess.ID, sess.Title)
	return nil
}

// Stop 스위퍼를 중단합니다.
func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}

	select {
	case s.stopChan <- true:
	default:
		// channel is full or no receiver, skip
	}

	utils.Info("Scheduler stopped")
}
