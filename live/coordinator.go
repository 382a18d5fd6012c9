package live

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/queue"
	"github.com/pakincht-bit/SmashX-2.0/rating"
	"github.com/pakincht-bit/SmashX-2.0/session"
	"github.com/pakincht-bit/SmashX-2.0/settlement"
	"github.com/pakincht-bit/SmashX-2.0/telemetry"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// Coordinator 한 세션의 라이브 상태를 조율합니다.
//
// 모든 변경은 낙관적으로 진행됩니다. 로컬 스냅샷을 먼저 바꾸고 저장소에
// 변경된 필드만 쓴 뒤, 쓰기가 거부되면 이전 스냅샷으로 되돌리고 사용자에게
// 충돌 알림을 보냅니다. 자동 재시도는 하지 않습니다.
//
// mu는 프로세스 내부의 스냅샷 교체만 보호합니다. 기기 간 동시성은 잠금이
// 아니라 쓰기 직전 재조회와 ID 기준 병합으로 해결합니다.
type Coordinator struct {
	sessions interfaces.SessionRepository
	ratings  *rating.Engine
	clock    interfaces.Clock
	notifier interfaces.Notifier
	metrics  *telemetry.MetricsClient

	// OnRatingsApplied 레이팅 반영 직후 호출되는 훅입니다 (프로필 캐시 갱신 등).
	// 반영이 실패하면 updated가 nil로 호출됩니다. nil 가능.
	OnRatingsApplied func(playerIDs []string, updated []models.Participant)

	mu       sync.RWMutex
	snapshot *models.Session
	pending  session.PendingFields
}

// NewCoordinator 새로운 Coordinator를 생성합니다.
// clock과 notifier는 nil이면 기본 구현으로 대체됩니다.
func NewCoordinator(sessions interfaces.SessionRepository, ratings *rating.Engine, clock interfaces.Clock, notifier interfaces.Notifier, metrics *telemetry.MetricsClient) *Coordinator {
	if clock == nil {
		clock = interfaces.RealClock{}
	}
	if notifier == nil {
		notifier = interfaces.NopNotifier{}
	}
	return &Coordinator{
		sessions: sessions,
		ratings:  ratings,
		clock:    clock,
		notifier: notifier,
		metrics:  metrics,
	}
}

// Load 저장소에서 세션을 읽어 로컬 스냅샷으로 삼습니다.
func (c *Coordinator) Load(ctx context.Context, sessionID string) error {
	loaded, err := c.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snapshot = loaded
	c.pending = session.PendingFields{}
	c.mu.Unlock()

	utils.Info("Loaded session %s (%s, courts: %d)", sessionID, loaded.Title, loaded.CourtCount)
	return nil
}

// Snapshot 현재 로컬 스냅샷의 복사본을 반환합니다. 세션이 없으면 nil입니다.
func (c *Coordinator) Snapshot() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	return c.snapshot.Clone()
}

// Queue 현재 스냅샷 기준의 전체 대기열을 반환합니다.
func (c *Coordinator) Queue() []models.QueuedPlayer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	return queue.CalculateQueue(c.snapshot, c.clock.Now())
}

// SuggestNextMatch 해당 코트에 올릴 4인 조합을 제안합니다.
func (c *Coordinator) SuggestNextMatch(courtIndex int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	return queue.SuggestMatch(c.snapshot, courtIndex, c.clock.Now())
}

// Phase 현재 스냅샷 기준의 세션 단계를 반환합니다.
func (c *Coordinator) Phase() session.Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return session.PhaseEnded
	}
	return session.PhaseOf(c.snapshot, c.clock.Now())
}

// JoinSession 참가자를 세션 명단에 추가합니다.
func (c *Coordinator) JoinSession(ctx context.Context, playerID string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	if err := session.Join(work, playerID); err != nil {
		c.mu.Unlock()
		return err
	}

	c.snapshot = work
	c.mu.Unlock()

	return c.commit(ctx, "join_session", prev, prevPending, map[string]interface{}{
		interfaces.FieldPlayerIDs: work.PlayerIDs,
	})
}

// LeaveSession 참가자를 세션 명단에서 제거합니다.
func (c *Coordinator) LeaveSession(ctx context.Context, playerID string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	session.Leave(work, playerID)

	c.snapshot = work
	c.mu.Unlock()

	return c.commit(ctx, "leave_session", prev, prevPending, map[string]interface{}{
		interfaces.FieldPlayerIDs: work.PlayerIDs,
	})
}

// StartSession 호스트가 세션을 시작합니다. 초기 체크인 인원 전원이
// 동일한 대기 시작 시각을 갖습니다.
func (c *Coordinator) StartSession(ctx context.Context, initialCheckInIDs []string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	session.Start(work, initialCheckInIDs, c.clock.Now())

	c.snapshot = work
	c.pending.CheckInTimes = true
	c.mu.Unlock()

	err := c.commit(ctx, "start_session", prev, prevPending, map[string]interface{}{
		interfaces.FieldStarted:            work.Started,
		interfaces.FieldCheckedInPlayerIDs: work.CheckedInPlayerIDs,
		interfaces.FieldCheckInTimes:       work.CheckInTimes,
	})
	if err == nil {
		c.notifier.NotifySuccess(fmt.Sprintf(constants.MsgSessionStarted, len(initialCheckInIDs)))
	}
	return err
}

// CheckInToggle 참가자의 체크인 상태를 토글합니다.
// 체크인은 대기열 맨 뒤에 줄을 서는 것이고, 체크아웃은 줄에서 빠지는 것입니다.
func (c *Coordinator) CheckInToggle(ctx context.Context, playerID string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	checkedIn := !work.IsCheckedIn(playerID)
	if checkedIn {
		session.CheckIn(work, playerID, c.clock.Now())
	} else {
		session.CheckOut(work, playerID)
	}

	c.snapshot = work
	c.pending.CheckInTimes = true
	c.mu.Unlock()

	return c.commit(ctx, "check_in_toggle", prev, prevPending, map[string]interface{}{
		interfaces.FieldStarted:            work.Started,
		interfaces.FieldCheckedInPlayerIDs: work.CheckedInPlayerIDs,
		interfaces.FieldCheckInTimes:       work.CheckInTimes,
	})
}

// SkipTurn 참가자의 대기 순서를 한 칸 양보합니다.
// 교체가 일어났으면 true를 반환합니다.
func (c *Coordinator) SkipTurn(ctx context.Context, playerID string) (bool, error) {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return false, errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	swapped := session.SkipTurn(work, playerID, c.clock.Now())

	c.snapshot = work
	c.pending.CheckInTimes = true
	c.mu.Unlock()

	err := c.commit(ctx, "skip_turn", prev, prevPending, map[string]interface{}{
		interfaces.FieldCheckInTimes: work.CheckInTimes,
	})
	if err != nil {
		return false, err
	}

	if swapped {
		c.notifier.NotifyInfo(constants.MsgSkipTurnSwap)
	} else {
		c.notifier.NotifyInfo(constants.MsgSkipTurnToEnd)
	}
	return swapped, nil
}

// AssignCourt 코트에 참가자들을 배정합니다. 빈 배정은 코트를 비웁니다.
// 최근 같은 팀이었던 쌍이 포함되어 있으면 경고만 하고 배정은 그대로 진행합니다.
func (c *Coordinator) AssignCourt(ctx context.Context, courtIndex int, playerIDs []string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	if err := session.Assign(work, courtIndex, playerIDs, c.clock.Now()); err != nil {
		c.mu.Unlock()
		return err
	}

	warn := len(playerIDs) > 0 && len(queue.RecentTeammatePairs(playerIDs, work.Matches)) > 0

	c.snapshot = work
	c.pending.CourtAssignments = true
	c.mu.Unlock()

	err := c.commit(ctx, "assign_court", prev, prevPending, map[string]interface{}{
		interfaces.FieldCourtAssignments: work.CourtAssignments,
		interfaces.FieldMatchStartTimes:  work.MatchStartTimes,
	})
	if err != nil {
		return err
	}

	if warn {
		c.notifier.NotifyWarning(constants.MsgRecentTeammate)
	}
	return nil
}

// QueueMatchup 미리 짠 경기 조합을 대기 목록 끝에 추가하고 조합 ID를 반환합니다.
func (c *Coordinator) QueueMatchup(ctx context.Context, playerIDs []string) (string, error) {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return "", errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	matchupID := utils.GenerateID()
	session.EnqueueMatchup(work, matchupID, playerIDs)

	c.snapshot = work
	c.pending.NextMatchups = true
	c.mu.Unlock()

	err := c.commit(ctx, "queue_matchup", prev, prevPending, map[string]interface{}{
		interfaces.FieldNextMatchups: work.NextMatchups,
	})
	if err != nil {
		return "", err
	}

	c.notifier.NotifyInfo(constants.MsgMatchQueued)
	return matchupID, nil
}

// DeleteQueuedMatchup 대기 목록에서 해당 조합을 제거합니다.
func (c *Coordinator) DeleteQueuedMatchup(ctx context.Context, matchupID string) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	session.DequeueMatchup(work, matchupID)

	c.snapshot = work
	c.pending.NextMatchups = true
	c.mu.Unlock()

	return c.commit(ctx, "delete_queued_matchup", prev, prevPending, map[string]interface{}{
		interfaces.FieldNextMatchups: work.NextMatchups,
	})
}

// PromoteMatchup 대기 중인 조합을 목록에서 빼서 코트에 올립니다.
// 다른 기기가 먼저 올려서 조합이 이미 사라졌으면 no-op입니다.
func (c *Coordinator) PromoteMatchup(ctx context.Context, matchupID string, courtIndex int) error {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	if err := session.PromoteMatchup(work, matchupID, courtIndex, c.clock.Now()); err != nil {
		c.mu.Unlock()
		return err
	}

	c.snapshot = work
	c.pending.NextMatchups = true
	c.pending.CourtAssignments = true
	c.mu.Unlock()

	return c.commit(ctx, "promote_matchup", prev, prevPending, map[string]interface{}{
		interfaces.FieldNextMatchups:     work.NextMatchups,
		interfaces.FieldCourtAssignments: work.CourtAssignments,
		interfaces.FieldMatchStartTimes:  work.MatchStartTimes,
	})
}

// RecordMatchResult 코트의 경기 결과를 기록하고 레이팅에 반영합니다.
//
// 로컬 스냅샷이 오래되었을 수 있으므로 쓰기 직전에 저장소의 경기 이력과
// 체크인 시각을 다시 읽어 그 위에 기록합니다. 다른 기기가 같은 시점에 다른
// 코트의 결과를 올려도 이력이 유실되지 않습니다.
func (c *Coordinator) RecordMatchResult(ctx context.Context, courtIndex, winningTeamIndex int) (*models.MatchResult, error) {
	c.mu.RLock()
	if c.snapshot == nil {
		c.mu.RUnlock()
		return nil, errNoSession()
	}
	sessionID := c.snapshot.ID
	c.mu.RUnlock()

	freshMatches, freshTimes, err := c.sessions.FetchMatchState(ctx, sessionID)
	if err != nil {
		c.notifier.NotifyFailure(constants.MsgUnexpectedError)
		return nil, errors.NewSystemError("MATCH_STATE_FETCH_FAILED",
			fmt.Sprintf("failed to fetch fresh match state for session %s", sessionID), err)
	}

	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return nil, errNoSession()
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	// 최신 상태를 기준으로 삼되 로컬의 미확정 기록은 병합으로 살립니다
	work.Matches = session.MergeMatches(freshMatches, work.Matches)
	if freshTimes != nil {
		work.CheckInTimes = freshTimes
	}

	result, err := session.RecordResult(work, courtIndex, winningTeamIndex, utils.GenerateID(), c.clock.Now())
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if result == nil {
		c.mu.Unlock()
		return nil, nil
	}

	c.snapshot = work
	c.pending.Matches = true
	c.pending.CheckInTimes = true
	c.pending.CourtAssignments = true
	c.mu.Unlock()

	err = c.commit(ctx, "record_match_result", prev, prevPending, map[string]interface{}{
		interfaces.FieldMatches:          work.Matches,
		interfaces.FieldCheckInTimes:     work.CheckInTimes,
		interfaces.FieldCourtAssignments: work.CourtAssignments,
		interfaces.FieldMatchStartTimes:  work.MatchStartTimes,
	})
	if err != nil {
		return nil, err
	}

	// 레이팅 반영은 경기 기록과 별개의 후속 단계입니다. 실패해도 기록은 남으며,
	// 엔진이 최신 레이팅을 재조회하므로 재호출해도 안전합니다.
	if c.ratings != nil {
		updated, rerr := c.ratings.ApplyResult(ctx, result)
		if rerr != nil {
			utils.Error("Failed to apply ratings for match %s: %v", result.ID, rerr)
			c.notifier.NotifyWarning(constants.MsgUnexpectedError)
		}
		if c.OnRatingsApplied != nil {
			c.OnRatingsApplied(result.PlayerIDs(), updated)
		}
	}

	c.metrics.SendMatchRecorded(sessionID, len(queue.AvailablePlayers(c.Queue())))
	c.notifier.NotifySuccess(fmt.Sprintf(constants.MsgMatchRecorded, teamLabel(winningTeamIndex), result.PointsChange))
	return result, nil
}

// EndSession 세션을 종료하고 정산서를 확정합니다. 이후 경기 기록은 동결됩니다.
func (c *Coordinator) EndSession(ctx context.Context, input settlement.Input) (*models.FinalBill, error) {
	c.mu.Lock()
	if c.snapshot == nil {
		c.mu.Unlock()
		return nil, errNoSession()
	}
	if c.snapshot.FinalBill != nil {
		c.mu.Unlock()
		return nil, errors.NewValidationError("SESSION_CLOSED",
			"settlement already finalized", constants.MsgBillAlreadySet)
	}
	prev, prevPending := c.snapshot, c.pending
	work := prev.Clone()

	bill := settlement.Settle(work, input)
	work.FinalBill = bill

	c.snapshot = work
	c.pending.FinalBill = true
	c.mu.Unlock()

	err := c.commit(ctx, "end_session", prev, prevPending, map[string]interface{}{
		interfaces.FieldFinalBill: bill,
	})
	if err != nil {
		return nil, err
	}

	c.metrics.SendSettlement(work.ID, bill.TotalCost, len(bill.Items))
	c.notifier.NotifySuccess(fmt.Sprintf(constants.MsgSessionEnded, bill.TotalCost))
	return bill, nil
}

// ApplyFeedEvent 변경 피드로 들어온 이벤트를 로컬 스냅샷에 병합합니다.
// 미확정 낙관적 변경은 병합에서 보호되고, 원격이 실어 온 필드는 확정 처리됩니다.
func (c *Coordinator) ApplyFeedEvent(event interfaces.FeedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if event.Kind == interfaces.FeedDeleted {
		utils.Warn("Session %s was deleted remotely", event.SessionID)
		c.snapshot = nil
		c.pending = session.PendingFields{}
		return
	}

	merged := session.MergeRemote(c.snapshot, event.Session, c.pending)
	merged.ID = event.SessionID
	c.snapshot = merged

	if remote := event.Session; remote != nil {
		if len(remote.CheckInTimes) > 0 {
			c.pending.CheckInTimes = false
		}
		if len(remote.CourtAssignments) > 0 {
			c.pending.CourtAssignments = false
		}
		if len(remote.Matches) > 0 {
			c.pending.Matches = false
		}
		if len(remote.NextMatchups) > 0 {
			c.pending.NextMatchups = false
		}
		if remote.FinalBill != nil {
			c.pending.FinalBill = false
		}
	}
}

// Run 변경 피드를 구독하고 ctx가 취소될 때까지 이벤트를 병합합니다.
func (c *Coordinator) Run(ctx context.Context, feed interfaces.ChangeFeed) error {
	c.mu.RLock()
	if c.snapshot == nil {
		c.mu.RUnlock()
		return errNoSession()
	}
	sessionID := c.snapshot.ID
	c.mu.RUnlock()

	events, err := feed.Watch(ctx, sessionID)
	if err != nil {
		return errors.NewSystemError("FEED_WATCH_FAILED",
			fmt.Sprintf("failed to watch session %s", sessionID), err)
	}

	utils.Info("Watching change feed for session %s", sessionID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				utils.Info("Change feed closed for session %s", sessionID)
				return nil
			}
			c.ApplyFeedEvent(event)
		}
	}
}

// commit 낙관적으로 교체된 스냅샷을 저장소에 확정합니다.
// 쓰기가 거부되면 이전 스냅샷과 미확정 표시를 그대로 되돌립니다.
func (c *Coordinator) commit(ctx context.Context, operation string, prev *models.Session, prevPending session.PendingFields, fields map[string]interface{}) error {
	start := time.Now()
	err := c.sessions.UpdateSessionFields(ctx, prev.ID, fields)
	c.metrics.SendOperationDuration(operation, time.Since(start), err == nil)
	if err == nil {
		return nil
	}

	c.mu.Lock()
	c.snapshot = prev
	c.pending = prevPending
	c.mu.Unlock()

	c.metrics.SendConflictRollback(operation)
	c.notifier.NotifyWarning(constants.MsgConflictNotice)
	utils.Warn("Rolled back %s for session %s: %v", operation, prev.ID, err)

	return errors.NewConflictError("WRITE_REJECTED",
		fmt.Sprintf("%s write was rejected by storage", operation), err)
}

func errNoSession() error {
	return errors.NewNotFoundError("SESSION_NOT_LOADED",
		"no session loaded into coordinator", "세션을 먼저 불러와주세요.")
}

func teamLabel(winningTeamIndex int) string {
	if winningTeamIndex == 1 {
		return "1"
	}
	return "2"
}
