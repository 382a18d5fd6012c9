package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// InMemoryStorage 테스트/개발용 비영구 저장소 구현입니다.
// FailNextWrite로 쓰기 거부를 주입해 낙관적 롤백 경로를 검증할 수 있습니다.
type InMemoryStorage struct {
	mu           sync.RWMutex
	sessions     map[string]*models.Session
	participants map[string]models.Participant
	watchers     map[string][]chan interfaces.FeedEvent

	nextWriteErr error
	nextID       int
}

// NewInMemoryStorage 새 인메모리 저장소 생성
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		sessions:     make(map[string]*models.Session),
		participants: make(map[string]models.Participant),
		watchers:     make(map[string][]chan interfaces.FeedEvent),
	}
}

// FailNextWrite 다음 쓰기 한 번을 주어진 오류로 실패시킵니다.
func (s *InMemoryStorage) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWriteErr = err
}

func (s *InMemoryStorage) consumeWriteError() error {
	if s.nextWriteErr != nil {
		err := s.nextWriteErr
		s.nextWriteErr = nil
		return err
	}
	return nil
}

// GetSession 세션 조회. 사본을 반환합니다.
func (s *InMemoryStorage) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return sess.Clone(), nil
}

// ListActiveSessions 정산되지 않은 세션 중 종료 시각이 endedAfter 이후인 세션 조회
func (s *InMemoryStorage) ListActiveSessions(ctx context.Context, endedAfter time.Time) ([]models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Session
	for _, sess := range s.sessions {
		if sess.FinalBill != nil || !sess.EndTime.After(endedAfter) {
			continue
		}
		result = append(result, *sess.Clone())
	}
	return result, nil
}

// CreateSession 세션 생성 및 ID 발급
func (s *InMemoryStorage) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	if err := validateNewSession(session); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.consumeWriteError(); err != nil {
		return "", err
	}

	s.nextID++
	id := fmt.Sprintf("mem-%d", s.nextID)
	stored := session.Clone()
	stored.ID = id
	s.sessions[id] = stored
	s.notifyLocked(id, interfaces.FeedEvent{Kind: interfaces.FeedCreated, SessionID: id, Session: stored.Clone()})
	return id, nil
}

// DeleteSession 세션 삭제
func (s *InMemoryStorage) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.consumeWriteError(); err != nil {
		return err
	}
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	delete(s.sessions, sessionID)
	s.notifyLocked(sessionID, interfaces.FeedEvent{Kind: interfaces.FeedDeleted, SessionID: sessionID})
	return nil
}

// UpdateSessionFields 세션 필드 부분 업데이트
func (s *InMemoryStorage) UpdateSessionFields(ctx context.Context, sessionID string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.consumeWriteError(); err != nil {
		return err
	}

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	for path, value := range fields {
		if err := applyField(sess, path, value); err != nil {
			return err
		}
	}

	s.notifyLocked(sessionID, interfaces.FeedEvent{Kind: interfaces.FeedUpdated, SessionID: sessionID, Session: sess.Clone()})
	return nil
}

// applyField 저장소 필드 이름을 세션 구조체에 반영합니다.
func applyField(sess *models.Session, path string, value interface{}) error {
	switch path {
	case interfaces.FieldTitle:
		sess.Title = value.(string)
	case interfaces.FieldLocation:
		sess.Location = value.(string)
	case interfaces.FieldStartTime:
		sess.StartTime = value.(time.Time)
	case interfaces.FieldEndTime:
		sess.EndTime = value.(time.Time)
	case interfaces.FieldCourtCount:
		sess.CourtCount = value.(int)
		sess.MaxPlayers = sess.CourtCount * constants.PlayersPerCourt
	case interfaces.FieldMaxPlayers:
		sess.MaxPlayers = value.(int)
	case interfaces.FieldPlayerIDs:
		sess.PlayerIDs = append([]string(nil), value.([]string)...)
	case interfaces.FieldStarted:
		sess.Started = value.(bool)
	case interfaces.FieldCheckedInPlayerIDs:
		sess.CheckedInPlayerIDs = append([]string(nil), value.([]string)...)
	case interfaces.FieldCheckInTimes:
		src := value.(map[string]time.Time)
		dst := make(map[string]time.Time, len(src))
		for k, v := range src {
			dst[k] = v
		}
		sess.CheckInTimes = dst
	case interfaces.FieldCourtAssignments:
		src := value.(map[int][]string)
		dst := make(map[int][]string, len(src))
		for k, v := range src {
			dst[k] = append([]string(nil), v...)
		}
		sess.CourtAssignments = dst
	case interfaces.FieldMatchStartTimes:
		src := value.(map[int]time.Time)
		dst := make(map[int]time.Time, len(src))
		for k, v := range src {
			dst[k] = v
		}
		sess.MatchStartTimes = dst
	case interfaces.FieldMatches:
		sess.Matches = append([]models.MatchResult(nil), value.([]models.MatchResult)...)
	case interfaces.FieldNextMatchups:
		sess.NextMatchups = append([]models.NextMatchup(nil), value.([]models.NextMatchup)...)
	case interfaces.FieldFinalBill:
		if value == nil {
			sess.FinalBill = nil
		} else {
			sess.FinalBill = value.(*models.FinalBill)
		}
	default:
		return fmt.Errorf("unknown session field: %s", path)
	}
	return nil
}

// FetchMatchState 최신 경기 이력과 체크인 시각 조회
func (s *InMemoryStorage) FetchMatchState(ctx context.Context, sessionID string) ([]models.MatchResult, map[string]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, fmt.Errorf("session not found: %s", sessionID)
	}
	clone := sess.Clone()
	return clone.Matches, clone.CheckInTimes, nil
}

// Watch 세션 변경 피드 구독. ctx 취소 시 채널이 닫힙니다.
func (s *InMemoryStorage) Watch(ctx context.Context, sessionID string) (<-chan interfaces.FeedEvent, error) {
	ch := make(chan interfaces.FeedEvent, 16)

	s.mu.Lock()
	s.watchers[sessionID] = append(s.watchers[sessionID], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		chans := s.watchers[sessionID]
		for i, c := range chans {
			if c == ch {
				s.watchers[sessionID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}

func (s *InMemoryStorage) notifyLocked(sessionID string, event interfaces.FeedEvent) {
	for _, ch := range s.watchers[sessionID] {
		select {
		case ch <- event:
		default: // 구독자가 밀리면 이벤트를 버립니다
		}
	}
}

// GetParticipant 참가자 조회
func (s *InMemoryStorage) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[participantID]
	if !ok {
		return nil, fmt.Errorf("participant not found: %s", participantID)
	}
	return &p, nil
}

// GetParticipants 여러 참가자 조회. 없는 ID는 결과에서 제외됩니다.
func (s *InMemoryStorage) GetParticipants(ctx context.Context, participantIDs []string) ([]models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Participant, 0, len(participantIDs))
	for _, id := range participantIDs {
		if p, ok := s.participants[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// UpsertParticipants 참가자 일괄 저장
func (s *InMemoryStorage) UpsertParticipants(ctx context.Context, participants []models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.consumeWriteError(); err != nil {
		return err
	}
	for _, p := range participants {
		s.participants[p.ID] = p
	}
	return nil
}

// Close no-op
func (s *InMemoryStorage) Close() error { return nil }
