package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

const (
	sessionsCollection = "sessions"
	profilesCollection = "profiles"
)

// FirestoreStorage Firestore를 사용하는 세션/참가자 저장소입니다.
// interfaces.SessionRepository, ParticipantRepository, ChangeFeed를 모두 구현합니다.
type FirestoreStorage struct {
	client         *firestore.Client
	ctx            context.Context
	app            *firebase.App
	reconnectMutex sync.Mutex
}

// NewStorage 새로운 FirestoreStorage 인스턴스를 생성하고 Firestore에 연결합니다.
func NewStorage() (*FirestoreStorage, error) {
	utils.Info("Initializing Firestore storage system")
	ctx := context.Background()

	firebaseCreds := os.Getenv(constants.EnvFirebaseCredentials)
	if firebaseCreds == "" {
		return nil, fmt.Errorf("%s environment variable not set", constants.EnvFirebaseCredentials)
	}

	opt := option.WithCredentialsJSON([]byte(firebaseCreds))

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %v", err)
	}

	s := &FirestoreStorage{
		client: client,
		ctx:    ctx,
		app:    app,
	}

	utils.Info("Firestore storage system initialized successfully")
	return s, nil
}

// GetClient Firestore 클라이언트를 반환합니다 (헬스체크용)
func (s *FirestoreStorage) GetClient() interface{} {
	return s.client
}

// HealthCheck 저장소 연결 상태를 확인합니다. 세션 컬렉션에 대한 경량 조회로
// 실제 왕복이 되는지 봅니다.
func (s *FirestoreStorage) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("firestore client not initialized")
	}
	iter := s.client.Collection(sessionsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}

// Close Firestore 클라이언트를 종료합니다.
func (s *FirestoreStorage) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// sessionDoc Firestore 문서 형태의 세션입니다.
// Firestore 맵 키는 문자열만 허용되므로 코트 번호 맵은 문자열 키로 변환해 저장합니다.
type sessionDoc struct {
	Title      string    `firestore:"title"`
	Location   string    `firestore:"location"`
	StartTime  time.Time `firestore:"startTime"`
	EndTime    time.Time `firestore:"endTime"`
	CourtCount int       `firestore:"courtCount"`
	MaxPlayers int       `firestore:"maxPlayers"`
	HostID     string    `firestore:"hostId"`

	PlayerIDs []string `firestore:"playerIds"`

	Started            bool                 `firestore:"started"`
	CheckedInPlayerIDs []string             `firestore:"checkedInPlayerIds"`
	CheckInTimes       map[string]time.Time `firestore:"checkInTimes"`
	CourtAssignments   map[string][]string  `firestore:"courtAssignments"`
	MatchStartTimes    map[string]time.Time `firestore:"matchStartTimes"`
	Matches            []models.MatchResult `firestore:"matches"`
	NextMatchups       []models.NextMatchup `firestore:"nextMatchups"`

	FinalBill *models.FinalBill `firestore:"finalBill"`
}

func docFromSession(session *models.Session) sessionDoc {
	return sessionDoc{
		Title:              session.Title,
		Location:           session.Location,
		StartTime:          session.StartTime,
		EndTime:            session.EndTime,
		CourtCount:         session.CourtCount,
		MaxPlayers:         session.MaxPlayers,
		HostID:             session.HostID,
		PlayerIDs:          session.PlayerIDs,
		Started:            session.Started,
		CheckedInPlayerIDs: session.CheckedInPlayerIDs,
		CheckInTimes:       session.CheckInTimes,
		CourtAssignments:   courtKeysToString(session.CourtAssignments),
		MatchStartTimes:    startTimeKeysToString(session.MatchStartTimes),
		Matches:            session.Matches,
		NextMatchups:       session.NextMatchups,
		FinalBill:          session.FinalBill,
	}
}

func (d *sessionDoc) toSession(id string) *models.Session {
	return &models.Session{
		ID:                 id,
		Title:              d.Title,
		Location:           d.Location,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		CourtCount:         d.CourtCount,
		MaxPlayers:         d.MaxPlayers,
		HostID:             d.HostID,
		PlayerIDs:          d.PlayerIDs,
		Started:            d.Started,
		CheckedInPlayerIDs: d.CheckedInPlayerIDs,
		CheckInTimes:       d.CheckInTimes,
		CourtAssignments:   courtKeysToInt(d.CourtAssignments),
		MatchStartTimes:    startTimeKeysToInt(d.MatchStartTimes),
		Matches:            d.Matches,
		NextMatchups:       d.NextMatchups,
		FinalBill:          d.FinalBill,
	}
}

func courtKeysToString(src map[int][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[strconv.Itoa(k)] = v
	}
	return dst
}

func courtKeysToInt(src map[string][]string) map[int][]string {
	dst := make(map[int][]string, len(src))
	for k, v := range src {
		idx, err := strconv.Atoi(k)
		if err != nil {
			utils.Warn("Skipping court assignment with non-numeric key: %s", k)
			continue
		}
		dst[idx] = v
	}
	return dst
}

func startTimeKeysToString(src map[int]time.Time) map[string]time.Time {
	dst := make(map[string]time.Time, len(src))
	for k, v := range src {
		dst[strconv.Itoa(k)] = v
	}
	return dst
}

func startTimeKeysToInt(src map[string]time.Time) map[int]time.Time {
	dst := make(map[int]time.Time, len(src))
	for k, v := range src {
		idx, err := strconv.Atoi(k)
		if err != nil {
			utils.Warn("Skipping match start time with non-numeric key: %s", k)
			continue
		}
		dst[idx] = v
	}
	return dst
}

// GetSession 세션 문서를 조회합니다.
func (s *FirestoreStorage) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var result *models.Session
	err := s.executeWithRetry(func() error {
		doc, err := s.client.Collection(sessionsCollection).Doc(sessionID).Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to get session %s: %w", sessionID, err)
		}

		var d sessionDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("failed to decode session %s: %w", sessionID, err)
		}
		result = d.toSession(doc.Ref.ID)
		return nil
	})
	return result, err
}

// ListActiveSessions 정산되지 않은 세션 중 예정 종료 시각이 endedAfter 이후인
// 세션들을 조회합니다. 자동 종료 스케줄러의 스캔 범위를 제한하는 용도입니다.
func (s *FirestoreStorage) ListActiveSessions(ctx context.Context, endedAfter time.Time) ([]models.Session, error) {
	var sessions []models.Session
	iter := s.client.Collection(sessionsCollection).Where("endTime", ">", endedAfter).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate sessions: %w", err)
		}

		var d sessionDoc
		if err := doc.DataTo(&d); err != nil {
			utils.Warn("Skipping undecodable session %s: %v", doc.Ref.ID, err)
			continue
		}
		if d.FinalBill != nil {
			continue
		}
		sessions = append(sessions, *d.toSession(doc.Ref.ID))
	}
	return sessions, nil
}

// CreateSession 새 세션 문서를 검증 후 생성하고 문서 ID를 반환합니다.
func (s *FirestoreStorage) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	if err := validateNewSession(session); err != nil {
		return "", err
	}

	ref, _, err := s.client.Collection(sessionsCollection).Add(ctx, docFromSession(session))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	utils.Info("Created session %s (%s)", ref.ID, session.Title)
	return ref.ID, nil
}

// DeleteSession 세션 문서를 삭제합니다.
func (s *FirestoreStorage) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.client.Collection(sessionsCollection).Doc(sessionID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	utils.Info("Deleted session %s", sessionID)
	return nil
}

// UpdateSessionFields 세션 문서의 변경된 필드만 부분 업데이트합니다.
// 코트 번호 맵 필드는 자동으로 문자열 키로 변환됩니다.
func (s *FirestoreStorage) UpdateSessionFields(ctx context.Context, sessionID string, fields map[string]interface{}) error {
	return s.executeWithRetry(func() error {
		updates := make([]firestore.Update, 0, len(fields))
		for path, value := range fields {
			updates = append(updates, firestore.Update{Path: path, Value: fieldValueForStore(path, value)})
		}

		_, err := s.client.Collection(sessionsCollection).Doc(sessionID).Update(ctx, updates)
		if err != nil {
			return fmt.Errorf("failed to update session %s fields: %w", sessionID, err)
		}
		return nil
	})
}

// fieldValueForStore 도메인 표현을 Firestore 표현으로 변환합니다.
func fieldValueForStore(path string, value interface{}) interface{} {
	switch path {
	case interfaces.FieldCourtAssignments:
		if m, ok := value.(map[int][]string); ok {
			return courtKeysToString(m)
		}
	case interfaces.FieldMatchStartTimes:
		if m, ok := value.(map[int]time.Time); ok {
			return startTimeKeysToString(m)
		}
	}
	return value
}

// FetchMatchState 경기 기록 직전에 필요한 최신 경기 이력과 체크인 시각만 조회합니다.
func (s *FirestoreStorage) FetchMatchState(ctx context.Context, sessionID string) ([]models.MatchResult, map[string]time.Time, error) {
	var matches []models.MatchResult
	var checkInTimes map[string]time.Time

	err := s.executeWithRetry(func() error {
		doc, err := s.client.Collection(sessionsCollection).Doc(sessionID).Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch match state for session %s: %w", sessionID, err)
		}

		var d sessionDoc
		if err := doc.DataTo(&d); err != nil {
			return fmt.Errorf("failed to decode match state for session %s: %w", sessionID, err)
		}
		matches = d.Matches
		checkInTimes = d.CheckInTimes
		return nil
	})
	return matches, checkInTimes, err
}

// Watch 세션 문서의 스냅샷 리스너를 변경 피드 채널로 노출합니다.
// ctx가 취소되면 채널이 닫힙니다.
func (s *FirestoreStorage) Watch(ctx context.Context, sessionID string) (<-chan interfaces.FeedEvent, error) {
	events := make(chan interfaces.FeedEvent)
	snapshots := s.client.Collection(sessionsCollection).Doc(sessionID).Snapshots(ctx)

	go func() {
		defer close(events)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil {
					utils.Error("Snapshot listener for session %s failed: %v", sessionID, err)
				}
				return
			}

			if !snap.Exists() {
				select {
				case events <- interfaces.FeedEvent{Kind: interfaces.FeedDeleted, SessionID: sessionID}:
				case <-ctx.Done():
					return
				}
				continue
			}

			var d sessionDoc
			if err := snap.DataTo(&d); err != nil {
				utils.Warn("Skipping undecodable snapshot for session %s: %v", sessionID, err)
				continue
			}

			select {
			case events <- interfaces.FeedEvent{
				Kind:      interfaces.FeedUpdated,
				SessionID: sessionID,
				Session:   d.toSession(sessionID),
			}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// GetParticipant 참가자 프로필을 조회합니다.
func (s *FirestoreStorage) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(participantID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get participant %s: %w", participantID, err)
	}

	var p models.Participant
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode participant %s: %w", participantID, err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// GetParticipants 여러 참가자 프로필을 한 번에 조회합니다.
// 아직 프로필이 없는 ID는 결과에서 제외됩니다 (호출 측에서 기본값 처리).
func (s *FirestoreStorage) GetParticipants(ctx context.Context, participantIDs []string) ([]models.Participant, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(participantIDs))
	for _, id := range participantIDs {
		refs = append(refs, s.client.Collection(profilesCollection).Doc(id))
	}

	var participants []models.Participant
	err := s.executeWithRetry(func() error {
		docs, err := s.client.GetAll(ctx, refs)
		if err != nil {
			return fmt.Errorf("failed to get participants: %w", err)
		}

		participants = participants[:0]
		for _, doc := range docs {
			if !doc.Exists() {
				continue
			}
			var p models.Participant
			if err := doc.DataTo(&p); err != nil {
				utils.Warn("Skipping undecodable participant %s: %v", doc.Ref.ID, err)
				continue
			}
			p.ID = doc.Ref.ID
			participants = append(participants, p)
		}
		return nil
	})
	return participants, err
}

// UpsertParticipants 참가자 프로필들을 일괄 저장합니다.
func (s *FirestoreStorage) UpsertParticipants(ctx context.Context, participants []models.Participant) error {
	return s.executeWithRetry(func() error {
		batch := s.client.Batch()
		for i := range participants {
			ref := s.client.Collection(profilesCollection).Doc(participants[i].ID)
			batch.Set(ref, participants[i])
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("failed to upsert %d participants: %w", len(participants), err)
		}
		return nil
	})
}

// reconnectFirestore Firestore 클라이언트를 재연결합니다
func (s *FirestoreStorage) reconnectFirestore() error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()

	utils.Warn("Attempting to reconnect to Firestore")

	for attempt := 1; attempt <= constants.MaxWriteRetries; attempt++ {
		if s.client != nil {
			s.client.Close()
		}

		newClient, err := s.app.Firestore(s.ctx)
		if err != nil {
			utils.Warn("Firestore reconnection attempt %d/%d failed: %v", attempt, constants.MaxWriteRetries, err)
			if attempt < constants.MaxWriteRetries {
				time.Sleep(constants.WriteRetryDelay * time.Duration(attempt)) // 점진적 지연
			}
			continue
		}

		s.client = newClient
		utils.Info("Successfully reconnected to Firestore on attempt %d", attempt)
		return nil
	}

	return fmt.Errorf("failed to reconnect to Firestore after %d attempts", constants.MaxWriteRetries)
}

// executeWithRetry Firestore 작업을 재시도 로직과 함께 실행합니다
func (s *FirestoreStorage) executeWithRetry(operation func() error) error {
	err := operation()
	if err != nil {
		if isFirestoreConnectionError(err) {
			utils.Warn("Detected Firestore connection error, attempting reconnection: %v", err)
			if reconnectErr := s.reconnectFirestore(); reconnectErr != nil {
				return fmt.Errorf("operation failed and reconnection failed: %v (original: %v)", reconnectErr, err)
			}
			return operation()
		}
	}
	return err
}

// isFirestoreConnectionError Firestore 연결 관련 에러인지 확인합니다
func isFirestoreConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "deadline exceeded")
}
