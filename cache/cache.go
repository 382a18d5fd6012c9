package cache

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// cacheItem 캐시에 저장되는 개별 프로필 항목입니다
type cacheItem struct {
	profile   models.Participant
	expiresAt time.Time
}

func (item *cacheItem) isExpired() bool {
	return time.Now().After(item.expiresAt)
}

// Stats 캐시 통계 정보를 나타냅니다
type Stats struct {
	ProfileCount int
	QueueLength  int
}

// expirationEntry 만료 시간 기반 우선순위 큐의 항목
type expirationEntry struct {
	key       string
	expiresAt time.Time
	index     int
}

// expirationQueue 만료 시간 기반 우선순위 큐 (최소 힙)
type expirationQueue []*expirationEntry

func (q expirationQueue) Len() int { return len(q) }

func (q expirationQueue) Less(i, j int) bool {
	return q[i].expiresAt.Before(q[j].expiresAt)
}

func (q expirationQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *expirationQueue) Push(x interface{}) {
	n := len(*q)
	entry := x.(*expirationEntry)
	entry.index = n
	*q = append(*q, entry)
}

func (q *expirationQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*q = old[0 : n-1]
	return entry
}

// ProfileCache 참가자 프로필의 TTL 캐시입니다.
// 대기열 화면은 프로필을 반복 조회하므로 저장소 왕복을 줄이는 용도입니다.
// 경기 결과 반영처럼 최신 레이팅이 필요한 경로는 캐시를 거치지 않습니다.
type ProfileCache struct {
	profiles map[string]*cacheItem

	expirations *expirationQueue
	keyToEntry  map[string]*expirationEntry

	mu sync.RWMutex

	ttl time.Duration

	cleanupBatchSize   int
	maxCleanupDuration time.Duration
}

// NewProfileCache 새로운 ProfileCache 인스턴스를 생성합니다
func NewProfileCache() *ProfileCache {
	q := &expirationQueue{}
	heap.Init(q)

	return &ProfileCache{
		profiles:    make(map[string]*cacheItem),
		expirations: q,
		keyToEntry:  make(map[string]*expirationEntry),

		ttl:                constants.ParticipantCacheTTL,
		cleanupBatchSize:   100,
		maxCleanupDuration: 10 * time.Millisecond,
	}
}

// Get 캐시에서 참가자 프로필을 조회합니다
func (c *ProfileCache) Get(participantID string) (models.Participant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.profiles[participantID]
	if !exists || item.isExpired() {
		return models.Participant{}, false
	}
	return item.profile, true
}

// Set 참가자 프로필을 캐시에 저장합니다
func (c *ProfileCache) Set(profile models.Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	c.profiles[profile.ID] = &cacheItem{profile: profile, expiresAt: expiresAt}

	// 기존 큐 항목은 힙에서 빼지 않고 무효화 처리 (성능상 이유)
	if existing, exists := c.keyToEntry[profile.ID]; exists {
		existing.expiresAt = time.Time{}
	}

	entry := &expirationEntry{key: profile.ID, expiresAt: expiresAt}
	heap.Push(c.expirations, entry)
	c.keyToEntry[profile.ID] = entry
}

// SetAll 여러 프로필을 한 번에 캐시에 저장합니다
func (c *ProfileCache) SetAll(profiles []models.Participant) {
	for _, p := range profiles {
		c.Set(p)
	}
}

// Invalidate 해당 참가자의 캐시 항목을 즉시 무효화합니다.
// 레이팅 변경 직후 호출해서 오래된 레이팅이 화면에 남지 않게 합니다.
func (c *ProfileCache) Invalidate(participantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.profiles, participantID)
	if entry, exists := c.keyToEntry[participantID]; exists {
		entry.expiresAt = time.Time{}
		delete(c.keyToEntry, participantID)
	}
}

// ClearExpired 우선순위 큐를 사용하여 만료된 항목을 정리합니다
func (c *ProfileCache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	startTime := time.Now()
	cleaned := 0

	for cleaned < c.cleanupBatchSize && time.Since(startTime) < c.maxCleanupDuration {
		if c.expirations.Len() == 0 {
			break
		}

		entry := (*c.expirations)[0]

		if entry.expiresAt.IsZero() {
			// 무효화된 항목은 큐에서만 제거
			heap.Pop(c.expirations)
			cleaned++
			continue
		}
		if now.Before(entry.expiresAt) {
			break
		}

		heap.Pop(c.expirations)
		delete(c.keyToEntry, entry.key)
		delete(c.profiles, entry.key)
		cleaned++
	}

	return cleaned
}

// GetStats 캐시 통계를 반환합니다
func (c *ProfileCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		ProfileCount: len(c.profiles),
		QueueLength:  c.expirations.Len(),
	}
}

// Clear 모든 캐시를 삭제합니다
func (c *ProfileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles = make(map[string]*cacheItem)
	c.expirations = &expirationQueue{}
	heap.Init(c.expirations)
	c.keyToEntry = make(map[string]*expirationEntry)
}

// StartCleanupWorker 주기적 캐시 정리 워커를 시작합니다
func (c *ProfileCache) StartCleanupWorker(interval time.Duration) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.ClearExpired()
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}
