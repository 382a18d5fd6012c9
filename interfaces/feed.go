package interfaces

import (
	"context"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

// FeedEventKind 변경 피드 이벤트 종류
type FeedEventKind int

const (
	FeedCreated FeedEventKind = iota
	FeedUpdated
	FeedDeleted
)

// FeedEvent 외부 실시간 협력자가 밀어주는 세션 변경 이벤트입니다.
// Session은 전체 또는 부분 교체본이며, 비어 있는 필드는 "없음"으로 해석될 수 있으므로
// 수신 측은 반드시 병합 정책을 거쳐야 합니다.
type FeedEvent struct {
	Kind      FeedEventKind
	SessionID string
	Session   *models.Session // FeedDeleted일 때는 nil
}

// ChangeFeed 세션 변경 피드 구독 인터페이스입니다 (읽기 전용 푸시)
type ChangeFeed interface {
	// Watch 해당 세션의 변경 이벤트 채널을 반환합니다.
	// ctx 취소 시 채널이 닫힙니다.
	Watch(ctx context.Context, sessionID string) (<-chan FeedEvent, error)
}
