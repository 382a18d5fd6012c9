package queue

import (
	"github.com/pakincht-bit/SmashX-2.0/models"
)

// Pool 대기열 상위 size명의 후보군을 반환합니다.
// 경기 중인 참가자는 제외되며, 대기 인원이 size보다 적으면 전원이 후보군입니다.
func Pool(queue []models.QueuedPlayer, size int) []models.QueuedPlayer {
	available := AvailablePlayers(queue)
	if len(available) > size {
		available = available[:size]
	}
	return available
}

// PoolIDs 후보군의 참가자 ID만 우선순위 순서대로 반환합니다.
func PoolIDs(queue []models.QueuedPlayer, size int) []string {
	pool := Pool(queue, size)
	ids := make([]string, len(pool))
	for i, p := range pool {
		ids[i] = p.ID
	}
	return ids
}
