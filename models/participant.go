package models

import "time"

// Participant 클럽 참가자 프로필입니다. 레이팅은 경기 결과에 따라 변동됩니다.
type Participant struct {
	ID        string    `firestore:"-"` // Firestore 문서 ID, firestore 필드에서는 제외
	Name      string    `firestore:"name"`
	Rating    int       `firestore:"rating"`
	TierName  string    `firestore:"tierName"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// MatchResult 기록된 한 경기의 결과입니다.
// 팀 분할은 코트 배정 시점의 순서를 그대로 따릅니다 (재계산 금지).
type MatchResult struct {
	ID               string    `firestore:"id" json:"id"`
	Timestamp        time.Time `firestore:"timestamp" json:"timestamp"`
	Team1IDs         []string  `firestore:"team1Ids" json:"team1Ids"`
	Team2IDs         []string  `firestore:"team2Ids" json:"team2Ids"`
	WinningTeamIndex int       `firestore:"winningTeamIndex" json:"winningTeamIndex"` // 1 또는 2
	PointsChange     int       `firestore:"pointsChange" json:"pointsChange"`
}

// Winners 승리 팀의 참가자 ID들을 반환합니다.
func (m *MatchResult) Winners() []string {
	if m.WinningTeamIndex == 1 {
		return m.Team1IDs
	}
	return m.Team2IDs
}

// Losers 패배 팀의 참가자 ID들을 반환합니다.
func (m *MatchResult) Losers() []string {
	if m.WinningTeamIndex == 1 {
		return m.Team2IDs
	}
	return m.Team1IDs
}

// PlayerIDs 경기에 참여한 모든 참가자 ID를 팀 순서대로 반환합니다.
func (m *MatchResult) PlayerIDs() []string {
	ids := make([]string, 0, len(m.Team1IDs)+len(m.Team2IDs))
	ids = append(ids, m.Team1IDs...)
	ids = append(ids, m.Team2IDs...)
	return ids
}

// NextMatchup 코트에 올리기 전에 미리 짜 둔 경기 조합입니다 (FIFO 대기).
type NextMatchup struct {
	ID        string   `firestore:"id" json:"id"`
	PlayerIDs []string `firestore:"playerIds" json:"playerIds"`
}

// BillItem 참가자 1인의 정산 항목입니다.
type BillItem struct {
	UserID          string `firestore:"userId" json:"userId"`
	DurationMinutes int    `firestore:"durationMinutes" json:"durationMinutes"`
	Amount          int    `firestore:"amount" json:"amount"`
}

// SplitMode 비용 분배 방식
type SplitMode string

const (
	SplitEqual   SplitMode = "EQUAL"   // 체크인 인원 균등 분배
	SplitMatches SplitMode = "MATCHES" // 경기 참여 횟수 가중 분배
)

// FinalBill 세션 종료 시점에 한 번 계산되는 정산서입니다.
// 설정된 이후에는 경기 기록이 동결됩니다.
type FinalBill struct {
	TotalCourtPrice   int        `firestore:"totalCourtPrice" json:"totalCourtPrice"`
	TotalShuttlePrice int        `firestore:"totalShuttlePrice" json:"totalShuttlePrice"`
	ShuttlesUsed      int        `firestore:"shuttlesUsed" json:"shuttlesUsed"`
	PricePerShuttle   int        `firestore:"pricePerShuttle" json:"pricePerShuttle"`
	TotalCost         int        `firestore:"totalCost" json:"totalCost"`
	SplitMode         SplitMode  `firestore:"splitMode" json:"splitMode"`
	Items             []BillItem `firestore:"items" json:"items"`
}
