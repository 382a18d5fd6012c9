package models

import "time"

// Session 한 번의 오픈 플레이 모임 전체를 담는 애그리거트입니다.
// 외부 저장소와 전체/부분 필드 단위로 교환되며, 코어는 이 스냅샷 위에서만 동작합니다.
type Session struct {
	ID         string    `firestore:"-"` // Firestore 문서 ID
	Title      string    `firestore:"title"`
	Location   string    `firestore:"location"`
	StartTime  time.Time `firestore:"startTime"`
	EndTime    time.Time `firestore:"endTime"`
	CourtCount int       `firestore:"courtCount"`
	MaxPlayers int       `firestore:"maxPlayers"` // courtCount * 6
	HostID     string    `firestore:"hostId"`

	PlayerIDs []string `firestore:"playerIds"` // 등록 명단

	// 라이브 상태
	Started            bool                 `firestore:"started"`
	CheckedInPlayerIDs []string             `firestore:"checkedInPlayerIds"`
	CheckInTimes       map[string]time.Time `firestore:"checkInTimes"`
	CourtAssignments   map[int][]string     `firestore:"-"` // 코트 번호 -> 참가자 ID (0/2/4명)
	MatchStartTimes    map[int]time.Time    `firestore:"-"` // 코트 번호 -> 경기 시작 시각
	Matches            []MatchResult        `firestore:"matches"`
	NextMatchups       []NextMatchup        `firestore:"nextMatchups"`

	// 정산
	FinalBill *FinalBill `firestore:"finalBill"`
}

// IsCheckedIn 해당 참가자가 체크인 상태인지 확인합니다.
func (s *Session) IsCheckedIn(playerID string) bool {
	for _, id := range s.CheckedInPlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// CourtOf 참가자가 배정된 코트 번호를 반환합니다. 배정이 없으면 -1을 반환합니다.
func (s *Session) CourtOf(playerID string) int {
	for courtIdx, ids := range s.CourtAssignments {
		for _, id := range ids {
			if id == playerID {
				return courtIdx
			}
		}
	}
	return -1
}

// AppearanceCount 참가자의 경기 참여 횟수를 반환합니다 (경기당 1회).
func (s *Session) AppearanceCount(playerID string) int {
	count := 0
	for i := range s.Matches {
		for _, id := range s.Matches[i].PlayerIDs() {
			if id == playerID {
				count++
				break
			}
		}
	}
	return count
}

// HasMatch 동일 ID의 경기 기록이 이미 존재하는지 확인합니다.
func (s *Session) HasMatch(matchID string) bool {
	for i := range s.Matches {
		if s.Matches[i].ID == matchID {
			return true
		}
	}
	return false
}

// Clone 낙관적 적용과 롤백을 위한 깊은 복사본을 만듭니다.
func (s *Session) Clone() *Session {
	c := *s

	c.PlayerIDs = append([]string(nil), s.PlayerIDs...)
	c.CheckedInPlayerIDs = append([]string(nil), s.CheckedInPlayerIDs...)

	if s.CheckInTimes != nil {
		c.CheckInTimes = make(map[string]time.Time, len(s.CheckInTimes))
		for k, v := range s.CheckInTimes {
			c.CheckInTimes[k] = v
		}
	}
	if s.CourtAssignments != nil {
		c.CourtAssignments = make(map[int][]string, len(s.CourtAssignments))
		for k, v := range s.CourtAssignments {
			c.CourtAssignments[k] = append([]string(nil), v...)
		}
	}
	if s.MatchStartTimes != nil {
		c.MatchStartTimes = make(map[int]time.Time, len(s.MatchStartTimes))
		for k, v := range s.MatchStartTimes {
			c.MatchStartTimes[k] = v
		}
	}

	c.Matches = make([]MatchResult, len(s.Matches))
	for i := range s.Matches {
		m := s.Matches[i]
		m.Team1IDs = append([]string(nil), m.Team1IDs...)
		m.Team2IDs = append([]string(nil), m.Team2IDs...)
		c.Matches[i] = m
	}

	c.NextMatchups = make([]NextMatchup, len(s.NextMatchups))
	for i := range s.NextMatchups {
		n := s.NextMatchups[i]
		n.PlayerIDs = append([]string(nil), n.PlayerIDs...)
		c.NextMatchups[i] = n
	}

	if s.FinalBill != nil {
		b := *s.FinalBill
		b.Items = append([]BillItem(nil), s.FinalBill.Items...)
		c.FinalBill = &b
	}

	return &c
}

// QueuedPlayer 대기열 계산 결과로만 만들어지는 파생 구조체입니다. 저장되지 않습니다.
type QueuedPlayer struct {
	ID               string
	WaitingSince     time.Time
	CurrentlyPlaying bool
	CourtIndex       int // 경기 중일 때만 유효
	Position         int // 정렬 후 부여되는 1-기반 순번
}
