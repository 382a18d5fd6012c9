package constants

// 검증 규칙 상수
const (
	MinNameLength = 1   // 참가자 이름 최소 길이
	MaxNameLength = 50  // 참가자 이름 최대 길이
	MinCourtCount = 1   // 세션 최소 코트 수
	MaxCourtCount = 12  // 세션 최대 코트 수
	MaxRosterSize = 200 // 세션 최대 등록 인원
)
