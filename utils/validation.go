package utils

import (
	"strings"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
)

// IsValidName 참가자/세션 이름 유효성 검사
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < constants.MinNameLength || len(trimmed) > constants.MaxNameLength {
		return false
	}
	// 제어 문자가 포함된 이름은 거부
	for _, r := range trimmed {
		if r < 0x20 {
			return false
		}
	}
	return true
}

// IsValidCourtCount 세션 코트 수 유효성 검사
func IsValidCourtCount(count int) bool {
	return count >= constants.MinCourtCount && count <= constants.MaxCourtCount
}

// IsValidTimeWindow 세션 시간 범위 유효성 검사 (종료가 시작보다 뒤여야 함)
func IsValidTimeWindow(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && end.After(start)
}

// SanitizeString 저장 전 문자열 정리 (앞뒤 공백 및 제어 문자 제거)
func SanitizeString(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}
