package utils

import (
	"fmt"
	"time"

	"github.com/pakincht-bit/SmashX-2.0/constants"
)

// FormatWaitTime 대기 시작 시각을 사람이 읽기 좋은 문자열로 변환합니다.
func FormatWaitTime(waitingSince, now time.Time) string {
	diff := now.Sub(waitingSince)
	mins := int(diff.Minutes())

	switch {
	case mins < 1:
		return "방금 전"
	case mins == 1:
		return "1분"
	case mins < 60:
		return fmt.Sprintf("%d분", mins)
	default:
		return fmt.Sprintf("%d시간 %d분", mins/60, mins%60)
	}
}

// FormatSessionWindow 세션 시간 범위를 표시용 문자열로 변환합니다.
func FormatSessionWindow(start, end time.Time) string {
	return fmt.Sprintf("%s %s ~ %s",
		start.Format(constants.DateFormat),
		start.Format("15:04"),
		end.Format("15:04"))
}
