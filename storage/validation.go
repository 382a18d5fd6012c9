package storage

import (
	"fmt"

	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// validateNewSession 새 세션의 입력값을 검사합니다.
// 제목과 장소는 저장 전에 앞뒤 공백과 제어 문자가 제거됩니다.
func validateNewSession(session *models.Session) error {
	session.Title = utils.SanitizeString(session.Title)
	session.Location = utils.SanitizeString(session.Location)

	if !utils.IsValidName(session.Title) {
		return errors.NewValidationError("SESSION_INVALID_TITLE",
			fmt.Sprintf("invalid session title: %q", session.Title),
			"세션 제목은 1~50자여야 합니다.")
	}
	if !utils.IsValidCourtCount(session.CourtCount) {
		return errors.NewValidationError("SESSION_INVALID_COURT_COUNT",
			fmt.Sprintf("invalid court count: %d", session.CourtCount),
			"코트 수는 1~12 사이여야 합니다.")
	}
	if !utils.IsValidTimeWindow(session.StartTime, session.EndTime) {
		return errors.NewValidationError("SESSION_INVALID_TIME_WINDOW",
			"session end time must be after start time",
			"세션 종료 시각은 시작 시각보다 뒤여야 합니다.")
	}
	return nil
}
