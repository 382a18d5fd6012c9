package errors

import (
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	code := "TEST_CODE"
	message := "테스트 메시지"
	userMsg := "사용자 메시지"

	err := NewValidationError(code, message, userMsg)

	if err.Type != TypeValidation {
		t.Errorf("Type이 TypeValidation이어야 합니다. 실제값: %v", err.Type)
	}
	if err.Code != code {
		t.Errorf("Code가 %s이어야 합니다. 실제값: %s", code, err.Code)
	}
	if err.Message != message {
		t.Errorf("Message가 %s이어야 합니다. 실제값: %s", message, err.Message)
	}
	if err.UserMsg != userMsg {
		t.Errorf("UserMsg가 %s이어야 합니다. 실제값: %s", userMsg, err.UserMsg)
	}
}

func TestNewConflictError(t *testing.T) {
	internalErr := fmt.Errorf("쓰기 거부")

	err := NewConflictError("WRITE_REJECTED", "storage rejected write", internalErr)

	if err.Type != TypeConflict {
		t.Errorf("Type이 TypeConflict이어야 합니다. 실제값: %v", err.Type)
	}
	if err.Internal != internalErr {
		t.Error("Internal 오류가 설정되지 않음")
	}
	if err.UserMsg == "" {
		t.Error("충돌 오류에는 기본 사용자 메시지가 있어야 합니다")
	}
}

func TestNewSystemError(t *testing.T) {
	internalErr := fmt.Errorf("내부 시스템 오류")

	err := NewSystemError("SYSTEM_ERROR", "시스템 오류", internalErr)

	if err.Type != TypeSystem {
		t.Errorf("Type이 TypeSystem이어야 합니다. 실제값: %v", err.Type)
	}
	if err.Internal != internalErr {
		t.Error("Internal 오류가 설정되지 않음")
	}

	expectedUserMsg := "시스템 오류가 발생했습니다. 관리자에게 문의해주세요."
	if err.UserMsg != expectedUserMsg {
		t.Errorf("UserMsg가 %s이어야 합니다. 실제값: %s", expectedUserMsg, err.UserMsg)
	}
}

func TestAppErrorError(t *testing.T) {
	// Internal 오류가 있는 경우
	internalErr := fmt.Errorf("내부 오류")
	err := &AppError{
		Code:     "TEST",
		Message:  "테스트 메시지",
		Internal: internalErr,
	}

	expected := "[TEST] 테스트 메시지: 내부 오류"
	if err.Error() != expected {
		t.Errorf("Error() 결과가 %s이어야 합니다. 실제값: %s", expected, err.Error())
	}

	// Internal 오류가 없는 경우
	err2 := &AppError{
		Code:    "TEST2",
		Message: "테스트 메시지2",
	}

	expected2 := "[TEST2] 테스트 메시지2"
	if err2.Error() != expected2 {
		t.Errorf("Error() 결과가 %s이어야 합니다. 실제값: %s", expected2, err2.Error())
	}
}

func TestAppErrorGetUserMessage(t *testing.T) {
	err := &AppError{
		Message: "내부 메시지",
		UserMsg: "사용자 메시지",
	}
	if err.GetUserMessage() != "사용자 메시지" {
		t.Errorf("GetUserMessage()가 '사용자 메시지'를 반환해야 합니다. 실제값: %s", err.GetUserMessage())
	}

	// UserMsg가 없으면 Message로 대체됩니다
	err2 := &AppError{
		Message: "내부 메시지만",
	}
	if err2.GetUserMessage() != "내부 메시지만" {
		t.Errorf("GetUserMessage()가 '내부 메시지만'을 반환해야 합니다. 실제값: %s", err2.GetUserMessage())
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		expected  bool
	}{
		{"검증 오류", NewValidationError("C", "m", "u"), IsValidation, true},
		{"대상 없음", NewNotFoundError("C", "m", "u"), IsNotFound, true},
		{"충돌", NewConflictError("C", "m", nil), IsConflict, true},
		{"중복", NewDuplicateError("C", "m"), IsDuplicate, true},
		{"타입 불일치", NewValidationError("C", "m", "u"), IsConflict, false},
		{"일반 오류", fmt.Errorf("plain"), IsValidation, false},
		{"nil", nil, IsValidation, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.expected {
				t.Errorf("예상값 %v, 실제값 %v", tt.expected, got)
			}
		})
	}
}

func TestPredicatesUnwrapWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("operation failed: %w", NewConflictError("C", "m", nil))

	if !IsConflict(wrapped) {
		t.Error("래핑된 AppError도 타입 판별이 되어야 합니다")
	}
}
