package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType 오류의 종류를 나타냅니다
type ErrorType int

const (
	TypeValidation ErrorType = iota // 잘못된 입력 - 변경 없이 거부
	TypeNotFound                    // 대상 없음 - no-op 처리
	TypeConflict                    // 저장소 쓰기 거부 - 롤백 후 일시 알림
	TypeDuplicate                   // 중복 적용 - 성공으로 간주
	TypeSystem                      // 그 외 시스템 오류
)

// AppError 애플리케이션에서 발생하는 구조화된 오류를 표현합니다
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// GetUserMessage 사용자에게 표시할 메시지를 반환합니다
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// 오류 생성 함수들

// NewValidationError 입력값 검증 오류를 생성합니다
func NewValidationError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewNotFoundError 리소스를 찾을 수 없는 오류를 생성합니다
func NewNotFoundError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewConflictError 저장소 쓰기가 거부되었을 때의 오류를 생성합니다.
// 호출자는 낙관적으로 적용한 스냅샷을 롤백해야 하며, 자동 재시도하지 않습니다.
func NewConflictError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeConflict,
		Code:     code,
		Message:  message,
		UserMsg:  "다른 기기에서 먼저 변경되었습니다. 잠시 후 다시 시도해주세요.",
		Internal: err,
	}
}

// NewDuplicateError 이미 적용된 변경에 대한 오류를 생성합니다 (멱등 no-op)
func NewDuplicateError(code, message string) *AppError {
	return &AppError{
		Type:    TypeDuplicate,
		Code:    code,
		Message: message,
	}
}

// NewSystemError 시스템 내부 오류를 생성합니다
func NewSystemError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeSystem,
		Code:     code,
		Message:  message,
		UserMsg:  "시스템 오류가 발생했습니다. 관리자에게 문의해주세요.",
		Internal: err,
	}
}

// 오류 판별 헬퍼들

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsValidation 검증 오류 여부를 확인합니다
func IsValidation(err error) bool { return isType(err, TypeValidation) }

// IsNotFound 대상 없음 오류 여부를 확인합니다
func IsNotFound(err error) bool { return isType(err, TypeNotFound) }

// IsConflict 저장소 충돌 오류 여부를 확인합니다
func IsConflict(err error) bool { return isType(err, TypeConflict) }

// IsDuplicate 중복 적용 오류 여부를 확인합니다
func IsDuplicate(err error) bool { return isType(err, TypeDuplicate) }
