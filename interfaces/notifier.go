package interfaces

// Notifier 사용자에게 보이는 일시적 알림 채널입니다.
// 충돌 롤백 알림처럼 상태를 바꾸지 않는 통지에만 사용됩니다.
type Notifier interface {
	NotifySuccess(message string)
	NotifyInfo(message string)
	NotifyWarning(message string)
	NotifyFailure(message string)
}

// NopNotifier 알림을 버리는 기본 구현 (테스트/헤드리스 실행용)
type NopNotifier struct{}

func (NopNotifier) NotifySuccess(string) {}
func (NopNotifier) NotifyInfo(string)    {}
func (NopNotifier) NotifyWarning(string) {}
func (NopNotifier) NotifyFailure(string) {}
