package interfaces

import "time"

// Clock 현재 시각 조회 인터페이스입니다. 코어는 시간을 읽기만 하고 바꾸지 않습니다.
type Clock interface {
	Now() time.Time
}

// RealClock 시스템 시계 구현
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
