package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateID 경기 기록/대기 조합에 쓰는 짧은 식별자를 생성합니다.
// 낙관적 적용과 저장소 쓰기가 같은 ID를 공유해야 중복 제거가 가능합니다.
func GenerateID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// 난수 실패 시에도 유일성이 크게 깨지지 않도록 시각 기반으로 대체
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
