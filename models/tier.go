package models

import "sync"

// TierInfo 특정 티어에 대한 모든 정보를 포함합니다
type TierInfo struct {
	Level     int    // 티어 레벨 (0-6)
	Name      string // 표시 이름 (예: "Spark", "Prism")
	MinRating int    // 이 티어에 진입하는 최소 레이팅
	ColorCode int    // Discord embed 색상 코드
	ANSIColor string // 터미널 표시용 ANSI 색상 코드
}

// 티어 레벨 상수
const (
	TierUnpolished = iota
	TierSpark
	TierFlow
	TierCombustion
	TierPrism
	TierVoid
	TierAscended
)

// TierManager 레이팅-티어 변환의 단일 기준점입니다.
// 티어 판정은 항상 이 테이블을 거치며, 임계값을 코드 곳곳에 흩뿌리지 않습니다.
type TierManager struct {
	tiers []TierInfo
}

var (
	globalTierManager *TierManager
	once              sync.Once
)

// GetTierManager 전역 TierManager 인스턴스를 반환합니다 (싱글톤)
func GetTierManager() *TierManager {
	once.Do(func() {
		globalTierManager = &TierManager{}
		globalTierManager.initializeTiers()
	})
	return globalTierManager
}

// initializeTiers 티어 정보를 초기화합니다 (레이팅 오름차순)
func (tm *TierManager) initializeTiers() {
	tm.tiers = []TierInfo{
		{TierUnpolished, "Unpolished", 0, 0x3F3F46, "\x1b[0m"},
		{TierSpark, "Spark", 1100, 0x06B6D4, "\x1b[1;36m"},
		{TierFlow, "Flow", 1300, 0xE2E8F0, "\x1b[1;37m"},
		{TierCombustion, "Combustion", 1600, 0xF97316, "\x1b[1;33m"},
		{TierPrism, "Prism", 2000, 0xC084FC, "\x1b[1;35m"},
		{TierVoid, "Void", 2500, 0x3B0764, "\x1b[1;34m"},
		{TierAscended, "Ascended", 3000, 0xFFFFFF, "\x1b[1;31m"},
	}
}

// GetTierByRating 레이팅에 해당하는 티어 정보를 반환합니다.
// 레이팅이 음수여도 최하위 티어로 처리됩니다.
func (tm *TierManager) GetTierByRating(rating int) *TierInfo {
	for i := len(tm.tiers) - 1; i >= 0; i-- {
		if rating >= tm.tiers[i].MinRating {
			return &tm.tiers[i]
		}
	}
	return &tm.tiers[0]
}

// GetTierName 레이팅의 표시 이름을 반환합니다
func (tm *TierManager) GetTierName(rating int) string {
	return tm.GetTierByRating(rating).Name
}

// GetTierColor 레이팅의 Discord embed 색상을 반환합니다
func (tm *TierManager) GetTierColor(rating int) int {
	return tm.GetTierByRating(rating).ColorCode
}

// GetTierANSIColor 레이팅의 ANSI 색상 코드를 반환합니다
func (tm *TierManager) GetTierANSIColor(rating int) string {
	return tm.GetTierByRating(rating).ANSIColor
}

// NextTierProgress 다음 티어까지의 진행률(0-100)과 남은 점수를 반환합니다.
// 최상위 티어는 진행률 100, 남은 점수 0으로 처리됩니다.
func (tm *TierManager) NextTierProgress(rating int) (progress float64, remaining int, nextName string) {
	current := tm.GetTierByRating(rating)
	if current.Level >= len(tm.tiers)-1 {
		return 100, 0, "Max"
	}

	next := &tm.tiers[current.Level+1]
	total := next.MinRating - current.MinRating
	inTier := rating - current.MinRating
	progress = float64(inTier) / float64(total) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress, next.MinRating - rating, next.Name
}

// GetANSIReset ANSI 리셋 코드를 반환합니다
func (tm *TierManager) GetANSIReset() string {
	return "\x1b[0m"
}
