package settlement

import (
	"math"

	"github.com/pakincht-bit/SmashX-2.0/models"
)

// Input 정산 입력값입니다. 금액 단위는 원(정수)입니다.
type Input struct {
	ShuttlesUsed    int
	PricePerShuttle int
	TotalCourtPrice int
	SplitMode       models.SplitMode
}

// Settle 세션 종료 시점의 정산서를 계산합니다.
//
// 총비용 = 코트 대여료 + 셔틀콕 사용량 × 단가.
//   - EQUAL: 체크인 인원 균등 분배. 개별 금액은 반올림하므로 합계와 총비용의
//     차이는 인원수 × 0.5원 이내이며, 따로 보정하지 않습니다.
//   - MATCHES: 경기 참여 횟수 가중 분배. 참여 횟수 합이 0이면 EQUAL로
//     동작합니다. 0경기 참가자의 금액은 0원입니다.
//
// 순수 함수이며 세션을 변경하지 않습니다.
func Settle(session *models.Session, input Input) *models.FinalBill {
	totalShuttlePrice := input.ShuttlesUsed * input.PricePerShuttle
	totalCost := input.TotalCourtPrice + totalShuttlePrice

	checkedIn := session.CheckedInPlayerIDs

	var items []models.BillItem
	switch {
	case len(checkedIn) == 0:
		items = []models.BillItem{}

	case input.SplitMode == models.SplitEqual:
		items = splitEqually(checkedIn, totalCost)

	default:
		weights := make(map[string]int, len(checkedIn))
		totalWeight := 0
		for _, id := range checkedIn {
			w := session.AppearanceCount(id)
			weights[id] = w
			totalWeight += w
		}

		if totalWeight == 0 {
			items = splitEqually(checkedIn, totalCost)
		} else {
			items = make([]models.BillItem, 0, len(checkedIn))
			for _, id := range checkedIn {
				amount := int(math.Round(float64(weights[id]) / float64(totalWeight) * float64(totalCost)))
				items = append(items, models.BillItem{UserID: id, Amount: amount})
			}
		}
	}

	return &models.FinalBill{
		TotalCourtPrice:   input.TotalCourtPrice,
		TotalShuttlePrice: totalShuttlePrice,
		ShuttlesUsed:      input.ShuttlesUsed,
		PricePerShuttle:   input.PricePerShuttle,
		TotalCost:         totalCost,
		SplitMode:         input.SplitMode,
		Items:             items,
	}
}

func splitEqually(playerIDs []string, totalCost int) []models.BillItem {
	amount := int(math.Round(float64(totalCost) / float64(len(playerIDs))))
	items := make([]models.BillItem, 0, len(playerIDs))
	for _, id := range playerIDs {
		items = append(items, models.BillItem{UserID: id, Amount: amount})
	}
	return items
}
