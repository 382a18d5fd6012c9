package bot

import (
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/live"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/telemetry"
)

// CommandDependencies 명령어 핸들러가 필요로 하는 모든 의존성을 묶어서 관리합니다
type CommandDependencies struct {
	Coordinator   *live.Coordinator
	Participants  interfaces.ParticipantRepository
	BoardManager  *BoardManager
	TierManager   *models.TierManager
	MetricsClient *telemetry.MetricsClient

	// OnBillFinalized 정산 확정 직후 호출되는 훅입니다 (시트 기록 등). nil 가능.
	OnBillFinalized func(session *models.Session, bill *models.FinalBill)
}

// NewCommandDependencies 새로운 CommandDependencies 인스턴스를 생성합니다
func NewCommandDependencies(
	coordinator *live.Coordinator,
	participants interfaces.ParticipantRepository,
	boardManager *BoardManager,
	tierManager *models.TierManager,
	metricsClient *telemetry.MetricsClient,
) *CommandDependencies {
	return &CommandDependencies{
		Coordinator:   coordinator,
		Participants:  participants,
		BoardManager:  boardManager,
		TierManager:   tierManager,
		MetricsClient: metricsClient,
	}
}
