package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pakincht-bit/SmashX-2.0/cache"
	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/interfaces"
	"github.com/pakincht-bit/SmashX-2.0/live"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// BoardManager 대기열/결과/정산 화면을 Discord 임베드로 렌더링합니다.
type BoardManager struct {
	coordinator  *live.Coordinator
	participants interfaces.ParticipantRepository
	profileCache *cache.ProfileCache
	tierManager  *models.TierManager
	clock        interfaces.Clock
}

func NewBoardManager(coordinator *live.Coordinator, participants interfaces.ParticipantRepository, profileCache *cache.ProfileCache, tierManager *models.TierManager, clock interfaces.Clock) *BoardManager {
	if clock == nil {
		clock = interfaces.RealClock{}
	}
	return &BoardManager{
		coordinator:  coordinator,
		participants: participants,
		profileCache: profileCache,
		tierManager:  tierManager,
		clock:        clock,
	}
}

// GenerateQueueBoard 현재 대기열을 임베드로 만듭니다.
func (bm *BoardManager) GenerateQueueBoard() (*discordgo.MessageEmbed, error) {
	snapshot := bm.coordinator.Snapshot()
	if snapshot == nil {
		return nil, fmt.Errorf("no session loaded")
	}

	queue := bm.coordinator.Queue()
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf(constants.MsgQueueTitle, snapshot.Title),
		Description: utils.FormatSessionWindow(snapshot.StartTime, snapshot.EndTime),
		Color:       bm.tierManager.GetTierColor(constants.DefaultRating),
	}

	if len(queue) == 0 {
		embed.Description += "\n\n" + constants.MsgQueueEmpty
		return embed, nil
	}

	profiles := bm.resolveProfiles(queueIDs(queue))
	now := bm.clock.Now()

	var builder strings.Builder
	builder.WriteString("```\n")
	for _, p := range queue {
		name := p.ID
		if profile, ok := profiles[p.ID]; ok {
			name = profile.Name
		}

		if p.CurrentlyPlaying {
			builder.WriteString(fmt.Sprintf("%2d. %s 🏸 %d번 코트 (%s 경과)\n",
				p.Position, name, p.CourtIndex+1, utils.FormatWaitTime(p.WaitingSince, now)))
		} else {
			builder.WriteString(fmt.Sprintf("%2d. %s (대기 %s)\n",
				p.Position, name, utils.FormatWaitTime(p.WaitingSince, now)))
		}
	}
	builder.WriteString("```")

	embed.Description += "\n" + builder.String()
	return embed, nil
}

// GenerateSuggestion 해당 코트의 추천 조합을 임베드로 만듭니다.
func (bm *BoardManager) GenerateSuggestion(courtIndex int) (*discordgo.MessageEmbed, error) {
	snapshot := bm.coordinator.Snapshot()
	if snapshot == nil {
		return nil, fmt.Errorf("no session loaded")
	}

	suggested := bm.coordinator.SuggestNextMatch(courtIndex)
	if len(suggested) == 0 {
		return &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s %d번 코트 추천", constants.EmojiShuttle, courtIndex+1),
			Description: constants.MsgQueueEmpty,
		}, nil
	}

	profiles := bm.resolveProfiles(suggested)
	names := make([]string, 0, len(suggested))
	for _, id := range suggested {
		if profile, ok := profiles[id]; ok {
			names = append(names, fmt.Sprintf("%s (%s)", profile.Name, profile.TierName))
		} else {
			names = append(names, id)
		}
	}

	description := strings.Join(names, ", ")
	if len(suggested) == constants.PlayersPerMatch {
		mid := constants.PlayersPerMatch / 2
		description = fmt.Sprintf("팀1: %s\n팀2: %s",
			strings.Join(names[:mid], ", "), strings.Join(names[mid:], ", "))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %d번 코트 추천", constants.EmojiShuttle, courtIndex+1),
		Description: description,
		Color:       bm.tierManager.GetTierColor(constants.DefaultRating),
	}, nil
}

// GenerateBill 확정된 정산서를 임베드로 만듭니다.
func (bm *BoardManager) GenerateBill(bill *models.FinalBill) *discordgo.MessageEmbed {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("코트 대여료: %d원\n", bill.TotalCourtPrice))
	builder.WriteString(fmt.Sprintf("셔틀콕: %d개 × %d원 = %d원\n",
		bill.ShuttlesUsed, bill.PricePerShuttle, bill.TotalShuttlePrice))
	builder.WriteString(fmt.Sprintf("총 비용: %d원 (%s)\n\n", bill.TotalCost, bill.SplitMode))

	ids := make([]string, 0, len(bill.Items))
	for _, item := range bill.Items {
		ids = append(ids, item.UserID)
	}
	profiles := bm.resolveProfiles(ids)

	builder.WriteString("```\n")
	for _, item := range bill.Items {
		name := item.UserID
		if profile, ok := profiles[item.UserID]; ok {
			name = profile.Name
		}
		builder.WriteString(fmt.Sprintf("%-12s %8d원\n", name, item.Amount))
	}
	builder.WriteString("```")

	return &discordgo.MessageEmbed{
		Title:       constants.EmojiMoney + " 정산 내역",
		Description: builder.String(),
	}
}

// resolveProfiles 캐시 우선으로 프로필을 조회하고, 없는 것만 저장소에서 가져옵니다.
func (bm *BoardManager) resolveProfiles(ids []string) map[string]models.Participant {
	resolved := make(map[string]models.Participant, len(ids))
	var missing []string

	for _, id := range ids {
		if profile, ok := bm.profileCache.Get(id); ok {
			resolved[id] = profile
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 && bm.participants != nil {
		fetched, err := bm.participants.GetParticipants(context.Background(), missing)
		if err != nil {
			utils.Warn("Failed to fetch %d profiles for board: %v", len(missing), err)
		} else {
			bm.profileCache.SetAll(fetched)
			for _, p := range fetched {
				resolved[p.ID] = p
			}
		}
	}

	return resolved
}

func queueIDs(queue []models.QueuedPlayer) []string {
	ids := make([]string, 0, len(queue))
	for _, p := range queue {
		ids = append(ids, p.ID)
	}
	return ids
}
