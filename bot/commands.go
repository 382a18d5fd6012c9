package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/models"
	"github.com/pakincht-bit/SmashX-2.0/settlement"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

type CommandHandler struct {
	deps *CommandDependencies
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	return &CommandHandler{deps: deps}
}

// HandleMessage Discord 메시지를 처리합니다
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params)
}

// shouldIgnoreMessage 메시지를 무시해야 하는지 확인합니다
func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// 봇 자신의 메시지는 무시
	if m.Author.ID == s.State.User.ID {
		return true
	}

	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}

	return false
}

// parseMessage 메시지를 파싱하여 명령어와 매개변수를 추출합니다
func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil
	}

	args := strings.Fields(content)
	if len(args) == 0 {
		return "", nil
	}

	return args[0][constants.CommandPrefixLength:], args[1:]
}

// routeCommand 명령어를 해당 핸들러로 라우팅합니다
func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string) {
	// 명령어 사용 텔레메트리 전송
	ch.deps.MetricsClient.SendCommandUsed(command)

	switch command {
	case "help", "도움말":
		ch.handleHelp(s, m)
	case "checkin", "체크인":
		ch.handleCheckIn(s, m)
	case "queue", "대기열":
		ch.handleQueue(s, m)
	case "suggest", "추천":
		ch.handleSuggest(s, m, params)
	case "assign", "배정":
		ch.handleAssign(s, m, params)
	case "result", "결과":
		ch.handleResult(s, m, params)
	case "skip", "양보":
		ch.handleSkipTurn(s, m)
	case "end", "종료":
		ch.handleEnd(s, m, params)
	case "ping":
		ch.handlePing(s, m)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// handlePing ping 명령어를 처리합니다
func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

// handleCheckIn 메시지 작성자의 체크인 상태를 토글합니다.
// Discord 사용자 ID가 참가자 ID로 쓰입니다.
func (ch *CommandHandler) handleCheckIn(s *discordgo.Session, m *discordgo.MessageCreate) {
	playerID := m.Author.ID

	snapshot := ch.deps.Coordinator.Snapshot()
	if snapshot == nil {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewNotFoundError("SESSION_NOT_LOADED", "no active session", constants.MsgSessionMissing))
		return
	}
	wasCheckedIn := snapshot.IsCheckedIn(playerID)

	if err := ch.deps.Coordinator.CheckInToggle(context.Background(), playerID); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	name := ch.displayName(playerID, m.Author.Username)
	msg := fmt.Sprintf(constants.MsgCheckInSuccess, name)
	if wasCheckedIn {
		msg = fmt.Sprintf(constants.MsgCheckOutSuccess, name)
	}
	if err := errors.SendDiscordSuccess(s, m.ChannelID, msg); err != nil {
		utils.Error("Failed to send check-in response: %v", err)
	}
}

// handleQueue 현재 대기열 보드를 전송합니다
func (ch *CommandHandler) handleQueue(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed, err := ch.deps.BoardManager.GenerateQueueBoard()
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send queue board: %v", err)
	}
}

// handleSuggest 다음 경기 조합을 추천합니다
func (ch *CommandHandler) handleSuggest(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	courtIndex, ok := ch.parseCourtIndex(s, m, params, constants.MsgSuggestUsage)
	if !ok {
		return
	}

	embed, err := ch.deps.BoardManager.GenerateSuggestion(courtIndex)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send suggestion: %v", err)
	}
}

// handleAssign 코트에 참가자들을 배정합니다
func (ch *CommandHandler) handleAssign(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("ASSIGN_INVALID_PARAMS", "invalid assign parameters", constants.MsgAssignUsage))
		return
	}

	courtIndex, ok := ch.parseCourtIndex(s, m, params[:1], constants.MsgAssignUsage)
	if !ok {
		return
	}

	playerIDs := params[1:]
	if err := ch.deps.Coordinator.AssignCourt(context.Background(), courtIndex, playerIDs); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	if len(playerIDs) == 0 {
		if err := errors.SendDiscordInfo(s, m.ChannelID, fmt.Sprintf(constants.MsgCourtCleared, courtIndex+1)); err != nil {
			utils.Error("Failed to send court cleared response: %v", err)
		}
	}
}

// handleResult 경기 결과를 기록합니다
func (ch *CommandHandler) handleResult(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 2 {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("RESULT_INVALID_PARAMS", "invalid result parameters", constants.MsgResultUsage))
		return
	}

	courtIndex, ok := ch.parseCourtIndex(s, m, params[:1], constants.MsgResultUsage)
	if !ok {
		return
	}

	winningTeam, err := strconv.Atoi(params[1])
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("RESULT_INVALID_TEAM", "winning team must be a number", constants.MsgResultUsage))
		return
	}

	result, err := ch.deps.Coordinator.RecordMatchResult(context.Background(), courtIndex, winningTeam)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if result == nil {
		if err := errors.SendDiscordInfo(s, m.ChannelID, fmt.Sprintf(constants.MsgCourtCleared, courtIndex+1)); err != nil {
			utils.Error("Failed to send empty-court response: %v", err)
		}
	}
}

// handleSkipTurn 메시지 작성자의 대기 순서를 한 칸 양보합니다
func (ch *CommandHandler) handleSkipTurn(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := ch.deps.Coordinator.SkipTurn(context.Background(), m.Author.ID); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
	}
}

// handleEnd 세션을 종료하고 정산서를 전송합니다
func (ch *CommandHandler) handleEnd(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 4 {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("END_INVALID_PARAMS", "invalid end parameters", constants.MsgEndUsage))
		return
	}

	shuttles, err1 := strconv.Atoi(params[0])
	pricePerShuttle, err2 := strconv.Atoi(params[1])
	courtPrice, err3 := strconv.Atoi(params[2])
	if err1 != nil || err2 != nil || err3 != nil {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("END_INVALID_PARAMS", "cost parameters must be numbers", constants.MsgEndUsage))
		return
	}

	mode := models.SplitMode(strings.ToUpper(params[3]))
	if mode != models.SplitEqual && mode != models.SplitMatches {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("END_INVALID_MODE", "split mode must be EQUAL or MATCHES", constants.MsgEndUsage))
		return
	}

	bill, err := ch.deps.Coordinator.EndSession(context.Background(), settlement.Input{
		ShuttlesUsed:    shuttles,
		PricePerShuttle: pricePerShuttle,
		TotalCourtPrice: courtPrice,
		SplitMode:       mode,
	})
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	embed := ch.deps.BoardManager.GenerateBill(bill)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send bill: %v", err)
	}

	if ch.deps.OnBillFinalized != nil {
		if snapshot := ch.deps.Coordinator.Snapshot(); snapshot != nil {
			ch.deps.OnBillFinalized(snapshot, bill)
		}
	}
}

// parseCourtIndex 1-기반 코트 번호 인자를 0-기반 인덱스로 변환합니다
func (ch *CommandHandler) parseCourtIndex(s *discordgo.Session, m *discordgo.MessageCreate, params []string, usage string) (int, bool) {
	if len(params) < 1 {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("COURT_MISSING", "court number is required", usage))
		return 0, false
	}

	courtNumber, err := strconv.Atoi(params[0])
	if err != nil || courtNumber < 1 {
		errors.HandleDiscordError(s, m.ChannelID,
			errors.NewValidationError("COURT_INVALID", "court number must be a positive number", usage))
		return 0, false
	}
	return courtNumber - 1, true
}

// displayName 참가자 프로필 이름을 우선 사용하고, 없으면 Discord 이름을 씁니다
func (ch *CommandHandler) displayName(playerID, fallback string) string {
	if ch.deps.Participants == nil {
		return fallback
	}
	profile, err := ch.deps.Participants.GetParticipant(context.Background(), playerID)
	if err != nil || profile == nil {
		return fallback
	}
	return profile.Name
}
