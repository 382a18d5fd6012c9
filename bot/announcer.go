package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/errors"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// Announcer 지정된 채널로 일시적 알림을 보내는 Notifier 구현입니다.
// 채널이 설정되지 않았으면 로그만 남깁니다.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

func NewAnnouncer(session *discordgo.Session, channelID string) *Announcer {
	return &Announcer{session: session, channelID: channelID}
}

func (a *Announcer) NotifySuccess(message string) {
	if !a.ready() {
		utils.Info("Notify (success): %s", message)
		return
	}
	if err := errors.SendDiscordSuccess(a.session, a.channelID, message); err != nil {
		utils.Error("Failed to send success notification: %v", err)
	}
}

func (a *Announcer) NotifyInfo(message string) {
	if !a.ready() {
		utils.Info("Notify (info): %s", message)
		return
	}
	if err := errors.SendDiscordInfo(a.session, a.channelID, message); err != nil {
		utils.Error("Failed to send info notification: %v", err)
	}
}

func (a *Announcer) NotifyWarning(message string) {
	if !a.ready() {
		utils.Warn("Notify (warning): %s", message)
		return
	}
	if err := errors.SendDiscordWarning(a.session, a.channelID, message); err != nil {
		utils.Error("Failed to send warning notification: %v", err)
	}
}

func (a *Announcer) NotifyFailure(message string) {
	if !a.ready() {
		utils.Error("Notify (failure): %s", message)
		return
	}
	if err := errors.SendDiscordMessageWithRetry(a.session, a.channelID, constants.EmojiError+" "+message); err != nil {
		utils.Error("Failed to send failure notification: %v", err)
	}
}

func (a *Announcer) ready() bool {
	return a.session != nil && a.channelID != ""
}
