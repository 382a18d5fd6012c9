package errors

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/utils"
)

// Discord 메시지 관련 헬퍼 함수들

// HandleDiscordError 오류를 처리하고 Discord 채널에 사용자 메시지를 전송합니다
func HandleDiscordError(s *discordgo.Session, channelID string, err error) {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Internal != nil {
			utils.Error("%s - %s: %v", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			utils.Error("%s - %s", appErr.Code, appErr.Message)
		}

		if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+appErr.GetUserMessage()); discordErr != nil {
			utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", discordErr)
		}
	} else {
		utils.Error("UNEXPECTED ERROR: %v", err)
		if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+constants.MsgUnexpectedError); discordErr != nil {
			utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", discordErr)
		}
	}
}

// SendDiscordSuccess 성공 메시지를 Discord 채널에 전송합니다
func SendDiscordSuccess(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiSuccess+" "+message)
}

// SendDiscordInfo 정보 메시지를 Discord 채널에 전송합니다
func SendDiscordInfo(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiInfo+" "+message)
}

// SendDiscordWarning 경고 메시지를 Discord 채널에 전송합니다
func SendDiscordWarning(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiWarning+" "+message)
}

// SendDiscordMessageWithRetry Discord 메시지 전송을 재시도 로직과 함께 수행합니다
func SendDiscordMessageWithRetry(s *discordgo.Session, channelID, message string) error {
	const maxRetries = constants.MaxDiscordRetries
	const baseDelay = constants.BaseRetryDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := s.ChannelMessageSend(channelID, message)
		if err == nil {
			if attempt > 0 {
				utils.Info("Discord message sent successfully after %d retries", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := time.Duration(1<<attempt) * baseDelay // Exponential backoff: 1s, 2s, 4s
			utils.Warn("Discord API call failed (attempt %d/%d): %v. Retrying in %v...",
				attempt+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	utils.Error("DISCORD API ERROR: All retry attempts failed: %v", lastErr)
	return lastErr
}
