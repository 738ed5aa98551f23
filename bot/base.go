package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	Name string

	botApi *tgbotapi.BotAPI
	chatID int64

	logger *zap.SugaredLogger

	validUsers map[string]bool
}

func NewBot(name string, botToken string, chatID int64, validUsers []string) (*Bot, error) {
	botApi, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("authorize %s bot: %w", name, err)
	}

	bot := &Bot{
		Name: name,

		botApi: botApi,
		chatID: chatID,

		logger: zap.S().Named(fmt.Sprintf("[%s_bot]", name)),

		validUsers: make(map[string]bool),
	}

	for _, user := range validUsers {
		bot.validUsers[user] = true
	}

	bot.logger.Infof("Telegram %s bot authorized on account [%s]", name, botApi.Self.UserName)

	return bot, nil
}

func (b *Bot) isAuthorizedUser(username string, chatID int64) bool {
	if _, ok := b.validUsers[username]; !ok {
		b.logger.Warnf("Unauthorized user %s tried to access the bot", username)

		b.sendMessage(chatID, 0, "You are not authorized to use this bot.")
		return false
	}

	return true
}

func (b *Bot) sendMessageToChannel(textMsg string) {
	b.sendMessage(b.chatID, 0, textMsg)
}

func (b *Bot) sendMessage(chatID int64, msgID int, textMsg string) {
	if chatID == 0 {
		b.logger.Errorf("Telegram chat ID is zero")
		return
	}

	msg := tgbotapi.NewMessage(chatID, textMsg)
	msg.DisableWebPagePreview = true
	if msgID != 0 {
		msg.ReplyToMessageID = msgID
	}

	if _, err := b.botApi.Send(msg); err != nil {
		b.logger.Errorf("Error sending message: %v", err)
	}
}
