package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"hexint-tracker/common"
	"hexint-tracker/config"
	"hexint-tracker/database/models"
)

type BalanceReader interface {
	GetLatestBalance(address string) (*models.Balance, bool)
}

// AlertBot posts tracker alerts to the configured chat and answers
// /hex and /balance commands from valid users.
type AlertBot struct {
	*Bot

	db BalanceReader
}

func New(cfg *config.BotConfig, db BalanceReader) (*AlertBot, error) {
	bot, err := NewBot("alert", cfg.AlertBotToken, cfg.AlertChatID, cfg.ValidUsers)
	if err != nil {
		return nil, err
	}

	return &AlertBot{
		Bot: bot,
		db:  db,
	}, nil
}

func (ab *AlertBot) Start() {
	ab.logger.Infof("Started telegram alert bot")

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60

		updates := ab.botApi.GetUpdatesChan(u)
		for update := range updates {
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			if !ab.isAuthorizedUser(update.Message.From.UserName, update.Message.Chat.ID) {
				continue
			}

			textMsg := replyFor(ab.db, update.Message.Command(), update.Message.CommandArguments())
			ab.sendMessage(update.Message.Chat.ID, update.Message.MessageID, textMsg)
		}
	}()
}

func (ab *AlertBot) Stop() {
	ab.botApi.StopReceivingUpdates()
}

func (ab *AlertBot) Notify(text string) {
	ab.sendMessageToChannel(text)
}

func replyFor(db BalanceReader, command, args string) string {
	args = strings.TrimSpace(args)

	switch command {
	case "start":
		return "Hi! I watch account balances and convert hex quantities.\n" +
			"Available commands: /hex <0x... | decimal>, /balance <address>"
	case "hex":
		if args == "" {
			return "You need to specify a value, e.g. /hex 0x5f5e100"
		}
		v, err := common.ParseQuantity(args)
		if err != nil {
			return fmt.Sprintf("Invalid value: %s", err.Error())
		}
		return fmt.Sprintf("%s\nDecimal: %s\nHex: %s", args, common.FormatDecimal(v), common.FormatHexLower(v))
	case "balance":
		if args == "" {
			return "You need to specify an address"
		}
		balance, ok := db.GetLatestBalance(args)
		if !ok {
			return fmt.Sprintf("No balance tracked for %s", args)
		}
		return fmt.Sprintf("%s at block [%d]: %s (%s)",
			args, balance.Height, common.FormatDecimal(balance.Amount.BigInt()), balance.Amount.String())
	default:
		return "Unknown command"
	}
}
