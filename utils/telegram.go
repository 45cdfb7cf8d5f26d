package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Ops alerting: redemption requests and manual proof submissions ping the
// admin Telegram chat so fulfillment does not sit unnoticed. Best effort;
// a missing bot token just disables alerts.

var (
	tgOnce sync.Once
	tgBot  *tgbotapi.BotAPI
	tgChat int64
)

func opsBot() (*tgbotapi.BotAPI, int64) {
	tgOnce.Do(func() {
		token := os.Getenv("TELEGRAM_BOT_TOKEN")
		chatStr := os.Getenv("TELEGRAM_OPS_CHAT_ID")
		if token == "" || chatStr == "" {
			return
		}
		chatID, err := strconv.ParseInt(chatStr, 10, 64)
		if err != nil {
			log.Printf("[telegram] invalid TELEGRAM_OPS_CHAT_ID: %v", err)
			return
		}
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Printf("[telegram] bot init failed: %v", err)
			return
		}
		tgBot = bot
		tgChat = chatID
	})
	return tgBot, tgChat
}

// NotifyOps sends a plain-text message to the ops chat. Errors are logged,
// never propagated to the request path.
func NotifyOps(text string) {
	bot, chatID := opsBot()
	if bot == nil {
		return
	}
	go func() {
		if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			log.Printf("[telegram] send failed: %v", err)
		}
	}()
}
