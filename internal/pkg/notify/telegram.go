package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmcruz/livebet/internal/pkg/interfaces"
	"github.com/dmcruz/livebet/internal/pkg/models"
)

// Min interval between messages to the same chat to stay under Telegram's
// rate limit (~30/min per chat).
const telegramSendInterval = 2 * time.Second

// Ensure TelegramNotifier implements Notifier
var _ interfaces.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier announces flagged positive-EV bets to a Telegram chat.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates a notifier, or nil when the bot cannot be
// reached (notifications are optional; the scraper runs without them).
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get telegram bot info", "error", err)
		return nil
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyValueBets sends one formatted alert for a match's positive-EV
// bets. Send failures are logged, never propagated.
func (n *TelegramNotifier) NotifyValueBets(matchName string, bets []models.EVBet) {
	if len(bets) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "💰 Positive EV bets: %s\n\n", matchName)
	for _, bet := range bets {
		fmt.Fprintf(&sb, "• %s @ %.2f (EV %.3f)\n%s\n\n", bet.Name, bet.Odds, bet.ExpectedValue, bet.Justification)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if wait := telegramSendInterval - time.Since(n.lastSend); wait > 0 {
		time.Sleep(wait)
	}

	msg := tgbotapi.NewMessage(n.chatID, sb.String())
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Failed to send telegram notification", "match", matchName, "error", err)
		return
	}
	n.lastSend = time.Now()
	slog.Info("Sent positive EV notification", "match", matchName, "bets", len(bets))
}
