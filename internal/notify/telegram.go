package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SubmissionAlert is what the office is told about a new order.
type SubmissionAlert struct {
	OrderID      string
	ServiceTitle string
	CustomerName string
	Email        string
	Phone        string
	PostalCode   string
	Price        string
	StartDate    string
	DocumentPath string
}

// AdminNotifier tells the office about new submissions.
type AdminNotifier interface {
	NotifySubmission(ctx context.Context, alert SubmissionAlert) error
}

// NopNotifier drops every alert.
type NopNotifier struct{}

func (NopNotifier) NotifySubmission(context.Context, SubmissionAlert) error { return nil }

// messageSender is the part of the bot API used here; *tgbotapi.BotAPI implements it.
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts submission alerts to an admin chat.
type TelegramNotifier struct {
	bot    messageSender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier connects to the bot API with token.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("Telegram notifier initialized", zap.String("bot", botAPI.Self.UserName))
	return newTelegramNotifier(botAPI, chatID, logger), nil
}

func newTelegramNotifier(bot messageSender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}
}

// NotifySubmission sends the alert as an HTML message.
func (n *TelegramNotifier) NotifySubmission(ctx context.Context, alert SubmissionAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatAlert(alert))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("Failed to send submission alert",
			zap.String("orderId", alert.OrderID),
			zap.Int64("chatId", n.chatID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// FormatAlert renders the alert text. Values are HTML-escaped.
func FormatAlert(a SubmissionAlert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Nová objednávka %s</b>\n", escape(a.OrderID))
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, escape(value))
		}
	}
	line("Služba", a.ServiceTitle)
	line("Zákazník", a.CustomerName)
	line("E-mail", a.Email)
	line("Telefon", a.Phone)
	line("PSČ", a.PostalCode)
	line("Cena", a.Price)
	line("Zahájení", a.StartDate)
	line("Dokument", a.DocumentPath)
	return strings.TrimRight(b.String(), "\n")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return htmlEscaper.Replace(s) }
