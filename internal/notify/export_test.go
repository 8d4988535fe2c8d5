package notify

import "go.uber.org/zap"

// NewTelegramNotifierForTest exposes the sender seam to the external test package.
func NewTelegramNotifierForTest(bot messageSender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return newTelegramNotifier(bot, chatID, logger)
}
