package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
)

type notifierBotApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// OperatorNotifier шлет оператору уведомления о событиях по заказам.
// Ошибки отправки не роняют основной сценарий, только логируются.
type OperatorNotifier struct {
	bot        notifierBotApi
	operatorID int64
	logger     *slog.Logger
}

func NewOperatorNotifier(bot notifierBotApi, operatorID int64, logger *slog.Logger) *OperatorNotifier {
	return &OperatorNotifier{
		bot:        bot,
		operatorID: operatorID,
		logger:     logger,
	}
}

// OrderCreated уведомляет оператора о новом заказе
func (n *OperatorNotifier) OrderCreated(order *orders.Order) {
	if n.operatorID == 0 {
		return
	}

	text := fmt.Sprintf(
		"🆕 Новый заказ %s\n\n"+
			"👤 Клиент: %s (id %d)\n"+
			"🤖 Бот: @%s\n"+
			"💡 Идея:\n%s",
		order.ID, order.UserName, order.UserID, order.BotUsername, order.Idea,
	)
	n.send(text)
}

// StatusChanged уведомляет оператора о смене статуса заказа
func (n *OperatorNotifier) StatusChanged(order *orders.Order, old orders.Status) {
	if n.operatorID == 0 {
		return
	}

	text := fmt.Sprintf("🔖 Заказ %s: %s → %s", order.ID, old, order.Status)
	n.send(text)
}

// Digest шлет оператору произвольный текст (например, дневную сводку)
func (n *OperatorNotifier) Digest(text string) {
	if n.operatorID == 0 {
		return
	}
	n.send(text)
}

func (n *OperatorNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.operatorID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn("не удалось уведомить оператора", slog.Any("error", err))
	}
}
