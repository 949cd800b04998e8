package cmds

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/telegram/messages"
)

type MyOrdersCommand struct {
	bot    botApi
	orders orderLister
}

type orderLister interface {
	ListByUser(ctx context.Context, userID int64) ([]*orders.Order, error)
}

func NewMyOrdersCommand(bot botApi, orderService orderLister) *MyOrdersCommand {
	return &MyOrdersCommand{bot: bot, orders: orderService}
}

func (c *MyOrdersCommand) Execute(ctx context.Context, userID, chatID int64) error {
	list, err := c.orders.ListByUser(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Ошибка при получении заказов")
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("list orders: %w", err)
	}

	if len(list) == 0 {
		msg := tgbotapi.NewMessage(chatID, messages.NoOrders)
		_, err := c.bot.Send(msg)
		return err
	}

	var b strings.Builder
	b.WriteString("📋 Ваши заказы:\n")
	for _, order := range list {
		b.WriteString(formatOrderLine(order))
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	_, err = c.bot.Send(msg)
	return err
}

func formatOrderLine(order *orders.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s\n", statusEmoji(order.Status), order.ID)
	fmt.Fprintf(&b, "Статус: %s\n", statusTitle(order.Status))
	if order.BotUsername != "" {
		fmt.Fprintf(&b, "Бот: @%s\n", order.BotUsername)
	}
	if order.EstimatedPrice != nil {
		fmt.Fprintf(&b, "Оценка: %d ₽\n", *order.EstimatedPrice)
	}
	if order.EstimatedTime != "" {
		fmt.Fprintf(&b, "Срок: %s\n", order.EstimatedTime)
	}
	fmt.Fprintf(&b, "Создан: %s\n", order.CreatedAt.Format("02.01.2006 15:04"))
	return b.String()
}

func statusEmoji(s orders.Status) string {
	switch s {
	case orders.StatusPending:
		return "⏳"
	case orders.StatusProcessing:
		return "🔧"
	case orders.StatusCompleted:
		return "✅"
	case orders.StatusCancelled:
		return "🚫"
	default:
		return "❔"
	}
}

func statusTitle(s orders.Status) string {
	switch s {
	case orders.StatusPending:
		return "в очереди"
	case orders.StatusProcessing:
		return "в работе"
	case orders.StatusCompleted:
		return "выполнен"
	case orders.StatusCancelled:
		return "отменен"
	default:
		return string(s)
	}
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
