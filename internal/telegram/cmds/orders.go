package cmds

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/telegram/messages"
)

const recentOrdersLimit = 10

// OrdersCommand показывает админу последние заказы с кнопками действий.
type OrdersCommand struct {
	bot      botApi
	orders   orderAdminService
	notifier statusNotifier
}

type orderAdminService interface {
	Get(ctx context.Context, id string) (*orders.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*orders.Order, error)
	UpdateStatus(ctx context.Context, id string, status orders.Status, notes string) (bool, error)
}

type statusNotifier interface {
	StatusChanged(order *orders.Order, old orders.Status)
}

func NewOrdersCommand(bot botApi, orderService orderAdminService, notifier statusNotifier) *OrdersCommand {
	return &OrdersCommand{bot: bot, orders: orderService, notifier: notifier}
}

func (c *OrdersCommand) Execute(ctx context.Context, chatID int64) error {
	list, err := c.orders.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Ошибка при получении заказов")
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("list recent orders: %w", err)
	}

	if len(list) == 0 {
		msg := tgbotapi.NewMessage(chatID, "📭 Заказов пока нет.")
		_, err := c.bot.Send(msg)
		return err
	}

	for _, order := range list {
		msg := tgbotapi.NewMessage(chatID, formatAdminOrder(order))
		keyboard := orderKeyboard(order)
		msg.ReplyMarkup = keyboard
		if _, err := c.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// HandleCallback обрабатывает кнопки adm_st:<status>:<id>
func (c *OrdersCommand) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	parts := strings.SplitN(query.Data, ":", 3)
	if len(parts) != 3 || parts[0] != "adm_st" {
		return fmt.Errorf("unexpected callback data: %s", query.Data)
	}

	status, ok := orders.ParseStatus(parts[1])
	if !ok {
		return fmt.Errorf("unknown status in callback: %s", parts[1])
	}
	orderID := parts[2]

	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		callback := tgbotapi.NewCallback(query.ID, fmt.Sprintf(messages.OrderNotFound, orderID))
		_, _ = c.bot.Request(callback)
		return nil
	}
	oldStatus := order.Status

	found, err := c.orders.UpdateStatus(ctx, orderID, status, "")
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !found {
		callback := tgbotapi.NewCallback(query.ID, fmt.Sprintf(messages.OrderNotFound, orderID))
		_, _ = c.bot.Request(callback)
		return nil
	}

	order.Status = status
	c.notifier.StatusChanged(order, oldStatus)

	callback := tgbotapi.NewCallback(query.ID, fmt.Sprintf("✅ %s: %s", orderID, statusTitle(status)))
	_, _ = c.bot.Request(callback)

	if query.Message != nil {
		updated, err := c.orders.Get(ctx, orderID)
		if err == nil && updated != nil {
			editMsg := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, formatAdminOrder(updated))
			keyboard := orderKeyboard(updated)
			editMsg.ReplyMarkup = &keyboard
			_, _ = c.bot.Send(editMsg)
		}
	}
	return nil
}

func formatAdminOrder(order *orders.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", statusEmoji(order.Status), order.ID, statusTitle(order.Status))
	fmt.Fprintf(&b, "👤 %s (id %d)\n", order.UserName, order.UserID)
	if order.BotType == orders.BotTypePremade {
		fmt.Fprintf(&b, "📦 Готовый бот: %s\n", order.PremadeBotID)
	}
	if order.BotUsername != "" {
		fmt.Fprintf(&b, "🤖 @%s\n", order.BotUsername)
	}
	if order.Idea != "" {
		fmt.Fprintf(&b, "💡 %s\n", order.Idea)
	}
	if order.EstimatedPrice != nil {
		fmt.Fprintf(&b, "💰 %d ₽\n", *order.EstimatedPrice)
	}
	if order.AdminNotes != "" {
		fmt.Fprintf(&b, "📝 %s\n", order.AdminNotes)
	}
	fmt.Fprintf(&b, "📅 %s", formatDate(order.CreatedAt))
	return b.String()
}

func orderKeyboard(order *orders.Order) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔧 В работу", "adm_st:processing:"+order.ID),
			tgbotapi.NewInlineKeyboardButtonData("✅ Выполнен", "adm_st:completed:"+order.ID),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Отмена", "adm_st:cancelled:"+order.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Цена", "adm_price:"+order.ID),
			tgbotapi.NewInlineKeyboardButtonData("📝 Заметка", "adm_note:"+order.ID),
		),
	)
}
