package cmds

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
)

type StatsCommand struct {
	bot    botApi
	orders statsProvider
}

type statsProvider interface {
	Stats(ctx context.Context) (*orders.Stats, error)
}

func NewStatsCommand(bot botApi, orderService statsProvider) *StatsCommand {
	return &StatsCommand{bot: bot, orders: orderService}
}

func (c *StatsCommand) Execute(ctx context.Context, chatID int64) error {
	stats, err := c.orders.Stats(ctx)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Ошибка при получении статистики")
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("get stats: %w", err)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "stats_refresh"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, FormatStats(stats))
	msg.ReplyMarkup = keyboard
	_, err = c.bot.Send(msg)
	return err
}

// Refresh перерисовывает сообщение со статистикой по кнопке
func (c *StatsCommand) Refresh(ctx context.Context, chatID int64, messageID int) error {
	stats, err := c.orders.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "stats_refresh"),
		),
	)

	editMsg := tgbotapi.NewEditMessageText(chatID, messageID, FormatStats(stats))
	editMsg.ReplyMarkup = &keyboard
	_, err = c.bot.Send(editMsg)
	return err
}

// FormatStats собирает текст сводки. Используется и для дневного дайджеста.
func FormatStats(stats *orders.Stats) string {
	return fmt.Sprintf(
		"📊 Статистика на %s\n\n"+
			"Всего заказов: %d\n"+
			"⏳ В очереди: %d\n"+
			"🔧 В работе: %d\n"+
			"✅ Выполнено: %d\n\n"+
			"👥 Пользователей: %d\n"+
			"🤖 Ботов в каталоге: %d\n"+
			"💰 Оценок на сумму: %d ₽",
		time.Now().Format("02.01.2006 15:04"),
		stats.TotalOrders,
		stats.PendingOrders,
		stats.ProcessingOrders,
		stats.CompletedOrders,
		stats.TotalUsers,
		stats.TotalBots,
		stats.EstimatedRevenue,
	)
}
