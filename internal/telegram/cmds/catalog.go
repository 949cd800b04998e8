package cmds

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"amele-bot/internal/stories/catalog"
	"amele-bot/internal/stories/orders"
)

// CatalogCommand показывает каталог готовых ботов и оформляет их покупку.
type CatalogCommand struct {
	bot      botApi
	catalog  catalogService
	orders   orderCreator
	notifier createdNotifier
}

type catalogService interface {
	GetBot(ctx context.Context, id string) (*catalog.PremadeBot, error)
	ListBots(ctx context.Context) ([]*catalog.PremadeBot, error)
}

type orderCreator interface {
	Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error)
}

type createdNotifier interface {
	OrderCreated(order *orders.Order)
}

func NewCatalogCommand(bot botApi, catalogService catalogService, orderService orderCreator, notifier createdNotifier) *CatalogCommand {
	return &CatalogCommand{
		bot:      bot,
		catalog:  catalogService,
		orders:   orderService,
		notifier: notifier,
	}
}

func (c *CatalogCommand) Execute(ctx context.Context, chatID int64) error {
	bots, err := c.catalog.ListBots(ctx)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Ошибка при получении каталога")
		_, _ = c.bot.Send(msg)
		return fmt.Errorf("list bots: %w", err)
	}

	if len(bots) == 0 {
		msg := tgbotapi.NewMessage(chatID, "📭 Каталог пока пуст.")
		_, err := c.bot.Send(msg)
		return err
	}

	for _, bot := range bots {
		msg := tgbotapi.NewMessage(chatID, formatPremadeBot(bot))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🛒 Заказать", "buy:"+bot.ID),
			),
		)
		if _, err := c.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// HandleBuy обрабатывает кнопку buy:<id>
func (c *CatalogCommand) HandleBuy(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	botID := strings.TrimPrefix(query.Data, "buy:")
	chatID := query.Message.Chat.ID

	bot, err := c.catalog.GetBot(ctx, botID)
	if err != nil {
		return fmt.Errorf("get bot: %w", err)
	}
	if bot == nil {
		callback := tgbotapi.NewCallback(query.ID, "❓ Бот не найден")
		_, _ = c.bot.Request(callback)
		return nil
	}

	order, err := c.orders.Create(ctx, orders.CreateParams{
		UserID:         query.From.ID,
		UserName:       query.From.UserName,
		BotType:        orders.BotTypePremade,
		PremadeBotID:   bot.ID,
		Idea:           bot.Name,
		EstimatedPrice: lo.ToPtr(bot.Price),
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	c.notifier.OrderCreated(order)

	callback := tgbotapi.NewCallback(query.ID, "✅ Заказ оформлен")
	_, _ = c.bot.Request(callback)

	text := fmt.Sprintf(
		"✅ Заказ %s принят!\n\n📦 %s\n💰 %d ₽\n\nМы свяжемся с вами для настройки.",
		order.ID, bot.Name, bot.Price,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	_, err = c.bot.Send(msg)
	return err
}

func formatPremadeBot(bot *catalog.PremadeBot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🤖 %s (%s)\n\n%s\n", bot.Name, bot.ID, bot.Description)
	if len(bot.Features) > 0 {
		b.WriteString("\nВозможности:\n")
		for _, f := range bot.Features {
			fmt.Fprintf(&b, "• %s\n", f)
		}
	}
	fmt.Fprintf(&b, "\n💰 %d ₽", bot.Price)
	return b.String()
}
