package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/users"
	"amele-bot/internal/telegram/cmds"
	"amele-bot/internal/telegram/flows/neworder"
	"amele-bot/internal/telegram/flows/orderadmin"
	"amele-bot/internal/telegram/messages"
	"amele-bot/internal/telegram/states"
)

type Router struct {
	bot          botApi
	stateManager stateManager
	userService  userService
	adminChecker adminChecker
	logger       *slog.Logger

	// Handlers
	newOrderHandler   *neworder.Handler
	orderAdminHandler *orderadmin.Handler
	myOrdersCommand   *cmds.MyOrdersCommand
	statsCommand      *cmds.StatsCommand
	ordersCommand     *cmds.OrdersCommand
	catalogCommand    *cmds.CatalogCommand
}

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type stateManager interface {
	GetState(chatID int64) states.State
	SetState(chatID int64, state states.State, data any)
	Clear(chatID int64)
}

type userService interface {
	GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, username, fullName string) (*users.User, error)
}

type adminChecker interface {
	IsAdmin(telegramID int64) bool
}

func NewRouter(
	bot botApi,
	sm stateManager,
	us userService,
	ac adminChecker,
	newOrderHandler *neworder.Handler,
	orderAdminHandler *orderadmin.Handler,
	myOrdersCommand *cmds.MyOrdersCommand,
	statsCommand *cmds.StatsCommand,
	ordersCommand *cmds.OrdersCommand,
	catalogCommand *cmds.CatalogCommand,
	logger *slog.Logger,
) *Router {
	return &Router{
		bot:               bot,
		stateManager:      sm,
		userService:       us,
		adminChecker:      ac,
		newOrderHandler:   newOrderHandler,
		orderAdminHandler: orderAdminHandler,
		myOrdersCommand:   myOrdersCommand,
		statsCommand:      statsCommand,
		ordersCommand:     ordersCommand,
		catalogCommand:    catalogCommand,
		logger:            logger,
	}
}

// Route обрабатывает один update. Ошибки логируются, но не прерывают поллинг.
func (r *Router) Route(update *tgbotapi.Update) error {
	err := r.route(update)
	if err != nil {
		routeErrors.Inc()
		r.logger.Error("ошибка обработки update",
			slog.Int("update_id", update.UpdateID),
			slog.Any("error", err),
		)
	}
	return err
}

func (r *Router) route(update *tgbotapi.Update) error {
	ctx := context.Background()

	telegramID := extractUserID(update)
	if telegramID == 0 {
		return nil // некорректный update
	}
	chatID := extractChatID(update)

	// Регистрируем пользователя при любом взаимодействии
	if _, err := r.userService.GetOrCreateUserByTelegramID(ctx, telegramID, extractUsername(update), extractFullName(update)); err != nil {
		r.logger.Warn("не удалось зарегистрировать пользователя", slog.Any("error", err))
	}

	// ПРИОРИТЕТ: команды отменяют любой флоу
	if update.Message != nil && update.Message.IsCommand() {
		updatesRouted.WithLabelValues("command").Inc()
		r.stateManager.Clear(chatID)
		return r.handleCommand(ctx, update, telegramID)
	}

	if update.CallbackQuery != nil {
		updatesRouted.WithLabelValues("callback").Inc()
		return r.handleCallback(ctx, update, telegramID)
	}

	updatesRouted.WithLabelValues("message").Inc()

	state := r.stateManager.GetState(chatID)

	// Флоу оформления заказа
	if strings.HasPrefix(string(state), "ord_") {
		return r.newOrderHandler.Handle(update, state)
	}

	// Админские флоу (цена, заметка)
	if strings.HasPrefix(string(state), "adm_") {
		if !r.adminChecker.IsAdmin(telegramID) {
			r.stateManager.Clear(chatID)
			return r.send(chatID, messages.NotAdmin)
		}
		return r.orderAdminHandler.Handle(update, state)
	}

	// Нет активного состояния
	return r.send(chatID, messages.UnknownCommand)
}

func (r *Router) handleCommand(ctx context.Context, update *tgbotapi.Update, telegramID int64) error {
	chatID := update.Message.Chat.ID

	switch update.Message.Command() {
	case "start":
		return r.sendWelcome(chatID)
	case "help":
		return r.send(chatID, messages.Help)
	case "myorders":
		return r.myOrdersCommand.Execute(ctx, telegramID, chatID)
	case "cancel":
		// Clear уже вызван выше, осталось подтвердить
		return r.send(chatID, messages.Cancelled)
	case "stats":
		if !r.adminChecker.IsAdmin(telegramID) {
			return r.send(chatID, messages.NotAdmin)
		}
		return r.statsCommand.Execute(ctx, chatID)
	case "orders":
		if !r.adminChecker.IsAdmin(telegramID) {
			return r.send(chatID, messages.NotAdmin)
		}
		return r.ordersCommand.Execute(ctx, chatID)
	default:
		return r.send(chatID, messages.UnknownCommand)
	}
}

func (r *Router) handleCallback(ctx context.Context, update *tgbotapi.Update, telegramID int64) error {
	query := update.CallbackQuery
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == "custom_order":
		r.answerCallback(query.ID, "")
		return r.newOrderHandler.Start(chatID)

	case data == "premade_bots":
		r.answerCallback(query.ID, "")
		return r.catalogCommand.Execute(ctx, chatID)

	case strings.HasPrefix(data, "buy:"):
		return r.catalogCommand.HandleBuy(ctx, query)

	case data == "cancel" || data == "main_menu":
		r.stateManager.Clear(chatID)
		r.answerCallback(query.ID, "")
		return r.sendWelcome(chatID)

	case data == "stats_refresh":
		if !r.adminChecker.IsAdmin(telegramID) {
			r.answerCallback(query.ID, "❌ Нет прав")
			return nil
		}
		r.answerCallback(query.ID, "✅ Обновлено")
		return r.statsCommand.Refresh(ctx, chatID, query.Message.MessageID)

	case strings.HasPrefix(data, "adm_st:"):
		if !r.adminChecker.IsAdmin(telegramID) {
			r.answerCallback(query.ID, "❌ Нет прав")
			return nil
		}
		return r.ordersCommand.HandleCallback(ctx, query)

	case strings.HasPrefix(data, "adm_price:"):
		if !r.adminChecker.IsAdmin(telegramID) {
			r.answerCallback(query.ID, "❌ Нет прав")
			return nil
		}
		r.answerCallback(query.ID, "")
		return r.orderAdminHandler.StartSetPrice(ctx, chatID, strings.TrimPrefix(data, "adm_price:"))

	case strings.HasPrefix(data, "adm_note:"):
		if !r.adminChecker.IsAdmin(telegramID) {
			r.answerCallback(query.ID, "❌ Нет прав")
			return nil
		}
		r.answerCallback(query.ID, "")
		return r.orderAdminHandler.StartAddNote(ctx, chatID, strings.TrimPrefix(data, "adm_note:"))
	}

	r.answerCallback(query.ID, "")
	return nil
}

func (r *Router) sendWelcome(chatID int64) error {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Готовые боты", "premade_bots"),
			tgbotapi.NewInlineKeyboardButtonData("✨ Свой бот", "custom_order"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, messages.Welcome)
	msg.ReplyMarkup = keyboard
	_, err := r.bot.Send(msg)
	return err
}

func (r *Router) send(chatID int64, text string) error {
	if chatID == 0 {
		return nil
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, _ = r.bot.Request(callback)
}

func extractUserID(update *tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

func extractChatID(update *tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func extractUsername(update *tgbotapi.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.UserName
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.UserName
	}
	return ""
}

func extractFullName(update *tgbotapi.Update) string {
	var u *tgbotapi.User
	if update.Message != nil {
		u = update.Message.From
	} else if update.CallbackQuery != nil {
		u = update.CallbackQuery.From
	}
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
