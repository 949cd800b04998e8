package neworder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/telegram/flows"
	"amele-bot/internal/telegram/messages"
	"amele-bot/internal/telegram/states"
)

type Handler struct {
	bot            botApi
	stateManager   stateManager
	orderService   orderService
	validator      tokenValidator
	notifier       notifier
	ideaMinLength  int
	tokenMinLength int
	logger         *slog.Logger
}

func NewHandler(
	bot botApi,
	sm stateManager,
	os orderService,
	validator tokenValidator,
	notifier notifier,
	ideaMinLength int,
	tokenMinLength int,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		stateManager:   sm,
		orderService:   os,
		validator:      validator,
		notifier:       notifier,
		ideaMinLength:  ideaMinLength,
		tokenMinLength: tokenMinLength,
		logger:         logger,
	}
}

// Start начинает flow оформления заказа
func (h *Handler) Start(chatID int64) error {
	h.stateManager.SetState(chatID, states.OrderWaitIdea, &flows.NewOrderFlowData{})

	msg := tgbotapi.NewMessage(chatID, messages.AskIdea)
	_, err := h.bot.Send(msg)
	return err
}

// Handle обрабатывает текущее состояние
func (h *Handler) Handle(update *tgbotapi.Update, state states.State) error {
	switch state {
	case states.OrderWaitIdea:
		return h.handleIdea(update)
	case states.OrderWaitToken:
		return h.handleToken(update)
	default:
		return fmt.Errorf("unknown state: %s", state)
	}
}

func (h *Handler) handleIdea(update *tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	chatID := update.Message.Chat.ID
	idea := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(idea) < h.ideaMinLength {
		msg := tgbotapi.NewMessage(chatID, messages.IdeaTooShort)
		_, err := h.bot.Send(msg)
		return err
	}

	flowData, err := h.stateManager.GetNewOrderData(chatID)
	if err != nil {
		// состояние потерялось, начинаем заново
		return h.Start(chatID)
	}
	flowData.Idea = idea
	h.stateManager.SetState(chatID, states.OrderWaitToken, flowData)

	msg := tgbotapi.NewMessage(chatID, messages.AskToken)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = h.bot.Send(msg)
	return err
}

func (h *Handler) handleToken(update *tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	ctx := context.Background()
	chatID := update.Message.Chat.ID
	token := strings.TrimSpace(update.Message.Text)

	if !strings.Contains(token, ":") || len(token) < h.tokenMinLength {
		msg := tgbotapi.NewMessage(chatID, messages.TokenBadFormat)
		msg.ParseMode = tgbotapi.ModeHTML
		_, err := h.bot.Send(msg)
		return err
	}

	result, err := h.validator.Validate(ctx, token)
	if err != nil {
		h.logger.Warn("проверка токена не удалась", slog.Any("error", err))
		msg := tgbotapi.NewMessage(chatID, messages.TokenCheckFailed)
		_, sendErr := h.bot.Send(msg)
		return sendErr
	}

	if !result.OK {
		msg := tgbotapi.NewMessage(chatID, messages.TokenRejected)
		_, err := h.bot.Send(msg)
		return err
	}

	flowData, err := h.stateManager.GetNewOrderData(chatID)
	if err != nil {
		return h.Start(chatID)
	}

	order, err := h.orderService.Create(ctx, orders.CreateParams{
		UserID:      update.Message.From.ID,
		UserName:    userName(update.Message.From),
		BotType:     orders.BotTypeCustom,
		Idea:        flowData.Idea,
		BotToken:    token,
		BotUsername: result.Username,
	})
	if err != nil {
		return fmt.Errorf("создание заказа: %w", err)
	}

	h.stateManager.Clear(chatID)
	h.notifier.OrderCreated(order)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(messages.OrderCreated, order.ID, order.BotUsername))
	_, err = h.bot.Send(msg)
	return err
}

func userName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
