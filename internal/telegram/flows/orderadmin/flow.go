package orderadmin

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/telegram/flows"
	"amele-bot/internal/telegram/messages"
	"amele-bot/internal/telegram/states"
)

// Handler ведет диалоги админа: оценка стоимости и заметки к заказу.
type Handler struct {
	bot          botApi
	stateManager stateManager
	orderService orderService
	logger       *slog.Logger
}

func NewHandler(bot botApi, sm stateManager, os orderService, logger *slog.Logger) *Handler {
	return &Handler{
		bot:          bot,
		stateManager: sm,
		orderService: os,
		logger:       logger,
	}
}

// StartSetPrice начинает flow установки цены
func (h *Handler) StartSetPrice(ctx context.Context, chatID int64, orderID string) error {
	return h.start(ctx, chatID, orderID, states.AdminWaitPrice, messages.AskPrice)
}

// StartAddNote начинает flow добавления заметки
func (h *Handler) StartAddNote(ctx context.Context, chatID int64, orderID string) error {
	return h.start(ctx, chatID, orderID, states.AdminWaitNote, messages.AskNote)
}

func (h *Handler) start(ctx context.Context, chatID int64, orderID string, state states.State, prompt string) error {
	order, err := h.orderService.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("получение заказа: %w", err)
	}
	if order == nil {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(messages.OrderNotFound, orderID))
		_, err := h.bot.Send(msg)
		return err
	}

	h.stateManager.SetState(chatID, state, &flows.OrderAdminFlowData{OrderID: orderID})

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(prompt, orderID))
	_, err = h.bot.Send(msg)
	return err
}

// Handle обрабатывает текущее состояние
func (h *Handler) Handle(update *tgbotapi.Update, state states.State) error {
	switch state {
	case states.AdminWaitPrice:
		return h.handlePrice(update)
	case states.AdminWaitNote:
		return h.handleNote(update)
	default:
		return fmt.Errorf("unknown state: %s", state)
	}
}

func (h *Handler) handlePrice(update *tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	ctx := context.Background()
	chatID := update.Message.Chat.ID

	price, err := strconv.ParseInt(strings.TrimSpace(update.Message.Text), 10, 64)
	if err != nil || price < 0 {
		msg := tgbotapi.NewMessage(chatID, messages.PriceBadFormat)
		_, err := h.bot.Send(msg)
		return err
	}

	flowData, err := h.stateManager.GetOrderAdminData(chatID)
	if err != nil {
		h.stateManager.Clear(chatID)
		return fmt.Errorf("данные флоу: %w", err)
	}

	found, err := h.orderService.UpdateDetails(ctx, flowData.OrderID, orders.UpdateDetailsParams{
		EstimatedPrice: lo.ToPtr(price),
	})
	if err != nil {
		return fmt.Errorf("обновление заказа: %w", err)
	}

	h.stateManager.Clear(chatID)

	text := fmt.Sprintf(messages.PriceSet, flowData.OrderID, price)
	if !found {
		text = fmt.Sprintf(messages.OrderNotFound, flowData.OrderID)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err = h.bot.Send(msg)
	return err
}

func (h *Handler) handleNote(update *tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	ctx := context.Background()
	chatID := update.Message.Chat.ID
	note := strings.TrimSpace(update.Message.Text)

	flowData, err := h.stateManager.GetOrderAdminData(chatID)
	if err != nil {
		h.stateManager.Clear(chatID)
		return fmt.Errorf("данные флоу: %w", err)
	}

	found, err := h.orderService.UpdateDetails(ctx, flowData.OrderID, orders.UpdateDetailsParams{
		AdminNotes: lo.ToPtr(note),
	})
	if err != nil {
		return fmt.Errorf("обновление заказа: %w", err)
	}

	h.stateManager.Clear(chatID)

	text := fmt.Sprintf(messages.NoteAdded, flowData.OrderID)
	if !found {
		text = fmt.Sprintf(messages.OrderNotFound, flowData.OrderID)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err = h.bot.Send(msg)
	return err
}
