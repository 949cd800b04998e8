package orderadmin

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/telegram/messages"
	"amele-bot/internal/telegram/states"
)

func newTestHandler(orderSvc *MockOrderService) (*Handler, *MockBotApi, *states.Manager) {
	bot := &MockBotApi{}
	sm := states.NewManager(0)
	h := NewHandler(bot, sm, orderSvc, slog.Default())
	return h, bot, sm
}

func textUpdate(chatID int64, text string) *tgbotapi.Update {
	return &tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: chatID},
			Text: text,
		},
	}
}

func TestSetPrice(t *testing.T) {
	orderSvc := NewMockOrderService("ORD000001")
	h, bot, sm := newTestHandler(orderSvc)

	if err := h.StartSetPrice(context.Background(), 99, "ORD000001"); err != nil {
		t.Fatalf("StartSetPrice: %v", err)
	}
	if got := sm.GetState(99); got != states.AdminWaitPrice {
		t.Fatalf("expected AdminWaitPrice, got %q", got)
	}

	// не число остается в состоянии
	if err := h.Handle(textUpdate(99, "дорого"), sm.GetState(99)); err != nil {
		t.Fatalf("Handle bad price: %v", err)
	}
	if got := sm.GetState(99); got != states.AdminWaitPrice {
		t.Fatalf("bad price should keep state, got %q", got)
	}
	if bot.LastText() != messages.PriceBadFormat {
		t.Fatalf("expected PriceBadFormat, got %q", bot.LastText())
	}

	if err := h.Handle(textUpdate(99, "15000"), sm.GetState(99)); err != nil {
		t.Fatalf("Handle price: %v", err)
	}
	if got := sm.GetState(99); got != states.StateNone {
		t.Fatalf("expected StateNone after price set, got %q", got)
	}

	params, ok := orderSvc.Updates["ORD000001"]
	if !ok || params.EstimatedPrice == nil || *params.EstimatedPrice != 15000 {
		t.Fatalf("unexpected update params: %+v", params)
	}
	if !strings.Contains(bot.LastText(), "15000") {
		t.Fatalf("confirmation should contain price, got %q", bot.LastText())
	}
}

func TestAddNote(t *testing.T) {
	orderSvc := NewMockOrderService("ORD000002")
	h, bot, sm := newTestHandler(orderSvc)

	if err := h.StartAddNote(context.Background(), 99, "ORD000002"); err != nil {
		t.Fatalf("StartAddNote: %v", err)
	}
	if got := sm.GetState(99); got != states.AdminWaitNote {
		t.Fatalf("expected AdminWaitNote, got %q", got)
	}

	if err := h.Handle(textUpdate(99, "клиент хочет оплату картой"), sm.GetState(99)); err != nil {
		t.Fatalf("Handle note: %v", err)
	}
	if got := sm.GetState(99); got != states.StateNone {
		t.Fatalf("expected StateNone after note, got %q", got)
	}

	params := orderSvc.Updates["ORD000002"]
	if params.AdminNotes == nil || *params.AdminNotes != "клиент хочет оплату картой" {
		t.Fatalf("unexpected update params: %+v", params)
	}
	if !strings.Contains(bot.LastText(), "ORD000002") {
		t.Fatalf("confirmation should contain order id, got %q", bot.LastText())
	}
}

func TestStart_UnknownOrder(t *testing.T) {
	orderSvc := NewMockOrderService()
	h, bot, sm := newTestHandler(orderSvc)

	if err := h.StartSetPrice(context.Background(), 99, "ORD999999"); err != nil {
		t.Fatalf("StartSetPrice: %v", err)
	}
	if got := sm.GetState(99); got != states.StateNone {
		t.Fatalf("unknown order should not enter flow, got %q", got)
	}
	if !strings.Contains(bot.LastText(), "ORD999999") {
		t.Fatalf("expected not-found message, got %q", bot.LastText())
	}
}
