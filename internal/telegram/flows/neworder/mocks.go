package neworder

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/infra/telegram"
	"amele-bot/internal/stories/orders"
)

// MockBotApi - мок Telegram Bot API
type MockBotApi struct {
	SentMessages []tgbotapi.Chattable
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages)}, nil
}

func (m *MockBotApi) LastText() string {
	if len(m.SentMessages) == 0 {
		return ""
	}
	if msg, ok := m.SentMessages[len(m.SentMessages)-1].(tgbotapi.MessageConfig); ok {
		return msg.Text
	}
	return ""
}

// MockOrderService - мок сервиса заказов
type MockOrderService struct {
	Created []orders.CreateParams
}

func (m *MockOrderService) Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error) {
	m.Created = append(m.Created, params)
	return &orders.Order{
		ID:          fmt.Sprintf("ORD%06d", len(m.Created)),
		UserID:      params.UserID,
		UserName:    params.UserName,
		BotType:     params.BotType,
		Idea:        params.Idea,
		BotToken:    params.BotToken,
		BotUsername: params.BotUsername,
		Status:      orders.StatusPending,
		CreatedAt:   time.Now(),
	}, nil
}

// MockValidator - мок проверки токена
type MockValidator struct {
	Result telegram.ValidationResult
	Err    error
	Calls  int
}

func (m *MockValidator) Validate(ctx context.Context, token string) (telegram.ValidationResult, error) {
	m.Calls++
	if m.Err != nil {
		return telegram.ValidationResult{}, m.Err
	}
	return m.Result, nil
}

// MockNotifier - мок уведомлений оператора
type MockNotifier struct {
	Orders []*orders.Order
}

func (m *MockNotifier) OrderCreated(order *orders.Order) {
	m.Orders = append(m.Orders, order)
}
