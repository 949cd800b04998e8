package orderadmin

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

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
	Orders  map[string]*orders.Order
	Updates map[string]orders.UpdateDetailsParams
}

func NewMockOrderService(ids ...string) *MockOrderService {
	m := &MockOrderService{
		Orders:  make(map[string]*orders.Order),
		Updates: make(map[string]orders.UpdateDetailsParams),
	}
	for _, id := range ids {
		m.Orders[id] = &orders.Order{
			ID:        id,
			UserID:    100,
			BotType:   orders.BotTypeCustom,
			Status:    orders.StatusPending,
			CreatedAt: time.Now(),
		}
	}
	return m
}

func (m *MockOrderService) Get(ctx context.Context, orderID string) (*orders.Order, error) {
	return m.Orders[orderID], nil
}

func (m *MockOrderService) UpdateDetails(ctx context.Context, orderID string, params orders.UpdateDetailsParams) (bool, error) {
	if _, ok := m.Orders[orderID]; !ok {
		return false, nil
	}
	m.Updates[orderID] = params
	return true, nil
}
