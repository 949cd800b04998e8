package cmds

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/catalog"
	"amele-bot/internal/stories/orders"
)

// MockBotApi - мок Telegram Bot API
type MockBotApi struct {
	SentMessages []tgbotapi.Chattable
	Requests     []tgbotapi.Chattable
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages)}, nil
}

func (m *MockBotApi) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
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

// MockCatalogService - мок каталога
type MockCatalogService struct {
	Bots []*catalog.PremadeBot
}

func (m *MockCatalogService) GetBot(ctx context.Context, id string) (*catalog.PremadeBot, error) {
	for _, bot := range m.Bots {
		if bot.ID == id {
			return bot, nil
		}
	}
	return nil, nil
}

func (m *MockCatalogService) ListBots(ctx context.Context) ([]*catalog.PremadeBot, error) {
	return m.Bots, nil
}

// MockOrderCreator - мок создания заказов
type MockOrderCreator struct {
	Created []orders.CreateParams
}

func (m *MockOrderCreator) Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error) {
	m.Created = append(m.Created, params)
	return &orders.Order{
		ID:             fmt.Sprintf("ORD%06d", len(m.Created)),
		UserID:         params.UserID,
		UserName:       params.UserName,
		BotType:        params.BotType,
		Idea:           params.Idea,
		PremadeBotID:   params.PremadeBotID,
		EstimatedPrice: params.EstimatedPrice,
		Status:         orders.StatusPending,
		CreatedAt:      time.Now(),
	}, nil
}

// MockCreatedNotifier - мок уведомлений оператора
type MockCreatedNotifier struct {
	Orders []*orders.Order
}

func (m *MockCreatedNotifier) OrderCreated(order *orders.Order) {
	m.Orders = append(m.Orders, order)
}
