package web

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/infra/telegram"
	"amele-bot/internal/stories/catalog"
	"amele-bot/internal/stories/orders"
	"amele-bot/internal/stories/users"
)

// MockUpdateRouter - мок роутера telegram update
type MockUpdateRouter struct {
	Updates []*tgbotapi.Update
}

func (m *MockUpdateRouter) Route(update *tgbotapi.Update) error {
	m.Updates = append(m.Updates, update)
	return nil
}

// MockOrderService - мок сервиса заказов
type MockOrderService struct {
	Orders  []*orders.Order
	Created []orders.CreateParams
}

func (m *MockOrderService) Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error) {
	m.Created = append(m.Created, params)
	order := &orders.Order{
		ID:             fmt.Sprintf("ORD%06d", len(m.Orders)+1),
		UserID:         params.UserID,
		UserName:       params.UserName,
		BotType:        params.BotType,
		Idea:           params.Idea,
		BotToken:       params.BotToken,
		BotUsername:    params.BotUsername,
		PremadeBotID:   params.PremadeBotID,
		EstimatedPrice: params.EstimatedPrice,
		Status:         orders.StatusPending,
		CreatedAt:      time.Now(),
	}
	m.Orders = append(m.Orders, order)
	return order, nil
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]*orders.Order, error) {
	return m.Orders, nil
}

func (m *MockOrderService) Stats(ctx context.Context) (*orders.Stats, error) {
	return &orders.Stats{
		TotalOrders: len(m.Orders),
		TotalUsers:  3,
		TotalBots:   3,
	}, nil
}

// MockUserService - мок сервиса пользователей
type MockUserService struct {
	Users map[string]*users.User
}

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make(map[string]*users.User)}
}

func (m *MockUserService) Register(ctx context.Context, email, username, fullName, phone string) (*users.User, error) {
	normalized := users.NormalizeEmail(email)
	if _, ok := m.Users[normalized]; ok {
		return nil, users.ErrEmailTaken
	}
	user := &users.User{
		ID:        int64(len(m.Users) + 1),
		Email:     normalized,
		Username:  username,
		FullName:  fullName,
		Phone:     phone,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.Users[normalized] = user
	return user, nil
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.Users[users.NormalizeEmail(email)], nil
}

func (m *MockUserService) Authenticate(ctx context.Context, email string) (*users.User, error) {
	return m.Users[users.NormalizeEmail(email)], nil
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

// MockVerifyService - мок сервиса кодов
type MockVerifyService struct {
	Requested []string
	Code      string
}

func (m *MockVerifyService) RequestCode(ctx context.Context, email string) error {
	m.Requested = append(m.Requested, email)
	return nil
}

func (m *MockVerifyService) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	return code == m.Code, nil
}

// MockTokenValidator - мок проверки бот-токенов
type MockTokenValidator struct {
	Result telegram.ValidationResult
	Err    error
	Calls  int
}

func (m *MockTokenValidator) Validate(ctx context.Context, token string) (telegram.ValidationResult, error) {
	m.Calls++
	if m.Err != nil {
		return telegram.ValidationResult{}, m.Err
	}
	return m.Result, nil
}

// MockNotifier - мок уведомлений
type MockNotifier struct {
	Orders []*orders.Order
}

func (m *MockNotifier) OrderCreated(order *orders.Order) {
	m.Orders = append(m.Orders, order)
}
