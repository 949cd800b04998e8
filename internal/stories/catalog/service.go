package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Service хранит каталог готовых ботов в памяти.
type Service struct {
	mu    sync.RWMutex
	bots  map[string]*PremadeBot
	order []string
	now   func() time.Time
}

func NewService() *Service {
	return &Service{
		bots: make(map[string]*PremadeBot),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type AddParams struct {
	Name        string
	Description string
	Features    []string
	Price       int64
	ImageURL    string
	Category    string
}

func (s *Service) AddBot(ctx context.Context, params AddParams) (*PremadeBot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bot := &PremadeBot{
		ID:          fmt.Sprintf("BOT%04d", len(s.bots)+1),
		Name:        params.Name,
		Description: params.Description,
		Features:    params.Features,
		Price:       params.Price,
		ImageURL:    params.ImageURL,
		Category:    params.Category,
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	s.bots[bot.ID] = bot
	s.order = append(s.order, bot.ID)

	copied := *bot
	return &copied, nil
}

// GetBot возвращает (nil, nil) если бот не найден.
func (s *Service) GetBot(ctx context.Context, id string) (*PremadeBot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bot, ok := s.bots[id]
	if !ok {
		return nil, nil
	}
	copied := *bot
	return &copied, nil
}

func (s *Service) ListBots(ctx context.Context) ([]*PremadeBot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*PremadeBot, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.bots[id]
		list = append(list, &copied)
	}
	return list, nil
}

func (s *Service) CountBots(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bots), nil
}

// Seed заполняет каталог стартовыми ботами. Повторный вызов дописывает,
// поэтому вызывается один раз на старте.
func (s *Service) Seed(ctx context.Context) error {
	samples := []AddParams{
		{
			Name:        "Channel Manager Bot",
			Description: "Автоматическое управление каналом: отложенные посты, статистика, модерация",
			Features:    []string{"Отложенные посты", "Управление подписчиками", "Расширенная статистика", "Автоответы"},
			Price:       150000,
			Category:    "management",
		},
		{
			Name:        "Shop Bot",
			Description: "Интернет-магазин в Telegram с корзиной и оплатой",
			Features:    []string{"Корзина", "Прием платежей", "Управление товарами", "Отслеживание заказов"},
			Price:       250000,
			Category:    "commerce",
		},
		{
			Name:        "Support Bot",
			Description: "Тикет-система поддержки с автоответами",
			Features:    []string{"Тикеты", "Автоответы", "Управление пользователями", "Статистика обращений"},
			Price:       120000,
			Category:    "support",
		},
	}

	for _, sample := range samples {
		if _, err := s.AddBot(ctx, sample); err != nil {
			return err
		}
	}
	return nil
}
