package orders

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

const (
	allOrdersCacheKey = "orders:all"
	statsCacheKey     = "orders:stats"

	allOrdersCacheTTL  = 30 * time.Second
	userOrdersCacheTTL = 60 * time.Second
	statsCacheTTL      = 60 * time.Second
)

// Service provides business logic for order operations
type Service struct {
	repo    Repository
	cache   Cache
	users   UserCounter
	catalog CatalogCounter
	logger  *slog.Logger
}

// NewService creates a new order service
func NewService(repo Repository, cache Cache, users UserCounter, catalog CatalogCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		users:   users,
		catalog: catalog,
		logger:  logger,
	}
}

func userOrdersCacheKey(userID int64) string {
	return fmt.Sprintf("orders:user:%d", userID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	order, err := s.repo.CreateOrder(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.invalidate(ctx, order.UserID)
	ordersCreated.WithLabelValues(string(order.BotType)).Inc()

	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
		slog.String("bot_type", string(order.BotType)))
	return order, nil
}

// Get возвращает (nil, nil) если заказ не найден
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]*Order, error) {
	var cached []*Order
	if s.cache.Get(ctx, allOrdersCacheKey, &cached) {
		return cached, nil
	}

	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	s.cache.Set(ctx, allOrdersCacheKey, list, allOrdersCacheTTL)
	return list, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	key := userOrdersCacheKey(userID)

	var cached []*Order
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}

	s.cache.Set(ctx, key, list, userOrdersCacheTTL)
	return list, nil
}

// ListRecent возвращает последние заказы, новые первыми
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Order, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recent := make([]*Order, len(all))
	copy(recent, all)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, notes string) (bool, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return false, nil
	}

	ok, err := s.repo.UpdateOrderStatus(ctx, id, status, notes)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	if ok {
		s.invalidate(ctx, order.UserID)
		s.logger.Info("order status updated",
			slog.String("order_id", id),
			slog.String("status", string(status)))
	}
	return ok, nil
}

func (s *Service) UpdateDetails(ctx context.Context, id string, params UpdateDetailsParams) (bool, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return false, nil
	}

	ok, err := s.repo.UpdateOrderDetails(ctx, id, params)
	if err != nil {
		return false, fmt.Errorf("update order details: %w", err)
	}
	if ok {
		s.invalidate(ctx, order.UserID)
	}
	return ok, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var cached Stats
	if s.cache.Get(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	all, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	stats := Stats{TotalOrders: len(all)}
	for _, o := range all {
		switch o.Status {
		case StatusPending:
			stats.PendingOrders++
		case StatusProcessing:
			stats.ProcessingOrders++
		case StatusCompleted:
			stats.CompletedOrders++
		}
		if o.EstimatedPrice != nil {
			stats.EstimatedRevenue += *o.EstimatedPrice
		}
	}

	if s.users != nil {
		n, err := s.users.CountUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		stats.TotalUsers = n
	}
	if s.catalog != nil {
		n, err := s.catalog.CountBots(ctx)
		if err != nil {
			return nil, fmt.Errorf("count bots: %w", err)
		}
		stats.TotalBots = n
	}

	s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL)
	return &stats, nil
}

func (s *Service) invalidate(ctx context.Context, userID int64) {
	s.cache.Delete(ctx, allOrdersCacheKey, statsCacheKey, userOrdersCacheKey(userID))
}
