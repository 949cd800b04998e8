package orders

import (
	"context"
	"time"
)

type (
	Repository interface {
		CreateOrder(ctx context.Context, params CreateParams) (*Order, error)
		GetOrder(ctx context.Context, id string) (*Order, error)
		ListOrders(ctx context.Context) ([]*Order, error)
		ListOrdersByUser(ctx context.Context, userID int64) ([]*Order, error)
		UpdateOrderStatus(ctx context.Context, id string, status Status, notes string) (bool, error)
		UpdateOrderDetails(ctx context.Context, id string, params UpdateDetailsParams) (bool, error)
	}

	// Cache не возвращает ошибок: промах и недоступность неотличимы для вызывающего
	Cache interface {
		Get(ctx context.Context, key string, dest any) bool
		Set(ctx context.Context, key string, value any, ttl time.Duration)
		Delete(ctx context.Context, keys ...string)
	}

	UserCounter interface {
		CountUsers(ctx context.Context) (int, error)
	}

	CatalogCounter interface {
		CountBots(ctx context.Context) (int, error)
	}
)
