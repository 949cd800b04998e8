package orders_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"

	"amele-bot/internal/storage/memory"
	"amele-bot/internal/stories/orders"
)

type fakeCache struct {
	values  map[string][]byte
	hits    int
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) bool {
	raw, ok := c.values[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	c.hits++
	return true
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, _ := json.Marshal(value)
	c.values[key] = raw
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		delete(c.values, key)
		c.deletes = append(c.deletes, key)
	}
}

type fixedCounter int

func (c fixedCounter) CountUsers(ctx context.Context) (int, error) { return int(c), nil }
func (c fixedCounter) CountBots(ctx context.Context) (int, error)  { return int(c), nil }

func newTestService() (*orders.Service, *fakeCache) {
	cache := newFakeCache()
	svc := orders.NewService(memory.New(), cache, fixedCounter(5), fixedCounter(3), slog.Default())
	return svc, cache
}

func TestService_ListAllCaching(t *testing.T) {
	ctx := context.Background()
	svc, cache := newTestService()

	if _, err := svc.Create(ctx, orders.CreateParams{UserID: 1, BotType: orders.BotTypeCustom, Idea: "бот"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 order, got %d", len(first))
	}

	// второй вызов из кэша
	if _, err := svc.ListAll(ctx); err != nil {
		t.Fatalf("ListAll cached: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", cache.hits)
	}

	// создание заказа сбрасывает кэш
	if _, err := svc.Create(ctx, orders.CreateParams{UserID: 1, BotType: orders.BotTypeCustom, Idea: "еще"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll after create: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("stale cache: expected 2 orders, got %d", len(list))
	}
}

func TestService_UpdateStatusInvalidates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	order, err := svc.Create(ctx, orders.CreateParams{UserID: 7, BotType: orders.BotTypeCustom})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Stats(ctx); err != nil {
		t.Fatalf("Stats: %v", err)
	}

	found, err := svc.UpdateStatus(ctx, order.ID, orders.StatusProcessing, "")
	if err != nil || !found {
		t.Fatalf("UpdateStatus: found=%v err=%v", found, err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats after update: %v", err)
	}
	if stats.ProcessingOrders != 1 || stats.PendingOrders != 0 {
		t.Fatalf("stale stats: %+v", stats)
	}

	// несуществующий заказ
	found, err = svc.UpdateStatus(ctx, "ORD999999", orders.StatusCompleted, "")
	if err != nil || found {
		t.Fatalf("expected (false, nil) for missing order, got found=%v err=%v", found, err)
	}
}

func TestService_StatsRevenue(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, err := svc.Create(ctx, orders.CreateParams{UserID: 1, BotType: orders.BotTypeCustom})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, orders.CreateParams{UserID: 2, BotType: orders.BotTypePremade})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, orders.CreateParams{UserID: 3, BotType: orders.BotTypeCustom}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateDetails(ctx, first.ID, orders.UpdateDetailsParams{EstimatedPrice: lo.ToPtr(int64(15000))}); err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	if _, err := svc.UpdateDetails(ctx, second.ID, orders.UpdateDetailsParams{EstimatedPrice: lo.ToPtr(int64(250000))}); err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalOrders != 3 || stats.EstimatedRevenue != 265000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalUsers != 5 || stats.TotalBots != 3 {
		t.Fatalf("counters not wired: %+v", stats)
	}
}

func TestService_ListRecent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, orders.CreateParams{UserID: int64(i), BotType: orders.BotTypeCustom}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	recent, err := svc.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.After(recent[i-1].CreatedAt) {
			t.Fatal("orders not sorted newest first")
		}
	}
}
