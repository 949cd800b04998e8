package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"amele-bot/internal/stories/orders"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var calls int
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return s
}

func createOrder(t *testing.T, s *Storage, userID int64, idea string) *orders.Order {
	t.Helper()
	order, err := s.CreateOrder(context.Background(), orders.CreateParams{
		UserID:   userID,
		UserName: fmt.Sprintf("user-%d", userID),
		BotType:  orders.BotTypeCustom,
		Idea:     idea,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return order
}

func TestCreateOrderSequentialIDs(t *testing.T) {
	s := newTestStorage(t)

	want := []string{"ORD000001", "ORD000002", "ORD000003"}
	for i, expected := range want {
		order := createOrder(t, s, int64(i+1), "bot idea long enough")
		if order.ID != expected {
			t.Errorf("order %d: ID = %q, want %q", i, order.ID, expected)
		}
		if order.Status != orders.StatusPending {
			t.Errorf("order %d: status = %q, want pending", i, order.Status)
		}
	}
}

func TestCreateOrderConcurrentIDsUnique(t *testing.T) {
	s := New()
	const n = 100

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			order, err := s.CreateOrder(context.Background(), orders.CreateParams{
				UserID: userID,
				Idea:   "concurrent idea",
			})
			if err != nil {
				t.Errorf("CreateOrder: %v", err)
				return
			}
			ids <- order.ID
		}(int64(i))
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	var collected []string
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate order ID %q", id)
		}
		seen[id] = true
		collected = append(collected, id)
	}
	if len(collected) != n {
		t.Fatalf("created %d orders, want %d", len(collected), n)
	}

	sort.Strings(collected)
	if collected[0] != "ORD000001" || collected[n-1] != fmt.Sprintf("ORD%06d", n) {
		t.Errorf("ID range [%s..%s], want [ORD000001..ORD%06d]", collected[0], collected[n-1], n)
	}
}

func TestGetOrderMissing(t *testing.T) {
	s := newTestStorage(t)

	order, err := s.GetOrder(context.Background(), "ORD999999")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order != nil {
		t.Errorf("GetOrder(missing) = %+v, want nil", order)
	}
}

func TestListOrdersByUserSubsetInCreationOrder(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createOrder(t, s, 1, "first idea from user one")
	createOrder(t, s, 2, "idea from user two")
	createOrder(t, s, 1, "second idea from user one")

	userOrders, err := s.ListOrdersByUser(ctx, 1)
	if err != nil {
		t.Fatalf("ListOrdersByUser: %v", err)
	}
	if len(userOrders) != 2 {
		t.Fatalf("got %d orders for user 1, want 2", len(userOrders))
	}
	if userOrders[0].ID != "ORD000001" || userOrders[1].ID != "ORD000003" {
		t.Errorf("user orders = [%s %s], want [ORD000001 ORD000003]", userOrders[0].ID, userOrders[1].ID)
	}

	all, err := s.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	var filtered []string
	for _, o := range all {
		if o.UserID == 1 {
			filtered = append(filtered, o.ID)
		}
	}
	if len(filtered) != len(userOrders) {
		t.Errorf("ListOrdersByUser and filtered ListOrders disagree: %v vs %d", filtered, len(userOrders))
	}
}

func TestUpdateStatusMissingOrderMutatesNothing(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createOrder(t, s, 1, "the only order in store")

	ok, err := s.UpdateOrderStatus(ctx, "ORD000042", orders.StatusCompleted, "notes")
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if ok {
		t.Error("UpdateOrderStatus(missing) = true, want false")
	}

	ok, err = s.UpdateOrderDetails(ctx, "ORD000042", orders.UpdateDetailsParams{})
	if err != nil {
		t.Fatalf("UpdateOrderDetails: %v", err)
	}
	if ok {
		t.Error("UpdateOrderDetails(missing) = true, want false")
	}

	order, _ := s.GetOrder(ctx, "ORD000001")
	if order.Status != orders.StatusPending || order.AdminNotes != "" {
		t.Errorf("existing order mutated: %+v", order)
	}
}

func TestUpdateStatusCompletedTimestampImmutable(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createOrder(t, s, 1, "track completion timestamps")

	if _, err := s.UpdateOrderStatus(ctx, "ORD000001", orders.StatusCompleted, ""); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	first, _ := s.GetOrder(ctx, "ORD000001")
	if first.CompletedAt == nil {
		t.Fatal("CompletedAt not set on first completion")
	}

	// Повторное завершение не сдвигает метку времени
	if _, err := s.UpdateOrderStatus(ctx, "ORD000001", orders.StatusPending, ""); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if _, err := s.UpdateOrderStatus(ctx, "ORD000001", orders.StatusCompleted, ""); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	second, _ := s.GetOrder(ctx, "ORD000001")
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("CompletedAt changed on re-completion: %v -> %v", first.CompletedAt, second.CompletedAt)
	}
}

func TestUpdateDetailsPartial(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createOrder(t, s, 1, "order with details to fill")

	price := int64(150000)
	ok, err := s.UpdateOrderDetails(ctx, "ORD000001", orders.UpdateDetailsParams{
		EstimatedPrice: &price,
	})
	if err != nil || !ok {
		t.Fatalf("UpdateOrderDetails: ok=%v err=%v", ok, err)
	}

	eta := "5 days"
	if _, err := s.UpdateOrderDetails(ctx, "ORD000001", orders.UpdateDetailsParams{
		EstimatedTime: &eta,
	}); err != nil {
		t.Fatalf("UpdateOrderDetails: %v", err)
	}

	order, _ := s.GetOrder(ctx, "ORD000001")
	if order.EstimatedPrice == nil || *order.EstimatedPrice != price {
		t.Errorf("EstimatedPrice = %v, want %d", order.EstimatedPrice, price)
	}
	if order.EstimatedTime != eta {
		t.Errorf("EstimatedTime = %q, want %q (unspecified fields must stay)", order.EstimatedTime, eta)
	}
}

func TestReturnedOrdersAreCopies(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createOrder(t, s, 1, "mutating the returned value must not leak")

	first, _ := s.GetOrder(ctx, "ORD000001")
	first.AdminNotes = "scribbled by caller"
	first.Status = orders.StatusCancelled

	second, _ := s.GetOrder(ctx, "ORD000001")
	if second.AdminNotes != "" || second.Status != orders.StatusPending {
		t.Errorf("store leaked internal record: %+v", second)
	}
}
