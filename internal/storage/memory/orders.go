package memory

import (
	"context"
	"fmt"

	"amele-bot/internal/stories/orders"
)

// CreateOrder выделяет следующий последовательный ID под блокировкой:
// уникальность и монотонность гарантированы при конкурентных вызовах.
func (s *Storage) CreateOrder(ctx context.Context, params orders.CreateParams) (*orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderCounter++
	id := fmt.Sprintf("ORD%06d", s.orderCounter)

	order := &orders.Order{
		ID:             id,
		UserID:         params.UserID,
		UserName:       params.UserName,
		BotType:        params.BotType,
		Idea:           params.Idea,
		BotToken:       params.BotToken,
		BotUsername:    params.BotUsername,
		PremadeBotID:   params.PremadeBotID,
		Status:         orders.StatusPending,
		EstimatedPrice: params.EstimatedPrice,
		CreatedAt:      s.now(),
	}
	s.orders[id] = order
	s.orderIDs = append(s.orderIDs, id)

	return cloneOrder(order), nil
}

// GetOrder возвращает (nil, nil) если заказ не найден.
func (s *Storage) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

// ListOrders возвращает снимок всех заказов в порядке создания.
func (s *Storage) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*orders.Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		list = append(list, cloneOrder(s.orders[id]))
	}
	return list, nil
}

func (s *Storage) ListOrdersByUser(ctx context.Context, userID int64) ([]*orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []*orders.Order
	for _, id := range s.orderIDs {
		if order := s.orders[id]; order.UserID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	return list, nil
}

// UpdateOrderStatus перезаписывает статус без проверки графа переходов.
// CompletedAt выставляется при первом переходе в completed и далее не меняется.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id string, status orders.Status, notes string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}

	order.Status = status
	if notes != "" {
		order.AdminNotes = notes
	}
	if status == orders.StatusCompleted && order.CompletedAt == nil {
		completedAt := s.now()
		order.CompletedAt = &completedAt
	}
	return true, nil
}

func (s *Storage) UpdateOrderDetails(ctx context.Context, id string, params orders.UpdateDetailsParams) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}

	if params.EstimatedPrice != nil {
		order.EstimatedPrice = params.EstimatedPrice
	}
	if params.EstimatedTime != nil {
		order.EstimatedTime = *params.EstimatedTime
	}
	if params.AdminNotes != nil {
		order.AdminNotes = *params.AdminNotes
	}
	return true, nil
}

// cloneOrder отдает копию: записи принадлежат хранилищу, наружу уходят значения.
func cloneOrder(o *orders.Order) *orders.Order {
	copied := *o
	if o.EstimatedPrice != nil {
		price := *o.EstimatedPrice
		copied.EstimatedPrice = &price
	}
	if o.CompletedAt != nil {
		at := *o.CompletedAt
		copied.CompletedAt = &at
	}
	return &copied
}
