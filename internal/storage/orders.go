package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"amele-bot/internal/stories/orders"

	sq "github.com/Masterminds/squirrel"
)

const ordersTable = "orders"

var orderRowFields = fields(orderRow{})

type orderRow struct {
	Seq            int64      `db:"seq"`
	OrderID        string     `db:"order_id"`
	UserID         int64      `db:"user_id"`
	UserName       string     `db:"user_name"`
	BotType        string     `db:"bot_type"`
	Idea           string     `db:"idea"`
	BotToken       string     `db:"bot_token"`
	BotUsername    string     `db:"bot_username"`
	PremadeBotID   string     `db:"premade_bot_id"`
	Status         string     `db:"status"`
	AdminNotes     string     `db:"admin_notes"`
	EstimatedPrice *int64     `db:"estimated_price"`
	EstimatedTime  string     `db:"estimated_time"`
	CreatedAt      time.Time  `db:"created_at"`
	CompletedAt    *time.Time `db:"completed_at"`
}

func (r orderRow) ToModel() *orders.Order {
	return &orders.Order{
		ID:             r.OrderID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		BotType:        orders.BotType(r.BotType),
		Idea:           r.Idea,
		BotToken:       r.BotToken,
		BotUsername:    r.BotUsername,
		PremadeBotID:   r.PremadeBotID,
		Status:         orders.Status(r.Status),
		AdminNotes:     r.AdminNotes,
		EstimatedPrice: r.EstimatedPrice,
		EstimatedTime:  r.EstimatedTime,
		CreatedAt:      r.CreatedAt,
		CompletedAt:    r.CompletedAt,
	}
}

// CreateOrder выделяет следующий последовательный order_id внутри транзакции.
func (s *storageImpl) CreateOrder(ctx context.Context, params orders.CreateParams) (*orders.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var nextSeq int64
	if err := tx.GetContext(ctx, &nextSeq, "SELECT COALESCE(MAX(seq), 0) + 1 FROM "+ordersTable); err != nil {
		return nil, fmt.Errorf("next seq: %w", err)
	}

	orderID := fmt.Sprintf("ORD%06d", nextSeq)
	rowParams := map[string]interface{}{
		"seq":             nextSeq,
		"order_id":        orderID,
		"user_id":         params.UserID,
		"user_name":       params.UserName,
		"bot_type":        string(params.BotType),
		"idea":            params.Idea,
		"bot_token":       params.BotToken,
		"bot_username":    params.BotUsername,
		"premade_bot_id":  params.PremadeBotID,
		"status":          string(orders.StatusPending),
		"estimated_price": params.EstimatedPrice,
		"created_at":      s.now(),
	}

	q, args, err := s.stmpBuilder().
		Insert(ordersTable).
		SetMap(rowParams).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("tx.ExecContext: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

func (s *storageImpl) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		Where(sq.Eq{"order_id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row orderRow
	err = s.db.GetContext(ctx, &row, q, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return row.ToModel(), nil
}

func (s *storageImpl) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	list := make([]*orders.Order, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.ToModel())
	}
	return list, nil
}

func (s *storageImpl) ListOrdersByUser(ctx context.Context, userID int64) ([]*orders.Order, error) {
	q, args, err := s.stmpBuilder().
		Select(orderRowFields).
		From(ordersTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []orderRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	list := make([]*orders.Order, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.ToModel())
	}
	return list, nil
}

func (s *storageImpl) UpdateOrderStatus(ctx context.Context, id string, status orders.Status, notes string) (bool, error) {
	existing, err := s.GetOrder(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	params := map[string]interface{}{
		"status": string(status),
	}
	if notes != "" {
		params["admin_notes"] = notes
	}
	// completed_at фиксируется только первым завершением
	if status == orders.StatusCompleted && existing.CompletedAt == nil {
		params["completed_at"] = s.now()
	}

	q, args, err := s.stmpBuilder().
		Update(ordersTable).
		SetMap(params).
		Where(sq.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}
	return true, nil
}

func (s *storageImpl) UpdateOrderDetails(ctx context.Context, id string, details orders.UpdateDetailsParams) (bool, error) {
	params := map[string]interface{}{}
	if details.EstimatedPrice != nil {
		params["estimated_price"] = *details.EstimatedPrice
	}
	if details.EstimatedTime != nil {
		params["estimated_time"] = *details.EstimatedTime
	}
	if details.AdminNotes != nil {
		params["admin_notes"] = *details.AdminNotes
	}
	if len(params) == 0 {
		existing, err := s.GetOrder(ctx, id)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	}

	q, args, err := s.stmpBuilder().
		Update(ordersTable).
		SetMap(params).
		Where(sq.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected: %w", err)
	}
	return affected > 0, nil
}
