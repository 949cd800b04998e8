package orders

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus возвращает статус по строке и false для неизвестных значений.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

type BotType string

const (
	BotTypeCustom  BotType = "custom"
	BotTypePremade BotType = "premade"
)

type Order struct {
	ID       string  `json:"id"`
	UserID   int64   `json:"user_id"`
	UserName string  `json:"user_name"`
	BotType  BotType `json:"bot_type"`
	Idea     string  `json:"idea"`
	// токен не отдаем наружу через API
	BotToken     string `json:"-"`
	BotUsername  string `json:"bot_username,omitempty"`
	PremadeBotID string `json:"premade_bot_id,omitempty"`
	Status       Status `json:"status"`
	AdminNotes   string `json:"admin_notes,omitempty"`
	// EstimatedPrice хранится структурированно (целые единицы валюты),
	// nil пока цена не назначена
	EstimatedPrice *int64     `json:"estimated_price,omitempty"`
	EstimatedTime  string     `json:"estimated_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

type CreateParams struct {
	UserID         int64
	UserName       string
	BotType        BotType
	Idea           string
	BotToken       string
	BotUsername    string
	PremadeBotID   string
	EstimatedPrice *int64
}

// Параметры для частичного обновления заказа
type UpdateDetailsParams struct {
	EstimatedPrice *int64
	EstimatedTime  *string
	AdminNotes     *string
}

type Stats struct {
	TotalOrders      int   `json:"total_orders"`
	PendingOrders    int   `json:"pending_orders"`
	ProcessingOrders int   `json:"processing_orders"`
	CompletedOrders  int   `json:"completed_orders"`
	TotalUsers       int   `json:"total_users"`
	TotalBots        int   `json:"total_bots"`
	EstimatedRevenue int64 `json:"estimated_revenue"`
}
