package orderadmin

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/telegram/flows"
	"amele-bot/internal/telegram/states"
)

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	}

	stateManager interface {
		Clear(chatID int64)
		GetOrderAdminData(chatID int64) (*flows.OrderAdminFlowData, error)
		SetState(chatID int64, state states.State, data any)
	}

	orderService interface {
		Get(ctx context.Context, orderID string) (*orders.Order, error)
		UpdateDetails(ctx context.Context, orderID string, params orders.UpdateDetailsParams) (bool, error)
	}
)
