package neworder

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/infra/telegram"
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
		GetNewOrderData(chatID int64) (*flows.NewOrderFlowData, error)
		SetState(chatID int64, state states.State, data any)
	}

	orderService interface {
		Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error)
	}

	tokenValidator interface {
		Validate(ctx context.Context, token string) (telegram.ValidationResult, error)
	}

	notifier interface {
		OrderCreated(order *orders.Order)
	}
)
