package worker

import (
	"context"

	"amele-bot/internal/stories/orders"
)

type statsProvider interface {
	Stats(ctx context.Context) (*orders.Stats, error)
}

type operatorNotifier interface {
	Digest(text string)
}
