package telegram

import (
	"context"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/stories/users"
	"amele-bot/internal/telegram/states"
)

type routerBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *routerBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *routerBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type routerUserService struct {
	registered []int64
}

func (s *routerUserService) GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, username, fullName string) (*users.User, error) {
	s.registered = append(s.registered, telegramID)
	return &users.User{ID: 1}, nil
}

type routerAdminChecker struct{}

func (routerAdminChecker) IsAdmin(telegramID int64) bool { return false }

func newTestRouter(bot *routerBot, us *routerUserService) *Router {
	return NewRouter(
		bot,
		states.NewManager(0),
		us,
		routerAdminChecker{},
		nil, nil, nil, nil, nil, nil,
		slog.Default(),
	)
}

// Сообщения без отправителя (например из канала) игнорируются без паники.
func TestRoute_AnonymousMessageIgnored(t *testing.T) {
	bot := &routerBot{}
	us := &routerUserService{}
	r := newTestRouter(bot, us)

	update := &tgbotapi.Update{
		UpdateID: 5,
		Message: &tgbotapi.Message{
			MessageID: 1,
			Chat:      &tgbotapi.Chat{ID: -100123},
			Text:      "пост в канале",
		},
	}

	if err := r.Route(update); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(bot.sent) != 0 {
		t.Fatalf("nothing should be sent in reply: %v", bot.sent)
	}
	if len(us.registered) != 0 {
		t.Fatalf("anonymous sender must not be registered: %v", us.registered)
	}
}

func TestRoute_UnknownTextWithoutState(t *testing.T) {
	bot := &routerBot{}
	us := &routerUserService{}
	r := newTestRouter(bot, us)

	update := &tgbotapi.Update{
		UpdateID: 6,
		Message: &tgbotapi.Message{
			MessageID: 2,
			Chat:      &tgbotapi.Chat{ID: 42},
			From:      &tgbotapi.User{ID: 42, UserName: "user"},
			Text:      "просто текст",
		},
	}

	if err := r.Route(update); err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(us.registered) != 1 || us.registered[0] != 42 {
		t.Fatalf("sender must be registered: %v", us.registered)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(bot.sent))
	}
}
