package users_test

import (
	"context"
	"errors"
	"testing"

	"amele-bot/internal/storage/memory"
	"amele-bot/internal/stories/users"
)

func TestGetOrCreateUserByTelegramID(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New())

	created, err := svc.GetOrCreateUserByTelegramID(ctx, 42, "ayan", "Аян Т.")
	if err != nil {
		t.Fatalf("GetOrCreateUserByTelegramID: %v", err)
	}
	if created.TelegramID == nil || *created.TelegramID != 42 {
		t.Fatalf("telegram id not stored: %+v", created)
	}
	if !created.IsActive {
		t.Fatal("bot users must be active")
	}

	// повторный вызов возвращает того же пользователя
	again, err := svc.GetOrCreateUserByTelegramID(ctx, 42, "ayan", "Аян Т.")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("expected same user, got %d and %d", created.ID, again.ID)
	}
}

func TestRegister_EmailNormalization(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New())

	user, err := svc.Register(ctx, "  User@Example.COM ", "user", "Имя", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}

	// регистр не обходит уникальность
	if _, err := svc.Register(ctx, "USER@example.com", "other", "", ""); !errors.Is(err, users.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	found, err := svc.GetByEmail(ctx, "User@Example.com")
	if err != nil || found == nil {
		t.Fatalf("GetByEmail: user=%v err=%v", found, err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New())

	if _, err := svc.Register(ctx, "user@example.com", "user", "", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil {
		t.Fatal("expected user")
	}

	// после логина проставлен last_login
	stored, err := svc.GetByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatal("last login not marked")
	}

	unknown, err := svc.Authenticate(ctx, "nobody@example.com")
	if err != nil || unknown != nil {
		t.Fatalf("expected (nil, nil) for unknown email, got %v, %v", unknown, err)
	}
}

func TestLinkTelegram(t *testing.T) {
	ctx := context.Background()
	svc := users.NewService(memory.New())

	user, err := svc.Register(ctx, "user@example.com", "user", "", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.LinkTelegram(ctx, user.ID, 555); err != nil {
		t.Fatalf("LinkTelegram: %v", err)
	}

	linked, err := svc.GetOrCreateUserByTelegramID(ctx, 555, "", "")
	if err != nil {
		t.Fatalf("GetOrCreateUserByTelegramID: %v", err)
	}
	if linked.ID != user.ID {
		t.Fatalf("expected linked account %d, got %d", user.ID, linked.ID)
	}
}
