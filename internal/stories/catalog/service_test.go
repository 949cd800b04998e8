package catalog

import (
	"context"
	"testing"
)

func TestSeedAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	if err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	bots, err := svc.ListBots(ctx)
	if err != nil {
		t.Fatalf("ListBots: %v", err)
	}
	if len(bots) != 3 {
		t.Fatalf("expected 3 seeded bots, got %d", len(bots))
	}
	if bots[0].ID != "BOT0001" {
		t.Fatalf("expected BOT0001 first, got %s", bots[0].ID)
	}

	count, err := svc.CountBots(ctx)
	if err != nil || count != 3 {
		t.Fatalf("CountBots: count=%d err=%v", count, err)
	}
}

func TestAddAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	bot, err := svc.AddBot(ctx, AddParams{
		Name:        "Бот-опросник",
		Description: "Собирает ответы в таблицу",
		Price:       90000,
	})
	if err != nil {
		t.Fatalf("AddBot: %v", err)
	}
	if bot.ID != "BOT0001" {
		t.Fatalf("expected BOT0001, got %s", bot.ID)
	}

	got, err := svc.GetBot(ctx, bot.ID)
	if err != nil {
		t.Fatalf("GetBot: %v", err)
	}
	if got == nil || got.Name != "Бот-опросник" {
		t.Fatalf("unexpected bot: %+v", got)
	}

	// возвращается копия
	got.Name = "изменено"
	again, _ := svc.GetBot(ctx, bot.ID)
	if again.Name != "Бот-опросник" {
		t.Fatal("GetBot must return a copy")
	}

	missing, err := svc.GetBot(ctx, "BOT9999")
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for missing bot, got %v, %v", missing, err)
	}
}
