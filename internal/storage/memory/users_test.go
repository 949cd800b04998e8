package memory

import (
	"context"
	"errors"
	"testing"

	"amele-bot/internal/stories/users"
)

func TestCreateUserEmailUnique(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first, err := s.CreateUser(ctx, users.User{Email: "a@example.com", IsActive: true})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first user ID = %d, want 1", first.ID)
	}

	_, err = s.CreateUser(ctx, users.User{Email: "a@example.com"})
	if !errors.Is(err, users.ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}

	n, _ := s.CountUsers(ctx)
	if n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}

func TestGetUserByCriteria(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	tgID := int64(777)
	created, err := s.CreateUser(ctx, users.User{
		Email:      "who@example.com",
		TelegramID: &tgID,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tests := []struct {
		name     string
		criteria users.GetCriteria
		found    bool
	}{
		{"by id", users.GetCriteria{ID: &created.ID}, true},
		{"by email", users.GetCriteria{Email: strPtr("who@example.com")}, true},
		{"by telegram id", users.GetCriteria{TelegramID: &tgID}, true},
		{"unknown email", users.GetCriteria{Email: strPtr("nope@example.com")}, false},
		{"unknown telegram id", users.GetCriteria{TelegramID: int64Ptr(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.GetUser(ctx, tt.criteria)
			if err != nil {
				t.Fatalf("GetUser: %v", err)
			}
			if (u != nil) != tt.found {
				t.Errorf("found = %v, want %v", u != nil, tt.found)
			}
		})
	}
}

func TestUpdateUserMissing(t *testing.T) {
	s := newTestStorage(t)

	u, err := s.UpdateUser(context.Background(), users.GetCriteria{ID: int64Ptr(99)}, users.UpdateParams{})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if u != nil {
		t.Errorf("UpdateUser(missing) = %+v, want nil", u)
	}
}

func TestUpdateUserLinksTelegram(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, users.User{Email: "link@example.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tgID := int64(4242)
	updated, err := s.UpdateUser(ctx, users.GetCriteria{ID: &created.ID}, users.UpdateParams{
		TelegramID: &tgID,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.TelegramID == nil || *updated.TelegramID != tgID {
		t.Errorf("TelegramID = %v, want %d", updated.TelegramID, tgID)
	}

	found, _ := s.GetUser(ctx, users.GetCriteria{TelegramID: &tgID})
	if found == nil || found.ID != created.ID {
		t.Errorf("lookup by linked telegram ID failed: %+v", found)
	}
}

func strPtr(s string) *string  { return &s }
func int64Ptr(i int64) *int64 { return &i }
