package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ErrEmailTaken возвращается при регистрации на уже занятый email.
var ErrEmailTaken = errors.New("email already registered")

// Service provides business logic for user operations
type Service struct {
	storage Storage
	now     func() time.Time
}

// NewService creates a new user service
func NewService(storage Storage) *Service {
	return &Service{
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeEmail приводит email к канонической форме для проверки уникальности.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetOrCreateUserByTelegramID получает пользователя по Telegram ID или создает нового
func (s *Service) GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, username, fullName string) (*User, error) {
	existing, err := s.storage.GetUser(ctx, GetCriteria{
		TelegramID: &telegramID,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.storage.CreateUser(ctx, User{
		Username:   username,
		FullName:   fullName,
		TelegramID: &telegramID,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Register создает пользователя по email; email уникален в нормализованной форме.
func (s *Service) Register(ctx context.Context, email, username, fullName, phone string) (*User, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, errors.New("empty email")
	}

	existing, err := s.storage.GetUser(ctx, GetCriteria{Email: &normalized})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	created, err := s.storage.CreateUser(ctx, User{
		Email:    normalized,
		Username: username,
		FullName: fullName,
		Phone:    phone,
		IsActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// GetByEmail возвращает (nil, nil) если пользователь не найден.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	normalized := NormalizeEmail(email)
	return s.storage.GetUser(ctx, GetCriteria{Email: &normalized})
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.storage.GetUser(ctx, GetCriteria{ID: &id})
}

// Authenticate повторяет семантику источника: активный пользователь с таким
// email считается аутентифицированным, пароль не проверяется.
func (s *Service) Authenticate(ctx context.Context, email string) (*User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}

	_, err = s.storage.UpdateUser(ctx, GetCriteria{ID: &user.ID}, UpdateParams{
		LastLogin: lo.ToPtr(s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("mark login: %w", err)
	}
	return user, nil
}

// CountUsers возвращает общее число пользователей для статистики.
func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.storage.CountUsers(ctx)
}

// LinkTelegram привязывает Telegram ID к зарегистрированному аккаунту.
func (s *Service) LinkTelegram(ctx context.Context, userID, telegramID int64) error {
	_, err := s.storage.UpdateUser(ctx, GetCriteria{ID: &userID}, UpdateParams{
		TelegramID: lo.ToPtr(telegramID),
	})
	return err
}
