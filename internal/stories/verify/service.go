// Package verify выдает и проверяет email-коды подтверждения.
package verify

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"
)

const (
	codeTTL     = 10 * time.Minute
	maxAttempts = 3
)

var (
	ErrNoCode          = errors.New("код не запрашивался или истек")
	ErrTooManyAttempts = errors.New("превышено число попыток")
)

type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

type codeEntry struct {
	Code      string    `json:"code"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	cache  Cache
	mailer Mailer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(cache Cache, mailer Mailer, logger *slog.Logger) *Service {
	return &Service{
		cache:  cache,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

// RequestCode генерирует код, сохраняет его и отправляет письмо.
// Повторный запрос заменяет прежний код и сбрасывает счетчик попыток.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("генерация кода: %w", err)
	}

	s.cache.Set(ctx, cacheKey(email), codeEntry{Code: code, ExpiresAt: s.now().Add(codeTTL)}, codeTTL)

	text := fmt.Sprintf("Ваш код подтверждения: %s\n\nКод действует 10 минут.", code)
	html := fmt.Sprintf("<p>Ваш код подтверждения: <b>%s</b></p><p>Код действует 10 минут.</p>", code)
	if err := s.mailer.Send(ctx, email, "Код подтверждения", text, html); err != nil {
		s.cache.Delete(ctx, cacheKey(email))
		return fmt.Errorf("отправка письма: %w", err)
	}

	s.logger.Info("код подтверждения отправлен", slog.String("email", email))
	return nil
}

// VerifyCode проверяет код. После трех неверных попыток код сгорает.
func (s *Service) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	key := cacheKey(email)

	var entry codeEntry
	if !s.cache.Get(ctx, key, &entry) {
		return false, ErrNoCode
	}

	// Дедлайн абсолютный: неверные попытки не продлевают жизнь кода
	remaining := entry.ExpiresAt.Sub(s.now())
	if remaining <= 0 {
		s.cache.Delete(ctx, key)
		return false, ErrNoCode
	}

	if entry.Code == code {
		s.cache.Delete(ctx, key)
		return true, nil
	}

	entry.Attempts++
	if entry.Attempts >= maxAttempts {
		s.cache.Delete(ctx, key)
		return false, ErrTooManyAttempts
	}

	s.cache.Set(ctx, key, entry, remaining)
	return false, nil
}

func cacheKey(email string) string {
	return "verify:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
