package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeCache struct {
	values map[string][]byte
	ttls   map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest any) bool {
	raw, ok := c.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, _ := json.Marshal(value)
	c.values[key] = raw
	c.ttls[key] = ttl
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		delete(c.values, key)
	}
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, textBody)
	return nil
}

func storedCode(t *testing.T, cache *fakeCache, email string) string {
	t.Helper()
	var entry codeEntry
	if !cache.Get(context.Background(), "verify:"+email, &entry) {
		t.Fatal("code not stored")
	}
	return entry.Code
}

func TestRequestAndVerify(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	mailer := &fakeMailer{}
	svc := NewService(cache, mailer, slog.Default())

	if err := svc.RequestCode(ctx, "user@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}

	code := storedCode(t, cache, "user@example.com")
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	ok, err := svc.VerifyCode(ctx, "user@example.com", code)
	if err != nil || !ok {
		t.Fatalf("VerifyCode: ok=%v err=%v", ok, err)
	}

	// код одноразовый
	if _, err := svc.VerifyCode(ctx, "user@example.com", code); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode on reuse, got %v", err)
	}
}

func TestVerify_AttemptsLimit(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc := NewService(cache, &fakeMailer{}, slog.Default())

	if err := svc.RequestCode(ctx, "user@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	code := storedCode(t, cache, "user@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < maxAttempts-1; i++ {
		ok, err := svc.VerifyCode(ctx, "user@example.com", wrong)
		if ok || err != nil {
			t.Fatalf("attempt %d: ok=%v err=%v", i, ok, err)
		}
	}

	if _, err := svc.VerifyCode(ctx, "user@example.com", wrong); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// код сгорел, даже правильный больше не подходит
	if _, err := svc.VerifyCode(ctx, "user@example.com", code); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
}

func TestVerify_DeadlineIsAbsolute(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc := NewService(cache, &fakeMailer{}, slog.Default())

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	if err := svc.RequestCode(ctx, "user@example.com"); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	code := storedCode(t, cache, "user@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// неверная попытка в середине окна не продлевает жизнь кода
	svc.now = func() time.Time { return issued.Add(6 * time.Minute) }
	if ok, err := svc.VerifyCode(ctx, "user@example.com", wrong); ok || err != nil {
		t.Fatalf("wrong attempt: ok=%v err=%v", ok, err)
	}
	if ttl := cache.ttls["verify:user@example.com"]; ttl != 4*time.Minute {
		t.Fatalf("expected remaining TTL 4m after wrong attempt, got %v", ttl)
	}

	// за пределами 10 минут не подходит даже правильный код
	svc.now = func() time.Time { return issued.Add(codeTTL + time.Second) }
	if _, err := svc.VerifyCode(ctx, "user@example.com", code); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode after deadline, got %v", err)
	}
	if _, ok := cache.values["verify:user@example.com"]; ok {
		t.Fatal("expired code should be dropped")
	}
}

func TestRequest_MailerFailure(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc := NewService(cache, &fakeMailer{err: errors.New("smtp down")}, slog.Default())

	if err := svc.RequestCode(ctx, "user@example.com"); err == nil {
		t.Fatal("expected error when mailer fails")
	}
	if _, ok := cache.values["verify:user@example.com"]; ok {
		t.Fatal("code should be dropped when email fails")
	}
}
