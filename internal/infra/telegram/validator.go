package telegram

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultAPIBase     = "https://api.telegram.org"
	validationCacheTTL = 5 * time.Minute
)

// ValidationResult — ответ getMe для проверяемого токена. OK=false означает
// что платформа токен отвергла; сетевые ошибки сюда не попадают.
type ValidationResult struct {
	OK        bool   `json:"ok"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type validationCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

// TokenValidator проверяет пользовательские бот-токены через getMe.
type TokenValidator struct {
	httpClient *http.Client
	cache      validationCache
	baseURL    string
	logger     *slog.Logger
}

func NewTokenValidator(timeout time.Duration, cache validationCache, logger *slog.Logger) *TokenValidator {
	return &TokenValidator{
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		baseURL:    defaultAPIBase,
		logger:     logger,
	}
}

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
	} `json:"result"`
}

// Validate выполняет getMe с коротким таймаутом. Результат (включая отказ)
// кэшируется; ошибка возвращается только при сетевых проблемах и не кэшируется.
func (v *TokenValidator) Validate(ctx context.Context, token string) (ValidationResult, error) {
	cacheKey := tokenCacheKey(token)

	var cached ValidationResult
	if v.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	url := fmt.Sprintf("%s/bot%s/getMe", v.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("build getMe request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Warn("token validation request failed", slog.Any("error", err))
		return ValidationResult{}, fmt.Errorf("getMe request: %w", err)
	}
	defer resp.Body.Close()

	var decoded getMeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ValidationResult{}, fmt.Errorf("decode getMe response: %w", err)
	}

	result := ValidationResult{
		OK:        decoded.OK,
		Username:  decoded.Result.Username,
		FirstName: decoded.Result.FirstName,
	}
	v.cache.Set(ctx, cacheKey, result, validationCacheTTL)
	return result, nil
}

// tokenCacheKey не кладет сам токен в кэш: ключ — хэш.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:8])
}
