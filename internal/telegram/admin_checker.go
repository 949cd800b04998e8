package telegram

import (
	"slices"

	"amele-bot/internal/config"
)

// AdminChecker проверяет является ли пользователь админом
type AdminChecker struct {
	adminIDs []int64
}

func NewAdminChecker(cfg *config.TelegramConfig) *AdminChecker {
	ids := cfg.AdminIDs
	if cfg.OperatorID != 0 && !slices.Contains(ids, cfg.OperatorID) {
		ids = append(slices.Clone(ids), cfg.OperatorID)
	}
	return &AdminChecker{adminIDs: ids}
}

// IsAdmin проверяет является ли пользователь с данным Telegram ID админом
func (a *AdminChecker) IsAdmin(telegramID int64) bool {
	return slices.Contains(a.adminIDs, telegramID)
}
