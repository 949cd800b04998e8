package users

import "time"

type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email,omitempty"`
	Username   string     `json:"username,omitempty"`
	FullName   string     `json:"full_name,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	TelegramID *int64     `json:"telegram_id,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsAdmin    bool       `json:"is_admin"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// Критерии для получения пользователя
type GetCriteria struct {
	ID         *int64
	Email      *string
	TelegramID *int64
}

// Параметры для обновления пользователя
type UpdateParams struct {
	TelegramID *int64
	Phone      *string
	IsActive   *bool
	IsAdmin    *bool
	LastLogin  *time.Time
}
