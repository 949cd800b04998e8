package storage

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id        TEXT NOT NULL UNIQUE,
	user_id         INTEGER NOT NULL,
	user_name       TEXT NOT NULL DEFAULT '',
	bot_type        TEXT NOT NULL,
	idea            TEXT NOT NULL DEFAULT '',
	bot_token       TEXT NOT NULL DEFAULT '',
	bot_username    TEXT NOT NULL DEFAULT '',
	premade_bot_id  TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	admin_notes     TEXT NOT NULL DEFAULT '',
	estimated_price INTEGER,
	estimated_time  TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL,
	completed_at    TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);

CREATE TABLE IF NOT EXISTS users (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	email       TEXT UNIQUE,
	username    TEXT NOT NULL DEFAULT '',
	full_name   TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	telegram_id INTEGER,
	is_active   INTEGER NOT NULL DEFAULT 1,
	is_admin    INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL,
	last_login  TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_telegram_id ON users(telegram_id);
`

// Migrate создает таблицы, если их еще нет. Вызывается один раз на старте.
func (s *storageImpl) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
