package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"amele-bot/internal/stories/users"

	sq "github.com/Masterminds/squirrel"
)

const usersTable = "users"

var userRowFields = fields(userRow{})

type userRow struct {
	ID         int64      `db:"id"`
	Email      *string    `db:"email"`
	Username   string     `db:"username"`
	FullName   string     `db:"full_name"`
	Phone      string     `db:"phone"`
	TelegramID *int64     `db:"telegram_id"`
	IsActive   bool       `db:"is_active"`
	IsAdmin    bool       `db:"is_admin"`
	CreatedAt  time.Time  `db:"created_at"`
	LastLogin  *time.Time `db:"last_login"`
}

func (r userRow) ToModel() *users.User {
	u := &users.User{
		ID:         r.ID,
		Username:   r.Username,
		FullName:   r.FullName,
		Phone:      r.Phone,
		TelegramID: r.TelegramID,
		IsActive:   r.IsActive,
		IsAdmin:    r.IsAdmin,
		CreatedAt:  r.CreatedAt,
		LastLogin:  r.LastLogin,
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	return u
}

func (s *storageImpl) CreateUser(ctx context.Context, user users.User) (*users.User, error) {
	// email NULL для telegram-only аккаунтов, иначе UNIQUE по пустой строке
	var email *string
	if user.Email != "" {
		email = &user.Email
	}

	params := map[string]interface{}{
		"email":       email,
		"username":    user.Username,
		"full_name":   user.FullName,
		"phone":       user.Phone,
		"telegram_id": user.TelegramID,
		"is_active":   user.IsActive,
		"is_admin":    user.IsAdmin,
		"created_at":  s.now(),
	}

	q, args, err := s.stmpBuilder().
		Insert(usersTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, users.ErrEmailTaken
		}
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId: %w", err)
	}

	return s.GetUser(ctx, users.GetCriteria{ID: &id})
}

func (s *storageImpl) GetUser(ctx context.Context, criteria users.GetCriteria) (*users.User, error) {
	where, err := userCriteria(criteria)
	if err != nil {
		return nil, err
	}

	q, args, err := s.stmpBuilder().
		Select(userRowFields).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var row userRow
	err = s.db.GetContext(ctx, &row, q, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("db.GetContext: %w", err)
	}

	return row.ToModel(), nil
}

func (s *storageImpl) UpdateUser(ctx context.Context, criteria users.GetCriteria, updates users.UpdateParams) (*users.User, error) {
	existing, err := s.GetUser(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	params := map[string]interface{}{}
	if updates.TelegramID != nil {
		params["telegram_id"] = *updates.TelegramID
	}
	if updates.Phone != nil {
		params["phone"] = *updates.Phone
	}
	if updates.IsActive != nil {
		params["is_active"] = *updates.IsActive
	}
	if updates.IsAdmin != nil {
		params["is_admin"] = *updates.IsAdmin
	}
	if updates.LastLogin != nil {
		params["last_login"] = *updates.LastLogin
	}
	if len(params) == 0 {
		return existing, nil
	}

	q, args, err := s.stmpBuilder().
		Update(usersTable).
		SetMap(params).
		Where(sq.Eq{"id": existing.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return nil, fmt.Errorf("db.ExecContext: %w", err)
	}

	return s.GetUser(ctx, users.GetCriteria{ID: &existing.ID})
}

func (s *storageImpl) CountUsers(ctx context.Context) (int, error) {
	q, args, err := s.stmpBuilder().
		Select("COUNT(*)").
		From(usersTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sql query: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, q, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext: %w", err)
	}
	return count, nil
}

func userCriteria(criteria users.GetCriteria) (sq.Eq, error) {
	switch {
	case criteria.ID != nil:
		return sq.Eq{"id": *criteria.ID}, nil
	case criteria.Email != nil:
		return sq.Eq{"email": *criteria.Email}, nil
	case criteria.TelegramID != nil:
		return sq.Eq{"telegram_id": *criteria.TelegramID}, nil
	}
	return nil, fmt.Errorf("empty user criteria")
}
