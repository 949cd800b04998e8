package memory

import (
	"context"

	"amele-bot/internal/stories/users"
)

func (s *Storage) CreateUser(ctx context.Context, user users.User) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Email != "" {
		if _, taken := s.usersByEmail[user.Email]; taken {
			return nil, users.ErrEmailTaken
		}
	}

	s.userCounter++
	user.ID = s.userCounter
	user.CreatedAt = s.now()

	stored := user
	s.users[stored.ID] = &stored
	if stored.Email != "" {
		s.usersByEmail[stored.Email] = stored.ID
	}

	return cloneUser(&stored), nil
}

// GetUser возвращает (nil, nil) если пользователь не найден.
func (s *Storage) GetUser(ctx context.Context, criteria users.GetCriteria) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if criteria.ID != nil {
		if u, ok := s.users[*criteria.ID]; ok {
			return cloneUser(u), nil
		}
		return nil, nil
	}
	if criteria.Email != nil {
		if id, ok := s.usersByEmail[*criteria.Email]; ok {
			return cloneUser(s.users[id]), nil
		}
		return nil, nil
	}
	if criteria.TelegramID != nil {
		for _, u := range s.users {
			if u.TelegramID != nil && *u.TelegramID == *criteria.TelegramID {
				return cloneUser(u), nil
			}
		}
	}
	return nil, nil
}

func (s *Storage) UpdateUser(ctx context.Context, criteria users.GetCriteria, params users.UpdateParams) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *users.User
	if criteria.ID != nil {
		target = s.users[*criteria.ID]
	} else if criteria.Email != nil {
		if id, ok := s.usersByEmail[*criteria.Email]; ok {
			target = s.users[id]
		}
	} else if criteria.TelegramID != nil {
		for _, u := range s.users {
			if u.TelegramID != nil && *u.TelegramID == *criteria.TelegramID {
				target = u
				break
			}
		}
	}
	if target == nil {
		return nil, nil
	}

	if params.TelegramID != nil {
		id := *params.TelegramID
		target.TelegramID = &id
	}
	if params.Phone != nil {
		target.Phone = *params.Phone
	}
	if params.IsActive != nil {
		target.IsActive = *params.IsActive
	}
	if params.IsAdmin != nil {
		target.IsAdmin = *params.IsAdmin
	}
	if params.LastLogin != nil {
		at := *params.LastLogin
		target.LastLogin = &at
	}

	return cloneUser(target), nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

func cloneUser(u *users.User) *users.User {
	copied := *u
	if u.TelegramID != nil {
		id := *u.TelegramID
		copied.TelegramID = &id
	}
	if u.LastLogin != nil {
		at := *u.LastLogin
		copied.LastLogin = &at
	}
	return &copied
}
