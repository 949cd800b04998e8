// Package memory реализует хранилища заказов и пользователей в памяти
// процесса. Это базовый бэкенд: перезапуск процесса теряет все данные.
package memory

import (
	"sync"
	"time"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/stories/users"
)

type Storage struct {
	mu sync.Mutex

	orders       map[string]*orders.Order
	orderIDs     []string // порядок создания
	orderCounter int64

	users        map[int64]*users.User
	usersByEmail map[string]int64
	userCounter  int64

	now func() time.Time
}

func New() *Storage {
	return &Storage{
		orders:       make(map[string]*orders.Order),
		users:        make(map[int64]*users.User),
		usersByEmail: make(map[string]int64),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
