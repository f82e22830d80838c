package identity

import (
	"sync"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

// MemoryDirectory backs the directory with a mutex-guarded map. It serves
// tests and the databaseless dev mode.
type MemoryDirectory struct {
	mu     sync.Mutex
	nextId uint64
	users  map[uint64]model.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[uint64]model.User)}
}

func (d *MemoryDirectory) Create(user model.User) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, existing := range d.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return model.User{}, ErrDuplicateUser
		}
	}

	d.nextId++
	user.Id = d.nextId
	d.users[user.Id] = user
	return user, nil
}

func (d *MemoryDirectory) FindByEmail(email string) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, user := range d.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (d *MemoryDirectory) FindById(id uint64) (model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}
