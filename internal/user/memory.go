package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
)

// MemoryRepository mirrors the MySQL repository's contract, including the
// unique email and phone keys. Used by tests.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	users  []User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
	}
}

func (r *MemoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return fmt.Errorf("%w: users", database.ErrDuplicate)
		}
	}

	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users = append(r.users, user)

	return nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == email {
			return existing, nil
		}
	}

	return User{}, ErrNotFound
}
