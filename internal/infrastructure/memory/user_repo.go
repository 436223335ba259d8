package memory

import (
	"context"
	"sync"
	"time"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// UserRepo is an in-memory substitute for the Postgres user repo. The
// uniqueness check runs under the same lock as the insert, mirroring the
// atomicity the database constraint provides.
type UserRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64 // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID:  1,
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	u := domain.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.nextID++

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}
