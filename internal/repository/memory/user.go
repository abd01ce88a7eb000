package memory

import "sync"

// UserRepo implements repository.UserRepository in memory
type UserRepo struct {
	mu    sync.RWMutex
	users map[int64]bool
}

// NewUserRepo creates an empty user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]bool)}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[userID], nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = true
	return nil
}

// EnsureUserExists records an unauthorized user on first contact
func (r *UserRepo) EnsureUserExists(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		r.users[userID] = false
	}
	return nil
}
