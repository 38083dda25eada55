package user

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Repository keeps users in memory, indexed by id and email.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

// Save stores a new user and assigns its id.
func (r *Repository) Save(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return User{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
	}
	u.ID = uuid.NewString()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

// FindByID returns the user with id.
func (r *Repository) FindByID(id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return User{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return u, nil
}

// FindByEmail returns the user registered with email.
func (r *Repository) FindByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return User{}, fmt.Errorf("%w: email %s", ErrNotFound, email)
	}
	return r.byID[id], nil
}

// Update replaces a stored user, keeping the email index current.
func (r *Repository) Update(u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[u.ID]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrNotFound, u.ID)
	}
	if u.Email != old.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		delete(r.byEmail, old.Email)
		r.byEmail[u.Email] = u.ID
	}
	r.byID[u.ID] = u
	return nil
}

// Delete removes the user with id. Deleting a missing user is a no-op.
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}
