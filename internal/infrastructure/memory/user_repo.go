package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

// UserRepo is an in-memory store used by tests and by local boots that
// have no database configured. Guarded by a single mutex.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	index map[string]string // lowercase email -> id
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:  make(map[string]domain.User),
		index: make(map[string]string),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	u.Email = emailKey(u.Email)
	if u.ID == "" || u.Email == "" || u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("user")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.byID[u.ID] = u
	r.index[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.index[emailKey(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) SearchByName(_ context.Context, term string) ([]domain.User, error) {
	needle := strings.ToLower(term)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.User
	for _, u := range r.byID {
		if strings.Contains(strings.ToLower(u.FirstName), needle) ||
			strings.Contains(strings.ToLower(u.LastName), needle) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

func (r *UserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	cur.FirstName = u.FirstName
	cur.LastName = u.LastName
	cur.PasswordHash = u.PasswordHash
	cur.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = cur
	return cur, nil
}

func (r *UserRepo) SetVerified(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsVerified = true
	u.UpdatedAt = time.Now().UTC()
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(r.index, u.Email)
	delete(r.byID, userID)
	return nil
}
