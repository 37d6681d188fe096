package account

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/user-service/internal/logger"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]string // email (lowercased) -> userID

	// injected errors (if set, method returns error)
	createErr     error
	getByIDErr    error
	getByEmailErr error
	updateErr     error
	deleteErr     error

	// record calls
	deletedIDs  []string
	verifiedIDs []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]string{},
	}
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[emailKey(u.Email)] = u.ID
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[emailKey(u.Email)]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.byID[u.ID] = u
	f.byEmail[emailKey(u.Email)] = u.ID
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	id, ok := f.byEmail[emailKey(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) SearchByName(ctx context.Context, term string) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	needle := strings.ToLower(term)
	var out []domain.User
	for _, u := range f.byID {
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

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	cur, ok := f.byID[u.ID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	cur.FirstName = u.FirstName
	cur.LastName = u.LastName
	cur.PasswordHash = u.PasswordHash
	cur.UpdatedAt = time.Now()
	f.byID[u.ID] = cur
	return cur, nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsVerified = true
	f.byID[userID] = u
	f.verifiedIDs = append(f.verifiedIDs, userID)
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.byID, userID)
	delete(f.byEmail, emailKey(u.Email))
	f.deletedIDs = append(f.deletedIDs, userID)
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeCodec mints transparent tokens "tok|<type>|<subject>" and honors a
// negative ttl as already expired.
type fakeCodec struct {
	mu sync.Mutex

	issueErr error
	issued   []struct {
		sub string
		typ TokenType
		ttl time.Duration
	}
	expired map[string]bool
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{expired: map[string]bool{}}
}

func (f *fakeCodec) Issue(sub string, typ TokenType, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	tok := fmt.Sprintf("tok|%s|%s", typ, sub)
	f.issued = append(f.issued, struct {
		sub string
		typ TokenType
		ttl time.Duration
	}{sub, typ, ttl})
	if ttl < 0 {
		f.expired[tok] = true
	}
	return tok, nil
}

func (f *fakeCodec) Verify(token string, want TokenType) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.expired[token] {
		return "", domain.ErrTokenExpiredOrInvalid()
	}
	parts := strings.Split(token, "|")
	if len(parts) != 3 || parts[0] != "tok" || parts[1] != string(want) {
		return "", domain.ErrTokenExpiredOrInvalid()
	}
	return parts[2], nil
}

type fakeMail struct {
	mu sync.Mutex

	publishErr error
	events     []VerificationEmailEvent
}

func (f *fakeMail) PublishVerificationEmail(ctx context.Context, evt VerificationEmailEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeMail) sent() []VerificationEmailEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]VerificationEmailEvent, len(f.events))
	copy(out, f.events)
	return out
}

/*
Service wiring for tests
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeCodec, *fakeMail) {
	t.Helper()
	logger.InitWithWriter(nopWriter{})

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	codec := newFakeCodec()
	mail := &fakeMail{}

	svc := NewService(users, hasher, codec, mail, Config{
		AccessTTL:          time.Hour,
		VerifyEmailTTL:     24 * time.Hour,
		VerifyEmailBaseURL: "https://frontend/verify-email?token=",
	}).WithSyncMail()

	return svc, users, hasher, codec, mail
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
