package account

import (
	"context"
	"errors"
	"testing"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

func seedUser(users *fakeUserRepo) domain.User {
	u := domain.User{
		ID: "u1", FirstName: "Ann", LastName: "Lee",
		Email: "a@b.com", PasswordHash: "hash:OldPass1!", Role: "user",
	}
	users.add(u)
	return u
}

func TestUpdate_Unauthenticated_TokenMissing(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	_, err := svc.Update(context.Background(), nil, UpdateInput{})
	requireErrCode(t, err, "token_missing")
}

func TestUpdate_RecordVanished_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)
	p := &Principal{ID: "ghost", Email: "g@x.com", Role: "user"}

	_, err := svc.Update(context.Background(), p, UpdateInput{})
	requireErrCode(t, err, "user_not_found")
}

func TestUpdate_Names_AppliedWhenPresent(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	first := " Anna "
	got, err := svc.Update(context.Background(), p, UpdateInput{FirstName: &first})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got.FirstName != "Anna" {
		t.Fatalf("expected trimmed update, got %q", got.FirstName)
	}
	if got.LastName != "Lee" {
		t.Fatalf("absent field must stay untouched, got %q", got.LastName)
	}
}

func TestUpdate_PasswordWithoutOldPassword_ValidationError(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	_, err := svc.Update(context.Background(), p, UpdateInput{Password: "NewPass1!"})
	requireErrCode(t, err, "old_password_required")
}

func TestUpdate_WrongOldPassword_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	_, err := svc.Update(context.Background(), p, UpdateInput{
		Password: "NewPass1!", OldPassword: "nope",
	})
	requireErrCode(t, err, "invalid_credentials")
}

func TestUpdate_WeakNewPassword_ValidationFailed(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	_, err := svc.Update(context.Background(), p, UpdateInput{
		Password: "weak", OldPassword: "OldPass1!",
	})
	requireErrCode(t, err, "validation_failed")

	var de *domain.Error
	if !errors.As(err, &de) || len(de.Violations) == 0 {
		t.Fatalf("expected enumerated violations, got %v", err)
	}

	// Stored hash must be untouched.
	u, _ := users.GetByID(context.Background(), "u1")
	if u.PasswordHash != "hash:OldPass1!" {
		t.Fatalf("hash must not change on failed update")
	}
}

func TestUpdate_PasswordChange_Success_NewHashVerifies(t *testing.T) {
	t.Parallel()

	svc, users, hasher, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	got, err := svc.Update(context.Background(), p, UpdateInput{
		Password: "NewPass1!", OldPassword: "OldPass1!",
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got.PasswordHash != "hash:NewPass1!" {
		t.Fatalf("expected new hash persisted, got %q", got.PasswordHash)
	}
	if err := hasher.Compare(got.PasswordHash, "NewPass1!"); err != nil {
		t.Fatalf("new password must verify against stored hash: %v", err)
	}
	if err := hasher.Compare(got.PasswordHash, "OldPass1!"); err == nil {
		t.Fatalf("old password must no longer verify")
	}
}

func TestUpdate_EmailNeverMutable(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	seedUser(users)
	p := &Principal{ID: "u1", Email: "a@b.com", Role: "user"}

	got, err := svc.Update(context.Background(), p, UpdateInput{})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if got.Email != "a@b.com" {
		t.Fatalf("email must be immutable, got %q", got.Email)
	}
}
