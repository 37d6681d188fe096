package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/user-service/internal/domain"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewUserRepo(db), mock
}

func userRows(users ...domain.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "password_hash",
		"role", "is_verified", "created_at", "updated_at",
	})
	now := time.Now()
	for _, u := range users {
		rows.AddRow(u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash,
			u.Role, u.IsVerified, now, now)
	}
	return rows
}

func TestUserRepoCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts and returns the stored row", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("u1", "Ann", "Lee", "ann@x.com", "hash", "user", false).
			WillReturnRows(userRows(domain.User{
				ID: "u1", FirstName: "Ann", LastName: "Lee",
				Email: "ann@x.com", PasswordHash: "hash", Role: "user",
			}))

		got, err := repo.Create(context.Background(), domain.User{
			ID: "u1", FirstName: "Ann", LastName: "Lee",
			Email: " Ann@X.com ", PasswordHash: "hash", Role: "user",
		})
		require.NoError(t, err)
		assert.Equal(t, "ann@x.com", got.Email)
		assert.False(t, got.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to email_already_exists", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := repo.Create(context.Background(), domain.User{
			ID: "u1", Email: "ann@x.com", PasswordHash: "hash",
		})
		assert.Equal(t, "email_already_exists", domain.Code(err))
	})

	t.Run("other db failure maps to db_unavailable", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(assert.AnError)

		_, err := repo.Create(context.Background(), domain.User{
			ID: "u1", Email: "ann@x.com", PasswordHash: "hash",
		})
		assert.Equal(t, "db_unavailable", domain.Code(err))
	})

	t.Run("missing email rejected before touching the db", func(t *testing.T) {
		t.Parallel()
		repo, _ := newMockRepo(t)

		_, err := repo.Create(context.Background(), domain.User{ID: "u1", PasswordHash: "h"})
		assert.Equal(t, "missing_field", domain.Code(err))
	})
}

func TestUserRepoGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("u1").
			WillReturnRows(userRows(domain.User{ID: "u1", Email: "ann@x.com", Role: "user"}))

		got, err := repo.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "ann@x.com", got.Email)
	})

	t.Run("no rows maps to user_not_found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs("missing").
			WillReturnRows(userRows())

		_, err := repo.GetByID(context.Background(), "missing")
		assert.Equal(t, "user_not_found", domain.Code(err))
	})
}

func TestUserRepoGetByEmail_NormalizesLookup(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("ann@x.com").
		WillReturnRows(userRows(domain.User{ID: "u1", Email: "ann@x.com"}))

	got, err := repo.GetByEmail(context.Background(), "  ANN@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoSearchByName(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ILIKE")).
		WithArgs("ann").
		WillReturnRows(userRows(
			domain.User{ID: "3", FirstName: "Anne", LastName: "Jones"},
			domain.User{ID: "2", FirstName: "Bob", LastName: "Mann"},
			domain.User{ID: "1", FirstName: "Hannah", LastName: "Smith"},
		))

	got, err := repo.SearchByName(context.Background(), "ann")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Anne", got[0].FirstName)
	assert.Equal(t, "Hannah", got[2].FirstName)
}

func TestUserRepoSearchByName_WildcardsMatchLiterally(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ILIKE")).
		WithArgs(`an\%n\_e\\`).
		WillReturnRows(userRows())

	_, err := repo.SearchByName(context.Background(), `an%n_e\`)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdate(t *testing.T) {
	t.Parallel()

	t.Run("persists mutable fields", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
			WithArgs("u1", "Anna", "Lee", "hash2").
			WillReturnRows(userRows(domain.User{
				ID: "u1", FirstName: "Anna", LastName: "Lee",
				Email: "ann@x.com", PasswordHash: "hash2",
			}))

		got, err := repo.Update(context.Background(), domain.User{
			ID: "u1", FirstName: "Anna", LastName: "Lee", PasswordHash: "hash2",
		})
		require.NoError(t, err)
		assert.Equal(t, "Anna", got.FirstName)
	})

	t.Run("vanished row maps to user_not_found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
			WillReturnRows(userRows())

		_, err := repo.Update(context.Background(), domain.User{ID: "gone"})
		assert.Equal(t, "user_not_found", domain.Code(err))
	})
}

func TestUserRepoSetVerified(t *testing.T) {
	t.Parallel()

	t.Run("flips the flag", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetVerified(context.Background(), "u1"))
	})

	t.Run("unknown id maps to user_not_found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs("gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, "user_not_found", domain.Code(repo.SetVerified(context.Background(), "gone")))
	})
}

func TestUserRepoDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the row", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "u1"))
	})

	t.Run("second delete maps to user_not_found", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, "user_not_found", domain.Code(repo.Delete(context.Background(), "u1")))
	})
}
