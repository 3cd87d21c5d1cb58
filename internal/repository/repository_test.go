package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todolist/internal/db"
	"todolist/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: "Tester", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	user := createUser(t, repo, "a@example.com")

	found, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Create(ctx, &model.User{Email: "a@example.com", Name: "Again", PasswordHash: "hash"})
	assert.Error(t, err)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	todos := NewTodoRepository(gormDB)
	tokens := NewAllowlistedJWTRepository(gormDB)

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	require.NoError(t, todos.Create(ctx, &model.Todo{Title: "mine", OwnerID: owner.ID}))
	require.NoError(t, todos.Create(ctx, &model.Todo{Title: "theirs", OwnerID: other.ID}))
	require.NoError(t, tokens.Create(ctx, &model.AllowlistedJWT{JTI: "j1", Exp: time.Now().Add(time.Hour), UserID: owner.ID}))
	require.NoError(t, tokens.Create(ctx, &model.AllowlistedJWT{JTI: "j2", Exp: time.Now().Add(time.Hour), UserID: other.ID}))

	require.NoError(t, users.DeleteCascade(ctx, owner.ID))

	_, err := users.FindByID(ctx, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	mine, err := todos.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	count, err := tokens.CountByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	theirs, err := todos.ListByOwner(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	count, err = tokens.CountByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, users.DeleteCascade(ctx, owner.ID), gorm.ErrRecordNotFound)
}

func TestTodoRepository_OwnerScope(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewTodoRepository(gormDB)

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	first := &model.Todo{Title: "first", OwnerID: owner.ID}
	second := &model.Todo{Title: "second", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &model.Todo{Title: "foreign", OwnerID: other.ID}))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := repo.ListByOwner(ctx, owner.ID+other.ID+1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = repo.FindByOwner(ctx, other.ID, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// an update carrying a foreign owner matches no row
	hijack := *first
	hijack.OwnerID = other.ID
	hijack.Title = "hijacked"
	require.NoError(t, repo.Update(ctx, &hijack))

	got, err := repo.FindByOwner(ctx, owner.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	got.Title = "renamed"
	got.Completed = true
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.FindByOwner(ctx, owner.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, repo.Delete(ctx, other.ID, first.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, owner.ID, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, first.ID), gorm.ErrRecordNotFound)
}

func TestTodoRepository_UpdateUsesDBClock(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	fixed := time.Date(2030, time.January, 2, 3, 4, 5, 0, time.UTC)
	gormDB.NowFunc = func() time.Time { return fixed }

	owner := createUser(t, NewUserRepository(gormDB), "owner@example.com")
	repo := NewTodoRepository(gormDB)
	todo := &model.Todo{Title: "first", OwnerID: owner.ID}
	require.NoError(t, repo.Create(ctx, todo))

	todo.Title = "renamed"
	require.NoError(t, repo.Update(ctx, todo))
	assert.True(t, todo.UpdatedAt.Equal(fixed))

	got, err := repo.FindByOwner(ctx, owner.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(fixed), "updated_at = %s", got.UpdatedAt)
}

func TestAllowlistedJWTRepository(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	user := createUser(t, NewUserRepository(gormDB), "a@example.com")
	repo := NewAllowlistedJWTRepository(gormDB)

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &model.AllowlistedJWT{JTI: "live", Aud: "ios", Exp: now.Add(time.Hour), UserID: user.ID}))
	require.NoError(t, repo.Create(ctx, &model.AllowlistedJWT{JTI: "stale", Exp: now.Add(-time.Hour), UserID: user.ID}))

	entry, err := repo.FindByJTI(ctx, "live", "ios")
	require.NoError(t, err)
	assert.Equal(t, user.ID, entry.UserID)

	_, err = repo.FindByJTI(ctx, "live", "web")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "live", "ios", user.ID+1)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, "live", "ios", user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
