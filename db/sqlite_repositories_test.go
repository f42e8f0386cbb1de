package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"taskboard/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	testDB, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { testDB.Close() })

	require.NoError(t, InitializeSchema(testDB))
	return testDB
}

func newUser(username string) *models.User {
	return &models.User{
		Username:  username,
		Password:  "$2a$10$notarealhashbutlongenoughtostore0000000000000000000",
		CreatedAt: time.Now(),
	}
}

func TestSQLiteUserRepository(t *testing.T) {
	repo := NewSQLiteUserRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("CreateAssignsID", func(t *testing.T) {
		created, err := repo.Create(ctx, newUser("alice"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := repo.Create(ctx, newUser("alice"))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("FindByUsername", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
		assert.NotEmpty(t, found.Password)
	})

	t.Run("FindByUsernameIsCaseSensitive", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "ALICE")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("FindByID", func(t *testing.T) {
		created, err := repo.Create(ctx, newUser("bob"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", found.Username)
	})

	t.Run("FindByIDNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSQLiteTaskRepository(t *testing.T) {
	testDB := setupTestDB(t)
	users := NewSQLiteUserRepository(testDB)
	repo := NewSQLiteTaskRepository(testDB)
	ctx := context.Background()

	owner, err := users.Create(ctx, newUser("alice"))
	require.NoError(t, err)

	newTask := func(title string) *models.Task {
		now := time.Now()
		return &models.Task{
			Title:     title,
			UserID:    owner.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	t.Run("CreateAndFind", func(t *testing.T) {
		description := "details"
		taskIn := newTask("write report")
		taskIn.Description = &description

		created, err := repo.Create(ctx, taskIn)
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "write report", found.Title)
		require.NotNil(t, found.Description)
		assert.Equal(t, "details", *found.Description)
		assert.False(t, found.IsComplete)
		assert.Equal(t, owner.ID, found.UserID)
	})

	t.Run("NullDescription", func(t *testing.T) {
		created, err := repo.Create(ctx, newTask("no details"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Description)
	})

	t.Run("FindAllByUserIDInsertionOrder", func(t *testing.T) {
		tasks, err := repo.FindAllByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "write report", tasks[0].Title)
		assert.Equal(t, "no details", tasks[1].Title)
	})

	t.Run("FindAllByUserIDEmpty", func(t *testing.T) {
		tasks, err := repo.FindAllByUserID(ctx, 99999)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("Update", func(t *testing.T) {
		created, err := repo.Create(ctx, newTask("before"))
		require.NoError(t, err)

		created.Title = "after"
		created.IsComplete = true
		created.UpdatedAt = time.Now()

		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", found.Title)
		assert.True(t, found.IsComplete)
	})

	t.Run("UpdateMissingTask", func(t *testing.T) {
		ghost := newTask("ghost")
		ghost.ID = 99999
		_, err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		created, err := repo.Create(ctx, newTask("doomed"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeleteMissingTask", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
