package task_test

import (
	"context"
	"testing"

	"taskboard/db"
	"taskboard/internal/task"
	"taskboard/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskService(t *testing.T) (*task.Service, db.UserRepository, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	dbManager := db.NewDBManager()

	service := task.NewService(factory.NewTaskRepository(), dbManager)

	return service, factory.NewUserRepository(), func() {
		dbManager.Stop()
		cleanup()
	}
}

func createUser(t *testing.T, users db.UserRepository, username string) int {
	user, err := users.Create(context.Background(), testutils.CreateTestUser(username))
	require.NoError(t, err)
	return user.ID
}

func TestService_Create(t *testing.T) {
	service, users, cleanup := setupTaskService(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createUser(t, users, "alice")

	t.Run("EmptyTitle", func(t *testing.T) {
		_, err := service.Create(ctx, ownerID, "", nil)
		assert.ErrorIs(t, err, task.ErrTitleRequired)
	})

	t.Run("DefaultsToIncomplete", func(t *testing.T) {
		description := "details"
		created, err := service.Create(ctx, ownerID, "write report", &description)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.IsComplete)
		assert.Equal(t, ownerID, created.UserID)
	})

	t.Run("NilDescriptionAllowed", func(t *testing.T) {
		created, err := service.Create(ctx, ownerID, "no details", nil)
		require.NoError(t, err)
		assert.Nil(t, created.Description)
	})
}

func TestService_Update(t *testing.T) {
	service, users, cleanup := setupTaskService(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createUser(t, users, "alice")
	otherID := createUser(t, users, "mallory")

	created, err := service.Create(ctx, ownerID, "original", nil)
	require.NoError(t, err)

	t.Run("PartialUpdate", func(t *testing.T) {
		title := "renamed"
		updated, err := service.Update(ctx, ownerID, created.ID, task.UpdateInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.False(t, updated.IsComplete)
	})

	t.Run("EmptyTitleRejected", func(t *testing.T) {
		empty := ""
		_, err := service.Update(ctx, ownerID, created.ID, task.UpdateInput{Title: &empty})
		assert.ErrorIs(t, err, task.ErrTitleRequired)
	})

	t.Run("ToggleIsIdempotentInPairs", func(t *testing.T) {
		yes, no := true, false

		updated, err := service.Update(ctx, ownerID, created.ID, task.UpdateInput{IsComplete: &yes})
		require.NoError(t, err)
		assert.True(t, updated.IsComplete)

		updated, err = service.Update(ctx, ownerID, created.ID, task.UpdateInput{IsComplete: &no})
		require.NoError(t, err)
		assert.False(t, updated.IsComplete)
	})

	t.Run("ForeignTaskMasked", func(t *testing.T) {
		title := "hijacked"
		_, err := service.Update(ctx, otherID, created.ID, task.UpdateInput{Title: &title})
		assert.ErrorIs(t, err, task.ErrNotAuthorized)
	})

	t.Run("AbsentTaskMasked", func(t *testing.T) {
		title := "ghost"
		_, err := service.Update(ctx, ownerID, 99999, task.UpdateInput{Title: &title})
		assert.ErrorIs(t, err, task.ErrNotAuthorized)
	})
}

func TestService_Delete(t *testing.T) {
	service, users, cleanup := setupTaskService(t)
	defer cleanup()

	ctx := context.Background()
	ownerID := createUser(t, users, "alice")
	otherID := createUser(t, users, "mallory")

	created, err := service.Create(ctx, ownerID, "doomed", nil)
	require.NoError(t, err)

	t.Run("ForeignTaskMasked", func(t *testing.T) {
		err := service.Delete(ctx, otherID, created.ID)
		assert.ErrorIs(t, err, task.ErrNotAuthorized)
	})

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, ownerID, created.ID))

		tasks, err := service.ListForUser(ctx, ownerID)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("DeletedTaskMasked", func(t *testing.T) {
		err := service.Delete(ctx, ownerID, created.ID)
		assert.ErrorIs(t, err, task.ErrNotAuthorized)
	})
}

func TestService_ListForUser(t *testing.T) {
	service, users, cleanup := setupTaskService(t)
	defer cleanup()

	ctx := context.Background()
	aliceID := createUser(t, users, "alice")
	bobID := createUser(t, users, "bob")

	_, err := service.Create(ctx, aliceID, "first", nil)
	require.NoError(t, err)
	_, err = service.Create(ctx, aliceID, "second", nil)
	require.NoError(t, err)
	_, err = service.Create(ctx, bobID, "bobs task", nil)
	require.NoError(t, err)

	aliceTasks, err := service.ListForUser(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)

	// Insertion order
	assert.Equal(t, "first", aliceTasks[0].Title)
	assert.Equal(t, "second", aliceTasks[1].Title)

	bobTasks, err := service.ListForUser(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
	assert.Equal(t, "bobs task", bobTasks[0].Title)
}
