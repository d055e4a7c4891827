package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avdeeva/task-tracker-bot/internal/model"
	"github.com/avdeeva/task-tracker-bot/internal/store"
	"github.com/avdeeva/task-tracker-bot/tests/testutil"
)

const (
	ownerID    = int64(100)
	strangerID = int64(200)
)

func mustCreateTask(t *testing.T, s *store.SQLiteStore, owner int64, name string) model.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), owner, model.CategoryOther, name, nil)
	if err != nil {
		t.Fatalf("creating task %q: %v", name, err)
	}
	return task
}

func localIDs(tasks []model.Task) []int {
	ids := make([]int, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.LocalID)
	}
	return ids
}

func TestCreateTaskAssignsDenseLocalIDs(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := mustCreateTask(t, s, ownerID, "first")
	second := mustCreateTask(t, s, ownerID, "second")
	third := mustCreateTask(t, s, ownerID, "third")

	require.Equal(t, 1, first.LocalID)
	require.Equal(t, 2, second.LocalID)
	require.Equal(t, 3, third.LocalID)

	// Another owner's numbering starts from 1 independently.
	other := mustCreateTask(t, s, strangerID, "unrelated")
	require.Equal(t, 1, other.LocalID)
}

func TestCreateTaskRejectsInvalidInput(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateTask(context.Background(), ownerID, model.CategoryOther, "   ", nil)
	require.Error(t, err)

	_, err = s.CreateTask(context.Background(), ownerID, model.Category("bogus"), "name", nil)
	require.Error(t, err)
}

func TestRoundTripPreservesFields(t *testing.T) {
	s := testutil.NewTestStore(t)

	deadline := time.Date(2024, 12, 25, 18, 0, 0, 0, time.UTC)
	created, err := s.CreateTask(
		context.Background(), ownerID, model.CategoryAnalytics, "подготовить отчёт", &deadline,
	)
	require.NoError(t, err)

	tasks, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, model.CategoryAnalytics, got.Category)
	require.Equal(t, "📊 Аналитика", got.Category.Label())
	require.Equal(t, "подготовить отчёт", got.Name)
	require.NotNil(t, got.Deadline)
	require.True(t, got.Deadline.Equal(deadline))
	require.False(t, got.Completed)
	require.Nil(t, got.CompletedAt)
}

func TestDeleteRenumbersRemainingTasks(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := mustCreateTask(t, s, ownerID, "first")
	second := mustCreateTask(t, s, ownerID, "second")
	third := mustCreateTask(t, s, ownerID, "third")

	deleted, err := s.DeleteTask(context.Background(), second.ID, ownerID)
	require.NoError(t, err)
	require.True(t, deleted)

	tasks, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, localIDs(tasks))

	// Relative order by creation time is preserved.
	require.Equal(t, first.ID, tasks[0].ID)
	require.Equal(t, third.ID, tasks[1].ID)
}

func TestLocalIDsStayDenseAcrossManyDeletes(t *testing.T) {
	s := testutil.NewTestStore(t)

	var tasks []model.Task
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, mustCreateTask(t, s, ownerID, name))
	}

	// Delete from both ends and the middle.
	for _, id := range []int64{tasks[0].ID, tasks[4].ID, tasks[2].ID} {
		deleted, err := s.DeleteTask(context.Background(), id, ownerID)
		require.NoError(t, err)
		require.True(t, deleted)
	}

	mustCreateTask(t, s, ownerID, "f")

	remaining, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, localIDs(remaining))
}

func TestDeleteMissingOrForeignTaskIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)

	task := mustCreateTask(t, s, ownerID, "mine")

	deleted, err := s.DeleteTask(context.Background(), 9999, ownerID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = s.DeleteTask(context.Background(), task.ID, strangerID)
	require.NoError(t, err)
	require.False(t, deleted)

	tasks, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestCompleteAndRestore(t *testing.T) {
	s := testutil.NewTestStore(t)

	task := mustCreateTask(t, s, ownerID, "work")

	done, err := s.CompleteTask(context.Background(), task.ID, ownerID)
	require.NoError(t, err)
	require.True(t, done)

	completed, err := s.ListCompleted(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.True(t, completed[0].Completed)
	require.NotNil(t, completed[0].CompletedAt)

	active, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Empty(t, active)

	restored, err := s.RestoreTask(context.Background(), task.ID, ownerID)
	require.NoError(t, err)
	require.True(t, restored)

	active, err = s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.False(t, active[0].Completed)
	require.Nil(t, active[0].CompletedAt)
	require.Equal(t, task.LocalID, active[0].LocalID)
	require.Equal(t, task.Name, active[0].Name)
}

func TestCompleteForeignTaskIsNoOp(t *testing.T) {
	s := testutil.NewTestStore(t)

	task := mustCreateTask(t, s, ownerID, "mine")

	done, err := s.CompleteTask(context.Background(), task.ID, strangerID)
	require.NoError(t, err)
	require.False(t, done)

	active, err := s.ListActive(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.False(t, active[0].Completed)
}

func TestLocalIDsSpanActiveAndCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := mustCreateTask(t, s, ownerID, "first")
	mustCreateTask(t, s, ownerID, "second")

	done, err := s.CompleteTask(context.Background(), first.ID, ownerID)
	require.NoError(t, err)
	require.True(t, done)

	// Numbering is global per owner: the next task is #3 even though
	// only one task is still active.
	third := mustCreateTask(t, s, ownerID, "third")
	require.Equal(t, 3, third.LocalID)
}

func TestUpsertUserIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)

	user := model.User{ID: ownerID, Username: "ivan", FirstName: "Иван"}
	require.NoError(t, s.UpsertUser(context.Background(), user))

	user.Username = "ivan_p"
	require.NoError(t, s.UpsertUser(context.Background(), user))
}
