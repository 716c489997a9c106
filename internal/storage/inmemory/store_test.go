package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTask(author int64, group, doer *int64) *domain.Task {
	t := &domain.Task{DoerID: doer, Status: domain.StatusUndone, Priority: domain.PriorityMiddle}
	t.Title = "Test Task"
	t.Description = "Description"
	t.AuthorID = author
	t.GroupID = group
	return t
}

// newTestStore создает хранилище и одну задачу для тестов
func newTestStore(t *testing.T) (*Store, *domain.Task) {
	store := New()
	task, err := store.CreateTask(context.Background(), newTask(1, nil, nil))
	require.NoError(t, err)
	return store, task
}

func ids[T any](items []*T, id func(*T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func taskIDs(list []*domain.Task) []int64 {
	return ids(list, func(t *domain.Task) int64 { return t.ID })
}

func TestStore_CreateAndGetTask(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), task.ID)
	assert.False(t, task.CreatedAt.IsZero())

	retrieved, err := store.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, retrieved)

	_, err = store.GetTaskByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ReturnedTaskIsACopy(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	task.Title = "mutated outside"
	retrieved, err := store.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Task", retrieved.Title)
}

func TestStore_UpdateTask(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	updated, err := store.UpdateTask(ctx, task.ID, func(cur domain.Task) (domain.Task, error) {
		cur.Status = domain.StatusDone
		cur.ID = 500
		cur.CreatedAt = cur.CreatedAt.Add(1000)
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, task.ID, updated.ID, "id is immutable")
	assert.Equal(t, task.CreatedAt, updated.CreatedAt, "createdAt is immutable")

	_, err = store.UpdateTask(ctx, 999, func(cur domain.Task) (domain.Task, error) { return cur, nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateTask_MutatorErrorLeavesTaskUnchanged(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := store.UpdateTask(ctx, task.ID, func(cur domain.Task) (domain.Task, error) {
		cur.Title = "partially applied"
		return cur, boom
	})
	assert.ErrorIs(t, err, boom)

	retrieved, err := store.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, retrieved)
}

func TestStore_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateTask(ctx, task.ID, func(cur domain.Task) (domain.Task, error) {
				cur.Description += "x"
				return cur, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	retrieved, err := store.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, retrieved.Description, len("Description")+workers)
}

func TestStore_DeleteTaskCascades(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	var commentIDs []int64
	for i := 0; i < 3; i++ {
		c, err := store.CreateComment(ctx, &domain.Comment{Parent: domain.TaskParent(task.ID), AuthorID: 2, Text: "c"})
		require.NoError(t, err)
		commentIDs = append(commentIDs, c.ID)
	}
	st, err := store.CreateSubtask(ctx, &domain.Subtask{TaskID: task.ID, Text: "step", Status: domain.StatusUndone})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTask(ctx, task.ID))

	_, err = store.GetTaskByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, id := range commentIDs {
		assert.ErrorIs(t, store.DeleteComment(ctx, id), domain.ErrNotFound)
	}
	assert.ErrorIs(t, store.DeleteSubtask(ctx, st.ID), domain.ErrNotFound)
	assert.ErrorIs(t, store.DeleteTask(ctx, task.ID), domain.ErrNotFound)

	comments, err := store.GetCommentsByParent(ctx, domain.TaskParent(task.ID))
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestStore_IDsAreNotReused(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteTask(ctx, task.ID))
	next, err := store.CreateTask(ctx, newTask(1, nil, nil))
	require.NoError(t, err)
	assert.Greater(t, next.ID, task.ID)
}

func TestStore_ListTasksByAxis(t *testing.T) {
	store := New()
	ctx := context.Background()

	personal, err := store.CreateTask(ctx, newTask(1, nil, ptr(int64(10))))
	require.NoError(t, err)
	group, err := store.CreateTask(ctx, newTask(1, ptr(int64(77)), nil))
	require.NoError(t, err)
	other, err := store.CreateTask(ctx, newTask(2, ptr(int64(77)), ptr(int64(10))))
	require.NoError(t, err)

	list, err := store.ListTasks(ctx, storage.Query{Axis: storage.ByAuthor, Key: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{personal.ID, group.ID}, taskIDs(list))

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.Personal, Key: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{personal.ID}, taskIDs(list))

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.ByDoer, Key: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{personal.ID, other.ID}, taskIDs(list))

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.ByGroup, Key: 77})
	require.NoError(t, err)
	assert.Equal(t, []int64{group.ID, other.ID}, taskIDs(list))

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.ByGroup, Key: 12345})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_UpdateReindexes(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateTask(ctx, newTask(1, ptr(int64(5)), nil))
	require.NoError(t, err)
	second, err := store.CreateTask(ctx, newTask(1, nil, nil))
	require.NoError(t, err)

	// Первая задача переходит в личные и получает исполнителя.
	_, err = store.UpdateTask(ctx, first.ID, func(cur domain.Task) (domain.Task, error) {
		cur.GroupID = nil
		cur.DoerID = ptr(int64(3))
		return cur, nil
	})
	require.NoError(t, err)

	list, err := store.ListTasks(ctx, storage.Query{Axis: storage.ByGroup, Key: 5})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.Personal, Key: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID, second.ID}, taskIDs(list), "creation order is kept after reindex")

	list, err = store.ListTasks(ctx, storage.Query{Axis: storage.ByDoer, Key: 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID}, taskIDs(list))
}

func TestStore_CommentsOnNotesAndTasks(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	note := &domain.Note{}
	note.Title = "Note"
	note.Description = "Body"
	note.AuthorID = 1
	note, err := store.CreateNote(ctx, note)
	require.NoError(t, err)

	tc, err := store.CreateComment(ctx, &domain.Comment{Parent: domain.TaskParent(task.ID), AuthorID: 1, Text: "on task"})
	require.NoError(t, err)
	nc, err := store.CreateComment(ctx, &domain.Comment{Parent: domain.NoteParent(note.ID), AuthorID: 1, Text: "on note"})
	require.NoError(t, err)
	assert.NotEqual(t, tc.ID, nc.ID, "comment ids are global")

	_, err = store.CreateComment(ctx, &domain.Comment{Parent: domain.NoteParent(999), AuthorID: 1, Text: "orphan"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Удаление по id комментария без указания владельца.
	require.NoError(t, store.DeleteComment(ctx, nc.ID))
	comments, err := store.GetCommentsByParent(ctx, domain.NoteParent(note.ID))
	require.NoError(t, err)
	assert.Empty(t, comments)

	comments, err = store.GetCommentsByParent(ctx, domain.TaskParent(task.ID))
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "on task", comments[0].Text)

	require.NoError(t, store.DeleteNote(ctx, note.ID))
	assert.ErrorIs(t, store.DeleteNote(ctx, note.ID), domain.ErrNotFound)
}

func TestStore_Subtasks(t *testing.T) {
	store, task := newTestStore(t)
	ctx := context.Background()

	st, err := store.CreateSubtask(ctx, &domain.Subtask{TaskID: task.ID, Text: "step", Status: domain.StatusUndone})
	require.NoError(t, err)

	updated, err := store.UpdateSubtask(ctx, st.ID, func(cur domain.Subtask) (domain.Subtask, error) {
		cur.Status = domain.StatusDone
		cur.TaskID = 999
		return cur, nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, task.ID, updated.TaskID)

	list, err := store.GetSubtasksByTaskID(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusDone, list[0].Status)

	_, err = store.CreateSubtask(ctx, &domain.Subtask{TaskID: 999, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := store.GetSubtaskByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "step", got.Text)

	require.NoError(t, store.DeleteSubtask(ctx, st.ID))
	_, err = store.GetSubtaskByID(ctx, st.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.UpdateSubtask(ctx, st.ID, func(cur domain.Subtask) (domain.Subtask, error) { return cur, nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Удаление подзадачи не трогает задачу.
	retrieved, err := store.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, retrieved)
}
