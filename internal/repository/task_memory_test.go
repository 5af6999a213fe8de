package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/nsm-example/internal/model"
)

func newTask(id string, created time.Time) *model.Task {
	return &model.Task{
		ID:        id,
		Title:     "task " + id,
		Priority:  model.PriorityMedium,
		Status:    model.StatusTodo,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestMemoryTaskRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepo()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newTask("a", now)))
	assert.ErrorIs(t, repo.Create(ctx, newTask("a", now)), ErrConflict)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "task a", got.Title)

	got.Status = model.StatusDone
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrTaskNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newTask("missing", now)), ErrTaskNotFound)
}

func TestMemoryTaskRepo_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepo()
	require.NoError(t, repo.Create(ctx, newTask("a", time.Now())))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "task a", again.Title)
}

func TestMemoryTaskRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTask("old", base)))
	require.NoError(t, repo.Create(ctx, newTask("new", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newTask("mid", base.Add(time.Minute))))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryTaskRepo_ListEmptyIsNotNil(t *testing.T) {
	list, err := NewMemoryTaskRepo().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMemoryTaskRepo_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTaskRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, newTask(fmt.Sprintf("t-%d", i), time.Now())))
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

var _ TaskStore = (*MemoryTaskRepo)(nil)
var _ TaskStore = (*TaskRepo)(nil)
