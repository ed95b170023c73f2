package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tudu/internal/format"
	"tudu/internal/models"
	"tudu/internal/storage"
)

// countingKV wraps the in-memory store and counts writes, so tests can
// assert that no-op operations skip the persistence write.
type countingKV struct {
	*storage.Memory
	sets int
}

func newCountingKV() *countingKV {
	return &countingKV{Memory: storage.NewMemory()}
}

func (c *countingKV) Set(key, value string) error {
	c.sets++
	return c.Memory.Set(key, value)
}

func TestCreate_SetsFields(t *testing.T) {
	s := NewStore(storage.NewMemory())

	task, err := s.Create("Buy milk", "2024-05-01", "")

	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Task)
	assert.Equal(t, "2024-05-01", task.DueDate)
	assert.False(t, task.Completed)
	assert.Equal(t, "pending", task.Status)
	assert.Equal(t, 1, s.Len())
}

func TestCreate_EmptyDueDateBecomesSentinel(t *testing.T) {
	s := NewStore(storage.NewMemory())

	task, err := s.Create("Task", "", "")

	require.NoError(t, err)
	assert.Equal(t, format.NoDueDate, task.DueDate)
}

func TestCreate_UniqueIDs(t *testing.T) {
	s := NewStore(storage.NewMemory())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		task, err := s.Create("x", "", "")
		require.NoError(t, err)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestToggle_MovesBetweenFilters(t *testing.T) {
	s := NewStore(storage.NewMemory())
	task, err := s.Create("Buy milk", "2024-05-01", "")
	require.NoError(t, err)

	require.NoError(t, s.Toggle(task.ID))

	completed := s.Filter(models.FilterCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, task.ID, completed[0].ID)
	assert.Empty(t, s.Filter(models.FilterPending))
}

func TestToggle_VanishedIDIsNoOp(t *testing.T) {
	kv := newCountingKV()
	s := NewStore(kv)
	writes := kv.sets

	require.NoError(t, s.Toggle("no-such-id"))

	assert.Equal(t, writes, kv.sets)
}

func TestFilter_Partition(t *testing.T) {
	s := NewStore(storage.NewMemory())
	for i, text := range []string{"a", "b", "c", "d", "e"} {
		task, err := s.Create(text, "", "")
		require.NoError(t, err)
		if i%2 == 0 {
			require.NoError(t, s.Toggle(task.ID))
		}
	}

	all := s.Filter(models.FilterAll)
	pending := s.Filter(models.FilterPending)
	completed := s.Filter(models.FilterCompleted)

	assert.Equal(t, len(all), len(pending)+len(completed))

	union := map[string]int{}
	for _, task := range pending {
		union[task.ID]++
	}
	for _, task := range completed {
		union[task.ID]++
	}
	for _, task := range all {
		assert.Equal(t, 1, union[task.ID])
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	s := NewStore(storage.NewMemory())
	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		task, err := s.Create(text, "", "")
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	all := s.Filter(models.FilterAll)
	require.Len(t, all, 3)
	for i, task := range all {
		assert.Equal(t, ids[i], task.ID)
	}
}

func TestFilter_UnknownCriterionReturnsEmpty(t *testing.T) {
	s := NewStore(storage.NewMemory())
	_, err := s.Create("a", "", "")
	require.NoError(t, err)

	assert.Empty(t, s.Filter(models.Filter("bogus")))
}

func TestUpdate_OverwritesInPlace(t *testing.T) {
	s := NewStore(storage.NewMemory())
	first, err := s.Create("first", "", "")
	require.NoError(t, err)
	_, err = s.Create("second", "", "")
	require.NoError(t, err)
	require.NoError(t, s.Toggle(first.ID))

	updated, ok, err := s.Update(first.ID, "renamed", "2025-01-01", "details")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "renamed", updated.Task)
	assert.Equal(t, "2025-01-01", updated.DueDate)
	assert.Equal(t, "details", updated.Description)
	assert.True(t, updated.Completed, "completion state is preserved")

	all := s.Filter(models.FilterAll)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "position is preserved")
}

func TestUpdate_VanishedIDWritesNothing(t *testing.T) {
	kv := newCountingKV()
	s := NewStore(kv)
	_, err := s.Create("a", "", "")
	require.NoError(t, err)
	writes := kv.sets

	_, ok, err := s.Update("no-such-id", "x", "", "")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, kv.sets)
}

func TestDelete_Idempotent(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	task, err := s.Create("a", "", "")
	require.NoError(t, err)
	_, err = s.Create("b", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(task.ID))
	after, _ := kv.Get(storage.KeyTodos)

	require.NoError(t, s.Delete(task.ID))
	again, _ := kv.Get(storage.KeyTodos)

	assert.Equal(t, after, again)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteMany(t *testing.T) {
	s := NewStore(storage.NewMemory())
	a, _ := s.Create("a", "", "")
	b, _ := s.Create("b", "", "")
	c, _ := s.Create("c", "", "")

	require.NoError(t, s.DeleteMany([]string{a.ID, c.ID, "no-such-id"}))

	all := s.Filter(models.FilterAll)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestClearAll_EmptyStoreSkipsWrite(t *testing.T) {
	kv := newCountingKV()
	s := NewStore(kv)

	require.NoError(t, s.ClearAll())

	assert.Zero(t, kv.sets)
	assert.Zero(t, s.Len())
}

func TestClearAll_NonEmptyStorePersists(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	_, err := s.Create("a", "", "")
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	assert.Zero(t, s.Len())
	raw, _ := kv.Get(storage.KeyTodos)
	assert.Equal(t, "[]", raw)
}

func TestRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	a, _ := s.Create("first", "2024-05-01", "with details")
	_, _ = s.Create("second", "", "")
	require.NoError(t, s.Toggle(a.ID))

	reloaded := NewStore(kv)

	assert.Equal(t, s.Filter(models.FilterAll), reloaded.Filter(models.FilterAll))
}

func TestNewStore_MissingSnapshotLoadsEmpty(t *testing.T) {
	s := NewStore(storage.NewMemory())
	assert.Zero(t, s.Len())
}

func TestNewStore_MalformedSnapshotLoadsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(storage.KeyTodos, "{not json"))

	s := NewStore(kv)

	assert.Zero(t, s.Len())
}

func TestStatusField_NotMaintainedAfterToggle(t *testing.T) {
	s := NewStore(storage.NewMemory())
	task, err := s.Create("a", "", "")
	require.NoError(t, err)

	require.NoError(t, s.Toggle(task.ID))

	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Equal(t, "pending", got.Status, "status is written once at creation")
}
