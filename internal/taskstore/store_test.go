package taskstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houhuawei23/text-processing-tool/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func finishedTask(id int64, status domain.TaskStatus, finished time.Time) *domain.Task {
	return &domain.Task{
		ID:         id,
		Kind:       domain.KindTextTransform,
		Title:      "example task",
		Input:      "some input",
		Status:     status,
		CreatedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Record(finishedTask(1, domain.StatusCompleted, now.Add(-2*time.Hour))))
	require.NoError(t, store.Record(finishedTask(2, domain.StatusFailed, now.Add(-time.Hour))))
	require.NoError(t, store.Record(finishedTask(3, domain.StatusCompleted, now)))

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// most recently finished first
	assert.Equal(t, int64(3), entries[0].ID)
	assert.Equal(t, int64(2), entries[1].ID)
	assert.Equal(t, int64(1), entries[2].ID)
	assert.Equal(t, domain.StatusFailed, entries[1].Status)
	assert.Equal(t, len([]rune("some input")), entries[0].InputLength)
}

func TestStore_RecordIgnoresNonTerminal(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(finishedTask(1, domain.StatusPending, time.Now())))
	require.NoError(t, store.Record(finishedTask(2, domain.StatusProcessing, time.Now())))

	entries, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RecordTranslationMetadata(t *testing.T) {
	store := newTestStore(t)

	task := finishedTask(1, domain.StatusCompleted, time.Now())
	task.Kind = domain.KindTranslation
	task.Result = &domain.TranslationResult{
		TranslatedText:   "你好",
		ServiceUsed:      "deepseek",
		ChunksTranslated: 4,
	}
	require.NoError(t, store.Record(task))

	entries, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "deepseek", entries[0].ServiceUsed)
	assert.Equal(t, 4, entries[0].ChunksTranslated)
}

func TestStore_ListLimit(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, store.Record(finishedTask(i, domain.StatusCompleted, now.Add(time.Duration(i)*time.Second))))
	}

	entries, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].ID)
}

func TestStore_SweepKeepsFailures(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Record(finishedTask(1, domain.StatusCompleted, now.Add(-48*time.Hour))))
	require.NoError(t, store.Record(finishedTask(2, domain.StatusFailed, now.Add(-48*time.Hour))))
	require.NoError(t, store.Record(finishedTask(3, domain.StatusCompleted, now)))

	removed, err := store.Sweep(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotEqual(t, int64(1), e.ID)
	}
}

func TestNewSweeper_RejectsBadInput(t *testing.T) {
	store := newTestStore(t)

	_, err := NewSweeper(store, "not a cron expr", "24h")
	assert.Error(t, err)

	_, err = NewSweeper(store, "0 * * * *", "one day")
	assert.Error(t, err)

	_, err = NewSweeper(store, "0 * * * *", "24h")
	assert.NoError(t, err)
}
