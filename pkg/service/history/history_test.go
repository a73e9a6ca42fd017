package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrakv "github.com/cambiomz/metical-converter/infra/kv"
	"github.com/cambiomz/metical-converter/pkg/config"
	"github.com/cambiomz/metical-converter/pkg/domain"
	"github.com/cambiomz/metical-converter/pkg/kv"
)

func testConfig() *config.History {
	return &config.History{Key: "conversion-history", Capacity: 20}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entry(id string) domain.ConversionHistoryEntry {
	return domain.ConversionHistoryEntry{
		ID:        id,
		From:      domain.Currency{Code: "USD", Name: "US Dollar"},
		To:        domain.Currency{Code: "MZN", Name: "Mozambican Metical"},
		Amount:    100,
		Result:    6350,
		Rate:      63.5,
		Timestamp: time.Now().UTC(),
	}
}

func TestAppend_CapsAtCapacityNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := New(infrakv.NewMemoryStore(), testConfig(), discardLogger())

	for i := 0; i < 25; i++ {
		store.Append(ctx, entry(fmt.Sprintf("entry-%d", i)))
	}

	entries := store.List()
	require.Len(t, entries, 20)
	assert.Equal(t, "entry-24", entries[0].ID)
	assert.Equal(t, "entry-5", entries[19].ID)
}

func TestAppend_PersistsWholeSequence(t *testing.T) {
	ctx := context.Background()
	backing := infrakv.NewMemoryStore()
	store := New(backing, testConfig(), discardLogger())

	store.Append(ctx, entry("first"))
	store.Append(ctx, entry("second"))

	blob, err := backing.Get(ctx, "conversion-history")
	require.NoError(t, err)
	var persisted []domain.ConversionHistoryEntry
	require.NoError(t, json.Unmarshal(blob, &persisted))
	require.Len(t, persisted, 2)
	assert.Equal(t, "second", persisted[0].ID)
	assert.Equal(t, "first", persisted[1].ID)
}

func TestClear_EmptiesAndErasesPersistedState(t *testing.T) {
	ctx := context.Background()
	backing := infrakv.NewMemoryStore()
	store := New(backing, testConfig(), discardLogger())

	for i := 0; i < 5; i++ {
		store.Append(ctx, entry(fmt.Sprintf("entry-%d", i)))
	}
	store.Clear(ctx)

	assert.Empty(t, store.List())
	_, err := backing.Get(ctx, "conversion-history")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestLoad_RestoresPersistedHistory(t *testing.T) {
	ctx := context.Background()
	backing := infrakv.NewMemoryStore()

	first := New(backing, testConfig(), discardLogger())
	first.Append(ctx, entry("kept"))

	second := New(backing, testConfig(), discardLogger())
	second.Load(ctx)

	entries := second.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].ID)
}

func TestLoad_CorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	backing := infrakv.NewMemoryStore()
	require.NoError(t, backing.Set(ctx, "conversion-history", []byte("{not json")))

	store := New(backing, testConfig(), discardLogger())
	store.Load(ctx)

	assert.Empty(t, store.List())
}

func TestLoad_OversizedBlobTruncatedToCapacity(t *testing.T) {
	ctx := context.Background()
	backing := infrakv.NewMemoryStore()

	oversized := make([]domain.ConversionHistoryEntry, 30)
	for i := range oversized {
		oversized[i] = entry(fmt.Sprintf("entry-%d", i))
	}
	blob, err := json.Marshal(oversized)
	require.NoError(t, err)
	require.NoError(t, backing.Set(ctx, "conversion-history", blob))

	store := New(backing, testConfig(), discardLogger())
	store.Load(ctx)

	entries := store.List()
	require.Len(t, entries, 20)
	assert.Equal(t, "entry-0", entries[0].ID)
}

// failingStore rejects every write so persistence failures can be
// observed from the outside.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("backend down")
}

func (failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("backend down")
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := New(failingStore{}, testConfig(), discardLogger())

	store.Load(ctx)
	store.Append(ctx, entry("still-kept-in-memory"))
	store.Clear(ctx)
	store.Append(ctx, entry("after-clear"))

	entries := store.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "after-clear", entries[0].ID)
}

func TestList_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := New(infrakv.NewMemoryStore(), testConfig(), discardLogger())
	store.Append(ctx, entry("original"))

	snapshot := store.List()
	snapshot[0].ID = "mutated"

	assert.Equal(t, "original", store.List()[0].ID)
}
