package training

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/physicscards/solver"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	set := MakeTrainedSet(solver.DefaultWeights(), 7)
	set.CompletionTime = 3.5
	set.Accuracy = 0.8
	set.PowerUsed = 1.2

	require.NoError(t, store.Save(set))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, set, loaded[0])
}

func TestStoreSaveIsUpsert(t *testing.T) {
	store := openTestStore(t)

	set := MakeTrainedSet(solver.DefaultWeights(), 7)
	require.NoError(t, store.Save(set))

	set.Accuracy = 0.95
	require.NoError(t, store.Save(set))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1, "saving the same id replaces, not duplicates")
	assert.Equal(t, 0.95, loaded[0].Accuracy)
}

func TestStoreTop(t *testing.T) {
	store := openTestStore(t)

	sets := make([]TrainedSet, 0, 5)
	for i := 0; i < 5; i++ {
		set := MakeTrainedSet(solver.DefaultWeights(), int64(i))
		set.Accuracy = float64(i)
		sets = append(sets, set)
	}
	require.NoError(t, store.SaveAll(sets))

	top, err := store.Top(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 4.0, top[0].Accuracy)
	assert.Equal(t, 3.0, top[1].Accuracy)

	// n larger than the population returns everything
	all, err := store.Top(10)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	none, err := store.Top(0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStoreFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trained.db")

	store, err := OpenStore(path)
	require.NoError(t, err)

	set := MakeTrainedSet(solver.DefaultWeights(), 1)
	require.NoError(t, store.Save(set))
	require.NoError(t, store.Close())

	// reopen and read back
	reopened, err := OpenStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, set.ID, loaded[0].ID)
}
