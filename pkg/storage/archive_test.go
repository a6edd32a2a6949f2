package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArchiveStoreSaveAndOpen(t *testing.T) {
	store, err := NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("timetable_CS-A.csv", []byte("Day,Time Slot\n"))
	require.NoError(t, err)
	require.Equal(t, "timetable_CS-A.csv", name)

	f, err := store.Open(name)
	require.NoError(t, err)
	defer f.Close()

	data, err := os.ReadFile(store.Path(name))
	require.NoError(t, err)
	require.Equal(t, []byte("Day,Time Slot\n"), data)
}

func TestArchiveStoreCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArchiveStore(dir)
	require.NoError(t, err)

	_, err = store.Save("old.csv", []byte("stale"))
	require.NoError(t, err)
	stale := filepath.Join(dir, "old.csv")
	require.NoError(t, os.Chtimes(stale, time.Now().Add(-48*time.Hour), time.Now().Add(-48*time.Hour)))

	_, err = store.Save("fresh.csv", []byte("fresh"))
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, []string{"old.csv"}, deleted)

	_, err = os.Stat(stale)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "fresh.csv"))
	require.NoError(t, err)
}
