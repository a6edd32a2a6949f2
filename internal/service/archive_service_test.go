package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/classsync/classsync-api/pkg/storage"
)

func TestArchiveServiceWritesDocument(t *testing.T) {
	store, err := storage.NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	svc := NewArchiveService(store, nil, ArchiveConfig{Workers: 1})
	svc.Start(context.Background())
	defer svc.Stop()

	require.NoError(t, svc.Archive("timetable_CS-A.csv", []byte("Day,Time Slot\n")))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(store.Path("timetable_CS-A.csv"))
		return err == nil && string(data) == "Day,Time Slot\n"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestArchiveServiceStopBeforeStart(t *testing.T) {
	store, err := storage.NewArchiveStore(t.TempDir())
	require.NoError(t, err)

	svc := NewArchiveService(store, nil, ArchiveConfig{})
	svc.Stop()

	require.Error(t, svc.Archive("x.csv", nil))
}
