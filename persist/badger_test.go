package persist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestLoadBeforeAnySaveReturnsErrNoSnapshot(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load()
	require.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	blob := []byte(`{"edges":{}}`)
	require.NoError(t, s.Save(blob))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, blob, got)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save([]byte("first")))
	require.NoError(t, s.Save([]byte("second")))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestLastSnapshotAtZeroBeforeSave(t *testing.T) {
	s := openTestStore(t)
	ts, err := s.LastSnapshotAt()
	require.NoError(t, err)
	require.True(t, ts.IsZero())
}

func TestLastSnapshotAtAdvancesAfterSave(t *testing.T) {
	s := openTestStore(t)
	before := time.Now().UTC()
	require.NoError(t, s.Save([]byte("x")))

	ts, err := s.LastSnapshotAt()
	require.NoError(t, err)
	require.False(t, ts.Before(before.Add(-time.Second)))
}
