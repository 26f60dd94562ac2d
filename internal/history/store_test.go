package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrailerPack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	trailer := model.NewTrailer("53' van", 636, 102, 110)
	result := model.PackResult{PackedCount: 8, TotalPackable: 10, VolumePercent: 72.5}

	id, err := s.RecordRun(ctx, "west coast run", trailer, result, 1500*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.RunID)
	assert.Equal(t, "west coast run", r.PlanName)
	assert.Equal(t, "53' van", r.TrailerLabel)
	assert.Equal(t, model.ShapeRect, r.ShapeMode)
	assert.Equal(t, 10, r.ItemCount)
	assert.Equal(t, 8, r.PackedCount)
	assert.InDelta(t, 72.5, r.VolumePercent, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, r.Duration)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestListRuns_LimitAndOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	trailer := model.NewTrailer("van", 400, 100, 100)
	for i := 0; i < 5; i++ {
		_, err := s.RecordRun(ctx, "run", trailer, model.PackResult{PackedCount: i}, 0)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	trailer := model.NewTrailer("van", 400, 100, 100)
	for i := 0; i < 6; i++ {
		_, err := s.RecordRun(ctx, "run", trailer, model.PackResult{}, 0)
		require.NoError(t, err)
	}

	require.NoError(t, s.Prune(ctx, 2))

	runs, err := s.ListRuns(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
