// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hymnal/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".hymnal", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ok := &types.RunReport{
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Sources:    []string{"a.mscz", "b.mscz"},
		Artifacts: []types.BuildArtifact{
			{Kind: types.ArtifactPage, Path: "build/a.pdf"},
			{Kind: types.ArtifactPage, Path: "build/b.pdf"},
			{Kind: types.ArtifactMerged, Path: "dist/hymnal.pdf"},
		},
		Attachment: "dist/hymnal.pdf",
		Delivered:  true,
	}
	require.NoError(t, s.Record(ctx, ok, 0, nil))

	failed := &types.RunReport{
		StartedAt:  start.Add(time.Hour),
		FinishedAt: start.Add(time.Hour + time.Second),
		Sources:    []string{"a.mscz"},
	}
	require.NoError(t, s.Record(ctx, failed, 3, errors.New("converting a.mscz: exit status 1")))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 3, got[0].ExitCode)
	assert.Equal(t, "converting a.mscz: exit status 1", got[0].Error)
	assert.False(t, got[0].Delivered)
	assert.Empty(t, got[0].Attachment)

	assert.Equal(t, 0, got[1].ExitCode)
	assert.Equal(t, 2, got[1].Sources)
	assert.Equal(t, 3, got[1].Artifacts)
	assert.True(t, got[1].Delivered)
	assert.Equal(t, "dist/hymnal.pdf", got[1].Attachment)
	assert.True(t, got[1].StartedAt.Equal(start))
	assert.Equal(t, 42*time.Second, got[1].FinishedAt.Sub(got[1].StartedAt))
}

func TestRecent_Limit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, &types.RunReport{StartedAt: time.Now(), FinishedAt: time.Now()}, i, nil))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].ExitCode)
	assert.Equal(t, 3, got[1].ExitCode)
}

func TestRecent_Empty(t *testing.T) {
	got, err := testStore(t).Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecent_CorruptTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		started  string
		finished string
		wantErr  string
	}{
		{name: "started", started: "yesterday", finished: "2026-03-01T09:00:42Z", wantErr: "started_at"},
		{name: "finished", started: "2026-03-01T09:00:00Z", finished: "", wantErr: "finished_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			_, err := s.db.Exec(
				`INSERT INTO runs (started_at, finished_at, sources, artifacts, delivered, exit_code)
				 VALUES (?, ?, 1, 1, 0, 0)`, tt.started, tt.finished)
			require.NoError(t, err)

			entries, err := s.Recent(context.Background(), 10)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "scanning run 1")
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, entries)
		})
	}
}
