package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokscout/internal/domain"
)

func TestChannelStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.csv")
	s := NewChannelStore(path)

	channels := []domain.Target{
		{
			Username:    "pawsome",
			ProfileURL:  "https://www.tiktok.com/@pawsome",
			FirstFound:  "2026-08-01 10:00:00",
			LastUpdated: "2026-08-01 10:00:00",
			SearchRun:   "run_20260801_1000",
			Keywords:    "dogs",
			Country:     "US",
		},
		{
			Username:   "cat.corner",
			ProfileURL: "https://www.tiktok.com/@cat.corner",
			Keywords:   "cats, kittens",
		},
	}

	require.NoError(t, s.Save(channels))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, channels, loaded)
}

func TestChannelStoreMissingFileIsEmpty(t *testing.T) {
	s := NewChannelStore(filepath.Join(t.TempDir(), "nope.csv"))

	loaded, err := s.Load()

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestResolutionStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	s := NewResolutionStore(path)

	checkedAt := time.Date(2026, 8, 30, 12, 30, 0, 0, time.UTC)
	resolutions := []domain.Resolution{
		{
			Username:   "PawSome",
			ProfileURL: "https://www.tiktok.com/@PawSome",
			Status:     domain.StatusValid,
			Message:    "Username title found: 'pawsome'",
			TimeTaken:  2500 * time.Millisecond,
			CheckedAt:  checkedAt,
		},
		{
			Username:  "ghost",
			Status:    domain.StatusInvalid,
			Message:   "Account not found: 'Couldn't find this account'",
			CheckedAt: checkedAt,
		},
	}

	require.NoError(t, s.SaveResolutions(resolutions))

	loaded, err := s.LoadResolutions()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Keys are lowercased for the idempotent skip lookup.
	got, ok := loaded["pawsome"]
	require.True(t, ok)
	assert.Equal(t, "PawSome", got.Username)
	assert.Equal(t, domain.StatusValid, got.Status)
	assert.Equal(t, 2500*time.Millisecond, got.TimeTaken)
	assert.True(t, got.CheckedAt.Equal(checkedAt))

	assert.Equal(t, domain.StatusInvalid, loaded["ghost"].Status)
}

func TestResolutionStoreIgnoresRowsWithoutStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	csv := "username,profile_url,status,message,time_taken,checked_at\n" +
		"done,https://www.tiktok.com/@done,valid,ok,1.0,2026-08-30 12:00:00\n" +
		"pending,https://www.tiktok.com/@pending,,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	loaded, err := NewResolutionStore(path).LoadResolutions()

	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "done")
	assert.NotContains(t, loaded, "pending")
}

func TestResolutionStoreMissingFileIsEmpty(t *testing.T) {
	s := NewResolutionStore(filepath.Join(t.TempDir(), "nope.csv"))

	loaded, err := s.LoadResolutions()

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadLinksSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	content := "# favorites\n" +
		"https://www.tiktok.com/@a/video/1\n" +
		"\n" +
		"  https://www.tiktok.com/@b/video/2  \n" +
		"# done\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	links, err := LoadLinks(path)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.tiktok.com/@a/video/1",
		"https://www.tiktok.com/@b/video/2",
	}, links)
}

func TestLoadLinksMissingFile(t *testing.T) {
	_, err := LoadLinks(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestSaveMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	entries := []domain.VideoMetadata{
		{
			VideoName:  "clip.mp4",
			VideoTitle: "clip",
			VideoURL:   "https://www.tiktok.com/@a/video/1",
			Uploader:   "a",
			Duration:   14.5,
			Analysis:   domain.UnavailableAnalysis(),
		},
	}

	require.NoError(t, SaveMetadata(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"video_name": "clip.mp4"`)
	assert.Contains(t, string(data), `"Analysis not available"`)
}
