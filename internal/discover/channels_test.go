package discover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tokscout/internal/domain"
)

func TestExtractUsernames(t *testing.T) {
	text := `Here are some channels:
1. @pawsome_pets - dog grooming clips (https://www.tiktok.com/@pawsome_pets)
2. @cat.corner - cats
3. @pawsome_pets again, plus @vet_tips.daily`

	usernames := ExtractUsernames(text)

	assert.Equal(t, []string{"pawsome_pets", "cat.corner", "vet_tips.daily"}, usernames)
}

func TestExtractUsernamesEmpty(t *testing.T) {
	assert.Empty(t, ExtractUsernames("no handles in this response"))
}

func TestNewRunID(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "run_20260830_1405", NewRunID(now))
}

func TestUpsertChannelsAddsNew(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	all, added, updated := UpsertChannels(nil, []string{"pawsome", "cat.corner"}, "dogs", "US", "run_x", now)

	assert.Equal(t, 2, added)
	assert.Equal(t, 0, updated)
	assert.Equal(t, []domain.Target{
		{
			Username:    "pawsome",
			ProfileURL:  "https://www.tiktok.com/@pawsome",
			FirstFound:  "2026-08-30 14:05:00",
			LastUpdated: "2026-08-30 14:05:00",
			SearchRun:   "run_x",
			Keywords:    "dogs",
			Country:     "US",
		},
		{
			Username:    "cat.corner",
			ProfileURL:  "https://www.tiktok.com/@cat.corner",
			FirstFound:  "2026-08-30 14:05:00",
			LastUpdated: "2026-08-30 14:05:00",
			SearchRun:   "run_x",
			Keywords:    "dogs",
			Country:     "US",
		},
	}, all)
}

func TestUpsertChannelsUpdatesExisting(t *testing.T) {
	existing := []domain.Target{{
		Username:    "PawSome",
		ProfileURL:  "https://www.tiktok.com/@PawSome",
		FirstFound:  "2026-08-01 10:00:00",
		LastUpdated: "2026-08-01 10:00:00",
		SearchRun:   "run_old",
		Keywords:    "dogs",
		Country:     "US",
	}}
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	// Match is case-insensitive against the stored username.
	all, added, updated := UpsertChannels(existing, []string{"pawsome"}, "cats", "DE", "run_new", now)

	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)
	assert.Len(t, all, 1)
	assert.Equal(t, "PawSome", all[0].Username)
	assert.Equal(t, "dogs, cats", all[0].Keywords)
	assert.Equal(t, "US, DE", all[0].Country)
	assert.Equal(t, "2026-08-30 14:05:00", all[0].LastUpdated)
	assert.Equal(t, "2026-08-01 10:00:00", all[0].FirstFound)
	assert.Equal(t, "run_old", all[0].SearchRun)
}

func TestUpsertChannelsDoesNotMutateInput(t *testing.T) {
	existing := []domain.Target{{Username: "pawsome", Keywords: "dogs"}}
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	UpsertChannels(existing, []string{"pawsome"}, "cats", "", "run_x", now)

	assert.Equal(t, "dogs", existing[0].Keywords)
}

func TestUpsertChannelsDefaultsKeywords(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	all, _, _ := UpsertChannels(nil, []string{"pawsome"}, "", "", "run_x", now)

	assert.Equal(t, "general_search", all[0].Keywords)
}

func TestCombineValues(t *testing.T) {
	tests := []struct {
		prev, next, want string
	}{
		{"", "", ""},
		{"dogs", "", "dogs"},
		{"", "cats", "cats"},
		{"dogs", "cats", "dogs, cats"},
		{"dogs, cats", "cats", "dogs, cats"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, combineValues(tt.prev, tt.next), "prev=%q next=%q", tt.prev, tt.next)
	}
}
