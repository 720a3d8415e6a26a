package discover

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tokscout/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

var usernameRegexp = regexp.MustCompile(`@([a-zA-Z0-9._]+)`)

// ExtractUsernames pulls @username mentions out of the model response,
// deduplicated in order of first appearance.
func ExtractUsernames(text string) []string {
	matches := usernameRegexp.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool, len(matches))
	usernames := make([]string, 0, len(matches))

	for _, m := range matches {
		username := m[1]
		if seen[username] {
			continue
		}
		seen[username] = true
		usernames = append(usernames, username)
	}

	return usernames
}

// NewRunID builds the identifier recorded against every channel a search
// run touches.
func NewRunID(now time.Time) string {
	return fmt.Sprintf("run_%s", now.Format("20060102_1504"))
}

// UpsertChannels merges one run's usernames into the existing channel list.
// Known channels (case-insensitive) get their keywords and country extended
// and last_updated bumped; unknown ones are appended as new rows. Returns
// the combined list plus added/updated counts.
func UpsertChannels(existing []domain.Target, usernames []string, keywords, country, runID string, now time.Time) ([]domain.Target, int, int) {
	if keywords == "" {
		keywords = "general_search"
	}
	stamp := now.Format(timeLayout)

	index := make(map[string]int, len(existing))
	all := make([]domain.Target, len(existing))
	copy(all, existing)
	for i, ch := range all {
		index[strings.ToLower(ch.Username)] = i
	}

	var added, updated int

	for _, username := range usernames {
		key := strings.ToLower(username)

		if i, ok := index[key]; ok {
			all[i].Keywords = combineValues(all[i].Keywords, keywords)
			all[i].Country = combineValues(all[i].Country, country)
			all[i].LastUpdated = stamp
			updated++
			continue
		}

		all = append(all, domain.Target{
			Username:    username,
			ProfileURL:  domain.ProfileURLFor(username),
			FirstFound:  stamp,
			LastUpdated: stamp,
			SearchRun:   runID,
			Keywords:    keywords,
			Country:     country,
		})
		index[key] = len(all) - 1
		added++
	}

	return all, added, updated
}

// combineValues appends next to prev as a comma-separated list, avoiding
// duplicates.
func combineValues(prev, next string) string {
	if next == "" {
		return prev
	}
	if prev == "" {
		return next
	}
	if strings.Contains(prev, next) {
		return prev
	}
	return prev + ", " + next
}
