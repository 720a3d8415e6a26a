package domain

import "fmt"

// Target is one channel to validate: a username plus its profile URL.
// The remaining fields are carried through from the channel CSV.
type Target struct {
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`

	FirstFound  string `json:"first_found,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	SearchRun   string `json:"search_run,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Country     string `json:"country,omitempty"`
}

// ProfileURL builds the canonical profile URL for a username.
func ProfileURLFor(username string) string {
	return fmt.Sprintf("https://www.tiktok.com/@%s", username)
}
