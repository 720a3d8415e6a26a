package domain

import "time"

// ChannelStatus is the final per-target status persisted to the store.
type ChannelStatus string

const (
	StatusValid     ChannelStatus = "valid"
	StatusInvalid   ChannelStatus = "invalid"
	StatusUndefined ChannelStatus = "undefined"
)

// statusOrder drives the report sort: valid first, undefined, invalid last.
var statusOrder = map[ChannelStatus]int{
	StatusValid:     1,
	StatusUndefined: 2,
	StatusInvalid:   3,
}

// SortRank returns the report position for a status. Unknown statuses sort last.
func (s ChannelStatus) SortRank() int {
	if rank, ok := statusOrder[s]; ok {
		return rank
	}
	return len(statusOrder)
}

// Resolution is the terminal result for one target. Once written with a
// definitive status it is never overwritten by later runs.
type Resolution struct {
	Username   string        `json:"username"`
	ProfileURL string        `json:"profile_url"`
	Status     ChannelStatus `json:"status"`
	Message    string        `json:"message"`
	TimeTaken  time.Duration `json:"time_taken"`
	CheckedAt  time.Time     `json:"checked_at"`
}
