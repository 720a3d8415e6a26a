// Package store persists channels, validation results and video metadata.
// All writes are full-file rewrites; nothing here appends.
package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"tokscout/internal/domain"
)

// timeLayout is the timestamp format used across the CSV files.
const timeLayout = "2006-01-02 15:04:05"

var channelHeader = []string{
	"username",
	"profile_url",
	"first_found",
	"last_updated",
	"search_run",
	"keywords",
	"country",
}

// ChannelStore reads and writes the discovered-channel CSV.
type ChannelStore struct {
	path string
}

func NewChannelStore(path string) *ChannelStore {
	return &ChannelStore{path: path}
}

// Load returns all channels in file order. A missing file is an empty
// store, not an error.
func (s *ChannelStore) Load() ([]domain.Target, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open channel file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read channel file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := columnIndex(rows[0])
	targets := make([]domain.Target, 0, len(rows)-1)

	for _, row := range rows[1:] {
		username := field(row, col, "username")
		if username == "" {
			continue
		}
		targets = append(targets, domain.Target{
			Username:    username,
			ProfileURL:  field(row, col, "profile_url"),
			FirstFound:  field(row, col, "first_found"),
			LastUpdated: field(row, col, "last_updated"),
			SearchRun:   field(row, col, "search_run"),
			Keywords:    field(row, col, "keywords"),
			Country:     field(row, col, "country"),
		})
	}

	return targets, nil
}

// Save rewrites the channel file, header included.
func (s *ChannelStore) Save(channels []domain.Target) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create channel file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(channelHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, ch := range channels {
		row := []string{
			ch.Username,
			ch.ProfileURL,
			ch.FirstFound,
			ch.LastUpdated,
			ch.SearchRun,
			ch.Keywords,
			ch.Country,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush channel file: %w", err)
	}

	return nil
}

func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
