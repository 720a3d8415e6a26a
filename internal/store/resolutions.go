package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tokscout/internal/domain"
)

var resolutionHeader = []string{
	"username",
	"profile_url",
	"status",
	"message",
	"time_taken",
	"checked_at",
}

// ResolutionStore reads and writes the validation result CSV. It satisfies
// validate.Store: loaded once before a batch, rewritten once after.
type ResolutionStore struct {
	path string
}

func NewResolutionStore(path string) *ResolutionStore {
	return &ResolutionStore{path: path}
}

// LoadResolutions returns stored results keyed by lowercase username.
// Rows without a status are ignored, so they will be re-probed. A missing
// file is an empty store.
func (s *ResolutionStore) LoadResolutions() (map[string]domain.Resolution, error) {
	resolutions := make(map[string]domain.Resolution)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return resolutions, nil
		}
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}
	if len(rows) == 0 {
		return resolutions, nil
	}

	col := columnIndex(rows[0])

	for _, row := range rows[1:] {
		username := field(row, col, "username")
		status := field(row, col, "status")
		if username == "" || status == "" {
			continue
		}

		res := domain.Resolution{
			Username:   username,
			ProfileURL: field(row, col, "profile_url"),
			Status:     domain.ChannelStatus(status),
			Message:    field(row, col, "message"),
		}

		if secs, err := strconv.ParseFloat(field(row, col, "time_taken"), 64); err == nil {
			res.TimeTaken = time.Duration(secs * float64(time.Second))
		}
		if ts, err := time.Parse(timeLayout, field(row, col, "checked_at")); err == nil {
			res.CheckedAt = ts
		}

		resolutions[strings.ToLower(username)] = res
	}

	return resolutions, nil
}

// SaveResolutions rewrites the result file in the given order, header
// included.
func (s *ResolutionStore) SaveResolutions(resolutions []domain.Resolution) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resolutionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, res := range resolutions {
		checkedAt := ""
		if !res.CheckedAt.IsZero() {
			checkedAt = res.CheckedAt.Format(timeLayout)
		}
		row := []string{
			res.Username,
			res.ProfileURL,
			string(res.Status),
			res.Message,
			fmt.Sprintf("%.1f", res.TimeTaken.Seconds()),
			checkedAt,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush result file: %w", err)
	}

	return nil
}
