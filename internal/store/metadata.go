package store

import (
	"encoding/json"
	"fmt"
	"os"

	"tokscout/internal/domain"
)

// SaveMetadata writes the collected video metadata as indented JSON.
func SaveMetadata(path string, entries []domain.VideoMetadata) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
