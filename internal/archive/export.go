package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

func exportJSON(ctx context.Context, s lister, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	export := &Export{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Count:      len(all),
		Reports:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func importJSON(ctx context.Context, s lister, reader io.Reader) (imported int, skipped int, err error) {
	var export Export
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, r := range export.Reports {
		_, err := s.Get(ctx, r.ID)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
		}

		if err := s.Save(ctx, r); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}
