package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"vendor-risk-assessor/internal/logging"
	"vendor-risk-assessor/internal/model"
)

const defaultConcurrency = 4

type LoadOptions struct {
	// Concurrency bounds how many files are read and decoded at once.
	Concurrency int
	Logger      *slog.Logger
}

// Loaded is the outcome of reading a vendor directory. Sources are ordered by
// file name; Skipped holds one UnreadableSource diagnostic per file that could
// not be used.
type Loaded struct {
	Sources []model.VendorSource
	Skipped []model.Diagnostic
	Seen    int
}

type fileResult struct {
	src model.VendorSource
	err error
}

// LoadVendorDir reads every .json/.yaml/.yml file in dir. Files are decoded
// concurrently but returned in name order, so the caller's fold is
// deterministic. Only a directory read failure or cancellation is an error;
// broken files become diagnostics.
func LoadVendorDir(ctx context.Context, dir string, opts LoadOptions) (*Loaded, error) {
	logger := logging.OrDiscard(opts.Logger)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vendor dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			logger.Debug("ignoring non-data file", "file", e.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := LoadVendorFile(p)
			results[i] = fileResult{src: src, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load vendor dir: %w", err)
	}

	out := &Loaded{Seen: len(paths)}
	seen := make(map[string]string, len(paths))
	for i, r := range results {
		label := filepath.Base(paths[i])
		vendor := VendorID(label)
		if r.err != nil {
			out.Skipped = append(out.Skipped, model.Diagnostic{
				Kind:    model.UnreadableSource,
				Vendor:  vendor,
				Source:  label,
				Message: fmt.Sprintf("source skipped: %v", r.err),
			})
			continue
		}
		if prev, dup := seen[vendor]; dup {
			out.Skipped = append(out.Skipped, model.Diagnostic{
				Kind:    model.UnreadableSource,
				Vendor:  vendor,
				Source:  label,
				Message: fmt.Sprintf("source skipped: vendor identifier already provided by %s", prev),
			})
			continue
		}
		seen[vendor] = label
		out.Sources = append(out.Sources, r.src)
	}
	logger.Debug("vendor dir loaded", "dir", dir, "seen", out.Seen, "usable", len(out.Sources), "skipped", len(out.Skipped))
	return out, nil
}
