package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// RevocationCleaner removes revocation entries that can no longer affect any token.
type RevocationCleaner interface {
	CleanupInert(ctx context.Context, dryRun bool) (int64, error)
}

// RunCleanRevocations deletes inert revocation entries, or only counts them in dry-run mode.
// The result is written to out as text or JSON.
func RunCleanRevocations(
	ctx context.Context,
	cleaner RevocationCleaner,
	logger *slog.Logger,
	out io.Writer,
	dryRun bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning inert revocations", slog.Bool("dry_run", dryRun))

	count, err := cleaner.CleanupInert(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to cleanup revocations: %w", err)
	}

	if format == "json" {
		if err := writeJSON(out, map[string]any{"count": count, "dry_run": dryRun}); err != nil {
			return err
		}
	} else {
		outputCleanRevocationsText(out, count, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

func outputCleanRevocationsText(out io.Writer, count int64, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(out, "Dry-run mode: Would delete %d inert revocation(s)\n", count)
		return
	}
	_, _ = fmt.Fprintf(out, "Successfully deleted %d inert revocation(s)\n", count)
}
