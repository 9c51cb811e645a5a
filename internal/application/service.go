// Package application wires the ingestion pipeline: it turns filesystem
// events from internal/watcher into parsed hands or tournament summaries
// and hands them to internal/persistence, announcing successful commits on
// a Notifier for external consumers.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/clemux/holdem-suite/internal/parser"
	"github.com/clemux/holdem-suite/internal/persistence"
	"github.com/clemux/holdem-suite/internal/summaryparser"
	"github.com/clemux/holdem-suite/internal/watcher"
)

// Service is the single-threaded ingestion pipeline described in §4.6/§5: it
// consumes one filesystem event at a time, reads the whole file, dispatches
// to the hand grammar or the summary grammar by path, and runs the store's
// idempotent upsert — all synchronously, on the thread that calls IngestFile.
type Service struct {
	repo     persistence.Repository
	notifier *Notifier
}

func NewService(repo persistence.Repository, notifier *Notifier) *Service {
	if notifier == nil {
		notifier = NewNotifier()
	}
	return &Service{repo: repo, notifier: notifier}
}

// Notifier exposes the channel external consumers subscribe to.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}

// Close releases the underlying store connection.
func (s *Service) Close() error {
	return s.repo.Close()
}

// WatcherConfig builds the watcher.Config the caller passes to watcher.New,
// routing every Create/Write event through IngestFile. Parse and I/O errors
// are logged and swallowed here, per §4.6 step 4: a bad file never stops the
// watcher.
func (s *Service) WatcherConfig(ctx context.Context) watcher.Config {
	return watcher.Config{
		OnEvent: func(ev watcher.Event) {
			if _, err := s.IngestFile(ctx, ev.Path); err != nil {
				slog.Warn("ingest failed", "path", ev.Path, "error", err)
			}
		},
		OnError: func(err error) {
			slog.Warn("watcher error", "error", err)
		},
	}
}

// IngestFile runs the full C6 algorithm for a single file: read, classify,
// parse, upsert, notify. It returns the number of newly-inserted hands (zero
// for a summary file, or for a hand file whose hands were all already
// persisted).
func (s *Service) IngestFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(data)

	if isSummaryFile(path) {
		return 0, s.ingestSummary(ctx, path, text)
	}
	return s.ingestHands(ctx, path, text)
}

// isSummaryFile implements the §4.6 classifier: any path containing the
// substring "summary" is a tournament-summary file, everything else is a
// hand-history file.
func isSummaryFile(path string) bool {
	return strings.Contains(path, "summary")
}

func (s *Service) ingestHands(ctx context.Context, path, text string) (int, error) {
	hands, err := parser.ParseHands(text)
	if err != nil {
		slog.Warn("Error parsing "+path, "error", err)
		return 0, nil
	}

	n, err := s.repo.InsertHands(ctx, hands)
	if err != nil {
		return 0, fmt.Errorf("insert hands from %s: %w", path, err)
	}
	if n > 0 {
		s.notifier.PublishDataChanged(fmt.Sprintf("%d new hand(s) from %s", n, path))
	}
	return n, nil
}

func (s *Service) ingestSummary(ctx context.Context, path, text string) error {
	summary, err := summaryparser.Parse(text)
	if err != nil {
		slog.Warn("Error parsing "+path, "error", err)
		return nil
	}

	inserted, err := s.repo.InsertSummary(ctx, summary)
	if err != nil {
		return fmt.Errorf("insert summary from %s: %w", path, err)
	}
	if inserted {
		s.notifier.PublishDataChanged(fmt.Sprintf("tournament summary %q from %s", summary.Name, path))
	}
	return nil
}
