package services

import (
	"context"
	"time"

	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/storage"
)

// CleanupService periodically removes files on disk that no document row
// references anymore, e.g. after a crash between storing a file and
// committing its record. Files younger than the grace period are skipped:
// an upload stores its file before the row commits, and the sweep must not
// win that race.
type CleanupService interface {
	Start(ctx context.Context, interval time.Duration)
	SweepOrphans(ctx context.Context) (int, error)
}

type cleanupService struct {
	documents repositories.DocumentRepository
	store     storage.Store
	grace     time.Duration
}

func NewCleanupService(documents repositories.DocumentRepository, store storage.Store, grace time.Duration) CleanupService {
	if grace <= 0 {
		grace = time.Hour
	}
	return &cleanupService{documents: documents, store: store, grace: grace}
}

func (s *cleanupService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.SweepOrphans(ctx)
				if err != nil {
					logger.Warnf("orphan sweep failed: %v", err)
					continue
				}
				if removed > 0 {
					logger.Infof("orphan sweep removed %d files", removed)
				}
			}
		}
	}()
}

func (s *cleanupService) SweepOrphans(ctx context.Context) (int, error) {
	referenced, err := s.documents.ListAllFilePaths(ctx, nil)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(referenced))
	for _, path := range referenced {
		known[path] = struct{}{}
	}

	onDisk, err := s.store.ListFiles()
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.grace)
	removed := 0
	for _, file := range onDisk {
		if _, ok := known[file.Path]; ok {
			continue
		}
		if file.ModTime.After(cutoff) {
			// Possibly an in-flight upload; revisit on the next sweep.
			continue
		}
		if err := s.store.Delete(file.Path); err != nil {
			logger.Warnf("failed to remove orphaned file %s: %v", file.Path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
