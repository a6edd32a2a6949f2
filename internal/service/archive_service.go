package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classsync/classsync-api/pkg/jobs"
	"github.com/classsync/classsync-api/pkg/storage"
)

// ArchiveConfig tunes the export archive workers and retention.
type ArchiveConfig struct {
	Workers         int
	RetentionTTL    time.Duration
	CleanupInterval time.Duration
}

type archivePayload struct {
	Filename string
	Data     []byte
}

// ArchiveService writes rendered export documents to disk off the request
// path and prunes copies past their retention window.
type ArchiveService struct {
	store  *storage.ArchiveStore
	queue  *jobs.Queue
	logger *zap.Logger
	cfg    ArchiveConfig

	cancel context.CancelFunc
	done   chan struct{}
}

// NewArchiveService wires the archive store behind a worker queue.
func NewArchiveService(store *storage.ArchiveStore, logger *zap.Logger, cfg ArchiveConfig) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RetentionTTL <= 0 {
		cfg.RetentionTTL = 7 * 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	s := &ArchiveService{store: store, logger: logger, cfg: cfg, done: make(chan struct{})}
	s.queue = jobs.NewQueue("export-archive", s.handle, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the workers and the retention sweep.
func (s *ArchiveService) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.queue.Start(ctx)
	go s.sweep(ctx)
}

// Stop drains workers and halts the sweep.
func (s *ArchiveService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.queue.Stop()
	<-s.done
}

// Archive enqueues one rendered document for persistence.
func (s *ArchiveService) Archive(filename string, payload []byte) error {
	data := make([]byte, len(payload))
	copy(data, payload)
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Kind:    "archive_export",
		Payload: archivePayload{Filename: filename, Data: data},
	})
}

func (s *ArchiveService) handle(_ context.Context, job jobs.Job) error {
	p, ok := job.Payload.(archivePayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	if _, err := s.store.Save(p.Filename, p.Data); err != nil {
		return err
	}
	s.logger.Debug("export archived", zap.String("filename", p.Filename))
	return nil
}

func (s *ArchiveService) sweep(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.CleanupOlderThan(s.cfg.RetentionTTL)
			if err != nil {
				s.logger.Warn("archive cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				s.logger.Info("archive cleanup", zap.Int("deleted", len(deleted)))
			}
		}
	}
}
