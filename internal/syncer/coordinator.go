package syncer

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/logger"
	"github.com/tradeblocks/blocksync/internal/parser"
	"github.com/tradeblocks/blocksync/internal/store"
)

const defaultWorkerPoolSize = 4

// Config holds coordinator configuration
type Config struct {
	// BaseDir is the data directory holding block folders and the market
	// data folder
	BaseDir string
	// WorkerPoolSize bounds how many block syncs run concurrently during
	// SyncAll. The work is I/O bound; a small pool keeps one slow disk
	// read from stalling all others without flooding the store.
	WorkerPoolSize int
	// ConflictRetryInterval is the initial backoff before the single retry
	// of a write conflict
	ConflictRetryInterval time.Duration
}

// Coordinator is the only entry point surrounding code calls. It computes
// the worklist, dispatches block sources to the BlockSyncer and market
// feeds to the FeedMerger, and folds per-source outcomes into one report
// instead of failing the whole operation because one source is broken.
//
// Both entry points are idempotent: with no file changes in between, a
// second call performs only hash comparisons and metadata reads.
type Coordinator struct {
	cfg      Config
	store    store.Store
	clock    adapter.Clock
	detector *Detector
	blocks   *BlockSyncer
	feeds    *FeedMerger
	// locks serializes concurrent sync attempts on the same source; work
	// on distinct sources proceeds in parallel.
	locks *xsync.Map[string, *sync.Mutex]
}

// NewCoordinator creates a sync coordinator rooted at cfg.BaseDir
func NewCoordinator(cfg Config, st store.Store, p parser.Parser, filesystem adapter.FileSystem, clock adapter.Clock) *Coordinator {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ConflictRetryInterval <= 0 {
		cfg.ConflictRetryInterval = 50 * time.Millisecond
	}
	return &Coordinator{
		cfg:      cfg,
		store:    st,
		clock:    clock,
		detector: NewDetector(cfg.BaseDir, filesystem, st),
		blocks:   NewBlockSyncer(st, p, filesystem, clock),
		feeds:    NewFeedMerger(st, p, filesystem, clock),
		locks:    xsync.NewMap[string, *sync.Mutex](),
	}
}

// SyncAll brings the whole cache up to date with the base directory:
// orphaned blocks are removed, new and changed blocks are re-synced across
// a bounded worker pool, and every feed file is merged. No single source's
// failure stops the run.
func (c *Coordinator) SyncAll(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), StartedAt: c.clock.Now()}

	wl, err := c.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	record := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		report.record(o)
	}

	for _, src := range wl.Unchanged {
		record(Outcome{Source: src, Status: StatusUnchanged})
	}
	for _, src := range wl.ToDelete {
		record(c.deleteBlock(ctx, src))
	}

	pool := pond.NewPool(c.cfg.WorkerPoolSize, pond.WithContext(ctx))
	for _, src := range wl.ToSync {
		pool.Submit(func() {
			record(c.guarded(src, func() Outcome {
				return c.withConflictRetry(ctx, src, func() Outcome {
					return c.blocks.SyncOne(ctx, src)
				})
			}))
		})
	}
	pool.StopAndWait()

	for _, src := range wl.Feeds {
		record(c.guarded(src, func() Outcome {
			return c.withConflictRetry(ctx, src, func() Outcome {
				return c.feeds.MergeOne(ctx, src)
			})
		}))
	}

	report.FinishedAt = c.clock.Now()
	logger.InfoCtx(ctx, "sync run finished",
		zap.String("run_id", report.RunID),
		zap.Int("synced", report.Synced),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("merged", report.Merged),
		zap.Int("deleted", report.Deleted),
		zap.Int("errors", len(report.Errors)),
	)
	return report, nil
}

// SyncOne brings a single source up to date before a targeted query. The
// ID is a block folder name or a feed file name. A block whose folder
// disappeared from disk has its cached data removed and reports
// StatusNotFound with a nil error, so callers can tell "this block no
// longer exists" apart from "this block failed to sync"; an ID that was
// never synced at all reports StatusNotFound with ErrSourceNotFound.
func (c *Coordinator) SyncOne(ctx context.Context, sourceID string) Outcome {
	feed := domain.FeedSource(c.cfg.BaseDir, sourceID)
	if info, err := c.blocks.fs.Stat(feed.Path); err == nil && !info.IsDir() {
		return c.guarded(feed, func() Outcome {
			return c.withConflictRetry(ctx, feed, func() Outcome {
				return c.feeds.MergeOne(ctx, feed)
			})
		})
	}

	src := domain.BlockSource(c.cfg.BaseDir, sourceID)
	if info, err := c.blocks.fs.Stat(src.Path); err == nil && info.IsDir() {
		return c.guarded(src, func() Outcome {
			return c.withConflictRetry(ctx, src, func() Outcome {
				return c.blocks.SyncOne(ctx, src)
			})
		})
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	// Folder gone. If the block was known, take the delete path; either
	// way this is "not found", not a sync failure.
	return c.guarded(src, func() Outcome {
		state, err := c.store.GetBlockState(ctx, src.ID)
		if err != nil {
			return Outcome{Source: src, Status: StatusError, Err: err}
		}
		if state == nil {
			return Outcome{Source: src, Status: StatusNotFound, Err: domain.ErrSourceNotFound}
		}
		if err := c.store.DeleteBlock(ctx, src.ID); err != nil {
			return Outcome{Source: src, Status: StatusError, Err: err}
		}
		logger.InfoCtx(ctx, "removed data for vanished block", zap.String("block_id", src.ID))
		return Outcome{Source: src, Status: StatusNotFound}
	})
}

// deleteBlock removes an orphaned block's records and sync state.
func (c *Coordinator) deleteBlock(ctx context.Context, src domain.Source) Outcome {
	return c.guarded(src, func() Outcome {
		if err := c.store.DeleteBlock(ctx, src.ID); err != nil {
			return Outcome{Source: src, Status: StatusError, Err: err}
		}
		logger.InfoCtx(ctx, "removed data for vanished block", zap.String("block_id", src.ID))
		return Outcome{Source: src, Status: StatusDeleted}
	})
}

// guarded runs fn while holding the source's lock, serializing concurrent
// attempts on the same source.
func (c *Coordinator) guarded(src domain.Source, fn func() Outcome) Outcome {
	lock, _ := c.locks.LoadOrStore(string(src.Kind)+"/"+src.ID, &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()
	return fn()
}

// withConflictRetry retries a write conflict once. The losing attempt's
// SyncOne/MergeOne re-reads the stored state from scratch, so the retry
// compares against fresh fingerprints instead of blindly overwriting.
func (c *Coordinator) withConflictRetry(ctx context.Context, src domain.Source, fn func() Outcome) Outcome {
	var out Outcome

	operation := func() error {
		out = fn()
		if out.Err != nil && errors.Is(out.Err, domain.ErrWriteConflict) {
			return out.Err
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "write conflict, retrying",
			zap.String("source", src.String()),
			zap.Duration("retry_in", wait),
		)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.ConflictRetryInterval
	_ = backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, 1), ctx), notify)

	return out
}
