package syncer

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/hasher"
	"github.com/tradeblocks/blocksync/internal/logger"
	"github.com/tradeblocks/blocksync/internal/parser"
	"github.com/tradeblocks/blocksync/internal/store"
	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// FeedMerger appends genuinely new rows from a rolling-window market export
// into the cache. The feed periodically re-exports the same trailing window,
// so replace-on-sync would destroy history outside the current window;
// instead rows already cached for a date are left untouched and only unseen
// dates are added, which makes the merge idempotent and commutative across
// overlapping imports.
type FeedMerger struct {
	store  store.Store
	parser parser.Parser
	fs     adapter.FileSystem
	clock  adapter.Clock
}

// NewFeedMerger creates a market data merger
func NewFeedMerger(st store.Store, p parser.Parser, filesystem adapter.FileSystem, clock adapter.Clock) *FeedMerger {
	return &FeedMerger{store: st, parser: p, fs: filesystem, clock: clock}
}

// MergeOne imports one feed file. An unchanged content fingerprint
// short-circuits without parsing; otherwise every previously-unseen date is
// inserted and the feed state records the processed content even when every
// row overlapped.
func (m *FeedMerger) MergeOne(ctx context.Context, src domain.Source) Outcome {
	_, contentHash, err := hasher.File(m.fs, src.Path)
	if err != nil {
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	state, err := m.store.GetFeedState(ctx, src.ID)
	if err != nil {
		return Outcome{Source: src, Status: StatusError, Err: err}
	}
	if state != nil && state.ContentHash == contentHash {
		return Outcome{Source: src, Status: StatusUnchanged}
	}

	days, err := m.parser.ParseMarketData(src.Path)
	if err != nil {
		// No cleanup on a broken feed: previously retained history is
		// never deleted by a later sync of the same feed.
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	maxDate := maxRetainedDate(state, days)
	inserted, err := m.store.MergeMarketDays(ctx, store.MergeMarketDaysInput{
		State: schema.FeedSyncState{
			FileName:        src.ID,
			ContentHash:     contentHash,
			MaxRetainedDate: maxDate,
			SyncedAt:        m.clock.Now(),
		},
		Days: days,
	})
	if err != nil {
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	skipped := len(days) - int(inserted)
	logger.DebugCtx(ctx, "market feed merged",
		zap.String("file", src.ID),
		zap.Int64("inserted", inserted),
		zap.Int("skipped", skipped),
	)

	return Outcome{Source: src, Status: StatusMerged, Inserted: inserted, Skipped: skipped}
}

// maxRetainedDate returns the newest date across the stored state and the
// rows being merged. The retained maximum never moves backwards even when
// the export's window slides past earlier data.
func maxRetainedDate(state *schema.FeedSyncState, days []*schema.MarketDay) datatypes.Date {
	var newest time.Time
	if state != nil {
		newest = time.Time(state.MaxRetainedDate)
	}
	for _, day := range days {
		if t := time.Time(day.Date); t.After(newest) {
			newest = t
		}
	}
	return datatypes.Date(newest)
}
