package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

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

// BlockSyncer atomically replaces one block's records in the cache. Every
// attempt either commits a complete new record set with matching sync state
// or leaves the cache exactly as it was, except for the broken-block
// cleanup described on syncOne.
type BlockSyncer struct {
	store  store.Store
	parser parser.Parser
	fs     adapter.FileSystem
	clock  adapter.Clock
}

// NewBlockSyncer creates a block syncer
func NewBlockSyncer(st store.Store, p parser.Parser, filesystem adapter.FileSystem, clock adapter.Clock) *BlockSyncer {
	return &BlockSyncer{store: st, parser: p, fs: filesystem, clock: clock}
}

// SyncOne brings one block's cache up to date with its folder on disk.
// When a previously-good block turns out broken (unreadable or unparsable
// primary), its stale records and sync state are removed rather than left
// to silently serve outdated data.
func (s *BlockSyncer) SyncOne(ctx context.Context, src domain.Source) Outcome {
	state, err := s.store.GetBlockState(ctx, src.ID)
	if err != nil {
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	_, primaryHash, err := hasher.File(s.fs, src.PrimaryFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", domain.ErrMissingPrimaryFile, src.PrimaryFile())
		}
		return s.failBroken(ctx, src, state, err)
	}

	secondaryHashes, err := s.readSecondary(src)
	if err != nil {
		return s.failBroken(ctx, src, state, err)
	}

	if state != nil &&
		state.SchemaVersion == schema.BlockSchemaVersion &&
		state.PrimaryHash == primaryHash &&
		mapsEqual(state.SecondaryHashes.Data(), secondaryHashes) {
		return Outcome{Source: src, Status: StatusUnchanged}
	}

	trades, err := s.parser.ParseTradeLog(src.PrimaryFile(), src.ID)
	if err != nil {
		return s.failBroken(ctx, src, state, err)
	}

	var balances []*schema.DailyBalance
	if len(secondaryHashes) > 0 {
		balances, err = s.parser.ParseDailyLog(src.DailyLogFile(), src.ID)
		if err != nil {
			return s.failBroken(ctx, src, state, err)
		}
	}

	input := store.ReplaceBlockInput{
		State: schema.BlockSyncState{
			BlockID:         src.ID,
			PrimaryHash:     primaryHash,
			SecondaryHashes: datatypes.NewJSONType(secondaryHashes),
			SchemaVersion:   schema.BlockSchemaVersion,
			SyncedAt:        s.clock.Now(),
		},
		Trades:        trades,
		DailyBalances: balances,
	}
	if err := s.store.ReplaceBlock(ctx, input); err != nil {
		// The transaction rolled back; previous records are intact. No
		// cleanup here: a store failure says nothing about the source.
		return Outcome{Source: src, Status: StatusError, Err: err}
	}

	logger.DebugCtx(ctx, "block synced",
		zap.String("block_id", src.ID),
		zap.Int("trades", len(trades)),
		zap.Int("daily_balances", len(balances)),
	)

	return Outcome{Source: src, Status: StatusSynced, RecordCount: len(trades) + len(balances)}
}

// readSecondary fingerprints the block's optional daily log. Absence is
// not an error.
func (s *BlockSyncer) readSecondary(src domain.Source) (map[string]string, error) {
	hashes := map[string]string{}
	_, h, err := hasher.File(s.fs, src.DailyLogFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return hashes, nil
		}
		return nil, err
	}
	hashes[filepath.Base(src.DailyLogFile())] = h
	return hashes, nil
}

// failBroken reports a per-source error. If the block was previously
// synced, its now-stale cache entry is removed first: no stale data takes
// priority over keeping something available.
func (s *BlockSyncer) failBroken(ctx context.Context, src domain.Source, state *schema.BlockSyncState, cause error) Outcome {
	if state != nil {
		if err := s.store.DeleteBlock(ctx, src.ID); err != nil {
			logger.WarnCtx(ctx, "failed to remove stale data for broken block",
				zap.String("block_id", src.ID),
				zap.Error(err),
			)
		} else {
			logger.WarnCtx(ctx, "removed stale data for broken block",
				zap.String("block_id", src.ID),
				zap.Error(cause),
			)
		}
	}
	return Outcome{Source: src, Status: StatusError, Err: cause}
}
