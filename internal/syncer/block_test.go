package syncer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/mocks"
	"github.com/tradeblocks/blocksync/internal/parser"
	"github.com/tradeblocks/blocksync/internal/store"
	"github.com/tradeblocks/blocksync/internal/store/schema"
	"github.com/tradeblocks/blocksync/internal/syncer"
)

type blockSyncerMocks struct {
	store  *mocks.MockStore
	parser *mocks.MockParser
	clock  *mocks.MockClock
	syncer *syncer.BlockSyncer
}

func setupBlockSyncer(t *testing.T) *blockSyncerMocks {
	t.Helper()
	ctrl := gomock.NewController(t)

	bm := &blockSyncerMocks{
		store:  mocks.NewMockStore(ctrl),
		parser: mocks.NewMockParser(ctrl),
		clock:  mocks.NewMockClock(ctrl),
	}
	bm.syncer = syncer.NewBlockSyncer(bm.store, bm.parser, adapter.NewFileSystem(), bm.clock)
	return bm
}

func TestBlockSyncOneFirstSync(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", tradeLogTwoTrades, dailyLogOneDay)
	src := domain.BlockSource(baseDir, "main-account")

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	want := stateFromDisk(t, baseDir, "main-account")
	trades := []*schema.Trade{{BlockID: "main-account"}, {BlockID: "main-account"}}
	balances := []*schema.DailyBalance{{BlockID: "main-account"}}

	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").Return(nil, nil)
	bm.parser.EXPECT().ParseTradeLog(src.PrimaryFile(), "main-account").Return(trades, nil)
	bm.parser.EXPECT().ParseDailyLog(src.DailyLogFile(), "main-account").Return(balances, nil)
	bm.clock.EXPECT().Now().Return(now)
	bm.store.EXPECT().ReplaceBlock(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.ReplaceBlockInput) error {
			assert.Equal(t, "main-account", input.State.BlockID)
			assert.Equal(t, want.PrimaryHash, input.State.PrimaryHash)
			assert.Equal(t, want.SecondaryHashes.Data(), input.State.SecondaryHashes.Data())
			assert.Equal(t, schema.BlockSchemaVersion, input.State.SchemaVersion)
			assert.Equal(t, now, input.State.SyncedAt)
			assert.Len(t, input.Trades, 2)
			assert.Len(t, input.DailyBalances, 1)
			return nil
		})

	out := bm.syncer.SyncOne(context.Background(), src)
	require.NoError(t, out.Err)
	assert.Equal(t, syncer.StatusSynced, out.Status)
	assert.Equal(t, 3, out.RecordCount)
}

func TestBlockSyncOneUnchanged(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", tradeLogOneTrade, dailyLogOneDay)
	src := domain.BlockSource(baseDir, "main-account")

	// Matching fingerprints short-circuit before any parsing.
	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").
		Return(stateFromDisk(t, baseDir, "main-account"), nil)

	out := bm.syncer.SyncOne(context.Background(), src)
	require.NoError(t, out.Err)
	assert.Equal(t, syncer.StatusUnchanged, out.Status)
}

func TestBlockSyncOneMissingPrimary(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", "", dailyLogOneDay)
	src := domain.BlockSource(baseDir, "main-account")

	// Never synced before, so there is no stale data to clean up.
	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").Return(nil, nil)

	out := bm.syncer.SyncOne(context.Background(), src)
	assert.Equal(t, syncer.StatusError, out.Status)
	assert.ErrorIs(t, out.Err, domain.ErrMissingPrimaryFile)
	assert.Equal(t, syncer.FailureSchema, syncer.ClassifyFailure(out.Err))
}

func TestBlockSyncOneBrokenRemovesStaleData(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", "Date Opened,P/L\ngarbage\n", "")
	src := domain.BlockSource(baseDir, "main-account")

	prior := stateFromDisk(t, baseDir, "main-account")
	prior.PrimaryHash = "previously-good"

	parseErr := &parser.ParseError{File: src.PrimaryFile(), Line: 1, Msg: "missing required column \"strategy\""}
	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").Return(prior, nil)
	bm.parser.EXPECT().ParseTradeLog(src.PrimaryFile(), "main-account").Return(nil, parseErr)
	bm.store.EXPECT().DeleteBlock(gomock.Any(), "main-account").Return(nil)

	out := bm.syncer.SyncOne(context.Background(), src)
	assert.Equal(t, syncer.StatusError, out.Status)
	assert.Equal(t, syncer.FailureParse, syncer.ClassifyFailure(out.Err))
}

func TestBlockSyncOneBrokenNeverSyncedWritesNothing(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", "Date Opened,P/L\ngarbage\n", "")
	src := domain.BlockSource(baseDir, "main-account")

	parseErr := &parser.ParseError{File: src.PrimaryFile(), Line: 1, Msg: "missing required column \"strategy\""}
	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").Return(nil, nil)
	bm.parser.EXPECT().ParseTradeLog(src.PrimaryFile(), "main-account").Return(nil, parseErr)
	// No DeleteBlock and no ReplaceBlock: the cache stays empty for this block.

	out := bm.syncer.SyncOne(context.Background(), src)
	assert.Equal(t, syncer.StatusError, out.Status)
}

func TestBlockSyncOneStoreFailureKeepsPreviousData(t *testing.T) {
	bm := setupBlockSyncer(t)
	baseDir := t.TempDir()
	writeBlock(t, baseDir, "main-account", tradeLogOneTrade, "")
	src := domain.BlockSource(baseDir, "main-account")

	prior := stateFromDisk(t, baseDir, "main-account")
	prior.PrimaryHash = "previously-good"

	conflict := fmt.Errorf("failed to replace block: %w", domain.ErrWriteConflict)
	bm.store.EXPECT().GetBlockState(gomock.Any(), "main-account").Return(prior, nil)
	bm.parser.EXPECT().ParseTradeLog(src.PrimaryFile(), "main-account").Return([]*schema.Trade{{BlockID: "main-account"}}, nil)
	bm.clock.EXPECT().Now().Return(time.Now())
	// The transaction rolled back. The previous records stay; no cleanup.
	bm.store.EXPECT().ReplaceBlock(gomock.Any(), gomock.Any()).Return(conflict)

	out := bm.syncer.SyncOne(context.Background(), src)
	assert.Equal(t, syncer.StatusError, out.Status)
	assert.ErrorIs(t, out.Err, domain.ErrWriteConflict)
	assert.Equal(t, syncer.FailureConflict, syncer.ClassifyFailure(out.Err))
}
