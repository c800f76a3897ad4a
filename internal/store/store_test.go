package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func day(value string) datatypes.Date {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func dayString(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

// buildTestState creates a block sync state row
func buildTestState(blockID, primaryHash string) schema.BlockSyncState {
	return schema.BlockSyncState{
		BlockID:         blockID,
		PrimaryHash:     primaryHash,
		SecondaryHashes: datatypes.NewJSONType(map[string]string{"dailylog.csv": "hash-daily"}),
		SchemaVersion:   schema.BlockSchemaVersion,
		SyncedAt:        time.Now().UTC(),
	}
}

// buildTestTrade creates a trade row for a block
func buildTestTrade(blockID, opened, strategy string, pl float64) *schema.Trade {
	return &schema.Trade{
		BlockID:      blockID,
		DateOpened:   day(opened),
		TimeOpened:   "09:33:00",
		Legs:         "SPX 4700P/4690P",
		PL:           pl,
		NumContracts: 1,
		Strategy:     strategy,
	}
}

// buildTestBalance creates a daily balance row for a block
func buildTestBalance(blockID, date string, netLiq float64) *schema.DailyBalance {
	return &schema.DailyBalance{
		BlockID:      blockID,
		Date:         day(date),
		NetLiquidity: netLiq,
		CurrentFunds: netLiq,
	}
}

// buildTestMarketDay creates a market day row
func buildTestMarketDay(date string, closePrice float64) *schema.MarketDay {
	vix := 14.2
	return &schema.MarketDay{
		Date:     day(date),
		Open:     closePrice - 1,
		High:     closePrice + 2,
		Low:      closePrice - 3,
		Close:    closePrice,
		VIXClose: &vix,
	}
}

// buildTestFeedState creates a feed sync state row
func buildTestFeedState(fileName, contentHash, maxDate string) schema.FeedSyncState {
	return schema.FeedSyncState{
		FileName:        fileName,
		ContentHash:     contentHash,
		MaxRetainedDate: day(maxDate),
		SyncedAt:        time.Now().UTC(),
	}
}

// =============================================================================
// Block State and Replacement
// =============================================================================

func testGetBlockStateNotFound(t *testing.T, s Store) {
	state, err := s.GetBlockState(context.Background(), "never-synced")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func testReplaceBlock(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.ReplaceBlock(ctx, ReplaceBlockInput{
		State: buildTestState("main-account", "hash-v1"),
		Trades: []*schema.Trade{
			buildTestTrade("main-account", "2024-01-03", "Naked Put", -25),
			buildTestTrade("main-account", "2024-01-02", "Iron Condor", 100),
		},
		DailyBalances: []*schema.DailyBalance{
			buildTestBalance("main-account", "2024-01-02", 100000),
		},
	})
	require.NoError(t, err)

	state, err := s.GetBlockState(ctx, "main-account")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "hash-v1", state.PrimaryHash)
	assert.Equal(t, map[string]string{"dailylog.csv": "hash-daily"}, state.SecondaryHashes.Data())
	assert.Equal(t, schema.BlockSchemaVersion, state.SchemaVersion)

	trades, err := s.GetTradesByBlock(ctx, "main-account")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	// Ordered by open date regardless of insert order.
	assert.Equal(t, "2024-01-02", dayString(trades[0].DateOpened))
	assert.Equal(t, "2024-01-03", dayString(trades[1].DateOpened))
	assert.Equal(t, "Iron Condor", trades[0].Strategy)

	balances, err := s.GetDailyBalancesByBlock(ctx, "main-account")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.InDelta(t, 100000, balances[0].NetLiquidity, 0.001)
}

func testReplaceBlockIsFullReplacement(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.ReplaceBlock(ctx, ReplaceBlockInput{
		State: buildTestState("main-account", "hash-v1"),
		Trades: []*schema.Trade{
			buildTestTrade("main-account", "2024-01-02", "Iron Condor", 100),
			buildTestTrade("main-account", "2024-01-03", "Iron Condor", 50),
		},
	})
	require.NoError(t, err)

	// The export was edited in place: one trade corrected, one removed.
	err = s.ReplaceBlock(ctx, ReplaceBlockInput{
		State: buildTestState("main-account", "hash-v2"),
		Trades: []*schema.Trade{
			buildTestTrade("main-account", "2024-01-02", "Iron Condor", 95),
		},
	})
	require.NoError(t, err)

	trades, err := s.GetTradesByBlock(ctx, "main-account")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.InDelta(t, 95, trades[0].PL, 0.001)

	state, err := s.GetBlockState(ctx, "main-account")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "hash-v2", state.PrimaryHash)
}

func testListBlockIDs(t *testing.T, s Store) {
	ctx := context.Background()

	ids, err := s.ListBlockIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"beta", "alpha"} {
		err := s.ReplaceBlock(ctx, ReplaceBlockInput{
			State:  buildTestState(id, "hash-"+id),
			Trades: []*schema.Trade{buildTestTrade(id, "2024-01-02", "Iron Condor", 1)},
		})
		require.NoError(t, err)
	}

	ids, err = s.ListBlockIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, ids)
}

func testDeleteBlock(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.ReplaceBlock(ctx, ReplaceBlockInput{
		State:         buildTestState("main-account", "hash-v1"),
		Trades:        []*schema.Trade{buildTestTrade("main-account", "2024-01-02", "Iron Condor", 100)},
		DailyBalances: []*schema.DailyBalance{buildTestBalance("main-account", "2024-01-02", 100000)},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBlock(ctx, "main-account"))

	state, err := s.GetBlockState(ctx, "main-account")
	require.NoError(t, err)
	assert.Nil(t, state)
	trades, err := s.GetTradesByBlock(ctx, "main-account")
	require.NoError(t, err)
	assert.Empty(t, trades)
	balances, err := s.GetDailyBalancesByBlock(ctx, "main-account")
	require.NoError(t, err)
	assert.Empty(t, balances)

	// Deleting an unknown block is a no-op.
	require.NoError(t, s.DeleteBlock(ctx, "never-synced"))
}

// =============================================================================
// Market Feed Merge
// =============================================================================

func testGetFeedStateNotFound(t *testing.T, s Store) {
	state, err := s.GetFeedState(context.Background(), "spx_daily.csv")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func testMergeMarketDaysInsertOnly(t *testing.T, s Store) {
	ctx := context.Background()

	inserted, err := s.MergeMarketDays(ctx, MergeMarketDaysInput{
		State: buildTestFeedState("spx_daily.csv", "hash-window-1", "2024-01-04"),
		Days: []*schema.MarketDay{
			buildTestMarketDay("2024-01-02", 4742.83),
			buildTestMarketDay("2024-01-03", 4704.81),
			buildTestMarketDay("2024-01-04", 4688.68),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)

	// The next window overlaps two dates and adds two new ones.
	inserted, err = s.MergeMarketDays(ctx, MergeMarketDaysInput{
		State: buildTestFeedState("spx_daily.csv", "hash-window-2", "2024-01-08"),
		Days: []*schema.MarketDay{
			buildTestMarketDay("2024-01-03", 9999),
			buildTestMarketDay("2024-01-04", 9999),
			buildTestMarketDay("2024-01-05", 4697.24),
			buildTestMarketDay("2024-01-08", 4763.54),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	days, err := s.GetMarketDays(ctx, time.Time(day("2024-01-01")), time.Time(day("2024-01-31")))
	require.NoError(t, err)
	require.Len(t, days, 5)

	// Overlapping dates kept their original rows.
	assert.Equal(t, "2024-01-03", dayString(days[1].Date))
	assert.InDelta(t, 4704.81, days[1].Close, 0.001)
	assert.InDelta(t, 4763.54, days[4].Close, 0.001)

	state, err := s.GetFeedState(ctx, "spx_daily.csv")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "hash-window-2", state.ContentHash)
	assert.Equal(t, "2024-01-08", dayString(state.MaxRetainedDate))
}

func testMergeMarketDaysEmptyStillRecordsState(t *testing.T, s Store) {
	ctx := context.Background()

	inserted, err := s.MergeMarketDays(ctx, MergeMarketDaysInput{
		State: buildTestFeedState("spx_daily.csv", "hash-empty", "2024-01-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)

	state, err := s.GetFeedState(ctx, "spx_daily.csv")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "hash-empty", state.ContentHash)
}

func testGetMarketDaysRange(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.MergeMarketDays(ctx, MergeMarketDaysInput{
		State: buildTestFeedState("spx_daily.csv", "hash-window-1", "2024-01-10"),
		Days: []*schema.MarketDay{
			buildTestMarketDay("2024-01-02", 4742.83),
			buildTestMarketDay("2024-01-05", 4697.24),
			buildTestMarketDay("2024-01-10", 4783.45),
		},
	})
	require.NoError(t, err)

	days, err := s.GetMarketDays(ctx, time.Time(day("2024-01-03")), time.Time(day("2024-01-09")))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-01-05", dayString(days[0].Date))
	require.NotNil(t, days[0].VIXClose)
	assert.InDelta(t, 14.2, *days[0].VIXClose, 0.001)
}

// =============================================================================
// Suite Runner
// =============================================================================

// RunStoreTests runs the store test suite against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetBlockStateNotFound", testGetBlockStateNotFound},
		{"ReplaceBlock", testReplaceBlock},
		{"ReplaceBlockIsFullReplacement", testReplaceBlockIsFullReplacement},
		{"ListBlockIDs", testListBlockIDs},
		{"DeleteBlock", testDeleteBlock},
		{"GetFeedStateNotFound", testGetFeedStateNotFound},
		{"MergeMarketDaysInsertOnly", testMergeMarketDaysInsertOnly},
		{"MergeMarketDaysEmptyStillRecordsState", testMergeMarketDaysEmptyStillRecordsState},
		{"GetMarketDaysRange", testGetMarketDaysRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, s)
		})
	}
}
