package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's 65535-parameter limit for the extended protocol. Each
// record consumes one parameter per inserted field, and a headroom is
// reserved for batch-level overhead (ON CONFLICT parameters, GORM-added
// timestamps and bookkeeping).
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// translateConflict maps PostgreSQL serialization and deadlock failures to
// domain.ErrWriteConflict so callers can apply their retry policy. Unique
// violations on sync state rows are treated the same way: they only occur
// when two writers race on one source.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return fmt.Errorf("%w: %s", domain.ErrWriteConflict, pgErr.Message)
		}
	}

	return err
}

// GetBlockState retrieves the sync state for a block, or nil when the block
// has never been synced
func (s *pgStore) GetBlockState(ctx context.Context, blockID string) (*schema.BlockSyncState, error) {
	var state schema.BlockSyncState
	err := s.db.WithContext(ctx).Where("block_id = ?", blockID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get block sync state: %w", err)
	}
	return &state, nil
}

// ListBlockIDs returns the IDs of all blocks with sync state
func (s *pgStore) ListBlockIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&schema.BlockSyncState{}).
		Order("block_id").
		Pluck("block_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list block ids: %w", err)
	}
	return ids, nil
}

// ReplaceBlock atomically deletes a block's cached records, inserts the new
// ones and upserts its sync state in a single transaction. Delete, insert
// and state update are strictly ordered; if any step fails nothing persists.
func (s *pgStore) ReplaceBlock(ctx context.Context, input ReplaceBlockInput) error {
	blockID := input.State.BlockID

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("block_id = ?", blockID).Delete(&schema.Trade{}).Error; err != nil {
			return fmt.Errorf("failed to delete trades: %w", err)
		}
		if err := tx.Where("block_id = ?", blockID).Delete(&schema.DailyBalance{}).Error; err != nil {
			return fmt.Errorf("failed to delete daily balances: %w", err)
		}

		if len(input.Trades) > 0 {
			batchSize := calculateSafeBatchSize(len(input.Trades), 18)
			if err := tx.CreateInBatches(input.Trades, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert trades: %w", err)
			}
		}
		if len(input.DailyBalances) > 0 {
			batchSize := calculateSafeBatchSize(len(input.DailyBalances), 9)
			if err := tx.CreateInBatches(input.DailyBalances, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert daily balances: %w", err)
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "block_id"}},
			UpdateAll: true,
		}).Create(&input.State).Error; err != nil {
			return fmt.Errorf("failed to upsert block sync state: %w", err)
		}

		return nil
	})

	return translateConflict(err)
}

// DeleteBlock atomically removes a block's cached records and its sync state
func (s *pgStore) DeleteBlock(ctx context.Context, blockID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("block_id = ?", blockID).Delete(&schema.Trade{}).Error; err != nil {
			return fmt.Errorf("failed to delete trades: %w", err)
		}
		if err := tx.Where("block_id = ?", blockID).Delete(&schema.DailyBalance{}).Error; err != nil {
			return fmt.Errorf("failed to delete daily balances: %w", err)
		}
		if err := tx.Where("block_id = ?", blockID).Delete(&schema.BlockSyncState{}).Error; err != nil {
			return fmt.Errorf("failed to delete block sync state: %w", err)
		}
		return nil
	})

	return translateConflict(err)
}

// GetFeedState retrieves the sync state for a market feed file, or nil when
// the file has never been imported
func (s *pgStore) GetFeedState(ctx context.Context, fileName string) (*schema.FeedSyncState, error) {
	var state schema.FeedSyncState
	err := s.db.WithContext(ctx).Where("file_name = ?", fileName).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get feed sync state: %w", err)
	}
	return &state, nil
}

// MergeMarketDays inserts market rows for previously unseen dates using
// ON CONFLICT DO NOTHING on the date key, so already cached dates keep
// their prior values. The feed state is upserted in the same transaction
// even when every row was a duplicate, so an unchanged re-export is not
// parsed again. Returns the number of rows actually inserted.
func (s *pgStore) MergeMarketDays(ctx context.Context, input MergeMarketDaysInput) (int64, error) {
	var inserted int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(input.Days) > 0 {
			batchSize := calculateSafeBatchSize(len(input.Days), 16)
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date"}},
				DoNothing: true,
			}).CreateInBatches(input.Days, batchSize)
			if result.Error != nil {
				return fmt.Errorf("failed to insert market days: %w", result.Error)
			}
			inserted = result.RowsAffected
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_name"}},
			UpdateAll: true,
		}).Create(&input.State).Error; err != nil {
			return fmt.Errorf("failed to upsert feed sync state: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, translateConflict(err)
	}

	return inserted, nil
}

// GetTradesByBlock retrieves a block's cached trades ordered by open date
func (s *pgStore) GetTradesByBlock(ctx context.Context, blockID string) ([]*schema.Trade, error) {
	var trades []*schema.Trade
	err := s.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("date_opened, time_opened, id").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get trades: %w", err)
	}
	return trades, nil
}

// GetDailyBalancesByBlock retrieves a block's cached daily balances ordered
// by date
func (s *pgStore) GetDailyBalancesByBlock(ctx context.Context, blockID string) ([]*schema.DailyBalance, error) {
	var balances []*schema.DailyBalance
	err := s.db.WithContext(ctx).
		Where("block_id = ?", blockID).
		Order("date, id").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily balances: %w", err)
	}
	return balances, nil
}

// GetMarketDays retrieves cached market rows within [from, to] ordered by
// date
func (s *pgStore) GetMarketDays(ctx context.Context, from, to time.Time) ([]*schema.MarketDay, error) {
	var days []*schema.MarketDay
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date").
		Find(&days).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get market days: %w", err)
	}
	return days, nil
}
