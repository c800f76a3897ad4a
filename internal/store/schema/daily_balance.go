package schema

import (
	"time"

	"gorm.io/datatypes"
)

// DailyBalance represents the daily_balances table - one row per session day
// from a block's optional daily log. Replaced together with the block's
// trades, never patched individually.
type DailyBalance struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// BlockID is the owning block folder name
	BlockID string `gorm:"column:block_id;not null;type:text;index:idx_daily_balances_block_date,priority:1"`
	// Date is the session date
	Date datatypes.Date `gorm:"column:date;not null;index:idx_daily_balances_block_date,priority:2"`
	// NetLiquidity is the end-of-day net liquidation value
	NetLiquidity float64 `gorm:"column:net_liquidity"`
	// CurrentFunds is the cash balance
	CurrentFunds float64 `gorm:"column:current_funds"`
	// Withdrawn is the cumulative amount withdrawn from the block
	Withdrawn float64 `gorm:"column:withdrawn"`
	// PL is the day's profit or loss
	PL float64 `gorm:"column:pl"`
	// DrawdownPct is the drawdown from the high-water mark, in percent
	DrawdownPct float64 `gorm:"column:drawdown_pct"`
	// CreatedAt is the timestamp when this row was cached
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (DailyBalance) TableName() string {
	return "daily_balances"
}
