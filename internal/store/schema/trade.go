package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Trade represents the trades table - one closed trade from a block's trade
// log. Rows for a block are only ever deleted and re-inserted together, so a
// reader sees either the previous complete set or the new complete one.
type Trade struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// BlockID is the owning block folder name
	BlockID string `gorm:"column:block_id;not null;type:text;index:idx_trades_block_date,priority:1"`
	// DateOpened is the session date the position was opened
	DateOpened datatypes.Date `gorm:"column:date_opened;not null;index:idx_trades_block_date,priority:2"`
	// TimeOpened is the open time as exported, e.g. "09:33:00"
	TimeOpened string `gorm:"column:time_opened;type:text"`
	// OpeningPrice is the fill price at open
	OpeningPrice float64 `gorm:"column:opening_price"`
	// Legs describes the option legs as a single exported string
	Legs string `gorm:"column:legs;type:text"`
	// Premium is the net premium collected (negative for debit trades)
	Premium float64 `gorm:"column:premium"`
	// DateClosed is nil while the position is still open
	DateClosed *datatypes.Date `gorm:"column:date_closed"`
	// TimeClosed is the close time as exported
	TimeClosed string `gorm:"column:time_closed;type:text"`
	// ClosingPrice is nil while the position is still open
	ClosingPrice *float64 `gorm:"column:closing_price"`
	// ReasonForClose is the exit reason reported by the platform
	ReasonForClose string `gorm:"column:reason_for_close;type:text"`
	// PL is the realized profit or loss in account currency
	PL float64 `gorm:"column:pl;not null"`
	// NumContracts is the contract quantity
	NumContracts int `gorm:"column:num_contracts;not null"`
	// FundsAtClose is the account balance after the trade closed
	FundsAtClose float64 `gorm:"column:funds_at_close"`
	// MarginReq is the margin requirement at entry
	MarginReq float64 `gorm:"column:margin_req"`
	// Strategy is the strategy label assigned in the journal
	Strategy string `gorm:"column:strategy;type:text;index"`
	// OpeningCommissions is commissions plus fees paid at entry
	OpeningCommissions float64 `gorm:"column:opening_commissions"`
	// ClosingCommissions is commissions plus fees paid at exit
	ClosingCommissions float64 `gorm:"column:closing_commissions"`
	// CreatedAt is the timestamp when this row was cached
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (Trade) TableName() string {
	return "trades"
}
