package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MarketDay represents the market_days table - one row per session date from
// the rolling market export. Rows are insert-only: a later import of an
// overlapping window never overwrites a date already cached.
type MarketDay struct {
	// Date is the session date and the merge key
	Date datatypes.Date `gorm:"column:date;primaryKey"`
	// Open, High, Low, Close are the underlying index OHLC
	Open  float64 `gorm:"column:open"`
	High  float64 `gorm:"column:high"`
	Low   float64 `gorm:"column:low"`
	Close float64 `gorm:"column:close"`
	// VIXClose is the spot VIX close; nil when the export lacks it
	VIXClose *float64 `gorm:"column:vix_close"`
	// VIX9DClose is the 9-day VIX close
	VIX9DClose *float64 `gorm:"column:vix9d_close"`
	// VIX3MClose is the 3-month VIX close
	VIX3MClose *float64 `gorm:"column:vix3m_close"`
	// RSI14 is the 14-period relative strength index
	RSI14 *float64 `gorm:"column:rsi_14"`
	// ATR14 is the 14-period average true range
	ATR14 *float64 `gorm:"column:atr_14"`
	// TrendScore is the EMA-based trend score in [-5, 5]
	TrendScore *int `gorm:"column:trend_score"`
	// VolRegime is the VIX bucket in [1, 6]
	VolRegime *int `gorm:"column:vol_regime"`
	// BollingerPosition is the close's position within the bands in [0, 1]
	BollingerPosition *float64 `gorm:"column:bollinger_position"`
	// ConsecDays is the signed streak of up or down closes
	ConsecDays *int `gorm:"column:consec_days"`
	// IsOpex marks monthly options expiration dates
	IsOpex bool `gorm:"column:is_opex;not null;default:false"`
	// CreatedAt is the timestamp when this row was first merged
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (MarketDay) TableName() string {
	return "market_days"
}
