// Package parser turns TradeBlocks CSV exports into typed cache records.
// The sync layer treats it as an opaque collaborator: any error from a
// Parse method is fatal for that source's current sync attempt.
package parser

import (
	"fmt"

	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// Parser defines the interface for the CSV file-format collaborator
//
//go:generate mockgen -source=parser.go -destination=../mocks/parser.go -package=mocks -mock_names=Parser=MockParser
type Parser interface {
	// ParseTradeLog parses a block's trade log export
	ParseTradeLog(path string, blockID string) ([]*schema.Trade, error)
	// ParseDailyLog parses a block's daily log export
	ParseDailyLog(path string, blockID string) ([]*schema.DailyBalance, error)
	// ParseMarketData parses a rolling market data export
	ParseMarketData(path string) ([]*schema.MarketDay, error)
}

// ParseError describes a malformed source file. Line is 1-based and counts
// the header row; 0 means the file as a whole is malformed.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}
