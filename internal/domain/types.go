package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind distinguishes the two sync paths. The coordinator dispatches
// on it explicitly instead of through open-ended polymorphism.
type SourceKind string

const (
	// SourceKindBlock is a folder-scoped block source: one required trade
	// log plus optional companion files, synced as a single atomic entity.
	SourceKindBlock SourceKind = "block"
	// SourceKindMarketFeed is a rolling-window market export file merged
	// additively, never replaced wholesale.
	SourceKindMarketFeed SourceKind = "market_feed"
)

const (
	// MarketDataDirName is the reserved folder under the base directory
	// that holds market feed files instead of a block.
	MarketDataDirName = "_marketdata"

	// TradeLogFileName is the required primary file of a block folder.
	TradeLogFileName = "tradelog.csv"
	// DailyLogFileName is the optional secondary file of a block folder.
	DailyLogFileName = "dailylog.csv"
)

// Source is an addressable origin of truth on disk. Identity (ID, Kind)
// is immutable; content is not.
type Source struct {
	// ID is the block folder name or the feed file name.
	ID   string
	Kind SourceKind
	// Path is the absolute block folder path or feed file path.
	Path string
}

// BlockSource builds a block Source rooted at baseDir.
func BlockSource(baseDir, blockID string) Source {
	return Source{
		ID:   blockID,
		Kind: SourceKindBlock,
		Path: filepath.Join(baseDir, blockID),
	}
}

// FeedSource builds a market feed Source rooted at baseDir.
func FeedSource(baseDir, fileName string) Source {
	return Source{
		ID:   fileName,
		Kind: SourceKindMarketFeed,
		Path: filepath.Join(baseDir, MarketDataDirName, fileName),
	}
}

// PrimaryFile returns the path of the file whose fingerprint decides
// whether the source changed.
func (s Source) PrimaryFile() string {
	if s.Kind == SourceKindMarketFeed {
		return s.Path
	}
	return filepath.Join(s.Path, TradeLogFileName)
}

// DailyLogFile returns the path of the block's optional secondary file.
// Meaningless for market feeds.
func (s Source) DailyLogFile() string {
	return filepath.Join(s.Path, DailyLogFileName)
}

func (s Source) String() string {
	return fmt.Sprintf("%s/%s", s.Kind, s.ID)
}

// IsBlockDirName reports whether a folder name under the base directory
// counts as a block source. Reserved and hidden folders never do.
func IsBlockDirName(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_") && !strings.HasPrefix(name, ".")
}
