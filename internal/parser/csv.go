package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tradeblocks/blocksync/internal/adapter"
	"github.com/tradeblocks/blocksync/internal/store/schema"
)

// dateLayouts are the date formats seen across TradeBlocks exports.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

type csvParser struct {
	fs adapter.FileSystem
}

// NewCSVParser creates a Parser for the TradeBlocks CSV export formats
func NewCSVParser(fs adapter.FileSystem) Parser {
	return &csvParser{fs: fs}
}

// table is one decoded CSV file: a normalized header index and data rows.
type table struct {
	file    string
	columns map[string]int
	rows    [][]string
}

// line returns the 1-based file line of data row i, counting the header.
func (t *table) line(i int) int {
	return i + 2
}

func (t *table) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (p *csvParser) readTable(path string, required ...string) (*table, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{File: path, Line: csvErr.Line, Msg: csvErr.Err.Error()}
		}
		return nil, &ParseError{File: path, Msg: err.Error()}
	}
	if len(records) == 0 {
		return nil, &ParseError{File: path, Msg: "empty file, expected a header row"}
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, &ParseError{File: path, Line: 1, Msg: fmt.Sprintf("missing required column %q", name)}
		}
	}

	return &table{file: path, columns: columns, rows: records[1:]}, nil
}

// ParseTradeLog parses a block's trade log export
func (p *csvParser) ParseTradeLog(path string, blockID string) ([]*schema.Trade, error) {
	t, err := p.readTable(path, "date opened", "p/l", "no. of contracts", "strategy")
	if err != nil {
		return nil, err
	}

	trades := make([]*schema.Trade, 0, len(t.rows))
	for i, row := range t.rows {
		dateOpened, err := parseDate(t.cell(row, "date opened"))
		if err != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad date opened: %v", err)}
		}
		pl, err := parseMoney(t.cell(row, "p/l"))
		if err != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad p/l: %v", err)}
		}
		contracts, err := strconv.Atoi(t.cell(row, "no. of contracts"))
		if err != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad contract count: %v", err)}
		}

		trade := &schema.Trade{
			BlockID:        blockID,
			DateOpened:     datatypes.Date(dateOpened),
			TimeOpened:     t.cell(row, "time opened"),
			Legs:           t.cell(row, "legs"),
			TimeClosed:     t.cell(row, "time closed"),
			ReasonForClose: t.cell(row, "reason for close"),
			PL:             pl,
			NumContracts:   contracts,
			Strategy:       t.cell(row, "strategy"),
		}

		// Open positions have an empty close date; everything money-like
		// tolerates the export's currency formatting.
		if raw := t.cell(row, "date closed"); raw != "" {
			closed, err := parseDate(raw)
			if err != nil {
				return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad date closed: %v", err)}
			}
			d := datatypes.Date(closed)
			trade.DateClosed = &d
		}
		if raw := t.cell(row, "closing price"); raw != "" {
			price, err := parseMoney(raw)
			if err != nil {
				return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad closing price: %v", err)}
			}
			trade.ClosingPrice = &price
		}

		var convErr error
		trade.OpeningPrice = optMoney(t.cell(row, "opening price"), &convErr)
		trade.Premium = optMoney(t.cell(row, "premium"), &convErr)
		trade.FundsAtClose = optMoney(t.cell(row, "funds at close"), &convErr)
		trade.MarginReq = optMoney(t.cell(row, "margin req."), &convErr)
		trade.OpeningCommissions = optMoney(t.cell(row, "opening commissions + fees"), &convErr)
		trade.ClosingCommissions = optMoney(t.cell(row, "closing commissions + fees"), &convErr)
		if convErr != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: convErr.Error()}
		}

		trades = append(trades, trade)
	}

	return trades, nil
}

// ParseDailyLog parses a block's daily log export
func (p *csvParser) ParseDailyLog(path string, blockID string) ([]*schema.DailyBalance, error) {
	t, err := p.readTable(path, "date", "net liquidity")
	if err != nil {
		return nil, err
	}

	balances := make([]*schema.DailyBalance, 0, len(t.rows))
	for i, row := range t.rows {
		date, err := parseDate(t.cell(row, "date"))
		if err != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad date: %v", err)}
		}

		var convErr error
		balance := &schema.DailyBalance{
			BlockID:      blockID,
			Date:         datatypes.Date(date),
			NetLiquidity: optMoney(t.cell(row, "net liquidity"), &convErr),
			CurrentFunds: optMoney(t.cell(row, "current funds"), &convErr),
			Withdrawn:    optMoney(t.cell(row, "withdrawn"), &convErr),
			PL:           optMoney(t.cell(row, "p/l"), &convErr),
			DrawdownPct:  optMoney(t.cell(row, "drawdown %"), &convErr),
		}
		if convErr != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: convErr.Error()}
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

// ParseMarketData parses a rolling market data export
func (p *csvParser) ParseMarketData(path string) ([]*schema.MarketDay, error) {
	t, err := p.readTable(path, "date", "open", "high", "low", "close")
	if err != nil {
		return nil, err
	}

	days := make([]*schema.MarketDay, 0, len(t.rows))
	for i, row := range t.rows {
		date, err := parseDate(t.cell(row, "date"))
		if err != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: fmt.Sprintf("bad date: %v", err)}
		}

		var convErr error
		day := &schema.MarketDay{
			Date:              datatypes.Date(date),
			Open:              optFloat(t.cell(row, "open"), &convErr),
			High:              optFloat(t.cell(row, "high"), &convErr),
			Low:               optFloat(t.cell(row, "low"), &convErr),
			Close:             optFloat(t.cell(row, "close"), &convErr),
			VIXClose:          optFloatPtr(t.cell(row, "vix_close"), &convErr),
			VIX9DClose:        optFloatPtr(t.cell(row, "vix9d_close"), &convErr),
			VIX3MClose:        optFloatPtr(t.cell(row, "vix3m_close"), &convErr),
			RSI14:             optFloatPtr(t.cell(row, "rsi_14"), &convErr),
			ATR14:             optFloatPtr(t.cell(row, "atr_14"), &convErr),
			TrendScore:        optIntPtr(t.cell(row, "trend_score"), &convErr),
			VolRegime:         optIntPtr(t.cell(row, "vol_regime"), &convErr),
			BollingerPosition: optFloatPtr(t.cell(row, "bollinger_position"), &convErr),
			ConsecDays:        optIntPtr(t.cell(row, "consec_days"), &convErr),
		}
		if convErr != nil {
			return nil, &ParseError{File: path, Line: t.line(i), Msg: convErr.Error()}
		}
		if opex := optIntPtr(t.cell(row, "is_opex"), &convErr); convErr == nil && opex != nil {
			day.IsOpex = *opex != 0
		}

		days = append(days, day)
	}

	return days, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// parseMoney parses a currency cell, tolerating "$", thousands separators
// and parenthesized negatives.
func parseMoney(raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(raw)
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", raw)
	}
	if negative {
		v = -v
	}
	return v, nil
}

func optMoney(raw string, convErr *error) float64 {
	if raw == "" || *convErr != nil {
		return 0
	}
	v, err := parseMoney(raw)
	if err != nil {
		*convErr = err
	}
	return v
}

func optFloat(raw string, convErr *error) float64 {
	if raw == "" || *convErr != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*convErr = fmt.Errorf("unrecognized number %q", raw)
	}
	return v
}

func optFloatPtr(raw string, convErr *error) *float64 {
	if raw == "" || *convErr != nil {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*convErr = fmt.Errorf("unrecognized number %q", raw)
		return nil
	}
	return &v
}

func optIntPtr(raw string, convErr *error) *int {
	if raw == "" || *convErr != nil {
		return nil
	}
	// Exports sometimes render integral columns as "3.0".
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*convErr = fmt.Errorf("unrecognized integer %q", raw)
		return nil
	}
	v := int(f)
	return &v
}
