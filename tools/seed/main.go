// Command seed generates a synthetic TradeBlocks base directory: a number
// of block folders with trade and daily log exports plus a rolling market
// data file. Useful for exercising a full sync pass against realistic
// volumes without real account data.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	BaseDir       string
	Blocks        int
	TradesPerDay  int
	Days          int
	FeedDays      int
	WithDailyLogs bool
	Seed          int64
}

var strategies = []string{
	"Iron Condor", "Naked Put", "Put Credit Spread", "Call Credit Spread",
	"Broken Wing Butterfly", "Strangle",
}

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.BaseDir, "base-dir", "", "Directory to generate block folders into (required)")
	flag.IntVar(&cfg.Blocks, "blocks", 5, "Number of block folders to generate")
	flag.IntVar(&cfg.TradesPerDay, "trades-per-day", 3, "Trades per session day per block")
	flag.IntVar(&cfg.Days, "days", 60, "Session days of trading history per block")
	flag.IntVar(&cfg.FeedDays, "feed-days", 180, "Session days in the market data export")
	flag.BoolVar(&cfg.WithDailyLogs, "daily-logs", true, "Also generate dailylog.csv per block")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed for reproducible output")
	flag.Parse()

	if cfg.BaseDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := sessionStart(cfg.Days)

	for i := 0; i < cfg.Blocks; i++ {
		blockID := fmt.Sprintf("account-%02d", i+1)
		dir := filepath.Join(cfg.BaseDir, blockID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		if err := os.WriteFile(filepath.Join(dir, "tradelog.csv"),
			[]byte(tradeLogCSV(rng, start, cfg.Days, cfg.TradesPerDay)), 0o644); err != nil {
			return err
		}
		if cfg.WithDailyLogs {
			if err := os.WriteFile(filepath.Join(dir, "dailylog.csv"),
				[]byte(dailyLogCSV(rng, start, cfg.Days)), 0o644); err != nil {
				return err
			}
		}
		fmt.Printf("generated %s (%d days, %d trades/day)\n", blockID, cfg.Days, cfg.TradesPerDay)
	}

	marketDir := filepath.Join(cfg.BaseDir, "_marketdata")
	if err := os.MkdirAll(marketDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(marketDir, "spx_daily.csv"),
		[]byte(marketDataCSV(rng, sessionStart(cfg.FeedDays), cfg.FeedDays)), 0o644); err != nil {
		return err
	}
	fmt.Printf("generated _marketdata/spx_daily.csv (%d days)\n", cfg.FeedDays)

	return nil
}

// sessionStart returns the first weekday such that count weekdays end today.
func sessionStart(count int) time.Time {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for n := 0; n < count; {
		day = day.AddDate(0, 0, -1)
		if isWeekday(day) {
			n++
		}
	}
	return day
}

func isWeekday(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

func tradeLogCSV(rng *rand.Rand, start time.Time, days, tradesPerDay int) string {
	var b strings.Builder
	b.WriteString("Date Opened,Time Opened,Legs,Date Closed,Time Closed,Reason For Close,P/L,No. of Contracts,Opening Price,Closing Price,Premium,Strategy,Funds at Close,Margin Req.,Opening Commissions + Fees,Closing Commissions + Fees\n")

	funds := 100000.0
	day := start
	for d := 0; d < days; day = day.AddDate(0, 0, 1) {
		if !isWeekday(day) {
			continue
		}
		d++
		for i := 0; i < tradesPerDay; i++ {
			premium := 100 + rng.Float64()*2400
			pl := premium - rng.Float64()*premium*2
			contracts := 1 + rng.Intn(4)
			funds += pl
			date := day.Format("2006-01-02")
			fmt.Fprintf(&b, "%s,%02d:%02d:00,SPX %s 4700P/4690P,%s,15:%02d:00,%s,%.2f,%d,%.2f,%.2f,%.2f,%s,%.2f,%.2f,%.2f,%.2f\n",
				date, 9+rng.Intn(6), rng.Intn(60), day.Format("2Jan06"), date, rng.Intn(60),
				closeReason(pl), pl, contracts, premium/100, (premium-pl)/100, premium,
				strategies[rng.Intn(len(strategies))], funds, float64(contracts)*1000, 2.2, 2.2)
		}
	}
	return b.String()
}

func closeReason(pl float64) string {
	if pl >= 0 {
		return "Profit Target"
	}
	return "Stop Loss"
}

func dailyLogCSV(rng *rand.Rand, start time.Time, days int) string {
	var b strings.Builder
	b.WriteString("Date,Net Liquidity,Current Funds,Withdrawn,P/L,Drawdown %\n")

	netLiq := 100000.0
	high := netLiq
	day := start
	for d := 0; d < days; day = day.AddDate(0, 0, 1) {
		if !isWeekday(day) {
			continue
		}
		d++
		pl := (rng.Float64() - 0.45) * 2000
		netLiq += pl
		if netLiq > high {
			high = netLiq
		}
		drawdown := (netLiq - high) / high * 100
		fmt.Fprintf(&b, "%s,%.2f,%.2f,0.00,%.2f,%.2f%%\n",
			day.Format("2006-01-02"), netLiq, netLiq, pl, drawdown)
	}
	return b.String()
}

func marketDataCSV(rng *rand.Rand, start time.Time, days int) string {
	var b strings.Builder
	b.WriteString("date,open,high,low,close,vix_close,vix9d_close,vix3m_close,rsi_14,atr_14,trend_score,vol_regime,bollinger_position,consec_days,is_opex\n")

	price := 4700.0
	day := start
	for d := 0; d < days; day = day.AddDate(0, 0, 1) {
		if !isWeekday(day) {
			continue
		}
		d++
		open := price
		price += (rng.Float64() - 0.5) * 60
		high := max(open, price) + rng.Float64()*20
		low := min(open, price) - rng.Float64()*20
		vix := 11 + rng.Float64()*15
		opex := 0
		// Third Friday of the month.
		if day.Weekday() == time.Friday && day.Day() >= 15 && day.Day() <= 21 {
			opex = 1
		}
		fmt.Fprintf(&b, "%s,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.1f,%.1f,%d,%d,%.2f,%d,%d\n",
			day.Format("2006-01-02"), open, high, low, price,
			vix, vix*0.95, vix*1.1, 30+rng.Float64()*40, 25+rng.Float64()*25,
			rng.Intn(11)-5, 1+rng.Intn(6), rng.Float64(), rng.Intn(9)-4, opex)
	}
	return b.String()
}
