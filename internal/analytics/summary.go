package analytics

import (
	"math"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/models"
)

// buildSummary computes the flat scalar metrics from the per-trade P&L
// stream and the daily series. Open trades (no computable P&L) count
// toward TotalTrades but are excluded from the win-rate denominator.
func buildSummary(trades []models.TradeRecord, daily []models.DailyAggregate, cfg Config) models.SummaryMetrics {
	s := models.SummaryMetrics{TotalTrades: len(trades)}

	var grossProfit, grossLoss float64
	for i := range trades {
		pnl, ok := PnL(&trades[i])
		if !ok {
			continue
		}
		s.CompletedTrades++
		s.TotalPnL += pnl
		if pnl >= 0 {
			s.WinningTrades++
			grossProfit += pnl
			if pnl > s.LargestWin {
				s.LargestWin = pnl
			}
		} else {
			s.LosingTrades++
			grossLoss += -pnl
			if pnl < s.LargestLoss {
				s.LargestLoss = pnl
			}
		}
	}

	if s.CompletedTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.CompletedTrades) * 100
		s.AvgTradePnL = s.TotalPnL / float64(s.CompletedTrades)
	}
	if s.WinningTrades > 0 {
		s.AvgWin = grossProfit / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = grossLoss / float64(s.LosingTrades)
	}

	s.ProfitFactor = profitFactor(grossProfit, grossLoss)
	s.Expectancy = expectancy(s.WinRate/100, s.AvgWin, s.AvgLoss)
	s.SharpeRatio = sharpeRatio(dailyReturns(daily), cfg.TradingPeriodsPerYear)
	s.AvgHoldMinutes = averageHoldMinutes(trades)

	return s
}

// profitFactor is gross profit over gross absolute loss. By design it is
// +Inf for a record with profits and no losses and 0 for one with no
// profits; surfacing +Inf is a display-layer concern, not an error.
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossProfit == 0 {
		return 0
	}
	if grossLoss == 0 {
		return math.Inf(1)
	}
	return grossProfit / grossLoss
}

// expectancy is the probability-weighted average outcome per trade.
// avgLoss is passed as a positive magnitude.
func expectancy(winRate, avgWin, avgLoss float64) float64 {
	return winRate*avgWin - (1-winRate)*avgLoss
}

func dailyReturns(daily []models.DailyAggregate) []float64 {
	returns := make([]float64, len(daily))
	for i, day := range daily {
		returns[i] = day.NetPnL
	}
	return returns
}

// sharpeRatio is mean over standard deviation of the per-period returns,
// annualized by sqrt of the configured periods per year. A flat return
// series scores 0.
func sharpeRatio(returns []float64, periodsPerYear float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(periodsPerYear)
}
