package calc

import "ict-journal/internal/models"

// TradeStats is an aggregate view over the full trade collection.
type TradeStats struct {
	Total      int     `json:"total_trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pending    int     `json:"pending"`
	WinRate    float64 `json:"win_rate"`
	TotalPnL   float64 `json:"total_pnl"`
	AvgPnL     float64 `json:"avg_pnl"`
	BestTrade  float64 `json:"best_trade"`
	WorstTrade float64 `json:"worst_trade"`
}

// Stats computes trade statistics in a single pass. An empty collection
// yields the zero value; win rate counts only decided (win/loss) trades.
// Sum, average, best and worst run over trades with a recorded P&L and
// are 0 when there are none.
func Stats(trades []models.Trade) TradeStats {
	var s TradeStats
	s.Total = len(trades)

	var withPnL int
	for i := range trades {
		t := &trades[i]
		switch t.Outcome {
		case models.OutcomeWin:
			s.Wins++
		case models.OutcomeLoss:
			s.Losses++
		case models.OutcomePending:
			s.Pending++
		}

		if t.PnL == nil {
			continue
		}
		p := *t.PnL
		s.TotalPnL += p
		if withPnL == 0 || p > s.BestTrade {
			s.BestTrade = p
		}
		if withPnL == 0 || p < s.WorstTrade {
			s.WorstTrade = p
		}
		withPnL++
	}

	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinRate = float64(s.Wins) / float64(decided) * 100
	}
	if withPnL > 0 {
		s.AvgPnL = s.TotalPnL / float64(withPnL)
	}

	return s
}
