// Package models defines the core domain types for the journal.
package models

// DateFormat is the storage format for calendar dates.
const DateFormat = "2006-01-02"

// TimestampFormat is the storage format for note update timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Outcome is the recorded result of a trade.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakEven Outcome = "break_even"
)

// Concept is an educational knowledge-base entry.
type Concept struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	DateAdded     string `json:"date_added"`
	Summary       string `json:"summary,omitempty"`
	Definition    string `json:"definition,omitempty"`
	HowToIdentify string `json:"how_to_identify,omitempty"`
	TradingRules  string `json:"trading_rules,omitempty"`
	Examples      string `json:"examples,omitempty"`
	PersonalNotes string `json:"personal_notes,omitempty"`

	KeyPoints       []string `json:"key_points,omitempty"`
	RelatedConcepts []string `json:"related_concepts,omitempty"`
	Resources       []string `json:"resources,omitempty"`
}

// Trade is a journaled discretionary trade. Price fields are pointers
// because a trade may be logged before it is filled or closed. PnL and
// PnLPercent are derived from entry/exit/quantity/direction and must
// never be set by callers; the store recomputes them on every write.
type Trade struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	Pair       string    `json:"pair"`
	Timeframe  string    `json:"timeframe"`
	Direction  Direction `json:"direction"`
	EntryPrice *float64  `json:"entry_price,omitempty"`
	StopLoss   *float64  `json:"stop_loss,omitempty"`
	TakeProfit *float64  `json:"take_profit,omitempty"`
	ExitPrice  *float64  `json:"exit_price,omitempty"`
	Quantity   *float64  `json:"quantity,omitempty"`
	PnL        *float64  `json:"pnl,omitempty"`
	PnLPercent *float64  `json:"pnl_percent,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	SetupType  string    `json:"setup_type,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Screenshot string    `json:"screenshot_path,omitempty"`
	// DateClosed is set the first time Outcome leaves pending and is
	// never cleared automatically afterwards.
	DateClosed string `json:"date_closed,omitempty"`

	ConceptsUsed []string `json:"concepts_used,omitempty"`
}

// Closed reports whether the trade has a recorded non-pending outcome.
func (t *Trade) Closed() bool {
	return t.Outcome != "" && t.Outcome != OutcomePending
}

// MarketSnapshot is a manually entered daily high/low for a symbol,
// uniquely keyed by (Date, Symbol).
type MarketSnapshot struct {
	Date      string   `json:"date"`
	Symbol    string   `json:"symbol"`
	DailyHigh *float64 `json:"daily_high,omitempty"`
	DailyLow  *float64 `json:"daily_low,omitempty"`
}

// ConceptNote is free-form personal commentary keyed by an arbitrary
// concept identifier string.
type ConceptNote struct {
	ConceptID   string `json:"concept_id"`
	Notes       string `json:"notes"`
	LastUpdated string `json:"last_updated"`
}
