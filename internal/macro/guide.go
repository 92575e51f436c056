package macro

// GuideRow is one entry of the static session reference table.
type GuideRow struct {
	Window     string `json:"window"`
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Expected   string `json:"expected"`
	Volatility string `json:"volatility"`
	Notes      string `json:"notes"`
}

// Guide returns the session reference table, chronological through the
// New York trading day.
func Guide() []GuideRow {
	return []GuideRow{
		{"Every :50-:10", "Hourly", "20-Minute Macro", "Expansion/Reversal", "5-7",
			"Happens every hour - algorithmic execution window"},
		{"00:00-05:00", "Session", "Asian Range", "Consolidation/Range", "3-4",
			"Lower volatility - sets up liquidity for London"},
		{"02:00-05:00", "Killzone", "London Open", "Strong directional", "8-9",
			"Major move potential - institutions active"},
		{"02:33", "Specific", "London Macro", "Liquidity sweep", "8",
			"Common sweep of Asian highs/lows"},
		{"03:00", "Specific", "London Hour 2", "Continuation", "7-8",
			"Often confirms London direction"},
		{"08:30", "News", "NY Data Release", "High volatility", "9-10",
			"Economic data - extreme moves possible"},
		{"08:50-09:10", "Macro", "NY Open Macro", "Primary trend move", "9",
			"Critical 20-minute window - best setups"},
		{"09:30", "Open", "NYSE Open", "Volume surge", "8-9",
			"Stock market open - additional volatility"},
		{"10:00-11:00", "Setup", "Silver Bullet", "Clean directional", "7-8",
			"High probability moves - minimal drawdown"},
		{"11:00-14:00", "Period", "Lunch Consolidation", "Choppy/ranging", "4-5",
			"Lower probability - avoid or scalp only"},
		{"13:00-16:00", "Killzone", "NY PM Session", "Secondary move", "7-8",
			"Second major opportunity of the day"},
		{"14:00-15:00", "Window", "PM Power Hour", "Strong moves", "7-8",
			"Often strongest hour of PM session"},
		{"15:00-17:00", "Close", "End of Day", "Settlement/reversal", "5-6",
			"Profit taking and positioning"},
		{"16:00", "Close", "4H Candle Close", "Algorithm reference", "6-7",
			"Major price delivery level - watch for runs"},
	}
}
