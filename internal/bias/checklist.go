// Package bias implements the daily-bias checklist scorer: an additive
// weighted tally over boolean checklist flags producing a directional
// label with a conviction level.
package bias

// Category names for the six checklist sections, in display order.
const (
	CategoryHigherTimeframe = "Higher Timeframe Analysis (Weekly/Daily)"
	CategoryPreviousDay     = "Previous Day Analysis"
	CategoryCurrentDay      = "Current Day Opening & Asian Session"
	CategoryStructure       = "Market Structure"
	CategoryLiquidity       = "Liquidity Analysis"
	CategoryPremiumDiscount = "Premium/Discount & Fair Value Gaps"
)

// Flag is one checklist item. Not every flag scores; some exist purely
// as analyst prompts.
type Flag struct {
	Key         string
	Category    string
	Description string
}

// Checklist flag keys.
const (
	HTFWeeklyTrend         = "htf_weekly_trend"
	HTFWeeklyBearish       = "htf_weekly_bearish"
	HTFDailyAligned        = "htf_daily_aligned"
	HTFWeeklyHigh          = "htf_weekly_high"
	HTFWeeklyLow           = "htf_weekly_low"
	HTFWeeklyConsolidation = "htf_weekly_consolidation"

	PrevBullishClose    = "prev_bullish_close"
	PrevBearishClose    = "prev_bearish_close"
	PrevLeftFVG         = "prev_left_fvg"
	PrevSweptHighs      = "prev_swept_highs"
	PrevSweptLows       = "prev_swept_lows"
	PrevRangeExpansion  = "prev_range_expansion"
	PrevInsideDay       = "prev_inside_day"

	CurrentGapUp              = "current_gap_up"
	CurrentGapDown            = "current_gap_down"
	CurrentAsianHigh          = "current_asian_high"
	CurrentAsianLow           = "current_asian_low"
	CurrentAsianConsolidation = "current_asian_consolidation"
	CurrentLondonDisplacement = "current_london_displacement"
	CurrentAboveAsianHigh     = "current_above_asian_high"
	CurrentBelowAsianLow      = "current_below_asian_low"

	StructBOSBullish = "struct_bos_bullish"
	StructBOSBearish = "struct_bos_bearish"
	StructMSSBullish = "struct_mss_bullish"
	StructMSSBearish = "struct_mss_bearish"
	StructHHHL       = "struct_hh_hl"
	StructLHLL       = "struct_lh_ll"
	StructEqualHighs = "struct_equal_highs"
	StructEqualLows  = "struct_equal_lows"

	LiqBuysideSwept       = "liq_buyside_swept"
	LiqSellsideSwept      = "liq_sellside_swept"
	LiqBuysideRemaining   = "liq_buyside_remaining"
	LiqSellsideRemaining  = "liq_sellside_remaining"
	LiqInternalLiquidity  = "liq_internal_liquidity"
	LiqExternalLiquidity  = "liq_external_liquidity"
	LiqOldHighs           = "liq_old_highs"
	LiqOldLows            = "liq_old_lows"

	PDInDiscount       = "pd_in_discount"
	PDInPremium        = "pd_in_premium"
	PDFVGBelow         = "pd_fvg_below"
	PDFVGAbove         = "pd_fvg_above"
	PDOBBelow          = "pd_ob_below"
	PDOBAbove          = "pd_ob_above"
	PDAtEquilibrium    = "pd_at_equilibrium"
	PDImbalanceFilled  = "pd_imbalance_filled"
)

// Flags returns the full checklist in display order.
func Flags() []Flag {
	return []Flag{
		{HTFWeeklyTrend, CategoryHigherTimeframe, "Weekly trend is bullish (higher highs and higher lows)"},
		{HTFWeeklyBearish, CategoryHigherTimeframe, "Weekly trend is bearish (lower highs and lower lows)"},
		{HTFDailyAligned, CategoryHigherTimeframe, "Daily timeframe aligns with weekly direction"},
		{HTFWeeklyHigh, CategoryHigherTimeframe, "Price is near weekly high (premium)"},
		{HTFWeeklyLow, CategoryHigherTimeframe, "Price is near weekly low (discount)"},
		{HTFWeeklyConsolidation, CategoryHigherTimeframe, "Weekly is in consolidation/range"},

		{PrevBullishClose, CategoryPreviousDay, "Previous day closed bullish (near highs)"},
		{PrevBearishClose, CategoryPreviousDay, "Previous day closed bearish (near lows)"},
		{PrevLeftFVG, CategoryPreviousDay, "Previous day left Fair Value Gaps"},
		{PrevSweptHighs, CategoryPreviousDay, "Previous day swept/took buy-side liquidity"},
		{PrevSweptLows, CategoryPreviousDay, "Previous day swept/took sell-side liquidity"},
		{PrevRangeExpansion, CategoryPreviousDay, "Previous day showed strong range expansion"},
		{PrevInsideDay, CategoryPreviousDay, "Previous day was an inside day"},

		{CurrentGapUp, CategoryCurrentDay, "Market gapped up at open"},
		{CurrentGapDown, CategoryCurrentDay, "Market gapped down at open"},
		{CurrentAsianHigh, CategoryCurrentDay, "Asian session formed clear high"},
		{CurrentAsianLow, CategoryCurrentDay, "Asian session formed clear low"},
		{CurrentAsianConsolidation, CategoryCurrentDay, "Asian session consolidated in range"},
		{CurrentLondonDisplacement, CategoryCurrentDay, "London open showed strong displacement"},
		{CurrentAboveAsianHigh, CategoryCurrentDay, "Price is trading above Asian high"},
		{CurrentBelowAsianLow, CategoryCurrentDay, "Price is trading below Asian low"},

		{StructBOSBullish, CategoryStructure, "Break of Structure (BOS) to the upside"},
		{StructBOSBearish, CategoryStructure, "Break of Structure (BOS) to the downside"},
		{StructMSSBullish, CategoryStructure, "Market Structure Shift (MSS) - bearish to bullish"},
		{StructMSSBearish, CategoryStructure, "Market Structure Shift (MSS) - bullish to bearish"},
		{StructHHHL, CategoryStructure, "Creating higher highs and higher lows"},
		{StructLHLL, CategoryStructure, "Creating lower highs and lower lows"},
		{StructEqualHighs, CategoryStructure, "Equal highs present (liquidity pool)"},
		{StructEqualLows, CategoryStructure, "Equal lows present (liquidity pool)"},

		{LiqBuysideSwept, CategoryLiquidity, "Buy-side liquidity already swept"},
		{LiqSellsideSwept, CategoryLiquidity, "Sell-side liquidity already swept"},
		{LiqBuysideRemaining, CategoryLiquidity, "Buy-side liquidity remains above (unswept)"},
		{LiqSellsideRemaining, CategoryLiquidity, "Sell-side liquidity remains below (unswept)"},
		{LiqInternalLiquidity, CategoryLiquidity, "Internal range liquidity available"},
		{LiqExternalLiquidity, CategoryLiquidity, "External range liquidity draw"},
		{LiqOldHighs, CategoryLiquidity, "Old highs acting as liquidity magnet"},
		{LiqOldLows, CategoryLiquidity, "Old lows acting as liquidity magnet"},

		{PDInDiscount, CategoryPremiumDiscount, "Price is in discount zone (below 50% of range)"},
		{PDInPremium, CategoryPremiumDiscount, "Price is in premium zone (above 50% of range)"},
		{PDFVGBelow, CategoryPremiumDiscount, "Bullish FVG below current price (support)"},
		{PDFVGAbove, CategoryPremiumDiscount, "Bearish FVG above current price (resistance)"},
		{PDOBBelow, CategoryPremiumDiscount, "Bullish Order Block below"},
		{PDOBAbove, CategoryPremiumDiscount, "Bearish Order Block above"},
		{PDAtEquilibrium, CategoryPremiumDiscount, "Price at equilibrium (50%)"},
		{PDImbalanceFilled, CategoryPremiumDiscount, "Previous imbalances have been filled"},
	}
}

// Valid reports whether key is a known checklist flag.
func Valid(key string) bool {
	for _, f := range Flags() {
		if f.Key == key {
			return true
		}
	}
	return false
}
