// Package knowledge holds the built-in concept library and seeds it
// into the store on demand.
package knowledge

import (
	"context"

	"ict-journal/internal/models"
	"ict-journal/internal/store"
)

const (
	categoryCore      = "ICT Core Concepts"
	categoryForecast  = "Forecasting"
	categoryStructure = "Market Structure"
)

// Library returns the built-in study concepts in teaching order.
func Library() []models.Concept {
	return []models.Concept{
		{
			Title:    "Fair Value Gap (FVG)",
			Category: categoryCore,
			Summary: "A three-candle price imbalance left behind when the market moves too fast " +
				"for efficient price discovery. Price often returns to rebalance the gap, making " +
				"it a high-probability reversal or continuation zone.",
			Definition: "A bullish FVG is the space between candle one's high and candle three's low " +
				"around an impulsive up candle; it acts as support. A bearish FVG mirrors it between " +
				"candle one's low and candle three's high and acts as resistance. When price closes " +
				"through a gap without filling it, the gap inverts (IFVG) and flips roles.",
			HowToIdentify: "Find a three-candle sequence where the outer wicks do not overlap. The " +
				"middle candle is the displacement leg. The larger the timeframe, the more significant " +
				"the gap.",
			TradingRules: "Wait for price to trade back into the gap. The 50% level (consequent " +
				"encroachment) is the strongest reaction point. Stop goes just beyond the gap; target " +
				"the prior swing or next liquidity pool. Trade them inside killzones, with structure.",
			KeyPoints: []string{
				"No overlap between candle 1 and candle 3 wicks",
				"Consequent encroachment (50% of the gap) is the key reaction level",
				"Higher timeframe gaps outrank lower timeframe gaps",
				"Gaps can invert when price breaks through without filling",
				"Context decides which gaps are tradeable; not all get filled",
				"Stacked gaps build stronger confluence zones",
			},
			RelatedConcepts: []string{"Order Blocks (OB)", "Daily Bias"},
		},
		{
			Title:    "Order Blocks (OB)",
			Category: categoryCore,
			Summary: "Zones where institutional traders placed large orders, creating areas that " +
				"act as support or resistance when price returns.",
			Definition: "A bullish order block is the last bearish candle before a strong bullish " +
				"move and acts as support. A bearish order block is the last bullish candle before " +
				"a strong bearish move and acts as resistance. A failed order block becomes a " +
				"breaker block and its polarity flips.",
			HowToIdentify: "Mark the last opposite-direction candle preceding an impulsive " +
				"displacement. The first revisit of the zone carries the most weight.",
			TradingRules: "Prefer the 50% mean threshold of the block for entries. Align with the " +
				"higher timeframe trend and killzone timing. Invalidate when price closes cleanly " +
				"through the block without reaction.",
			KeyPoints: []string{
				"The last opposite candle before an impulsive move is the OB",
				"First test is strongest; blocks weaken with repeated tests",
				"Failed order blocks become breaker blocks",
				"Use the mean threshold (50%) for better entries",
				"Best during killzone times when institutions are active",
			},
			RelatedConcepts: []string{"Fair Value Gap (FVG)"},
		},
		{
			Title:    "Daily Bias",
			Category: categoryStructure,
			Summary: "The directional expectation for the trading day derived from higher " +
				"timeframe analysis. It decides whether the day is longs-only, shorts-only, " +
				"or no-trade.",
			Definition: "Daily bias is set before the session from weekly and daily structure, " +
				"trend direction and key levels. A bullish bias permits only long setups, a " +
				"bearish bias only shorts. It can flip intraday only on a significant structure " +
				"shift.",
			HowToIdentify: "Work top-down: weekly trend, daily alignment, previous day close and " +
				"liquidity, the Asian range, then London behavior. Premium versus discount " +
				"positioning in the weekly range is the final filter.",
			TradingRules: "Write the bias down before the open and follow it. Skip or size down " +
				"on neutral days. Previous day high and low are the primary reference points. " +
				"The bias overrides every lower timeframe signal.",
			KeyPoints: []string{
				"Set before the trading day using daily and weekly charts",
				"Bullish bias means longs only; bearish means shorts only",
				"Must align with weekly range positioning for highest probability",
				"PDH and PDL are critical reference points",
				"Neutral or ranging days call for reduced activity",
			},
			RelatedConcepts: []string{"Weekly Range", "Daily Range"},
		},
		{
			Title:    "Weekly Range",
			Category: categoryStructure,
			Summary: "The high and low established during the trading week, used to judge " +
				"whether price is in premium (expensive) or discount (cheap) territory.",
			Definition: "The range runs from Sunday open to Friday close. Split it into thirds: " +
				"discount in the lower third, equilibrium around the middle, premium in the upper " +
				"third. The 50% level is the key equilibrium line.",
			HowToIdentify: "Track the running weekly high and low. Compute the midpoint; above it " +
				"price is in premium, below it in discount.",
			TradingRules: "Look for longs in discount and shorts in premium; never the reverse. " +
				"The best setups form at range extremes, which are often swept before reversing. " +
				"Target the 50% level or the opposite zone.",
			KeyPoints: []string{
				"Formed from Sunday open to Friday close",
				"Thirds: discount low, equilibrium middle, premium high",
				"The 50% level is the key equilibrium line",
				"Weekly high and low act as magnets for price",
				"Monday often sets up the week's direction",
			},
			RelatedConcepts: []string{"Daily Bias", "Daily Range"},
		},
		{
			Title:    "Daily Range",
			Category: categoryStructure,
			Summary: "The high and low of the current or previous trading day. Essential for " +
				"reading daily structure and setting profit targets.",
			Definition: "Previous day high (PDH) and previous day low (PDL) are the critical " +
				"levels; the current day frequently seeks one of them. Range expansion days " +
				"follow contraction, and the daily midpoint acts as intraday support or " +
				"resistance.",
			HowToIdentify: "Carry PDH, PDL, the daily open and the running midpoint on every " +
				"chart. Compare today's developing range against yesterday's to spot expansion " +
				"or contraction.",
			TradingRules: "Breaks of PDH or PDL are directional signals; enter on the retest, not " +
				"the break. In clear ranges, fade the extremes with tight stops. Price above the " +
				"daily 50% leans bullish, below leans bearish.",
			KeyPoints: []string{
				"PDH and PDL are the most important intraday levels",
				"Both extremes are often swept before a reversal",
				"Expansion follows contraction",
				"The daily 50% level is a mean-reversion magnet",
				"Average daily range guides realistic targets",
			},
			RelatedConcepts: []string{"Weekly Range", "Opening Range"},
		},
		{
			Title:    "Opening Range",
			Category: categoryStructure,
			Summary: "The high and low established in the first 30 to 60 minutes of the New York " +
				"session. Often sets the day's directional tone.",
			Definition: "The 30-minute opening range runs 09:30 to 10:00 New York time, the " +
				"60-minute version to 10:30. A break above the range high is a bullish signal, " +
				"a break below the low bearish. A false break one way followed by a reversal is " +
				"the Judas swing.",
			HowToIdentify: "Let the range form without trading it. Mark the high, low and " +
				"midpoint once the window closes.",
			TradingRules: "Never chase the initial break; wait for the retest of the broken " +
				"level. Stops reference the opposite side of the range. The midpoint is a key " +
				"intraday level. Works best on trending days with a clear daily bias.",
			KeyPoints: []string{
				"Measured from 09:30 to 10:00 or 10:30 EST",
				"Expect manipulation before the true directional move",
				"Break and retest beats chasing the breakout",
				"Range levels magnetize price all session",
				"Combine with daily bias for best results",
			},
			RelatedConcepts: []string{"Daily Range", "Daily Bias"},
		},
		{
			Title:    "CME Data - Next Day High/Low",
			Category: categoryForecast,
			Summary: "Using CME settlement prices and daily ranges to project the next session's " +
				"probable high and low before the open.",
			Definition: "Settlement is the official futures closing price published by CME Group " +
				"around 16:00 New York time. The basic projection adds and subtracts the previous " +
				"day's range from settlement. The Fibonacci variant extends 61.8% of the range " +
				"beyond each daily extreme instead.",
			HowToIdentify: "Pull settlement, high and low for ES, NQ or YM after the close. " +
				"Range is high minus low; project from settlement when it is available, " +
				"otherwise extend the range itself.",
			TradingRules: "Treat projections as probability zones, not exact targets. Confluence " +
				"with PDH/PDL or higher timeframe levels strengthens them. Most reliable on index " +
				"futures.",
			KeyPoints: []string{
				"Settlement price is the institutional reference close",
				"Basic method: settlement plus and minus the prior range",
				"Fibonacci method: extremes extended by 0.618 of the range",
				"Most accurate for ES, NQ and YM",
				"Zones, not predictions",
			},
			RelatedConcepts: []string{"Daily Range"},
		},
	}
}

// Seed inserts any library concept whose title is not already present.
// It returns how many were added. Existing user edits are never touched.
func Seed(ctx context.Context, ds store.DataStore) (int, error) {
	existing, err := ds.GetConcepts(ctx)
	if err != nil {
		return 0, err
	}

	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Title] = true
	}

	added := 0
	for _, c := range Library() {
		if have[c.Title] {
			continue
		}
		c := c
		if _, err := ds.AddConcept(ctx, &c); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
