package bias

import (
	"fmt"

	ierr "ict-journal/internal/errors"
)

// Bias labels.
const (
	BiasStrongBullish = "STRONG BULLISH"
	BiasBullish       = "BULLISH"
	BiasNeutral       = "NEUTRAL"
	BiasBearish       = "BEARISH"
	BiasStrongBearish = "STRONG BEARISH"
)

// Conviction labels.
const (
	ConvictionHigh     = "High Conviction"
	ConvictionModerate = "Moderate Conviction"
	ConvictionLow      = "Low Conviction"
)

// Result is the scored outcome of a checklist evaluation.
type Result struct {
	Bullish    int      `json:"bullish_score"`
	Bearish    int      `json:"bearish_score"`
	Neutral    int      `json:"neutral_score"`
	Incomplete bool     `json:"incomplete"`
	Bias       string   `json:"bias,omitempty"`
	Confidence string   `json:"confidence,omitempty"`
	BullishPct float64  `json:"bullish_pct"`
	BearishPct float64  `json:"bearish_pct"`
	KeyFactors []string `json:"key_factors,omitempty"`
}

type side int

const (
	sideBullish side = iota
	sideBearish
	sideNeutral
	// sideLeader adds the weight to whichever directional score is
	// strictly ahead at that point in the sequence; a tie is a no-op.
	sideLeader
)

type step struct {
	flag   string
	side   side
	weight int
}

// scoringOrder is the fixed evaluation sequence. Order matters: the
// sideLeader amplifiers read the running totals, so moving a step
// changes results.
var scoringOrder = []step{
	{HTFWeeklyTrend, sideBullish, 3},
	{HTFWeeklyBearish, sideBearish, 3},
	{HTFDailyAligned, sideLeader, 2},
	{HTFWeeklyHigh, sideBearish, 2},
	{HTFWeeklyLow, sideBullish, 2},
	{HTFWeeklyConsolidation, sideNeutral, 2},

	{PrevBullishClose, sideBullish, 2},
	{PrevBearishClose, sideBearish, 2},
	{PrevSweptHighs, sideBearish, 1},
	{PrevSweptLows, sideBullish, 1},
	{PrevRangeExpansion, sideLeader, 1},

	{CurrentGapUp, sideBearish, 1},
	{CurrentGapDown, sideBullish, 1},
	{CurrentAboveAsianHigh, sideBullish, 2},
	{CurrentBelowAsianLow, sideBearish, 2},
	{CurrentLondonDisplacement, sideLeader, 2},

	{StructBOSBullish, sideBullish, 3},
	{StructBOSBearish, sideBearish, 3},
	{StructMSSBullish, sideBullish, 3},
	{StructMSSBearish, sideBearish, 3},
	{StructHHHL, sideBullish, 2},
	{StructLHLL, sideBearish, 2},

	{LiqBuysideRemaining, sideBullish, 2},
	{LiqSellsideRemaining, sideBearish, 2},
	{LiqBuysideSwept, sideBearish, 1},
	{LiqSellsideSwept, sideBullish, 1},

	{PDInDiscount, sideBullish, 2},
	{PDInPremium, sideBearish, 2},
	{PDFVGBelow, sideBullish, 1},
	{PDFVGAbove, sideBearish, 1},
	{PDOBBelow, sideBullish, 1},
	{PDOBAbove, sideBearish, 1},
}

// Validate checks that every key in checked is a known checklist flag.
func Validate(checked map[string]bool) error {
	for key := range checked {
		if !Valid(key) {
			return &ierr.ValidationError{
				Field:   "flag",
				Value:   key,
				Message: "unknown checklist flag",
			}
		}
	}
	return nil
}

// Score evaluates the checklist and returns the bias verdict. Flags
// absent from checked count as unchecked.
func Score(checked map[string]bool) Result {
	var r Result

	for _, s := range scoringOrder {
		if !checked[s.flag] {
			continue
		}
		switch s.side {
		case sideBullish:
			r.Bullish += s.weight
		case sideBearish:
			r.Bearish += s.weight
		case sideNeutral:
			r.Neutral += s.weight
		case sideLeader:
			if r.Bullish > r.Bearish {
				r.Bullish += s.weight
			} else if r.Bearish > r.Bullish {
				r.Bearish += s.weight
			}
		}
	}

	if r.Bullish+r.Bearish+r.Neutral == 0 {
		r.Incomplete = true
		return r
	}

	if directional := r.Bullish + r.Bearish; directional > 0 {
		r.BullishPct = float64(r.Bullish) / float64(directional) * 100
		r.BearishPct = float64(r.Bearish) / float64(directional) * 100
	}

	diff := r.Bullish - r.Bearish
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 2:
		r.Bias = BiasNeutral
		r.Confidence = ConvictionLow
	case r.Bullish > r.Bearish && diff >= 5:
		r.Bias = BiasStrongBullish
		r.Confidence = ConvictionHigh
	case r.Bullish > r.Bearish:
		r.Bias = BiasBullish
		r.Confidence = ConvictionModerate
	case diff >= 5:
		r.Bias = BiasStrongBearish
		r.Confidence = ConvictionHigh
	default:
		r.Bias = BiasBearish
		r.Confidence = ConvictionModerate
	}

	r.KeyFactors = keyFactors(r, checked)
	return r
}

func keyFactors(r Result, checked map[string]bool) []string {
	var facts []string
	switch {
	case r.Bullish > r.Bearish:
		facts = append(facts, "Market showing bullish characteristics")
		if checked[PDInDiscount] {
			facts = append(facts, "Price in discount - favorable for longs")
		}
		if checked[StructBOSBullish] || checked[StructMSSBullish] {
			facts = append(facts, "Bullish structure confirmed")
		}
		if checked[LiqBuysideRemaining] {
			facts = append(facts, "Buy-side liquidity draw present")
		}
	case r.Bearish > r.Bullish:
		facts = append(facts, "Market showing bearish characteristics")
		if checked[PDInPremium] {
			facts = append(facts, "Price in premium - favorable for shorts")
		}
		if checked[StructBOSBearish] || checked[StructMSSBearish] {
			facts = append(facts, "Bearish structure confirmed")
		}
		if checked[LiqSellsideRemaining] {
			facts = append(facts, "Sell-side liquidity draw present")
		}
	default:
		facts = append(facts,
			"Mixed signals - trade with caution",
			"Wait for clearer directional bias")
	}
	return facts
}

// Summary renders a one-line verdict suitable for logs and plain output.
func (r Result) Summary() string {
	if r.Incomplete {
		return "checklist incomplete"
	}
	return fmt.Sprintf("%s (%s) bullish %d / bearish %d", r.Bias, r.Confidence, r.Bullish, r.Bearish)
}
