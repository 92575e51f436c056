package bias

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEmptyChecklistIsIncomplete(t *testing.T) {
	r := Score(map[string]bool{})

	assert.True(t, r.Incomplete)
	assert.Empty(t, r.Bias)
	assert.Empty(t, r.Confidence)
	assert.Equal(t, "checklist incomplete", r.Summary())
}

func TestScoreNonScoringFlagsAloneStayIncomplete(t *testing.T) {
	r := Score(map[string]bool{
		PrevLeftFVG:      true,
		PrevInsideDay:    true,
		StructEqualHighs: true,
		LiqOldLows:       true,
	})

	assert.True(t, r.Incomplete)
}

func TestScoreStrongBullish(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyTrend:   true, // +3 bullish
		PrevBullishClose: true, // +2 bullish
	})

	require.False(t, r.Incomplete)
	assert.Equal(t, 5, r.Bullish)
	assert.Equal(t, 0, r.Bearish)
	assert.Equal(t, BiasStrongBullish, r.Bias)
	assert.Equal(t, ConvictionHigh, r.Confidence)
	assert.InDelta(t, 100.0, r.BullishPct, 1e-9)
	assert.InDelta(t, 0.0, r.BearishPct, 1e-9)
}

func TestScoreModerateBearish(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyHigh:  true, // +2 bearish
		PrevSweptHighs: true, // +1 bearish
	})

	require.False(t, r.Incomplete)
	assert.Equal(t, BiasBearish, r.Bias)
	assert.Equal(t, ConvictionModerate, r.Confidence)
}

func TestScoreDifferenceOfTwoIsNeutral(t *testing.T) {
	r := Score(map[string]bool{
		PrevBullishClose: true, // +2 bullish
	})

	require.False(t, r.Incomplete)
	assert.Equal(t, BiasNeutral, r.Bias)
	assert.Equal(t, ConvictionLow, r.Confidence)
}

func TestScoreNeutralOnlyFlagsGiveLowConviction(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyConsolidation: true,
	})

	require.False(t, r.Incomplete)
	assert.Equal(t, 2, r.Neutral)
	assert.Equal(t, BiasNeutral, r.Bias)
	assert.Zero(t, r.BullishPct)
	assert.Zero(t, r.BearishPct)
}

func TestScoreAmplifierAddsToLeader(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyTrend:  true, // +3 bullish
		HTFDailyAligned: true, // bullish leads, +2 bullish
	})

	assert.Equal(t, 5, r.Bullish)
	assert.Equal(t, 0, r.Bearish)
	assert.Equal(t, BiasStrongBullish, r.Bias)
}

func TestScoreAmplifierTieIsNoOp(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyTrend:   true, // +3 bullish
		HTFWeeklyBearish: true, // +3 bearish
		HTFDailyAligned:  true, // tie, no effect
	})

	assert.Equal(t, 3, r.Bullish)
	assert.Equal(t, 3, r.Bearish)
	assert.Equal(t, BiasNeutral, r.Bias)
}

// The amplifiers read the running totals in sequence order, so a flag
// that scores after an amplifier cannot influence it.
func TestScoreAmplifierIgnoresLaterFlags(t *testing.T) {
	r := Score(map[string]bool{
		HTFDailyAligned:  true, // runs first among these, totals still 0:0
		StructBOSBullish: true, // +3 bullish, after the amplifier
	})

	assert.Equal(t, 3, r.Bullish)
	assert.Equal(t, 0, r.Bearish)
}

func TestScoreLondonDisplacementAmplifiesSessionLead(t *testing.T) {
	r := Score(map[string]bool{
		CurrentAboveAsianHigh:     true, // +2 bullish
		CurrentLondonDisplacement: true, // bullish leads, +2 bullish
	})

	assert.Equal(t, 4, r.Bullish)
	assert.Equal(t, BiasBullish, r.Bias)
	assert.Equal(t, ConvictionModerate, r.Confidence)
}

func TestScoreKeyFactors(t *testing.T) {
	r := Score(map[string]bool{
		HTFWeeklyTrend:      true,
		PDInDiscount:        true,
		StructMSSBullish:    true,
		LiqBuysideRemaining: true,
	})

	require.Equal(t, BiasStrongBullish, r.Bias)
	assert.Contains(t, r.KeyFactors, "Price in discount - favorable for longs")
	assert.Contains(t, r.KeyFactors, "Bullish structure confirmed")
	assert.Contains(t, r.KeyFactors, "Buy-side liquidity draw present")
}

func TestValidateRejectsUnknownFlag(t *testing.T) {
	err := Validate(map[string]bool{"htf_weekly_trend": true, "bogus_flag": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_flag")

	assert.NoError(t, Validate(map[string]bool{HTFWeeklyLow: true}))
}

func TestFlagsCoverEveryScoringStep(t *testing.T) {
	known := make(map[string]bool)
	for _, f := range Flags() {
		known[f.Key] = true
	}
	for _, s := range scoringOrder {
		assert.True(t, known[s.flag], "scoring step %q missing from catalog", s.flag)
	}
}

// mirror maps each directional flag onto its opposite-side twin. The
// amplifiers map to themselves.
var mirror = map[string]string{
	HTFWeeklyTrend:            HTFWeeklyBearish,
	HTFWeeklyBearish:          HTFWeeklyTrend,
	HTFDailyAligned:           HTFDailyAligned,
	HTFWeeklyHigh:             HTFWeeklyLow,
	HTFWeeklyLow:              HTFWeeklyHigh,
	HTFWeeklyConsolidation:    HTFWeeklyConsolidation,
	PrevBullishClose:          PrevBearishClose,
	PrevBearishClose:          PrevBullishClose,
	PrevSweptHighs:            PrevSweptLows,
	PrevSweptLows:             PrevSweptHighs,
	PrevRangeExpansion:        PrevRangeExpansion,
	CurrentGapUp:              CurrentGapDown,
	CurrentGapDown:            CurrentGapUp,
	CurrentAboveAsianHigh:     CurrentBelowAsianLow,
	CurrentBelowAsianLow:      CurrentAboveAsianHigh,
	CurrentLondonDisplacement: CurrentLondonDisplacement,
	StructBOSBullish:          StructBOSBearish,
	StructBOSBearish:          StructBOSBullish,
	StructMSSBullish:          StructMSSBearish,
	StructMSSBearish:          StructMSSBullish,
	StructHHHL:                StructLHLL,
	StructLHLL:                StructHHHL,
	LiqBuysideRemaining:       LiqSellsideRemaining,
	LiqSellsideRemaining:      LiqBuysideRemaining,
	LiqBuysideSwept:           LiqSellsideSwept,
	LiqSellsideSwept:          LiqBuysideSwept,
	PDInDiscount:              PDInPremium,
	PDInPremium:               PDInDiscount,
	PDFVGBelow:                PDFVGAbove,
	PDFVGAbove:                PDFVGBelow,
	PDOBBelow:                 PDOBAbove,
	PDOBAbove:                 PDOBBelow,
}

// Property: the checklist is directionally symmetric. Swapping every
// flag for its opposite-side twin swaps the bullish and bearish scores.
func TestProperty_MirroredChecklistSwapsScores(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	flagSetGen := gen.SliceOf(gen.IntRange(0, len(scoringOrder)-1))

	properties.Property("mirror swaps bullish and bearish", prop.ForAll(
		func(picks []int) bool {
			checked := make(map[string]bool)
			mirrored := make(map[string]bool)
			for _, i := range picks {
				flag := scoringOrder[i].flag
				checked[flag] = true
				mirrored[mirror[flag]] = true
			}

			a := Score(checked)
			b := Score(mirrored)
			return a.Bullish == b.Bearish && a.Bearish == b.Bullish && a.Neutral == b.Neutral
		},
		flagSetGen,
	))

	properties.TestingRun(t)
}

// Property: the verdict always agrees with the score difference, and
// the directional percentages always sum to 100 when either side scored.
func TestProperty_VerdictMatchesScoreDifference(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("label follows difference thresholds", prop.ForAll(
		func(picks []int) bool {
			checked := make(map[string]bool)
			for _, i := range picks {
				checked[scoringOrder[i].flag] = true
			}
			r := Score(checked)
			if r.Incomplete {
				return r.Bias == "" && r.Confidence == ""
			}

			if r.Bullish+r.Bearish > 0 {
				if sum := r.BullishPct + r.BearishPct; sum < 99.999 || sum > 100.001 {
					return false
				}
			}

			diff := r.Bullish - r.Bearish
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff <= 2:
				return r.Bias == BiasNeutral && r.Confidence == ConvictionLow
			case diff >= 5 && r.Bullish > r.Bearish:
				return r.Bias == BiasStrongBullish && r.Confidence == ConvictionHigh
			case diff >= 5:
				return r.Bias == BiasStrongBearish && r.Confidence == ConvictionHigh
			case r.Bullish > r.Bearish:
				return r.Bias == BiasBullish && r.Confidence == ConvictionModerate
			default:
				return r.Bias == BiasBearish && r.Confidence == ConvictionModerate
			}
		},
		gen.SliceOf(gen.IntRange(0, len(scoringOrder)-1)),
	))

	properties.TestingRun(t)
}
