package calc

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBands(t *testing.T) {
	b := CircuitBands(100)

	assert.InDelta(t, 107.0, b.Up7, 1e-9)
	assert.InDelta(t, 93.0, b.Down7, 1e-9)
	assert.InDelta(t, 113.0, b.Up13, 1e-9)
	assert.InDelta(t, 87.0, b.Down13, 1e-9)
	assert.InDelta(t, 120.0, b.Up20, 1e-9)
	assert.InDelta(t, 80.0, b.Down20, 1e-9)
}

func TestCMELimitsAnchorOnSettlement(t *testing.T) {
	b := CMELimits(4580)

	assert.InDelta(t, 4580*1.07, b.Up7, 1e-9)
	assert.InDelta(t, 4580*0.93, b.Down7, 1e-9)
}

func TestNextDayProjectionWithSettlement(t *testing.T) {
	settlement := 4580.0
	p := NextDayProjection(4600, 4550, &settlement)

	assert.InDelta(t, 4630.0, p.High, 1e-9)
	assert.InDelta(t, 4530.0, p.Low, 1e-9)
}

func TestNextDayProjectionWithoutSettlement(t *testing.T) {
	p := NextDayProjection(4600, 4550, nil)

	// range 50 extended by 0.618 beyond each extreme
	assert.InDelta(t, 4630.90, p.High, 1e-2)
	assert.InDelta(t, 4519.10, p.Low, 1e-2)
}

func TestRangeProjectionUsesHalfRange(t *testing.T) {
	p := RangeProjection(4600, 4550)

	assert.InDelta(t, 4625.0, p.High, 1e-9)
	assert.InDelta(t, 4525.0, p.Low, 1e-9)
}

// Property: band tiers always nest around the reference in order.
func TestProperty_BandTiersNest(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("tiers nest for any positive close", prop.ForAll(
		func(close float64) bool {
			b := CircuitBands(close)
			return b.Down20 < b.Down13 && b.Down13 < b.Down7 &&
				b.Down7 < close && close < b.Up7 &&
				b.Up7 < b.Up13 && b.Up13 < b.Up20
		},
		gen.Float64Range(0.01, 1e9),
	))

	properties.Property("projection brackets the input range", prop.ForAll(
		func(low, span float64) bool {
			high := low + span
			p := NextDayProjection(high, low, nil)
			return p.High >= high && p.Low <= low
		},
		gen.Float64Range(1, 1e6),
		gen.Float64Range(0, 1e4),
	))

	properties.TestingRun(t)
}
