package calc

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ict-journal/internal/models"
)

func f(v float64) *float64 { return &v }

func TestPnLLong(t *testing.T) {
	pnl, pct := PnL(models.DirectionLong, f(100), f(110), f(2))
	require.NotNil(t, pnl)
	require.NotNil(t, pct)
	assert.InDelta(t, 20.0, *pnl, 1e-9)
	assert.InDelta(t, 10.0, *pct, 1e-9)
}

func TestPnLShort(t *testing.T) {
	pnl, pct := PnL(models.DirectionShort, f(100), f(90), f(2))
	require.NotNil(t, pnl)
	assert.InDelta(t, 20.0, *pnl, 1e-9)
	assert.InDelta(t, 10.0, *pct, 1e-9)
}

func TestPnLLosingShort(t *testing.T) {
	pnl, pct := PnL(models.DirectionShort, f(100), f(110), f(1))
	require.NotNil(t, pnl)
	assert.InDelta(t, -10.0, *pnl, 1e-9)
	assert.InDelta(t, -10.0, *pct, 1e-9)
}

func TestPnLMissingInputs(t *testing.T) {
	pnl, pct := PnL(models.DirectionLong, nil, f(110), f(2))
	assert.Nil(t, pnl)
	assert.Nil(t, pct)

	pnl, pct = PnL(models.DirectionLong, f(100), nil, f(2))
	assert.Nil(t, pnl)
	assert.Nil(t, pct)

	pnl, pct = PnL(models.DirectionLong, f(100), f(110), nil)
	assert.Nil(t, pnl)
	assert.Nil(t, pct)
}

func TestPnLZeroEntryReportsZeroPercent(t *testing.T) {
	pnl, pct := PnL(models.DirectionLong, f(0), f(10), f(2))
	require.NotNil(t, pnl)
	require.NotNil(t, pct)
	assert.InDelta(t, 20.0, *pnl, 1e-9)
	assert.Zero(t, *pct)
}

func TestPnLZeroQuantity(t *testing.T) {
	pnl, pct := PnL(models.DirectionLong, f(100), f(110), f(0))
	require.NotNil(t, pnl)
	require.NotNil(t, pct)
	assert.Zero(t, *pnl)
	assert.Zero(t, *pct)
}

// Property: a long and a short over the same prices are exact mirrors.
func TestProperty_LongShortMirror(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	priceGen := gen.Float64Range(0.01, 100000)
	qtyGen := gen.Float64Range(0.001, 1000)

	properties.Property("short P&L is the negated long P&L", prop.ForAll(
		func(entry, exit, qty float64) bool {
			longPnL, longPct := PnL(models.DirectionLong, &entry, &exit, &qty)
			shortPnL, shortPct := PnL(models.DirectionShort, &entry, &exit, &qty)
			if longPnL == nil || shortPnL == nil {
				return false
			}
			const eps = 1e-6
			return abs(*longPnL+*shortPnL) < eps && abs(*longPct+*shortPct) < eps
		},
		priceGen, priceGen, qtyGen,
	))

	properties.TestingRun(t)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
