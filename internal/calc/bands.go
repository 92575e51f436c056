package calc

// Band percentages mirror the CME equity-index limit tiers. They are
// fixed constants, not configuration.
const (
	bandTier1 = 0.07
	bandTier2 = 0.13
	bandTier3 = 0.20

	// fibExtension is the range multiplier used by the asset-card
	// projection when no settlement price is available.
	fibExtension = 0.618

	// halfRange is the multiplier used by the general calculator. It
	// intentionally differs from fibExtension; the two calculators are
	// independent contracts and must not be unified.
	halfRange = 0.5
)

// Bands holds three symmetric percentage levels around a reference price.
type Bands struct {
	Up7    float64 `json:"up_7"`
	Down7  float64 `json:"down_7"`
	Up13   float64 `json:"up_13"`
	Down13 float64 `json:"down_13"`
	Up20   float64 `json:"up_20"`
	Down20 float64 `json:"down_20"`
}

// Projection is a next-day high/low estimate.
type Projection struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// CircuitBands computes the ±7/13/20% reference levels around a close.
func CircuitBands(close float64) Bands {
	return bandsAround(close)
}

// CMELimits computes the same ±7/13/20% tiers anchored on the prior
// settlement price, the official limit up/down reference.
func CMELimits(settlement float64) Bands {
	return bandsAround(settlement)
}

func bandsAround(ref float64) Bands {
	return Bands{
		Up7:    ref * (1 + bandTier1),
		Down7:  ref * (1 - bandTier1),
		Up13:   ref * (1 + bandTier2),
		Down13: ref * (1 - bandTier2),
		Up20:   ref * (1 + bandTier3),
		Down20: ref * (1 - bandTier3),
	}
}

// NextDayProjection estimates tomorrow's high/low from today's range.
// With a settlement price the projection brackets the settlement by the
// full range; without one it extends the range by 61.8% beyond each end.
func NextDayProjection(high, low float64, settlement *float64) Projection {
	r := high - low
	if settlement != nil {
		return Projection{High: *settlement + r, Low: *settlement - r}
	}
	return Projection{
		High: high + r*fibExtension,
		Low:  low - r*fibExtension,
	}
}

// RangeProjection is the general calculator's next-day estimate: half
// the range beyond each extreme.
func RangeProjection(high, low float64) Projection {
	r := high - low
	return Projection{
		High: high + r*halfRange,
		Low:  low - r*halfRange,
	}
}
