package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "ict-journal/internal/errors"
	"ict-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	s.now = func() time.Time {
		return time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	}
	return s
}

func f(v float64) *float64 { return &v }

func TestConceptRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &models.Concept{
		Title:         "Fair Value Gap",
		Category:      "Price Action",
		Summary:       "A three-candle imbalance",
		Definition:    "Gap between candle one's high and candle three's low",
		HowToIdentify: "Look for a displacement candle",
		TradingRules:  "Enter on 50% retrace",
		KeyPoints:     []string{"Three candles", "  ", "Imbalance zone"},
		Resources:     []string{"2022 mentorship ep 4"},
	}

	id, err := s.AddConcept(ctx, c)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, "2025-06-02", c.DateAdded)

	got, err := s.GetConcept(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Fair Value Gap", got.Title)
	assert.Equal(t, "Price Action", got.Category)
	// blank key points are dropped on write
	assert.Equal(t, []string{"Three candles", "Imbalance zone"}, got.KeyPoints)
	assert.Equal(t, []string{"2022 mentorship ep 4"}, got.Resources)
	assert.Empty(t, got.RelatedConcepts)
}

func TestAddConceptTwiceCreatesTwoRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := models.Concept{Title: "Order Block", Category: "Price Action"}
	first := c
	second := c

	id1, err := s.AddConcept(ctx, &first)
	require.NoError(t, err)
	id2, err := s.AddConcept(ctx, &second)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	all, err := s.GetConcepts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAddConceptValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddConcept(ctx, &models.Concept{Title: " ", Category: "X"})
	var verr *ierr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	_, err = s.AddConcept(ctx, &models.Concept{Title: "X", Category: ""})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestUpdateConceptReplacesChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &models.Concept{
		Title:     "Daily Bias",
		Category:  "Analysis",
		KeyPoints: []string{"old point"},
	}
	id, err := s.AddConcept(ctx, c)
	require.NoError(t, err)

	c.Summary = "updated"
	c.KeyPoints = []string{"new point one", "new point two"}
	require.NoError(t, s.UpdateConcept(ctx, c))

	got, err := s.GetConcept(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Summary)
	assert.Equal(t, []string{"new point one", "new point two"}, got.KeyPoints)
}

func TestDeleteConceptCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddConcept(ctx, &models.Concept{
		Title:           "Weekly Range",
		Category:        "Analysis",
		KeyPoints:       []string{"a"},
		RelatedConcepts: []string{"b"},
		Resources:       []string{"c"},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteConcept(ctx, id))

	_, err = s.GetConcept(ctx, id)
	assert.ErrorIs(t, err, ierr.ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM key_points WHERE concept_id = ?", id).Scan(&n))
	assert.Zero(t, n)
}

func TestDeleteConceptNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteConcept(context.Background(), 999), ierr.ErrNotFound)
}

func TestSearchConcepts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddConcept(ctx, &models.Concept{Title: "Fair Value Gap", Category: "Price Action"})
	require.NoError(t, err)
	_, err = s.AddConcept(ctx, &models.Concept{Title: "Silver Bullet", Category: "Setups", Summary: "A ten o'clock value window"})
	require.NoError(t, err)

	hits, err := s.SearchConcepts(ctx, "value")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = s.SearchConcepts(ctx, "bullet")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Silver Bullet", hits[0].Title)

	hits, err = s.SearchConcepts(ctx, "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, c := range []models.Concept{
		{Title: "A", Category: "Setups"},
		{Title: "B", Category: "Analysis"},
		{Title: "C", Category: "Setups"},
	} {
		c := c
		_, err := s.AddConcept(ctx, &c)
		require.NoError(t, err)
	}

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Analysis", "Setups"}, cats)

	setups, err := s.GetConceptsByCategory(ctx, "Setups")
	require.NoError(t, err)
	assert.Len(t, setups, 2)
}

func TestAddTradeComputesPnL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		Date:       "2025-06-01",
		Pair:       "NAS100",
		Timeframe:  "5m",
		Direction:  models.DirectionLong,
		EntryPrice: f(100),
		ExitPrice:  f(110),
		Quantity:   f(2),
		Outcome:    models.OutcomeWin,
		// caller-supplied derived values must be ignored
		PnL:        f(9999),
		PnLPercent: f(9999),
	}

	id, err := s.AddTrade(ctx, trade)
	require.NoError(t, err)

	got, err := s.GetTrade(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.PnL)
	require.NotNil(t, got.PnLPercent)
	assert.InDelta(t, 20.0, *got.PnL, 1e-9)
	assert.InDelta(t, 10.0, *got.PnLPercent, 1e-9)
	assert.Equal(t, "2025-06-02", got.DateClosed)
}

func TestAddTradeShortPnL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTrade(ctx, &models.Trade{
		Date:       "2025-06-01",
		Pair:       "XAUUSD",
		Timeframe:  "15m",
		Direction:  models.DirectionShort,
		EntryPrice: f(100),
		ExitPrice:  f(90),
		Quantity:   f(2),
	})
	require.NoError(t, err)

	got, err := s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, *got.PnL, 1e-9)
	assert.InDelta(t, 10.0, *got.PnLPercent, 1e-9)
	// pending trades never get a close date
	assert.Equal(t, models.OutcomePending, got.Outcome)
	assert.Empty(t, got.DateClosed)
}

func TestAddTradeWithoutExitLeavesPnLNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTrade(ctx, &models.Trade{
		Date:       "2025-06-01",
		Pair:       "BTCUSD",
		Timeframe:  "1h",
		Direction:  models.DirectionLong,
		EntryPrice: f(50000),
		Quantity:   f(1),
	})
	require.NoError(t, err)

	got, err := s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.PnL)
	assert.Nil(t, got.PnLPercent)
}

func TestAddTradeValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddTrade(ctx, &models.Trade{
		Date: "2025-06-01", Pair: "NAS100", Timeframe: "5m", Direction: "sideways",
	})
	var verr *ierr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "direction", verr.Field)

	_, err = s.AddTrade(ctx, &models.Trade{
		Date: "2025-06-01", Pair: "NAS100", Timeframe: "5m",
		Direction: models.DirectionLong, Outcome: "maybe",
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "outcome", verr.Field)
}

func TestUpdateTradeRecomputesAndStampsClose(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		Date:       "2025-06-01",
		Pair:       "NAS100",
		Timeframe:  "5m",
		Direction:  models.DirectionLong,
		EntryPrice: f(100),
		Quantity:   f(2),
	}
	id, err := s.AddTrade(ctx, trade)
	require.NoError(t, err)

	trade.ExitPrice = f(110)
	trade.Outcome = models.OutcomeWin
	require.NoError(t, s.UpdateTrade(ctx, trade))

	got, err := s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, *got.PnL, 1e-9)
	assert.Equal(t, "2025-06-02", got.DateClosed)

	// the close date survives a move back to pending
	s.now = func() time.Time {
		return time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	}
	trade.Outcome = models.OutcomePending
	require.NoError(t, s.UpdateTrade(ctx, trade))

	got, err = s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.DateClosed)

	// closing again keeps the original date
	trade.Outcome = models.OutcomeLoss
	require.NoError(t, s.UpdateTrade(ctx, trade))

	got, err = s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.DateClosed)
}

func TestUpdateTradeReplacesConcepts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		Date: "2025-06-01", Pair: "NAS100", Timeframe: "5m",
		Direction:    models.DirectionLong,
		ConceptsUsed: []string{"FVG", "Order Block"},
	}
	id, err := s.AddTrade(ctx, trade)
	require.NoError(t, err)

	trade.ConceptsUsed = []string{"Silver Bullet"}
	require.NoError(t, s.UpdateTrade(ctx, trade))

	got, err := s.GetTrade(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Silver Bullet"}, got.ConceptsUsed)
}

func TestGetTradesFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, tr := range []models.Trade{
		{Date: "2025-06-01", Pair: "NAS100", Timeframe: "5m", Direction: models.DirectionLong, Outcome: models.OutcomeWin},
		{Date: "2025-06-02", Pair: "NAS100", Timeframe: "5m", Direction: models.DirectionShort, Outcome: models.OutcomeLoss},
		{Date: "2025-06-03", Pair: "XAUUSD", Timeframe: "15m", Direction: models.DirectionLong},
	} {
		tr := tr
		_, err := s.AddTrade(ctx, &tr)
		require.NoError(t, err)
	}

	all, err := s.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-06-03", all[0].Date)

	nas, err := s.GetTrades(ctx, TradeFilter{Pair: "NAS100"})
	require.NoError(t, err)
	assert.Len(t, nas, 2)

	wins, err := s.GetTrades(ctx, TradeFilter{Outcome: models.OutcomeWin})
	require.NoError(t, err)
	require.Len(t, wins, 1)
	assert.Equal(t, "2025-06-01", wins[0].Date)

	limited, err := s.GetTrades(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	ranged, err := s.GetTrades(ctx, TradeFilter{StartDate: "2025-06-02", EndDate: "2025-06-03"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
}

func TestDeleteTradeCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddTrade(ctx, &models.Trade{
		Date: "2025-06-01", Pair: "NAS100", Timeframe: "5m",
		Direction:    models.DirectionLong,
		ConceptsUsed: []string{"FVG"},
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTrade(ctx, id))

	_, err = s.GetTrade(ctx, id)
	assert.ErrorIs(t, err, ierr.ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM trade_concepts WHERE trade_id = ?", id).Scan(&n))
	assert.Zero(t, n)
}

func TestSnapshotUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, &models.MarketSnapshot{
		Date: "2025-06-02", Symbol: "NAS100", DailyHigh: f(21500), DailyLow: f(21200),
	}))
	require.NoError(t, s.SaveSnapshot(ctx, &models.MarketSnapshot{
		Date: "2025-06-02", Symbol: "NAS100", DailyHigh: f(21600), DailyLow: f(21150),
	}))

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM market_data").Scan(&n))
	assert.Equal(t, 1, n)

	got, err := s.GetSnapshot(ctx, "2025-06-02", "NAS100")
	require.NoError(t, err)
	assert.InDelta(t, 21600.0, *got.DailyHigh, 1e-9)
	assert.InDelta(t, 21150.0, *got.DailyLow, 1e-9)
}

func TestSnapshotRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2025-06-01", "2025-06-02", "2025-06-05"} {
		require.NoError(t, s.SaveSnapshot(ctx, &models.MarketSnapshot{
			Date: d, Symbol: "XAUUSD", DailyHigh: f(3300), DailyLow: f(3250),
		}))
	}
	require.NoError(t, s.SaveSnapshot(ctx, &models.MarketSnapshot{
		Date: "2025-06-02", Symbol: "BTCUSD", DailyHigh: f(105000), DailyLow: f(103000),
	}))

	snaps, err := s.GetSnapshotRange(ctx, "XAUUSD", "2025-06-01", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "2025-06-02", snaps[0].Date)

	_, err = s.GetSnapshot(ctx, "2025-06-03", "XAUUSD")
	assert.ErrorIs(t, err, ierr.ErrNotFound)
}

func TestConceptNoteUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveConceptNote(ctx, "fvg", "first draft"))
	require.NoError(t, s.SaveConceptNote(ctx, "fvg", "revised"))

	note, err := s.GetConceptNote(ctx, "fvg")
	require.NoError(t, err)
	assert.Equal(t, "revised", note.Notes)
	assert.Equal(t, "2025-06-02 10:30:00", note.LastUpdated)

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM concept_notes").Scan(&n))
	assert.Equal(t, 1, n)

	_, err = s.GetConceptNote(ctx, "missing")
	assert.ErrorIs(t, err, ierr.ErrNotFound)
}
