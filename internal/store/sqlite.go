package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ict-journal/internal/calc"
	ierr "ict-journal/internal/errors"
	"ict-journal/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// now is swappable for tests; date_added and date_closed default to
	// the current local date.
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{
		db:  db,
		now: time.Now,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Knowledge-base concepts
	CREATE TABLE IF NOT EXISTS concepts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		date_added TEXT NOT NULL,
		summary TEXT,
		definition TEXT,
		how_to_identify TEXT,
		trading_rules TEXT,
		examples TEXT,
		personal_notes TEXT
	);

	CREATE TABLE IF NOT EXISTS key_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		concept_id INTEGER NOT NULL,
		point TEXT NOT NULL,
		FOREIGN KEY (concept_id) REFERENCES concepts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS related_concepts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		concept_id INTEGER NOT NULL,
		related_name TEXT NOT NULL,
		FOREIGN KEY (concept_id) REFERENCES concepts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS resources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		concept_id INTEGER NOT NULL,
		resource TEXT NOT NULL,
		FOREIGN KEY (concept_id) REFERENCES concepts(id) ON DELETE CASCADE
	);

	-- Journaled trades
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		pair TEXT NOT NULL,
		timeframe TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL,
		stop_loss REAL,
		take_profit REAL,
		exit_price REAL,
		quantity REAL,
		pnl REAL,
		pnl_percent REAL,
		outcome TEXT,
		setup_type TEXT,
		notes TEXT,
		screenshot_path TEXT,
		date_closed TEXT
	);

	CREATE TABLE IF NOT EXISTS trade_concepts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id INTEGER NOT NULL,
		concept_name TEXT NOT NULL,
		FOREIGN KEY (trade_id) REFERENCES trades(id) ON DELETE CASCADE
	);

	-- Manually entered daily high/low per symbol
	CREATE TABLE IF NOT EXISTS market_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		symbol TEXT NOT NULL,
		daily_high REAL,
		daily_low REAL,
		UNIQUE(date, symbol)
	);

	-- Free-form notes keyed by concept identifier
	CREATE TABLE IF NOT EXISTS concept_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		concept_id TEXT NOT NULL UNIQUE,
		notes TEXT,
		last_updated TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_concepts_category ON concepts(category);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_outcome ON trades(outcome);
	CREATE INDEX IF NOT EXISTS idx_market_data_symbol ON market_data(symbol, date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) today() string {
	return s.now().Format(models.DateFormat)
}

// nullFloat converts a *float64 to its SQL representation.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func nullStr(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// ---------------------------------------------------------------------------
// Concepts

func validateConcept(c *models.Concept) error {
	if strings.TrimSpace(c.Title) == "" {
		return ierr.NewValidationError("title", c.Title, "title is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		return ierr.NewValidationError("category", c.Category, "category is required")
	}
	return nil
}

// AddConcept inserts a concept with its key points, related concepts and
// resources in one transaction and returns the new ID. Blank list
// entries are dropped.
func (s *SQLiteStore) AddConcept(ctx context.Context, concept *models.Concept) (int64, error) {
	if err := validateConcept(concept); err != nil {
		return 0, err
	}

	dateAdded := concept.DateAdded
	if dateAdded == "" {
		dateAdded = s.today()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ierr.NewStoreError("add", "concept", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO concepts (title, category, date_added, summary, definition,
			how_to_identify, trading_rules, examples, personal_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		concept.Title, concept.Category, dateAdded, concept.Summary, concept.Definition,
		concept.HowToIdentify, concept.TradingRules, concept.Examples, concept.PersonalNotes)
	if err != nil {
		return 0, ierr.NewStoreError("add", "concept", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, ierr.NewStoreError("add", "concept", err)
	}

	if err := insertConceptChildren(ctx, tx, id, concept); err != nil {
		return 0, ierr.NewStoreError("add", "concept", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, ierr.NewStoreError("add", "concept", err)
	}

	concept.ID = id
	concept.DateAdded = dateAdded
	return id, nil
}

func insertConceptChildren(ctx context.Context, tx *sql.Tx, id int64, concept *models.Concept) error {
	type childTable struct {
		query  string
		values []string
	}
	for _, ct := range []childTable{
		{"INSERT INTO key_points (concept_id, point) VALUES (?, ?)", concept.KeyPoints},
		{"INSERT INTO related_concepts (concept_id, related_name) VALUES (?, ?)", concept.RelatedConcepts},
		{"INSERT INTO resources (concept_id, resource) VALUES (?, ?)", concept.Resources},
	} {
		for _, v := range ct.values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, ct.query, id, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func deleteConceptChildren(ctx context.Context, tx *sql.Tx, id int64) error {
	for _, q := range []string{
		"DELETE FROM key_points WHERE concept_id = ?",
		"DELETE FROM related_concepts WHERE concept_id = ?",
		"DELETE FROM resources WHERE concept_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

const conceptColumns = `id, title, category, date_added, summary, definition,
	how_to_identify, trading_rules, examples, personal_notes`

func scanConcept(row interface{ Scan(...interface{}) error }) (models.Concept, error) {
	var c models.Concept
	var summary, definition, identify, rules, examples, notes sql.NullString
	err := row.Scan(&c.ID, &c.Title, &c.Category, &c.DateAdded,
		&summary, &definition, &identify, &rules, &examples, &notes)
	if err != nil {
		return c, err
	}
	c.Summary = summary.String
	c.Definition = definition.String
	c.HowToIdentify = identify.String
	c.TradingRules = rules.String
	c.Examples = examples.String
	c.PersonalNotes = notes.String
	return c, nil
}

func (s *SQLiteStore) queryConcepts(ctx context.Context, query string, args ...interface{}) ([]models.Concept, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var concepts []models.Concept
	for rows.Next() {
		c, err := scanConcept(rows)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range concepts {
		if err := s.loadConceptChildren(ctx, &concepts[i]); err != nil {
			return nil, err
		}
	}
	return concepts, nil
}

func (s *SQLiteStore) loadConceptChildren(ctx context.Context, c *models.Concept) error {
	load := func(query string, dst *[]string) error {
		rows, err := s.db.QueryContext(ctx, query, c.ID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dst = append(*dst, v)
		}
		return rows.Err()
	}

	if err := load("SELECT point FROM key_points WHERE concept_id = ?", &c.KeyPoints); err != nil {
		return err
	}
	if err := load("SELECT related_name FROM related_concepts WHERE concept_id = ?", &c.RelatedConcepts); err != nil {
		return err
	}
	return load("SELECT resource FROM resources WHERE concept_id = ?", &c.Resources)
}

// GetConcepts returns all concepts, newest first.
func (s *SQLiteStore) GetConcepts(ctx context.Context) ([]models.Concept, error) {
	concepts, err := s.queryConcepts(ctx,
		"SELECT "+conceptColumns+" FROM concepts ORDER BY date_added DESC")
	if err != nil {
		return nil, ierr.NewStoreError("list", "concept", err)
	}
	return concepts, nil
}

// GetConcept returns a single concept with its child lists.
func (s *SQLiteStore) GetConcept(ctx context.Context, id int64) (*models.Concept, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+conceptColumns+" FROM concepts WHERE id = ?", id)
	c, err := scanConcept(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("concept %d: %w", id, ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.NewStoreError("get", "concept", err)
	}
	if err := s.loadConceptChildren(ctx, &c); err != nil {
		return nil, ierr.NewStoreError("get", "concept", err)
	}
	return &c, nil
}

// UpdateConcept rewrites a concept row and replaces its child lists.
func (s *SQLiteStore) UpdateConcept(ctx context.Context, concept *models.Concept) error {
	if err := validateConcept(concept); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ierr.NewStoreError("update", "concept", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE concepts SET title = ?, category = ?, summary = ?, definition = ?,
			how_to_identify = ?, trading_rules = ?, examples = ?, personal_notes = ?
		WHERE id = ?`,
		concept.Title, concept.Category, concept.Summary, concept.Definition,
		concept.HowToIdentify, concept.TradingRules, concept.Examples,
		concept.PersonalNotes, concept.ID)
	if err != nil {
		return ierr.NewStoreError("update", "concept", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("concept %d: %w", concept.ID, ierr.ErrNotFound)
	}

	if err := deleteConceptChildren(ctx, tx, concept.ID); err != nil {
		return ierr.NewStoreError("update", "concept", err)
	}
	if err := insertConceptChildren(ctx, tx, concept.ID, concept); err != nil {
		return ierr.NewStoreError("update", "concept", err)
	}

	if err := tx.Commit(); err != nil {
		return ierr.NewStoreError("update", "concept", err)
	}
	return nil
}

// DeleteConcept removes a concept; child rows go with it via cascade.
func (s *SQLiteStore) DeleteConcept(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM concepts WHERE id = ?", id)
	if err != nil {
		return ierr.NewStoreError("delete", "concept", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("concept %d: %w", id, ierr.ErrNotFound)
	}
	return nil
}

// SearchConcepts matches the query as a substring of title, category or
// summary, case-insensitively.
func (s *SQLiteStore) SearchConcepts(ctx context.Context, query string) ([]models.Concept, error) {
	pattern := "%" + query + "%"
	concepts, err := s.queryConcepts(ctx, `
		SELECT `+conceptColumns+` FROM concepts
		WHERE title LIKE ? OR category LIKE ? OR summary LIKE ?
		ORDER BY date_added DESC`,
		pattern, pattern, pattern)
	if err != nil {
		return nil, ierr.NewStoreError("search", "concept", err)
	}
	return concepts, nil
}

// GetConceptsByCategory returns all concepts in one category.
func (s *SQLiteStore) GetConceptsByCategory(ctx context.Context, category string) ([]models.Concept, error) {
	concepts, err := s.queryConcepts(ctx,
		"SELECT "+conceptColumns+" FROM concepts WHERE category = ? ORDER BY date_added DESC",
		category)
	if err != nil {
		return nil, ierr.NewStoreError("list", "concept", err)
	}
	return concepts, nil
}

// GetCategories returns the distinct categories in alphabetical order.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT category FROM concepts ORDER BY category")
	if err != nil {
		return nil, ierr.NewStoreError("list", "category", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, ierr.NewStoreError("list", "category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.NewStoreError("list", "category", err)
	}
	return categories, nil
}

// ---------------------------------------------------------------------------
// Trades

func validateTrade(t *models.Trade) error {
	if strings.TrimSpace(t.Date) == "" {
		return ierr.NewValidationError("date", t.Date, "date is required")
	}
	if strings.TrimSpace(t.Pair) == "" {
		return ierr.NewValidationError("pair", t.Pair, "pair is required")
	}
	if strings.TrimSpace(t.Timeframe) == "" {
		return ierr.NewValidationError("timeframe", t.Timeframe, "timeframe is required")
	}
	switch t.Direction {
	case models.DirectionLong, models.DirectionShort:
	default:
		return ierr.NewValidationError("direction", string(t.Direction), "must be long or short")
	}
	switch t.Outcome {
	case "", models.OutcomePending, models.OutcomeWin, models.OutcomeLoss, models.OutcomeBreakEven:
	default:
		return ierr.NewValidationError("outcome", string(t.Outcome), "must be pending, win, loss or break_even")
	}
	return nil
}

// AddTrade inserts a trade with its concept links and returns the new
// ID. P&L fields are recomputed from the inputs; any caller-supplied
// values are ignored. date_closed is stamped when the trade arrives
// already decided.
func (s *SQLiteStore) AddTrade(ctx context.Context, trade *models.Trade) (int64, error) {
	if err := validateTrade(trade); err != nil {
		return 0, err
	}

	if trade.Outcome == "" {
		trade.Outcome = models.OutcomePending
	}
	trade.PnL, trade.PnLPercent = calc.PnL(trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.Quantity)
	if trade.Closed() && trade.DateClosed == "" {
		trade.DateClosed = s.today()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ierr.NewStoreError("add", "trade", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO trades (date, pair, timeframe, direction, entry_price, stop_loss,
			take_profit, exit_price, quantity, pnl, pnl_percent, outcome,
			setup_type, notes, screenshot_path, date_closed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.Date, trade.Pair, trade.Timeframe, string(trade.Direction),
		nullFloat(trade.EntryPrice), nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit),
		nullFloat(trade.ExitPrice), nullFloat(trade.Quantity),
		nullFloat(trade.PnL), nullFloat(trade.PnLPercent),
		string(trade.Outcome), trade.SetupType, trade.Notes, trade.Screenshot,
		nullStr(trade.DateClosed))
	if err != nil {
		return 0, ierr.NewStoreError("add", "trade", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, ierr.NewStoreError("add", "trade", err)
	}

	if err := insertTradeConcepts(ctx, tx, id, trade.ConceptsUsed); err != nil {
		return 0, ierr.NewStoreError("add", "trade", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, ierr.NewStoreError("add", "trade", err)
	}

	trade.ID = id
	return id, nil
}

func insertTradeConcepts(ctx context.Context, tx *sql.Tx, id int64, concepts []string) error {
	for _, name := range concepts {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO trade_concepts (trade_id, concept_name) VALUES (?, ?)", id, name); err != nil {
			return err
		}
	}
	return nil
}

const tradeColumns = `id, date, pair, timeframe, direction, entry_price, stop_loss,
	take_profit, exit_price, quantity, pnl, pnl_percent, outcome,
	setup_type, notes, screenshot_path, date_closed`

func scanTrade(row interface{ Scan(...interface{}) error }) (models.Trade, error) {
	var t models.Trade
	var direction string
	var entry, stop, target, exit, qty, pnl, pnlPct sql.NullFloat64
	var outcome, setup, notes, screenshot, dateClosed sql.NullString

	err := row.Scan(&t.ID, &t.Date, &t.Pair, &t.Timeframe, &direction,
		&entry, &stop, &target, &exit, &qty, &pnl, &pnlPct,
		&outcome, &setup, &notes, &screenshot, &dateClosed)
	if err != nil {
		return t, err
	}

	t.Direction = models.Direction(direction)
	t.EntryPrice = floatPtr(entry)
	t.StopLoss = floatPtr(stop)
	t.TakeProfit = floatPtr(target)
	t.ExitPrice = floatPtr(exit)
	t.Quantity = floatPtr(qty)
	t.PnL = floatPtr(pnl)
	t.PnLPercent = floatPtr(pnlPct)
	t.Outcome = models.Outcome(outcome.String)
	t.SetupType = setup.String
	t.Notes = notes.String
	t.Screenshot = screenshot.String
	t.DateClosed = dateClosed.String
	return t, nil
}

// GetTrades returns trades matching the filter, newest first.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	var args []interface{}

	if filter.Pair != "" {
		query += " AND pair = ?"
		args = append(args, filter.Pair)
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, string(filter.Outcome))
	}
	if filter.SetupType != "" {
		query += " AND setup_type = ?"
		args = append(args, filter.SetupType)
	}
	if filter.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.NewStoreError("list", "trade", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, ierr.NewStoreError("list", "trade", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.NewStoreError("list", "trade", err)
	}

	for i := range trades {
		if err := s.loadTradeConcepts(ctx, &trades[i]); err != nil {
			return nil, ierr.NewStoreError("list", "trade", err)
		}
	}
	return trades, nil
}

func (s *SQLiteStore) loadTradeConcepts(ctx context.Context, t *models.Trade) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT concept_name FROM trade_concepts WHERE trade_id = ?", t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		t.ConceptsUsed = append(t.ConceptsUsed, name)
	}
	return rows.Err()
}

// GetTrade returns a single trade with its concept links.
func (s *SQLiteStore) GetTrade(ctx context.Context, id int64) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trade %d: %w", id, ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.NewStoreError("get", "trade", err)
	}
	if err := s.loadTradeConcepts(ctx, &t); err != nil {
		return nil, ierr.NewStoreError("get", "trade", err)
	}
	return &t, nil
}

// UpdateTrade rewrites a trade and replaces its concept links. P&L is
// recomputed from the stored inputs on every call. date_closed is set
// the first time the outcome leaves pending and is kept afterwards even
// if the outcome moves back to pending.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	if err := validateTrade(trade); err != nil {
		return err
	}
	if trade.Outcome == "" {
		trade.Outcome = models.OutcomePending
	}

	current, err := s.GetTrade(ctx, trade.ID)
	if err != nil {
		return err
	}

	trade.PnL, trade.PnLPercent = calc.PnL(trade.Direction, trade.EntryPrice, trade.ExitPrice, trade.Quantity)

	trade.DateClosed = current.DateClosed
	if trade.Closed() && trade.DateClosed == "" {
		trade.DateClosed = s.today()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ierr.NewStoreError("update", "trade", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE trades SET date = ?, pair = ?, timeframe = ?, direction = ?,
			entry_price = ?, stop_loss = ?, take_profit = ?, exit_price = ?,
			quantity = ?, pnl = ?, pnl_percent = ?, outcome = ?,
			setup_type = ?, notes = ?, screenshot_path = ?, date_closed = ?
		WHERE id = ?`,
		trade.Date, trade.Pair, trade.Timeframe, string(trade.Direction),
		nullFloat(trade.EntryPrice), nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit),
		nullFloat(trade.ExitPrice), nullFloat(trade.Quantity),
		nullFloat(trade.PnL), nullFloat(trade.PnLPercent),
		string(trade.Outcome), trade.SetupType, trade.Notes, trade.Screenshot,
		nullStr(trade.DateClosed), trade.ID)
	if err != nil {
		return ierr.NewStoreError("update", "trade", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trade_concepts WHERE trade_id = ?", trade.ID); err != nil {
		return ierr.NewStoreError("update", "trade", err)
	}
	if err := insertTradeConcepts(ctx, tx, trade.ID, trade.ConceptsUsed); err != nil {
		return ierr.NewStoreError("update", "trade", err)
	}

	if err := tx.Commit(); err != nil {
		return ierr.NewStoreError("update", "trade", err)
	}
	return nil
}

// DeleteTrade removes a trade; concept links go with it via cascade.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return ierr.NewStoreError("delete", "trade", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("trade %d: %w", id, ierr.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Market data

// SaveSnapshot inserts or updates the daily high/low for (date, symbol).
// Saving the same key twice keeps a single row with the latest values.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *models.MarketSnapshot) error {
	if strings.TrimSpace(snap.Date) == "" {
		return ierr.NewValidationError("date", snap.Date, "date is required")
	}
	if strings.TrimSpace(snap.Symbol) == "" {
		return ierr.NewValidationError("symbol", snap.Symbol, "symbol is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO market_data (date, symbol, daily_high, daily_low)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, symbol) DO UPDATE SET
			daily_high = excluded.daily_high,
			daily_low = excluded.daily_low`,
		snap.Date, snap.Symbol, nullFloat(snap.DailyHigh), nullFloat(snap.DailyLow))
	if err != nil {
		return ierr.NewStoreError("save", "market_data", err)
	}
	return nil
}

// GetSnapshot returns the snapshot for one (date, symbol) key.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, date, symbol string) (*models.MarketSnapshot, error) {
	var snap models.MarketSnapshot
	var high, low sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT date, symbol, daily_high, daily_low FROM market_data
		WHERE date = ? AND symbol = ?`, date, symbol).
		Scan(&snap.Date, &snap.Symbol, &high, &low)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("market data %s %s: %w", symbol, date, ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.NewStoreError("get", "market_data", err)
	}
	snap.DailyHigh = floatPtr(high)
	snap.DailyLow = floatPtr(low)
	return &snap, nil
}

// GetSnapshotRange returns snapshots for a symbol between two dates
// inclusive, newest first.
func (s *SQLiteStore) GetSnapshotRange(ctx context.Context, symbol, startDate, endDate string) ([]models.MarketSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, symbol, daily_high, daily_low FROM market_data
		WHERE symbol = ? AND date BETWEEN ? AND ?
		ORDER BY date DESC`, symbol, startDate, endDate)
	if err != nil {
		return nil, ierr.NewStoreError("list", "market_data", err)
	}
	defer rows.Close()

	var snaps []models.MarketSnapshot
	for rows.Next() {
		var snap models.MarketSnapshot
		var high, low sql.NullFloat64
		if err := rows.Scan(&snap.Date, &snap.Symbol, &high, &low); err != nil {
			return nil, ierr.NewStoreError("list", "market_data", err)
		}
		snap.DailyHigh = floatPtr(high)
		snap.DailyLow = floatPtr(low)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.NewStoreError("list", "market_data", err)
	}
	return snaps, nil
}

// ---------------------------------------------------------------------------
// Concept notes

// SaveConceptNote upserts the personal note for a concept identifier and
// stamps last_updated.
func (s *SQLiteStore) SaveConceptNote(ctx context.Context, conceptID, notes string) error {
	if strings.TrimSpace(conceptID) == "" {
		return ierr.NewValidationError("concept_id", conceptID, "concept id is required")
	}

	lastUpdated := s.now().Format(models.TimestampFormat)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO concept_notes (concept_id, notes, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(concept_id) DO UPDATE SET
			notes = excluded.notes,
			last_updated = excluded.last_updated`,
		conceptID, notes, lastUpdated)
	if err != nil {
		return ierr.NewStoreError("save", "concept_note", err)
	}
	return nil
}

// GetConceptNote returns the note for a concept identifier.
func (s *SQLiteStore) GetConceptNote(ctx context.Context, conceptID string) (*models.ConceptNote, error) {
	var note models.ConceptNote
	var body, updated sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT concept_id, notes, last_updated FROM concept_notes
		WHERE concept_id = ?`, conceptID).
		Scan(&note.ConceptID, &body, &updated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("concept note %s: %w", conceptID, ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.NewStoreError("get", "concept_note", err)
	}
	note.Notes = body.String
	note.LastUpdated = updated.String
	return &note, nil
}
