// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"ict-journal/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Concepts
	AddConcept(ctx context.Context, concept *models.Concept) (int64, error)
	GetConcepts(ctx context.Context) ([]models.Concept, error)
	GetConcept(ctx context.Context, id int64) (*models.Concept, error)
	UpdateConcept(ctx context.Context, concept *models.Concept) error
	DeleteConcept(ctx context.Context, id int64) error
	SearchConcepts(ctx context.Context, query string) ([]models.Concept, error)
	GetConceptsByCategory(ctx context.Context, category string) ([]models.Concept, error)
	GetCategories(ctx context.Context) ([]string, error)

	// Trades
	AddTrade(ctx context.Context, trade *models.Trade) (int64, error)
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTrade(ctx context.Context, id int64) (*models.Trade, error)
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id int64) error

	// Market data
	SaveSnapshot(ctx context.Context, snap *models.MarketSnapshot) error
	GetSnapshot(ctx context.Context, date, symbol string) (*models.MarketSnapshot, error)
	GetSnapshotRange(ctx context.Context, symbol, startDate, endDate string) ([]models.MarketSnapshot, error)

	// Concept notes
	SaveConceptNote(ctx context.Context, conceptID, notes string) error
	GetConceptNote(ctx context.Context, conceptID string) (*models.ConceptNote, error)

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades. Zero values mean
// "no constraint".
type TradeFilter struct {
	Pair      string
	Outcome   models.Outcome
	SetupType string
	StartDate string
	EndDate   string
	Limit     int
}
