// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package trade

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
)

// TradeStore is the in-process order book.
type TradeStore struct {
	mu   sync.RWMutex
	byID map[string]*Trade
}

// NewTradeStore constructs an empty order book.
func NewTradeStore() *TradeStore {
	return &TradeStore{byID: make(map[string]*Trade)}
}

// NewSeededTradeStore pre-loads the demo fixtures so list and position
// endpoints return data out of the box.
func NewSeededTradeStore() *TradeStore {
	store := NewTradeStore()

	executed1 := time.Date(2024, 1, 15, 10, 30, 5, 0, time.UTC)
	store.byID["trade-001"] = &Trade{
		ID: "trade-001", UserID: "user-001", Symbol: "AAPL", Type: TypeBuy,
		Quantity: 100, Price: 175.50, TotalValue: 17550.00, Status: StatusExecuted,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), ExecutedAt: &executed1,
	}

	executed2 := time.Date(2024, 1, 14, 9, 15, 3, 0, time.UTC)
	store.byID["trade-002"] = &Trade{
		ID: "trade-002", UserID: "user-001", Symbol: "GOOGL", Type: TypeBuy,
		Quantity: 50, Price: 142.25, TotalValue: 7112.50, Status: StatusExecuted,
		CreatedAt: time.Date(2024, 1, 14, 9, 15, 0, 0, time.UTC), ExecutedAt: &executed2,
	}

	store.byID["trade-003"] = &Trade{
		ID: "trade-003", UserID: "user-002", Symbol: "MSFT", Type: TypeSell,
		Quantity: 25, Price: 380.00, TotalValue: 9500.00, Status: StatusPending,
		CreatedAt: time.Date(2024, 1, 16, 14, 20, 0, 0, time.UTC),
	}

	return store
}

// Find returns the trade with the given ID, or [apperr.NotFound].
func (store *TradeStore) Find(context context.Context, id string) (*Trade, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	trade, found := store.byID[id]
	if !found {
		return nil, apperr.NotFound("Trade").WithCode("TRADE_NOT_FOUND")
	}

	clone := *trade
	return &clone, nil
}

// All returns every trade sorted by creation time descending (newest first).
func (store *TradeStore) All(context context.Context) []*Trade {
	store.mu.RLock()
	defer store.mu.RUnlock()

	trades := make([]*Trade, 0, len(store.byID))
	for _, trade := range store.byID {
		clone := *trade
		trades = append(trades, &clone)
	}

	sort.Slice(trades, func(i, j int) bool {
		return trades[i].CreatedAt.After(trades[j].CreatedAt)
	})
	return trades
}

// Create persists a new trade.
func (store *TradeStore) Create(context context.Context, trade *Trade) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	clone := *trade
	store.byID[trade.ID] = &clone
	return nil
}

// Update replaces the stored trade identified by trade.ID.
func (store *TradeStore) Update(context context.Context, trade *Trade) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, found := store.byID[trade.ID]; !found {
		return apperr.NotFound("Trade").WithCode("TRADE_NOT_FOUND")
	}

	clone := *trade
	store.byID[trade.ID] = &clone
	return nil
}

// PositionStore is the in-process holdings snapshot.
type PositionStore struct {
	mu   sync.RWMutex
	byID map[string]*Position
}

// NewSeededPositionStore pre-loads the demo portfolio.
func NewSeededPositionStore() *PositionStore {
	updated := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)

	return &PositionStore{byID: map[string]*Position{
		"pos-001": {
			ID: "pos-001", UserID: "user-001", Symbol: "AAPL",
			Quantity: 100, AvgPrice: 175.50, CurrentPrice: 178.25,
			TotalValue: 17825.00, ProfitLoss: 275.00, ProfitLossPercent: 1.57,
			UpdatedAt: updated,
		},
		"pos-002": {
			ID: "pos-002", UserID: "user-001", Symbol: "GOOGL",
			Quantity: 50, AvgPrice: 142.25, CurrentPrice: 145.00,
			TotalValue: 7250.00, ProfitLoss: 137.50, ProfitLossPercent: 1.93,
			UpdatedAt: updated,
		},
	}}
}

// All returns every position sorted by symbol.
func (store *PositionStore) All(context context.Context) []*Position {
	store.mu.RLock()
	defer store.mu.RUnlock()

	positions := make([]*Position, 0, len(store.byID))
	for _, position := range store.byID {
		clone := *position
		positions = append(positions, &clone)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})
	return positions
}

// FindBySymbol returns the position for a symbol (case-insensitive).
func (store *PositionStore) FindBySymbol(context context.Context, symbol string) (*Position, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	upper := strings.ToUpper(symbol)
	for _, position := range store.byID {
		if position.Symbol == upper {
			clone := *position
			return &clone, nil
		}
	}

	return nil, apperr.NotFound("Position for symbol " + upper).WithCode("POSITION_NOT_FOUND")
}
