// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package trade

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
	"github.com/Muhammad-Mk/kong-microservices/pkg/slice"
	"github.com/Muhammad-Mk/kong-microservices/pkg/uuid"
)

// Service implements the order and portfolio use cases.
type Service struct {
	trades    *TradeStore
	positions *PositionStore
}

// NewService constructs a new [Service] over the given stores.
func NewService(trades *TradeStore, positions *PositionStore) *Service {
	return &Service{trades: trades, positions: positions}
}

// round2 rounds monetary values to cents for stable JSON output.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// CreateInput holds a new order's parameters.
type CreateInput struct {
	UserID   string
	Symbol   string
	Type     Type
	Quantity int

	// Price is nil for market orders, which get the demo market price.
	Price *float64
}

// Create places a new order in pending state.
//
// Symbols are normalized to upper case; total value is derived, never
// client-supplied.
func (service *Service) Create(context context.Context, input CreateInput) (*Trade, error) {
	price := defaultMarketPrice
	if input.Price != nil {
		price = *input.Price
	}

	trade := &Trade{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Symbol:     strings.ToUpper(input.Symbol),
		Type:       input.Type,
		Quantity:   input.Quantity,
		Price:      price,
		TotalValue: round2(price * float64(input.Quantity)),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := service.trades.Create(context, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// ModifyInput carries the editable order fields. Nil means unchanged.
type ModifyInput struct {
	TradeID  string
	Quantity *int
	Price    *float64
}

// Modify updates a pending order's quantity and/or price.
//
// Only pending orders are modifiable (TRADE_NOT_MODIFIABLE otherwise); the
// total value is recalculated after every change.
func (service *Service) Modify(context context.Context, input ModifyInput) (*Trade, error) {
	trade, err := service.trades.Find(context, input.TradeID)
	if err != nil {
		return nil, err
	}

	if trade.Status != StatusPending {
		return nil, apperr.ValidationError("Only pending trades can be modified").WithCode("TRADE_NOT_MODIFIABLE")
	}

	if input.Quantity != nil {
		trade.Quantity = *input.Quantity
	}
	if input.Price != nil {
		trade.Price = *input.Price
	}

	trade.TotalValue = round2(trade.Price * float64(trade.Quantity))
	now := time.Now().UTC()
	trade.UpdatedAt = &now

	if err := service.trades.Update(context, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// ListFilter narrows the order listing.
type ListFilter struct {
	Status string
	Symbol string
}

// List returns one page of orders, newest first, optionally filtered by
// status and symbol.
func (service *Service) List(context context.Context, params pagination.Params, filter ListFilter) ([]*Trade, pagination.Meta) {
	trades := service.trades.All(context)

	if filter.Status != "" {
		trades = slice.Filter(trades, func(trade *Trade) bool {
			return string(trade.Status) == filter.Status
		})
	}
	if filter.Symbol != "" {
		symbol := strings.ToUpper(filter.Symbol)
		trades = slice.Filter(trades, func(trade *Trade) bool {
			return trade.Symbol == symbol
		})
	}

	total := len(trades)
	page := pagination.Slice(trades, params)

	return page, pagination.NewMeta(params.Page, params.Limit, total)
}

// Get returns one order by ID.
func (service *Service) Get(context context.Context, id string) (*Trade, error) {
	return service.trades.Find(context, id)
}

// Close cancels a pending order.
//
// Only pending orders are closable (TRADE_NOT_CLOSABLE otherwise). Closing
// is terminal: the order moves to cancelled and can never reopen.
func (service *Service) Close(context context.Context, id string) (*Trade, error) {
	trade, err := service.trades.Find(context, id)
	if err != nil {
		return nil, err
	}

	if trade.Status != StatusPending {
		return nil, apperr.ValidationError("Only pending trades can be closed").WithCode("TRADE_NOT_CLOSABLE")
	}

	trade.Status = StatusCancelled
	now := time.Now().UTC()
	trade.ClosedAt = &now

	if err := service.trades.Update(context, trade); err != nil {
		return nil, err
	}

	return trade, nil
}

// PositionsSummary aggregates the holdings snapshot.
type PositionsSummary struct {
	TotalPositions  int     `json:"total_positions"`
	TotalValue      float64 `json:"total_value"`
	TotalProfitLoss float64 `json:"total_profit_loss"`
}

// ListPositions returns all positions plus the aggregate summary.
func (service *Service) ListPositions(context context.Context) ([]*Position, *PositionsSummary) {
	positions := service.positions.All(context)

	summary := &PositionsSummary{TotalPositions: len(positions)}
	for _, position := range positions {
		summary.TotalValue += position.TotalValue
		summary.TotalProfitLoss += position.ProfitLoss
	}
	summary.TotalValue = round2(summary.TotalValue)
	summary.TotalProfitLoss = round2(summary.TotalProfitLoss)

	return positions, summary
}

// GetPosition returns the holding for one symbol.
func (service *Service) GetPosition(context context.Context, symbol string) (*Position, error) {
	return service.positions.FindBySymbol(context, symbol)
}

// Performer names a position by its relative performance.
type Performer struct {
	Symbol            string  `json:"symbol"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
}

// PortfolioSummary is the full portfolio aggregate.
type PortfolioSummary struct {
	TotalPositions         int        `json:"total_positions"`
	TotalInvested          float64    `json:"total_invested"`
	TotalValue             float64    `json:"total_value"`
	TotalProfitLoss        float64    `json:"total_profit_loss"`
	TotalProfitLossPercent float64    `json:"total_profit_loss_percent"`
	BestPerformer          *Performer `json:"best_performer"`
	WorstPerformer         *Performer `json:"worst_performer"`
}

// GetPortfolioSummary computes invested capital, current value, and the best
// and worst performing symbols. An empty portfolio yields zeroes and nil
// performers.
func (service *Service) GetPortfolioSummary(context context.Context) *PortfolioSummary {
	positions := service.positions.All(context)
	summary := &PortfolioSummary{TotalPositions: len(positions)}

	if len(positions) == 0 {
		return summary
	}

	best, worst := positions[0], positions[0]
	for _, position := range positions {
		summary.TotalInvested += position.AvgPrice * float64(position.Quantity)
		summary.TotalValue += position.TotalValue
		summary.TotalProfitLoss += position.ProfitLoss

		if position.ProfitLossPercent > best.ProfitLossPercent {
			best = position
		}
		if position.ProfitLossPercent < worst.ProfitLossPercent {
			worst = position
		}
	}

	summary.TotalInvested = round2(summary.TotalInvested)
	summary.TotalValue = round2(summary.TotalValue)
	summary.TotalProfitLoss = round2(summary.TotalProfitLoss)
	if summary.TotalInvested > 0 {
		summary.TotalProfitLossPercent = round2(summary.TotalProfitLoss / summary.TotalInvested * 100)
	}

	summary.BestPerformer = &Performer{Symbol: best.Symbol, ProfitLossPercent: best.ProfitLossPercent}
	summary.WorstPerformer = &Performer{Symbol: worst.Symbol, ProfitLossPercent: worst.ProfitLossPercent}

	return summary
}

// HistoryPoint is one day in the synthetic portfolio history.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// GetHistory generates the deterministic synthetic history series the demo
// frontend charts. There is no market-data feed; the curve is a fixed
// baseline with a weekly oscillation and a gentle upward drift.
func (service *Service) GetHistory(context context.Context, symbol string, days int) []HistoryPoint {
	const baseValue = 17000.00

	baseDate := time.Now().UTC()
	history := make([]HistoryPoint, 0, days)

	for i := 0; i < days; i++ {
		date := baseDate.AddDate(0, 0, -(days - i - 1))
		variation := float64(i%7-3) * 50

		history = append(history, HistoryPoint{
			Date:   date.Format("2006-01-02"),
			Value:  round2(baseValue + variation + float64(i)*10),
			Change: round2(variation),
		})
	}

	return history
}
