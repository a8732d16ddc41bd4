// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

// Package trade implements the demo order book and portfolio service.
//
// # Architecture
//
// Same three-layer split as the other services: entities and stores, the
// use-case service, and HTTP delivery. Orders live in a process-local store;
// no matching engine exists — trades stay pending until explicitly closed.
package trade

import "time"

// # Order Taxonomy

// Type is the direction of an order.
type Type string

const (
	TypeBuy  Type = "buy"
	TypeSell Type = "sell"
)

// Status is the lifecycle state of an order.
//
// Pending orders can be modified or closed; executed and cancelled orders
// are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExecuted  Status = "executed"
	StatusCancelled Status = "cancelled"
)

// defaultMarketPrice stands in for a market-data feed: orders created without
// a price are priced at this demo constant.
const defaultMarketPrice = 100.00

// # Entities

// Trade is one order in the book.
type Trade struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Symbol     string     `json:"symbol"`
	Type       Type       `json:"type"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
	TotalValue float64    `json:"total_value"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ExecutedAt *time.Time `json:"executed_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
}

// Position is an aggregated holding for one symbol.
type Position struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Symbol            string    `json:"symbol"`
	Quantity          int       `json:"quantity"`
	AvgPrice          float64   `json:"avg_price"`
	CurrentPrice      float64   `json:"current_price"`
	TotalValue        float64   `json:"total_value"`
	ProfitLoss        float64   `json:"profit_loss"`
	ProfitLossPercent float64   `json:"profit_loss_percent"`
	UpdatedAt         time.Time `json:"updated_at"`
}
