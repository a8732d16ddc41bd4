// Copyright (c) 2026 Kong Demo Platform. All rights reserved.
// Author: muhammad.mk.dev@gmail.com

package trade

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Mk/kong-microservices/internal/platform/apperr"
	requestutil "github.com/Muhammad-Mk/kong-microservices/internal/platform/request"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/respond"
	"github.com/Muhammad-Mk/kong-microservices/internal/platform/validate"
	"github.com/Muhammad-Mk/kong-microservices/pkg/pagination"
)

// demoFallbackUserID attributes orders placed without a forwarded identity to
// the first demo consumer, matching the unprotected demo gateway routes.
const demoFallbackUserID = "user-001"

// defaultHistoryDays is the synthetic history window when none is requested.
const defaultHistoryDays = 30

// Handler implements the trade service's HTTP endpoints.
type Handler struct {
	tradeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{tradeService: service}
}

// Routes returns a [chi.Router] configured with the trade endpoints.
//
// # Endpoints
//   - POST /create             : Place a new pending order.
//   - PUT  /modify             : Modify a pending order.
//   - GET  /list               : Paginated orders, newest first.
//   - GET  /{trade_id}         : One order by ID.
//   - POST /close/{trade_id}   : Cancel a pending order.
//   - GET  /positions/list     : Holdings plus summary totals.
//   - GET  /positions/summary  : Full portfolio aggregate.
//   - GET  /positions/history  : Synthetic value history.
//   - GET  /positions/{symbol} : One holding by symbol.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/create", handler.create)
	router.Put("/modify", handler.modify)
	router.Get("/list", handler.list)
	router.Post("/close/{trade_id}", handler.close)

	router.Route("/positions", func(positions chi.Router) {
		positions.Get("/list", handler.listPositions)
		positions.Get("/summary", handler.portfolioSummary)
		positions.Get("/history", handler.history)
		positions.Get("/{symbol}", handler.getPosition)
	})

	router.Get("/{trade_id}", handler.get)

	return router
}

// callerID resolves the acting user from the forwarded identity headers.
func callerID(request *http.Request) string {
	if identity := requestutil.Identity(request); identity != nil && identity.UserID != "" {
		return identity.UserID
	}
	return demoFallbackUserID
}

// createRequest carries a new order. Quantity and Price are pointers so a
// missing field is distinguishable from an explicit zero.
type createRequest struct {
	Symbol   string   `json:"symbol"`
	Type     string   `json:"type"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

// create handles POST /create.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("symbol", input.Symbol).Required("type", input.Type)
	if input.Quantity == nil {
		validator.Custom("quantity", true, "This field is required")
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Type != string(TypeBuy) && input.Type != string(TypeSell) {
		respond.Error(writer, request, apperr.ValidationError(`Trade type must be "buy" or "sell"`).WithCode("INVALID_TRADE_TYPE"))
		return
	}
	if *input.Quantity <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Quantity must be a positive integer").WithCode("INVALID_QUANTITY"))
		return
	}
	if input.Price != nil && *input.Price <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Price must be a positive number").WithCode("INVALID_PRICE"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	trade, err := handler.tradeService.Create(request.Context(), CreateInput{
		UserID:   callerID(request),
		Symbol:   input.Symbol,
		Type:     Type(input.Type),
		Quantity: *input.Quantity,
		Price:    input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, "Trade order created successfully", trade)
}

// modifyRequest carries the editable order fields.
type modifyRequest struct {
	TradeID  string   `json:"trade_id"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

// modify handles PUT /modify.
func (handler *Handler) modify(writer http.ResponseWriter, request *http.Request) {
	var input modifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.TradeID == "" {
		respond.Error(writer, request, apperr.ValidationError("Trade ID is required").WithCode("MISSING_TRADE_ID"))
		return
	}
	if input.Quantity != nil && *input.Quantity <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Quantity must be a positive integer").WithCode("INVALID_QUANTITY"))
		return
	}
	if input.Price != nil && *input.Price <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Price must be a positive number").WithCode("INVALID_PRICE"))
		return
	}

	trade, err := handler.tradeService.Modify(request.Context(), ModifyInput{
		TradeID:  input.TradeID,
		Quantity: input.Quantity,
		Price:    input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Trade order modified successfully", trade)
}

// list handles GET /list with page, limit, status, and symbol parameters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	trades, meta := handler.tradeService.List(request.Context(), params, ListFilter{
		Status: query.Get("status"),
		Symbol: query.Get("symbol"),
	})

	respond.OK(writer, map[string]any{
		"trades":     trades,
		"pagination": meta,
	})
}

// get handles GET /{trade_id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	trade, err := handler.tradeService.Get(request.Context(), requestutil.Param(request, "trade_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trade)
}

// close handles POST /close/{trade_id}.
func (handler *Handler) close(writer http.ResponseWriter, request *http.Request) {
	trade, err := handler.tradeService.Close(request.Context(), requestutil.Param(request, "trade_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Trade closed successfully", trade)
}

// listPositions handles GET /positions/list.
func (handler *Handler) listPositions(writer http.ResponseWriter, request *http.Request) {
	positions, summary := handler.tradeService.ListPositions(request.Context())

	respond.OK(writer, map[string]any{
		"positions": positions,
		"summary":   summary,
	})
}

// getPosition handles GET /positions/{symbol}.
func (handler *Handler) getPosition(writer http.ResponseWriter, request *http.Request) {
	position, err := handler.tradeService.GetPosition(request.Context(), requestutil.Param(request, "symbol"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, position)
}

// portfolioSummary handles GET /positions/summary.
func (handler *Handler) portfolioSummary(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.tradeService.GetPortfolioSummary(request.Context()))
}

// history handles GET /positions/history with symbol and days parameters.
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	symbol := query.Get("symbol")
	days := defaultHistoryDays
	if raw := query.Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	label := symbol
	if label == "" {
		label = "PORTFOLIO"
	}

	respond.OK(writer, map[string]any{
		"symbol":      label,
		"period_days": days,
		"history":     handler.tradeService.GetHistory(request.Context(), symbol, days),
	})
}
