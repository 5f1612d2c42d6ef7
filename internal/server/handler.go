// Package server exposes the pricing engine over HTTP so a UI layer can
// re-invoke it on every input change. The engine stays a pure function;
// handlers only translate JSON in and out.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/bs-pricer/internal/logger"
	"github.com/contactkeval/bs-pricer/internal/pricing"
)

const defaultSteps = 20

// PricingHandler serves the pricing endpoints.
type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// RegisterRoutes binds the handler methods to the gin engine.
func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/price", h.Price)
		api.POST("/grid", h.Grid)
		api.POST("/payoff", h.Payoff)
	}
}

// AxisRange describes one evenly spaced grid axis. Bounds are validated by
// the engine, not here: a vol axis legitimately starts at 0.
type AxisRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Steps int     `json:"steps"`
}

func (a AxisRange) span() []float64 {
	steps := a.Steps
	if steps <= 0 {
		steps = defaultSteps
	}
	return pricing.Linspace(a.Min, a.Max, steps)
}

// PriceRequest carries the five pricing inputs plus optional purchase prices
// for P&L. Maturity, rate and vol may legitimately be zero, so only spot and
// strike are required at the binding layer; the engine validates the rest.
type PriceRequest struct {
	Spot         float64  `json:"spot" binding:"required"`
	Strike       float64  `json:"strike" binding:"required"`
	Maturity     float64  `json:"maturity"`
	Rate         float64  `json:"rate"`
	Vol          float64  `json:"vol"`
	PurchaseCall *float64 `json:"purchase_call,omitempty"`
	PurchasePut  *float64 `json:"purchase_put,omitempty"`
}

// Price computes the scalar result (and P&L when purchase prices are given).
func (h *PricingHandler) Price(c *gin.Context) {
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := pricing.Compute(pricing.Inputs{
		Spot:     req.Spot,
		Strike:   req.Strike,
		Maturity: req.Maturity,
		Rate:     req.Rate,
		Vol:      req.Vol,
	})
	if err != nil {
		// invalid inputs only; degenerate T=0 / vol=0 never reach here
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body := gin.H{"result": res}
	if req.PurchaseCall != nil && req.PurchasePut != nil {
		pnl := pricing.ComputePnL(res,
			decimal.NewFromFloat(*req.PurchaseCall),
			decimal.NewFromFloat(*req.PurchasePut))
		body["pnl"] = pnl
	}
	c.JSON(http.StatusOK, body)
}

// GridRequest describes a heat-map evaluation: fixed strike, maturity and
// rate with spot and vol axes.
type GridRequest struct {
	Strike       float64   `json:"strike" binding:"required"`
	Maturity     float64   `json:"maturity"`
	Rate         float64   `json:"rate"`
	Spots        AxisRange `json:"spots" binding:"required"`
	Vols         AxisRange `json:"vols" binding:"required"`
	PurchaseCall *float64  `json:"purchase_call,omitempty"`
	PurchasePut  *float64  `json:"purchase_put,omitempty"`
}

// Grid evaluates the call/put price matrices over the requested axes.
func (h *PricingHandler) Grid(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := pricing.EvalGrid(req.Strike, req.Maturity, req.Rate, req.Spots.span(), req.Vols.span())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body := gin.H{"grid": g}
	if req.PurchaseCall != nil && req.PurchasePut != nil {
		pnlCall, pnlPut := g.PnL(*req.PurchaseCall, *req.PurchasePut)
		body["pnl_call"] = pnlCall
		body["pnl_put"] = pnlPut
	}
	c.JSON(http.StatusOK, body)
}

// PayoffRequest describes a payoff-diagram evaluation over a 1D spot range.
type PayoffRequest struct {
	Strike float64   `json:"strike" binding:"required"`
	Spots  AxisRange `json:"spots" binding:"required"`
}

// Payoff returns terminal payoff series for the call and put.
func (h *PricingHandler) Payoff(c *gin.Context) {
	var req PayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spots := req.Spots.span()
	callPay, putPay, err := pricing.PayoffSeries(req.Strike, spots)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"spots":       spots,
		"call_payoff": callPay,
		"put_payoff":  putPay,
	})
}

// NewRouter assembles the gin engine with all routes registered.
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	NewPricingHandler().RegisterRoutes(router)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Infof("HTTP routes registered")
	return router
}
