// Package data provides market data providers used to seed pricing inputs:
// a live spot price for the underlying and daily bars for estimating
// annualized volatility.
package data

import (
	"os"
	"time"
)

// Bar simplified OHLC
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// Provider supplies market data
type Provider interface {
	Secondary() Provider
	GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error)
	GetSpotPrice(symbol string) (float64, error)
}

// GetDefaultProvider returns a Polygon-backed provider when POLYGON_API_KEY
// is set, otherwise the synthetic provider.
func GetDefaultProvider() Provider {
	if apiKey := os.Getenv("POLYGON_API_KEY"); apiKey != "" {
		return NewPolygonDataProvider(apiKey)
	}
	return NewSyntheticProvider()
}
