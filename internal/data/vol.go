package data

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252.0

// ExtractCloses pulls the closing prices out of a bar series.
func ExtractCloses(bars []Bar) []float64 {
	out := make([]float64, 0, len(bars))
	for _, b := range bars {
		out = append(out, b.Close)
	}
	return out
}

// AnnualizedVolatility estimates annualized volatility as the sample
// standard deviation of daily log returns scaled by √252. With fewer than
// two closes there is nothing to estimate and a 30% default is returned.
func AnnualizedVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0.30
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return stat.StdDev(rets, nil) * math.Sqrt(tradingDaysPerYear)
}
