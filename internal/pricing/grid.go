package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid holds the element-wise prices over a volatility × spot matrix, the
// heat-map path of the tool. Call[i][j] and Put[i][j] are the prices at
// Vols[i] and Spots[j]; strike, maturity and rate are fixed across the grid.
type Grid struct {
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`

	Spots []float64 `json:"spots"`
	Vols  []float64 `json:"vols"`

	Call [][]float64 `json:"call"`
	Put  [][]float64 `json:"put"`
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// EvalGrid prices every (vol, spot) cell of the grid. Each cell is an
// independent Compute with the cell's spot and vol; quantities that do not
// vary per cell are hoisted: the discount factor and √T once per grid,
// ln(S/K) once per spot column, drift and σ√T once per vol row.
//
// Degenerate grids (T=0, or rows with vol=0) reuse the scalar engine's
// limiting branches so no cell ever sees NaN or Inf.
func EvalGrid(strike, maturity, rate float64, spots, vols []float64) (*Grid, error) {
	if len(spots) == 0 || len(vols) == 0 {
		return nil, fmt.Errorf("grid axes must be non-empty, got %d spots and %d vols", len(spots), len(vols))
	}
	if strike <= 0 {
		return nil, fmt.Errorf("strike must be positive, got %v", strike)
	}
	if maturity < 0 {
		return nil, fmt.Errorf("maturity must be non-negative, got %v", maturity)
	}
	for _, s := range spots {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("spot must be positive and finite, got %v", s)
		}
	}
	for _, v := range vols {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("vol must be non-negative and finite, got %v", v)
		}
	}

	g := &Grid{
		Strike:   strike,
		Maturity: maturity,
		Rate:     rate,
		Spots:    spots,
		Vols:     vols,
		Call:     make([][]float64, len(vols)),
		Put:      make([][]float64, len(vols)),
	}

	// per-grid constants
	disc := math.Exp(-rate * maturity)
	sqrtT := math.Sqrt(maturity)

	// per-column constants
	logSK := make([]float64, len(spots))
	for j, s := range spots {
		logSK[j] = math.Log(s / strike)
	}

	for i, vol := range vols {
		callRow := make([]float64, len(spots))
		putRow := make([]float64, len(spots))

		if maturity == 0 || vol == 0 {
			// singular row, delegate to the scalar branches
			for j, s := range spots {
				res, err := Compute(Inputs{Spot: s, Strike: strike, Maturity: maturity, Rate: rate, Vol: vol})
				if err != nil {
					return nil, err
				}
				callRow[j] = res.CallPrice
				putRow[j] = res.PutPrice
			}
			g.Call[i] = callRow
			g.Put[i] = putRow
			continue
		}

		// per-row constants
		sigSqrtT := vol * sqrtT
		drift := (rate + 0.5*vol*vol) * maturity

		for j, s := range spots {
			d1 := (logSK[j] + drift) / sigSqrtT
			d2 := d1 - sigSqrtT
			callRow[j] = math.Max(s*stdNormal.CDF(d1)-strike*disc*stdNormal.CDF(d2), 0)
			putRow[j] = math.Max(strike*disc*stdNormal.CDF(-d2)-s*stdNormal.CDF(-d1), 0)
		}
		g.Call[i] = callRow
		g.Put[i] = putRow
	}
	return g, nil
}

// PayoffSeries returns the terminal payoff of the call and put over a 1D
// range of expiration spot prices, for payoff-diagram rendering.
func PayoffSeries(strike float64, spots []float64) (callPayoffs, putPayoffs []float64, err error) {
	if strike <= 0 {
		return nil, nil, fmt.Errorf("strike must be positive, got %v", strike)
	}
	if len(spots) == 0 {
		return nil, nil, fmt.Errorf("spot range must be non-empty")
	}
	callPayoffs = make([]float64, len(spots))
	putPayoffs = make([]float64, len(spots))
	for i, s := range spots {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, nil, fmt.Errorf("spot must be positive and finite, got %v", s)
		}
		callPayoffs[i] = math.Max(s-strike, 0)
		putPayoffs[i] = math.Max(strike-s, 0)
	}
	return callPayoffs, putPayoffs, nil
}
