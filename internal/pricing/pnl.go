package pricing

import "github.com/shopspring/decimal"

// PnL is the mark-to-model profit and loss against user-entered purchase
// prices: theoretical price minus what was paid. Monetary values are kept as
// decimals so the downstream subtraction is exact to the cent.
type PnL struct {
	Call decimal.Decimal `json:"call"`
	Put  decimal.Decimal `json:"put"`
}

// ComputePnL derives P&L from a pricing result and the purchase prices of the
// call and put legs. It is a pure downstream subtraction, not part of the
// pricing contract itself.
func ComputePnL(res *Result, purchaseCall, purchasePut decimal.Decimal) PnL {
	return PnL{
		Call: decimal.NewFromFloat(res.CallPrice).Sub(purchaseCall),
		Put:  decimal.NewFromFloat(res.PutPrice).Sub(purchasePut),
	}
}

// PnL applies the purchase-price subtraction element-wise over the grid,
// producing the matrices behind P&L-colored heat maps.
func (g *Grid) PnL(purchaseCall, purchasePut float64) (call, put [][]float64) {
	call = make([][]float64, len(g.Call))
	put = make([][]float64, len(g.Put))
	for i := range g.Call {
		call[i] = make([]float64, len(g.Call[i]))
		put[i] = make([]float64, len(g.Put[i]))
		for j := range g.Call[i] {
			call[i][j] = g.Call[i][j] - purchaseCall
			put[i][j] = g.Put[i][j] - purchasePut
		}
	}
	return call, put
}
