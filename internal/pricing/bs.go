// Package pricing implements closed-form Black-Scholes pricing for European
// call and put options, together with the standard sensitivities (Greeks).
//
// All functions are pure and stateless: every invocation is an independent
// computation over the five market inputs (spot, strike, maturity, rate,
// volatility). The package carries no caches and no process-wide state.
//
// Reported units:
//   - vega is per 1.00 change in volatility (annual, unscaled)
//   - theta is daily decay (annualized theta / 365)
//   - rho is per 1% change in the risk-free rate (annualized rho / 100)
package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal evaluates N(x) and φ(x). The distuv CDF is Erfc-based and
// saturates to 0 or 1 for large |x| instead of overflowing.
var stdNormal = distuv.UnitNormal

const (
	daysPerYear = 365.0
	pctScale    = 100.0
)

// Inputs are the five Black-Scholes market parameters.
type Inputs struct {
	Spot     float64 `json:"spot"`     // S, spot price of the underlying
	Strike   float64 `json:"strike"`   // K, strike price
	Maturity float64 `json:"maturity"` // T, time to expiry in years
	Rate     float64 `json:"rate"`     // r, annualized risk-free rate (may be negative)
	Vol      float64 `json:"vol"`      // sigma, annualized volatility
}

// Greeks holds the option sensitivities. Gamma and Vega do not depend on the
// option type; Delta, Theta and Rho are reported for call and put separately.
type Greeks struct {
	DeltaCall float64 `json:"delta_call"`
	DeltaPut  float64 `json:"delta_put"`
	Gamma     float64 `json:"gamma"`
	Vega      float64 `json:"vega"`       // per 1.00 vol change
	ThetaCall float64 `json:"theta_call"` // daily decay
	ThetaPut  float64 `json:"theta_put"`  // daily decay
	RhoCall   float64 `json:"rho_call"`   // per 1% rate change
	RhoPut    float64 `json:"rho_put"`    // per 1% rate change
}

// Result is a fully populated pricing output. A fresh Result is constructed
// on every call; partial results are never returned.
type Result struct {
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	Greeks
}

// Validate rejects financially invalid inputs: non-positive spot or strike,
// negative maturity or volatility, and non-finite values. The degenerate but
// valid cases T=0 and sigma=0 pass validation; Compute handles them with
// explicit limiting branches.
func (in Inputs) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"spot", in.Spot},
		{"strike", in.Strike},
		{"maturity", in.Maturity},
		{"rate", in.Rate},
		{"vol", in.Vol},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%s must be finite, got %v", p.name, p.v)
		}
	}
	if in.Spot <= 0 {
		return fmt.Errorf("spot must be positive, got %v", in.Spot)
	}
	if in.Strike <= 0 {
		return fmt.Errorf("strike must be positive, got %v", in.Strike)
	}
	if in.Maturity < 0 {
		return fmt.Errorf("maturity must be non-negative, got %v", in.Maturity)
	}
	if in.Vol < 0 {
		return fmt.Errorf("vol must be non-negative, got %v", in.Vol)
	}
	return nil
}

// D1D2 computes the d1 and d2 intermediates of the Black-Scholes formula.
//
// Precondition: T > 0 and sigma > 0. The formula is singular otherwise;
// callers branch to the degenerate cases before reaching here.
func D1D2(S, K, T, r, sigma float64) (d1, d2 float64) {
	sigSqrtT := sigma * math.Sqrt(T)
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / sigSqrtT
	d2 = d1 - sigSqrtT
	return d1, d2
}

// CallPrice returns the Black-Scholes price of a European call:
//
//	C = S·N(d1) − K·e^(−rT)·N(d2)
//
// T=0 degenerates to intrinsic value max(S−K, 0); sigma=0 to the discounted
// deterministic payoff max(S − K·e^(−rT), 0).
func CallPrice(S, K, T, r, sigma float64) (float64, error) {
	in := Inputs{Spot: S, Strike: K, Maturity: T, Rate: r, Vol: sigma}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if T == 0 {
		return math.Max(S-K, 0), nil
	}
	if sigma == 0 {
		return math.Max(S-K*math.Exp(-r*T), 0), nil
	}
	d1, d2 := D1D2(S, K, T, r, sigma)
	c := S*stdNormal.CDF(d1) - K*math.Exp(-r*T)*stdNormal.CDF(d2)
	return math.Max(c, 0), nil
}

// PutPrice returns the Black-Scholes price of a European put:
//
//	P = K·e^(−rT)·N(−d2) − S·N(−d1)
//
// with the same degenerate-case handling as CallPrice.
func PutPrice(S, K, T, r, sigma float64) (float64, error) {
	in := Inputs{Spot: S, Strike: K, Maturity: T, Rate: r, Vol: sigma}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if T == 0 {
		return math.Max(K-S, 0), nil
	}
	if sigma == 0 {
		return math.Max(K*math.Exp(-r*T)-S, 0), nil
	}
	d1, d2 := D1D2(S, K, T, r, sigma)
	p := K*math.Exp(-r*T)*stdNormal.CDF(-d2) - S*stdNormal.CDF(-d1)
	return math.Max(p, 0), nil
}

// ComputeGreeks returns the full set of sensitivities for the given inputs.
// It is a convenience wrapper around Compute.
func ComputeGreeks(in Inputs) (Greeks, error) {
	res, err := Compute(in)
	if err != nil {
		return Greeks{}, err
	}
	return res.Greeks, nil
}

// Compute is the single entry point of the pricing engine. It validates the
// inputs, evaluates d1/d2 once, and derives both prices and all Greeks from
// the shared intermediates.
func Compute(in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Maturity == 0 {
		return expiryResult(in), nil
	}
	if in.Vol == 0 {
		return zeroVolResult(in), nil
	}

	var (
		S, K, T = in.Spot, in.Strike, in.Maturity
		r, sig  = in.Rate, in.Vol
	)
	sqrtT := math.Sqrt(T)
	disc := math.Exp(-r * T)
	d1, d2 := D1D2(S, K, T, r, sig)

	nd1 := stdNormal.CDF(d1)
	nd2 := stdNormal.CDF(d2)
	nmd1 := stdNormal.CDF(-d1)
	nmd2 := stdNormal.CDF(-d2)
	pdfD1 := stdNormal.Prob(d1)

	decay := -S * pdfD1 * sig / (2 * sqrtT)

	return &Result{
		CallPrice: math.Max(S*nd1-K*disc*nd2, 0),
		PutPrice:  math.Max(K*disc*nmd2-S*nmd1, 0),
		Greeks: Greeks{
			DeltaCall: nd1,
			DeltaPut:  nd1 - 1,
			Gamma:     pdfD1 / (S * sig * sqrtT),
			Vega:      S * pdfD1 * sqrtT,
			ThetaCall: (decay - r*K*disc*nd2) / daysPerYear,
			ThetaPut:  (decay + r*K*disc*nmd2) / daysPerYear,
			RhoCall:   K * T * disc * nd2 / pctScale,
			RhoPut:    -K * T * disc * nmd2 / pctScale,
		},
	}, nil
}

// expiryResult handles T=0: the option is worth its intrinsic value and the
// Greeks collapse to their boundary values. At the singular point S=K the
// deltas are reported as 0.
func expiryResult(in Inputs) *Result {
	res := &Result{
		CallPrice: math.Max(in.Spot-in.Strike, 0),
		PutPrice:  math.Max(in.Strike-in.Spot, 0),
	}
	if in.Spot > in.Strike {
		res.DeltaCall = 1
	}
	if in.Spot < in.Strike {
		res.DeltaPut = -1
	}
	return res
}

// zeroVolResult handles sigma=0 with T>0: the payoff is deterministic and
// discounted at r. Gamma and vega vanish; delta, theta and rho take their
// sigma→0 limits, which switch on S against the discounted strike. At the
// boundary S = K·e^(−rT) all sensitivities are reported as 0.
func zeroVolResult(in Inputs) *Result {
	disc := math.Exp(-in.Rate * in.Maturity)
	fwdStrike := in.Strike * disc

	res := &Result{
		CallPrice: math.Max(in.Spot-fwdStrike, 0),
		PutPrice:  math.Max(fwdStrike-in.Spot, 0),
	}
	switch {
	case in.Spot > fwdStrike: // call finishes in the money with certainty
		res.DeltaCall = 1
		res.ThetaCall = -in.Rate * in.Strike * disc / daysPerYear
		res.RhoCall = in.Strike * in.Maturity * disc / pctScale
	case in.Spot < fwdStrike: // put finishes in the money with certainty
		res.DeltaPut = -1
		res.ThetaPut = in.Rate * in.Strike * disc / daysPerYear
		res.RhoPut = -in.Strike * in.Maturity * disc / pctScale
	}
	return res
}
