package pricing

import (
	"math"
	"strings"
	"testing"
)

// Standard textbook reference: S=100, K=100, T=1, r=5%, vol=20%.
func TestTextbookScenario(t *testing.T) {
	res, err := Compute(Inputs{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.CallPrice-10.4506) > 1e-3 {
		t.Errorf("call price = %f, want ~10.4506", res.CallPrice)
	}
	if math.Abs(res.PutPrice-5.5735) > 1e-3 {
		t.Errorf("put price = %f, want ~5.5735", res.PutPrice)
	}
	if math.Abs(res.DeltaCall-0.6368) > 1e-4 {
		t.Errorf("call delta = %f, want ~0.6368", res.DeltaCall)
	}
	if math.Abs(res.Gamma-0.018762) > 1e-5 {
		t.Errorf("gamma = %f, want ~0.018762", res.Gamma)
	}
	if math.Abs(res.Vega-37.524) > 1e-2 {
		t.Errorf("vega = %f, want ~37.524 (per 1.00 vol)", res.Vega)
	}
}

func TestPutCallParity(t *testing.T) {
	cases := []Inputs{
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.20},
		{Spot: 95, Strike: 110, Maturity: 0.25, Rate: 0.03, Vol: 0.45},
		{Spot: 250, Strike: 180, Maturity: 2.5, Rate: -0.01, Vol: 0.10},
		{Spot: 12.5, Strike: 10, Maturity: 0.04, Rate: 0.08, Vol: 0.90},
		{Spot: 50, Strike: 50, Maturity: 1, Rate: 0, Vol: 0},
	}
	for _, in := range cases {
		res, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute(%+v): %v", in, err)
		}
		lhs := res.CallPrice - res.PutPrice
		rhs := in.Spot - in.Strike*math.Exp(-in.Rate*in.Maturity)
		tol := 1e-9 * math.Max(1, in.Spot)
		if math.Abs(lhs-rhs) > tol {
			t.Errorf("parity violated for %+v: C-P=%g, S-Ke^(-rT)=%g", in, lhs, rhs)
		}
	}
}

func TestMonotonicity(t *testing.T) {
	base := Inputs{Strike: 100, Maturity: 0.5, Rate: 0.04, Vol: 0.30}

	prevCall, prevPut := math.Inf(-1), math.Inf(1)
	for s := 40.0; s <= 200; s += 5 {
		in := base
		in.Spot = s
		res, err := Compute(in)
		if err != nil {
			t.Fatal(err)
		}
		if res.CallPrice < prevCall-1e-12 {
			t.Fatalf("call not non-decreasing in spot at S=%v", s)
		}
		if res.PutPrice > prevPut+1e-12 {
			t.Fatalf("put not non-increasing in spot at S=%v", s)
		}
		prevCall, prevPut = res.CallPrice, res.PutPrice
	}

	prevCall, prevPut = math.Inf(-1), math.Inf(-1)
	for v := 0.05; v <= 1.5; v += 0.05 {
		in := base
		in.Spot = 100
		in.Vol = v
		res, err := Compute(in)
		if err != nil {
			t.Fatal(err)
		}
		if res.CallPrice < prevCall-1e-12 || res.PutPrice < prevPut-1e-12 {
			t.Fatalf("prices not non-decreasing in vol at vol=%v", v)
		}
		prevCall, prevPut = res.CallPrice, res.PutPrice
	}
}

func TestPriceBounds(t *testing.T) {
	cases := []Inputs{
		{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.2},
		{Spot: 30, Strike: 100, Maturity: 5, Rate: 0.02, Vol: 1.2},
		{Spot: 500, Strike: 100, Maturity: 0.1, Rate: 0.07, Vol: 0.05},
	}
	for _, in := range cases {
		res, err := Compute(in)
		if err != nil {
			t.Fatal(err)
		}
		disc := in.Strike * math.Exp(-in.Rate*in.Maturity)
		if res.CallPrice < 0 || res.CallPrice > in.Spot {
			t.Errorf("call %g outside [0, S=%g] for %+v", res.CallPrice, in.Spot, in)
		}
		if res.PutPrice < 0 || res.PutPrice > disc {
			t.Errorf("put %g outside [0, Ke^(-rT)=%g] for %+v", res.PutPrice, disc, in)
		}
		if res.CallPrice < math.Max(0, in.Spot-disc)-1e-9 {
			t.Errorf("call %g below no-arbitrage bound for %+v", res.CallPrice, in)
		}
		if res.PutPrice < math.Max(0, disc-in.Spot)-1e-9 {
			t.Errorf("put %g below no-arbitrage bound for %+v", res.PutPrice, in)
		}
	}
}

// When S equals the discounted strike, call delta is N(vol*sqrt(T)/2).
func TestATMForwardDelta(t *testing.T) {
	const (
		K, T, r, vol = 100.0, 0.75, 0.06, 0.35
	)
	S := K * math.Exp(-r*T)
	res, err := Compute(Inputs{Spot: S, Strike: K, Maturity: T, Rate: r, Vol: vol})
	if err != nil {
		t.Fatal(err)
	}
	want := stdNormal.CDF(vol * math.Sqrt(T) / 2)
	if math.Abs(res.DeltaCall-want) > 1e-9 {
		t.Errorf("ATM-forward call delta = %g, want %g", res.DeltaCall, want)
	}
}

func TestExpiryIntrinsic(t *testing.T) {
	res, err := Compute(Inputs{Spot: 100, Strike: 100, Maturity: 0, Rate: 0.05, Vol: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if res.CallPrice != 0 || res.PutPrice != 0 {
		t.Errorf("ATM at expiry: call=%g put=%g, want 0/0", res.CallPrice, res.PutPrice)
	}
	if res.Gamma != 0 || res.Vega != 0 || res.DeltaCall != 0 || res.DeltaPut != 0 {
		t.Errorf("greeks at singular point S=K should be 0, got %+v", res.Greeks)
	}

	res, err = Compute(Inputs{Spot: 120, Strike: 100, Maturity: 0, Rate: 0.05, Vol: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if res.CallPrice != 20 || res.PutPrice != 0 {
		t.Errorf("ITM call at expiry: call=%g put=%g, want 20/0", res.CallPrice, res.PutPrice)
	}
	if res.DeltaCall != 1 || res.DeltaPut != 0 {
		t.Errorf("ITM call at expiry: deltas=%g/%g, want 1/0", res.DeltaCall, res.DeltaPut)
	}
}

// Prices approach the intrinsic branch continuously as T shrinks.
func TestExpiryContinuity(t *testing.T) {
	for _, spot := range []float64{80.0, 100.0, 125.0} {
		small, err := Compute(Inputs{Spot: spot, Strike: 100, Maturity: 1e-8, Rate: 0.05, Vol: 0.2})
		if err != nil {
			t.Fatal(err)
		}
		wantCall := math.Max(spot-100, 0)
		wantPut := math.Max(100-spot, 0)
		// residual time value at T=1e-8 is below a cent
		if math.Abs(small.CallPrice-wantCall) > 1e-2 {
			t.Errorf("S=%v: call(T=1e-8)=%g, intrinsic=%g", spot, small.CallPrice, wantCall)
		}
		if math.Abs(small.PutPrice-wantPut) > 1e-2 {
			t.Errorf("S=%v: put(T=1e-8)=%g, intrinsic=%g", spot, small.PutPrice, wantPut)
		}
	}
}

func TestZeroVol(t *testing.T) {
	in := Inputs{Spot: 110, Strike: 100, Maturity: 2, Rate: 0.05, Vol: 0}
	res, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	disc := 100 * math.Exp(-0.05*2)
	if math.Abs(res.CallPrice-(110-disc)) > 1e-12 {
		t.Errorf("zero-vol call = %g, want %g", res.CallPrice, 110-disc)
	}
	if res.PutPrice != 0 {
		t.Errorf("zero-vol put = %g, want 0", res.PutPrice)
	}
	if res.Gamma != 0 || res.Vega != 0 {
		t.Errorf("zero-vol gamma/vega = %g/%g, want 0/0", res.Gamma, res.Vega)
	}
	if res.DeltaCall != 1 {
		t.Errorf("certain ITM call delta = %g, want 1", res.DeltaCall)
	}
}

func TestInvalidInputsRejected(t *testing.T) {
	cases := []struct {
		name string
		in   Inputs
		want string
	}{
		{"zero spot", Inputs{Spot: 0, Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.2}, "spot"},
		{"negative strike", Inputs{Spot: 100, Strike: -5, Maturity: 1, Rate: 0.05, Vol: 0.2}, "strike"},
		{"negative maturity", Inputs{Spot: 100, Strike: 100, Maturity: -1, Rate: 0.05, Vol: 0.2}, "maturity"},
		{"negative vol", Inputs{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.05, Vol: -0.1}, "vol"},
		{"nan spot", Inputs{Spot: math.NaN(), Strike: 100, Maturity: 1, Rate: 0.05, Vol: 0.2}, "spot"},
		{"infinite rate", Inputs{Spot: 100, Strike: 100, Maturity: 1, Rate: math.Inf(1), Vol: 0.2}, "rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compute(tc.in); err == nil {
				t.Fatalf("expected rejection for %+v", tc.in)
			} else if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not name parameter %q", err, tc.want)
			}
			if _, err := CallPrice(tc.in.Spot, tc.in.Strike, tc.in.Maturity, tc.in.Rate, tc.in.Vol); err == nil {
				t.Fatalf("CallPrice accepted %+v", tc.in)
			}
			if _, err := PutPrice(tc.in.Spot, tc.in.Strike, tc.in.Maturity, tc.in.Rate, tc.in.Vol); err == nil {
				t.Fatalf("PutPrice accepted %+v", tc.in)
			}
		})
	}
}

// Closed-form greeks must agree with central finite differences.
func TestGreeksAgainstFiniteDifferences(t *testing.T) {
	in := Inputs{Spot: 105, Strike: 100, Maturity: 0.8, Rate: 0.04, Vol: 0.35}
	res, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}

	callAt := func(mod func(*Inputs)) float64 {
		shifted := in
		mod(&shifted)
		r, err := Compute(shifted)
		if err != nil {
			t.Fatal(err)
		}
		return r.CallPrice
	}
	putAt := func(mod func(*Inputs)) float64 {
		shifted := in
		mod(&shifted)
		r, err := Compute(shifted)
		if err != nil {
			t.Fatal(err)
		}
		return r.PutPrice
	}
	deltaAt := func(s float64) float64 {
		shifted := in
		shifted.Spot = s
		r, err := Compute(shifted)
		if err != nil {
			t.Fatal(err)
		}
		return r.DeltaCall
	}

	const h = 1e-4

	fdDeltaCall := (callAt(func(i *Inputs) { i.Spot += h }) - callAt(func(i *Inputs) { i.Spot -= h })) / (2 * h)
	if math.Abs(fdDeltaCall-res.DeltaCall) > 1e-5 {
		t.Errorf("call delta: fd=%g closed=%g", fdDeltaCall, res.DeltaCall)
	}

	fdDeltaPut := (putAt(func(i *Inputs) { i.Spot += h }) - putAt(func(i *Inputs) { i.Spot -= h })) / (2 * h)
	if math.Abs(fdDeltaPut-res.DeltaPut) > 1e-5 {
		t.Errorf("put delta: fd=%g closed=%g", fdDeltaPut, res.DeltaPut)
	}

	fdGamma := (deltaAt(in.Spot+h) - deltaAt(in.Spot-h)) / (2 * h)
	if math.Abs(fdGamma-res.Gamma) > 1e-5 {
		t.Errorf("gamma: fd=%g closed=%g", fdGamma, res.Gamma)
	}

	// vega is per 1.00 vol, no rescale needed
	fdVega := (callAt(func(i *Inputs) { i.Vol += h }) - callAt(func(i *Inputs) { i.Vol -= h })) / (2 * h)
	if math.Abs(fdVega-res.Vega) > 1e-3 {
		t.Errorf("vega: fd=%g closed=%g", fdVega, res.Vega)
	}

	// theta is daily decay: negated derivative over T, scaled to days
	fdThetaCall := -(callAt(func(i *Inputs) { i.Maturity += h }) - callAt(func(i *Inputs) { i.Maturity -= h })) / (2 * h) / 365
	if math.Abs(fdThetaCall-res.ThetaCall) > 1e-6 {
		t.Errorf("call theta: fd=%g closed=%g", fdThetaCall, res.ThetaCall)
	}
	fdThetaPut := -(putAt(func(i *Inputs) { i.Maturity += h }) - putAt(func(i *Inputs) { i.Maturity -= h })) / (2 * h) / 365
	if math.Abs(fdThetaPut-res.ThetaPut) > 1e-6 {
		t.Errorf("put theta: fd=%g closed=%g", fdThetaPut, res.ThetaPut)
	}

	// rho is per 1% rate move
	fdRhoCall := (callAt(func(i *Inputs) { i.Rate += h }) - callAt(func(i *Inputs) { i.Rate -= h })) / (2 * h) / 100
	if math.Abs(fdRhoCall-res.RhoCall) > 1e-5 {
		t.Errorf("call rho: fd=%g closed=%g", fdRhoCall, res.RhoCall)
	}
	fdRhoPut := (putAt(func(i *Inputs) { i.Rate += h }) - putAt(func(i *Inputs) { i.Rate -= h })) / (2 * h) / 100
	if math.Abs(fdRhoPut-res.RhoPut) > 1e-5 {
		t.Errorf("put rho: fd=%g closed=%g", fdRhoPut, res.RhoPut)
	}
}

// Extreme but valid parameters saturate instead of producing NaN/Inf.
func TestExtremeInputsStayFinite(t *testing.T) {
	cases := []Inputs{
		{Spot: 100, Strike: 100, Maturity: 300, Rate: 0.05, Vol: 5},
		{Spot: 1e6, Strike: 1e-3, Maturity: 10, Rate: 0.2, Vol: 3},
		{Spot: 1e-3, Strike: 1e6, Maturity: 10, Rate: -0.05, Vol: 0.01},
	}
	for _, in := range cases {
		res, err := Compute(in)
		if err != nil {
			t.Fatalf("Compute(%+v): %v", in, err)
		}
		for name, v := range map[string]float64{
			"call": res.CallPrice, "put": res.PutPrice,
			"delta_call": res.DeltaCall, "gamma": res.Gamma,
			"vega": res.Vega, "theta_call": res.ThetaCall, "rho_put": res.RhoPut,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s is not finite (%g) for %+v", name, v, in)
			}
		}
	}
}

func TestD1D2(t *testing.T) {
	d1, d2 := D1D2(100, 100, 1, 0.05, 0.2)
	if math.Abs(d1-0.35) > 1e-12 {
		t.Errorf("d1 = %g, want 0.35", d1)
	}
	if math.Abs(d2-0.15) > 1e-12 {
		t.Errorf("d2 = %g, want 0.15", d2)
	}
}
