package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/contactkeval/bs-pricer/internal/data"
	"github.com/contactkeval/bs-pricer/internal/logger"
	"github.com/contactkeval/bs-pricer/internal/pricing"
	"github.com/contactkeval/bs-pricer/internal/report"
	"github.com/contactkeval/bs-pricer/internal/server"
	"github.com/shopspring/decimal"
)

// AxisSpec describes an evenly spaced range for grid and payoff axes.
type AxisSpec struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Steps int     `json:"steps,omitempty"`
}

// GridSpec describes the heat-map axes.
type GridSpec struct {
	Spots AxisSpec `json:"spots"`
	Vols  AxisSpec `json:"vols"`
}

// Config is the JSON scenario file.
type Config struct {
	Inputs       pricing.Inputs `json:"inputs"`
	Symbol       string         `json:"symbol,omitempty"`        // seed spot and vol from market data
	Grid         *GridSpec      `json:"grid,omitempty"`          // heat-map axes, defaulted around the inputs
	Payoff       *AxisSpec      `json:"payoff,omitempty"`        // payoff spot range, defaulted around the spot
	PurchaseCall *float64       `json:"purchase_call,omitempty"` // enables P&L output
	PurchasePut  *float64       `json:"purchase_put,omitempty"`
	OutputDir    string         `json:"output_dir,omitempty"`
	Verbosity    int            `json:"verbosity,omitempty"` // 0=errors,1=info,2=debug
}

func main() {
	configPath := flag.String("config", "", "path to JSON scenario config")
	serve := flag.Bool("serve", false, "run as REST server")
	port := flag.String("port", ":8080", "REST server listen address")
	spot := flag.Float64("spot", 100.0, "spot price of the underlying")
	strike := flag.Float64("strike", 100.0, "strike price")
	maturity := flag.Float64("maturity", 1.0, "time to maturity in years")
	rate := flag.Float64("rate", 0.05, "annualized risk-free rate")
	vol := flag.Float64("vol", 0.20, "annualized volatility")
	symbol := flag.String("symbol", "", "seed spot and vol from market data for this ticker")
	outDir := flag.String("out", "./out", "output directory for reports")
	verbosity := flag.Int("v", 1, "verbosity: 0=errors,1=info,2=debug")
	flag.Parse()

	cfg := Config{
		Inputs:    pricing.Inputs{Spot: *spot, Strike: *strike, Maturity: *maturity, Rate: *rate, Vol: *vol},
		OutputDir: *outDir,
		Verbosity: *verbosity,
	}
	if *configPath != "" {
		cfgData, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("reading config: %v", err)
		}
		if err := json.Unmarshal(cfgData, &cfg); err != nil {
			log.Fatalf("invalid config: %v", err)
		}
		// explicitly set flags win over the config file
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "spot":
				cfg.Inputs.Spot = *spot
			case "strike":
				cfg.Inputs.Strike = *strike
			case "maturity":
				cfg.Inputs.Maturity = *maturity
			case "rate":
				cfg.Inputs.Rate = *rate
			case "vol":
				cfg.Inputs.Vol = *vol
			case "symbol":
				cfg.Symbol = *symbol
			case "out":
				cfg.OutputDir = *outDir
			case "v":
				cfg.Verbosity = *verbosity
			}
		})
	} else if *symbol != "" {
		cfg.Symbol = *symbol
	}
	logger.SetVerbosity(cfg.Verbosity)

	if cfg.Symbol != "" {
		seedFromMarket(&cfg)
	}

	if *serve {
		logger.Infof("starting REST server on %s", *port)
		if err := server.NewRouter().Run(*port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
		return
	}

	start := time.Now()
	res, err := pricing.Compute(cfg.Inputs)
	if err != nil {
		log.Fatalf("pricing failed: %v", err)
	}
	printResult(cfg, res)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		logger.Errorf("could not create output dir %s: %v", cfg.OutputDir, err)
		return
	}
	writeReports(cfg, res)
	logger.Infof("finished in %v, reports in %s", time.Since(start), cfg.OutputDir)
}

// seedFromMarket replaces the spot input with a live quote and the vol input
// with annualized historical volatility over the trailing year.
func seedFromMarket(cfg *Config) {
	prov := data.GetDefaultProvider()
	if s, err := prov.GetSpotPrice(cfg.Symbol); err != nil {
		logger.Errorf("spot lookup for %s failed, keeping configured spot: %v", cfg.Symbol, err)
	} else {
		cfg.Inputs.Spot = s
		logger.Infof("%s spot = %.2f", cfg.Symbol, s)
	}
	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)
	bars, err := prov.GetDailyBars(cfg.Symbol, from, to)
	if err != nil || len(bars) == 0 {
		logger.Errorf("bars for %s unavailable, keeping configured vol: %v", cfg.Symbol, err)
		return
	}
	hv := data.AnnualizedVolatility(data.ExtractCloses(bars))
	cfg.Inputs.Vol = hv
	logger.Infof("%s hist vol = %.2f%%", cfg.Symbol, hv*100)
}

func printResult(cfg Config, res *pricing.Result) {
	in := cfg.Inputs
	fmt.Printf("S=%.2f K=%.2f T=%.4fy r=%.4f vol=%.4f\n", in.Spot, in.Strike, in.Maturity, in.Rate, in.Vol)
	fmt.Printf("call=%.4f put=%.4f\n", res.CallPrice, res.PutPrice)
	fmt.Printf("delta(call/put)=%.4f/%.4f gamma=%.6f vega=%.4f\n",
		res.DeltaCall, res.DeltaPut, res.Gamma, res.Vega)
	fmt.Printf("theta(call/put)=%.4f/%.4f per day, rho(call/put)=%.4f/%.4f per 1%%\n",
		res.ThetaCall, res.ThetaPut, res.RhoCall, res.RhoPut)
	if cfg.PurchaseCall != nil && cfg.PurchasePut != nil {
		pnl := pricing.ComputePnL(res,
			decimal.NewFromFloat(*cfg.PurchaseCall),
			decimal.NewFromFloat(*cfg.PurchasePut))
		fmt.Printf("pnl(call/put)=%s/%s\n", pnl.Call.StringFixed(2), pnl.Put.StringFixed(2))
	}
}

func writeReports(cfg Config, res *pricing.Result) {
	if err := report.WriteJSON(res, cfg.OutputDir); err != nil {
		logger.Errorf("writing result.json: %v", err)
	}

	gs := cfg.Grid
	if gs == nil {
		gs = defaultGridSpec(cfg.Inputs)
	}
	g, err := pricing.EvalGrid(cfg.Inputs.Strike, cfg.Inputs.Maturity, cfg.Inputs.Rate,
		axisValues(gs.Spots), axisValues(gs.Vols))
	if err != nil {
		logger.Errorf("grid evaluation: %v", err)
	} else {
		if err := report.WriteGridCSV(g, cfg.OutputDir); err != nil {
			logger.Errorf("writing grid CSVs: %v", err)
		}
		if cfg.PurchaseCall != nil && cfg.PurchasePut != nil {
			pnlCall, pnlPut := g.PnL(*cfg.PurchaseCall, *cfg.PurchasePut)
			if err := report.WritePnLGridCSV(g, pnlCall, pnlPut, cfg.OutputDir); err != nil {
				logger.Errorf("writing P&L CSVs: %v", err)
			}
		}
	}

	ps := cfg.Payoff
	if ps == nil {
		ps = &AxisSpec{Min: cfg.Inputs.Spot * 0.5, Max: cfg.Inputs.Spot * 1.5, Steps: 100}
	}
	spots := axisValues(*ps)
	callPay, putPay, err := pricing.PayoffSeries(cfg.Inputs.Strike, spots)
	if err != nil {
		logger.Errorf("payoff evaluation: %v", err)
		return
	}
	if err := report.WritePayoffCSV(spots, callPay, putPay, cfg.OutputDir); err != nil {
		logger.Errorf("writing payoff.csv: %v", err)
	}
}

// defaultGridSpec mirrors the interactive tool's defaults: vol ±0.30 around
// the input (floored at 5%), spot ±30%, 20 steps per axis.
func defaultGridSpec(in pricing.Inputs) *GridSpec {
	return &GridSpec{
		Spots: AxisSpec{Min: math.Max(1, in.Spot*0.7), Max: in.Spot * 1.3, Steps: 20},
		Vols:  AxisSpec{Min: math.Max(0.05, in.Vol-0.3), Max: in.Vol + 0.3, Steps: 20},
	}
}

func axisValues(a AxisSpec) []float64 {
	steps := a.Steps
	if steps <= 0 {
		steps = 20
	}
	return pricing.Linspace(a.Min, a.Max, steps)
}
