// Package report writes pricing output to files a spreadsheet or plotting
// layer can consume: the scalar result as JSON, heat-map grids and payoff
// series as CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/bs-pricer/internal/pricing"
)

// WriteJSON writes the scalar pricing result to result.json in outdir.
func WriteJSON(res *pricing.Result, outdir string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "result.json"), b, 0644)
}

// WriteGridCSV writes the call and put heat-map matrices to grid_call.csv and
// grid_put.csv. Rows are volatilities, columns are spot prices; the first
// column carries the row's volatility, the header row the spot axis.
func WriteGridCSV(g *pricing.Grid, outdir string) error {
	if err := writeMatrixCSV(filepath.Join(outdir, "grid_call.csv"), g.Vols, g.Spots, g.Call); err != nil {
		return err
	}
	return writeMatrixCSV(filepath.Join(outdir, "grid_put.csv"), g.Vols, g.Spots, g.Put)
}

// WritePnLGridCSV writes P&L-overlay matrices to pnl_call.csv and pnl_put.csv.
func WritePnLGridCSV(g *pricing.Grid, call, put [][]float64, outdir string) error {
	if err := writeMatrixCSV(filepath.Join(outdir, "pnl_call.csv"), g.Vols, g.Spots, call); err != nil {
		return err
	}
	return writeMatrixCSV(filepath.Join(outdir, "pnl_put.csv"), g.Vols, g.Spots, put)
}

// WritePayoffCSV writes the payoff series to payoff.csv with one row per
// expiration spot price.
func WritePayoffCSV(spots, callPayoffs, putPayoffs []float64, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "payoff.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"spot", "call_payoff", "put_payoff"}); err != nil {
		return err
	}
	for i, s := range spots {
		row := []string{
			fmt.Sprintf("%.4f", s),
			fmt.Sprintf("%.4f", callPayoffs[i]),
			fmt.Sprintf("%.4f", putPayoffs[i]),
		}
		_ = w.Write(row)
	}
	return nil
}

func writeMatrixCSV(path string, vols, spots []float64, m [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, len(spots)+1)
	header = append(header, "vol\\spot")
	for _, s := range spots {
		header = append(header, fmt.Sprintf("%.4f", s))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, vol := range vols {
		row := make([]string, 0, len(spots)+1)
		row = append(row, fmt.Sprintf("%.4f", vol))
		for _, v := range m[i] {
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		_ = w.Write(row)
	}
	return nil
}
