package data

import (
	"math"
	"math/rand"
	"time"
)

// synthDataProvider implements Provider generating synthetic data, for
// offline runs and tests.
type synthDataProvider struct {
	secondary Provider
}

func NewSyntheticProvider() Provider { return &synthDataProvider{} }

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetDailyBars(symbol string, fromDate, toDate time.Time) ([]Bar, error) {
	cur := fromDate
	price := 100.0 + float64(rand.Intn(200))
	var out []Bar
	for !cur.After(toDate) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			delta := rand.NormFloat64() * 0.01 * price
			open := price
			close := price + delta
			high := math.Max(open, close) + math.Abs(rand.NormFloat64()*0.3)
			low := math.Min(open, close) - math.Abs(rand.NormFloat64()*0.3)
			out = append(out, Bar{Date: cur, Open: open, High: high, Low: low, Close: close, Vol: float64(1000 + rand.Intn(5000))})
			price = close
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}

func (synthDataProv *synthDataProvider) GetSpotPrice(symbol string) (float64, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetSpotPrice(symbol)
	}
	return 100.0 + math.Abs(rand.NormFloat64()*50), nil
}
