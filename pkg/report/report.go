// Package report builds portfolio reports from wallet snapshots.
//
// A report combines per-UTXO rows with per-tag and per-risk aggregates and
// a cumulative value series by creation date. Fiat values come from a
// price source when one is available; a failed lookup leaves the fiat
// field null rather than failing the report.
package report

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pricing"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// PriceSource supplies BTC prices for fiat valuation. *pricing.Client
// implements it; tests substitute a fixture.
type PriceSource interface {
	CurrentPrice(ctx context.Context, currency string) (float64, error)
	HistoricalPrice(ctx context.Context, date time.Time, currency string) (float64, error)
}

// Report is a point-in-time portfolio report for one wallet snapshot.
type Report struct {
	ID          string    `json:"id"`
	Wallet      string    `json:"wallet"`
	GeneratedAt time.Time `json:"generated_at"`
	Currency    string    `json:"currency"`

	TotalBTC  float64  `json:"total_btc"`
	TotalFiat *float64 `json:"total_fiat"` // null when no current price was available

	Rows        []Row         `json:"rows"`
	TagTotals   []Aggregate   `json:"tag_totals"`
	RiskTotals  []Aggregate   `json:"risk_totals"`
	ValueSeries []SeriesPoint `json:"value_series"`
}

// Row is one UTXO line in the report.
type Row struct {
	OutPoint  string           `json:"outpoint"`
	Address   string           `json:"address"`
	AmountBTC float64          `json:"amount_btc"`
	Tags      []string         `json:"tags,omitempty"`
	Risk      wallet.RiskLevel `json:"risk"`
	CreatedAt time.Time        `json:"created_at"`
	FiatValue *float64         `json:"fiat_value"` // null when no price was available
}

// Aggregate is a per-key total (tag or risk tier).
type Aggregate struct {
	Key       string  `json:"key"`
	AmountBTC float64 `json:"amount_btc"`
	Count     int     `json:"count"`
}

// SeriesPoint is one step of the cumulative portfolio value series.
type SeriesPoint struct {
	Date      time.Time `json:"date"`
	AmountBTC float64   `json:"amount_btc"` // cumulative
	FiatValue *float64  `json:"fiat_value"` // cumulative at that date's price, null when unpriced
}

// Build assembles a report for the snapshot.
//
// prices may be nil, in which case every fiat field is null. Price lookups
// are deduplicated per day, and failures (not-found, rate-limited, network)
// degrade to null values; only context cancellation aborts the build.
func Build(ctx context.Context, w *wallet.Wallet, prices PriceSource, currency string) (*Report, error) {
	if currency == "" {
		currency = pricing.DefaultCurrency
	}

	r := &Report{
		ID:          uuid.NewString(),
		Wallet:      w.Name,
		GeneratedAt: time.Now().UTC(),
		Currency:    currency,
		TotalBTC:    w.TotalBTC(),
	}

	lookup := newPriceMemo(prices, currency)

	if prices != nil {
		if price, err := prices.CurrentPrice(ctx, currency); err == nil {
			total := r.TotalBTC * price
			r.TotalFiat = &total
		} else if !pricing.IsAbsent(err) {
			return nil, err
		}
	}

	utxos := slices.Clone(w.UTXOs)
	slices.SortStableFunc(utxos, func(a, b wallet.UTXO) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	var cumulative float64
	for i := range utxos {
		u := &utxos[i]

		row := Row{
			OutPoint:  u.OutPoint(),
			Address:   u.Address,
			AmountBTC: u.BTC(),
			Tags:      slices.Clone(u.Tags),
			Risk:      u.Risk,
			CreatedAt: u.CreatedAt,
		}

		// Acquisition metadata wins over a price lookup when present.
		if u.Acquisition != nil && u.Acquisition.FiatValue > 0 && strings.EqualFold(u.Acquisition.Currency, currency) {
			v := u.Acquisition.FiatValue
			row.FiatValue = &v
		} else if price, ok, err := lookup.at(ctx, u.CreatedAt); err != nil {
			return nil, err
		} else if ok {
			v := row.AmountBTC * price
			row.FiatValue = &v
		}
		r.Rows = append(r.Rows, row)

		cumulative += row.AmountBTC
		point := SeriesPoint{Date: u.CreatedAt, AmountBTC: cumulative}
		if price, ok, err := lookup.at(ctx, u.CreatedAt); err != nil {
			return nil, err
		} else if ok {
			v := cumulative * price
			point.FiatValue = &v
		}
		r.ValueSeries = append(r.ValueSeries, point)
	}

	r.TagTotals = aggregate(w.ByTag())
	r.RiskTotals = riskAggregate(w.ByRisk())

	return r, nil
}

// priceMemo deduplicates historical lookups per UTC day.
type priceMemo struct {
	source   PriceSource
	currency string
	byDay    map[string]*float64 // nil entry = lookup failed, don't retry
}

func newPriceMemo(source PriceSource, currency string) *priceMemo {
	return &priceMemo{source: source, currency: currency, byDay: make(map[string]*float64)}
}

// at returns the price on the given date, with ok=false when no price is
// available. Only non-absent errors (cancellation, bad input) propagate.
func (m *priceMemo) at(ctx context.Context, date time.Time) (float64, bool, error) {
	if m.source == nil {
		return 0, false, nil
	}

	day := date.UTC().Format("2006-01-02")
	if cached, ok := m.byDay[day]; ok {
		if cached == nil {
			return 0, false, nil
		}
		return *cached, true, nil
	}

	price, err := m.source.HistoricalPrice(ctx, date, m.currency)
	if err != nil {
		if pricing.IsAbsent(err) {
			m.byDay[day] = nil
			return 0, false, nil
		}
		return 0, false, err
	}
	m.byDay[day] = &price
	return price, true, nil
}

func aggregate(groups map[string][]wallet.UTXO) []Aggregate {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]Aggregate, 0, len(keys))
	for _, k := range keys {
		agg := Aggregate{Key: k, Count: len(groups[k])}
		for i := range groups[k] {
			agg.AmountBTC += groups[k][i].BTC()
		}
		out = append(out, agg)
	}
	return out
}

func riskAggregate(groups map[wallet.RiskLevel][]wallet.UTXO) []Aggregate {
	out := make([]Aggregate, 0, len(groups))
	for _, level := range [...]wallet.RiskLevel{wallet.RiskLow, wallet.RiskMedium, wallet.RiskHigh} {
		utxos, ok := groups[level]
		if !ok {
			continue
		}
		agg := Aggregate{Key: level.String(), Count: len(utxos)}
		for i := range utxos {
			agg.AmountBTC += utxos[i].BTC()
		}
		out = append(out, agg)
	}
	return out
}
