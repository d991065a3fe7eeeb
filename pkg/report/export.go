package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode report")
	}
	return nil
}

// WriteCSV writes the per-UTXO rows as CSV. Aggregates and the value
// series are JSON-only; CSV stays a flat row-per-UTXO table.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"outpoint", "address", "amount_btc", "tags", "risk", "created_at", "fiat_value_" + strings.ToLower(r.Currency)}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write csv header")
	}

	for _, row := range r.Rows {
		fiat := ""
		if row.FiatValue != nil {
			fiat = strconv.FormatFloat(*row.FiatValue, 'f', 2, 64)
		}
		record := []string{
			row.OutPoint,
			row.Address,
			strconv.FormatFloat(row.AmountBTC, 'f', 8, 64),
			strings.Join(row.Tags, ";"),
			row.Risk.String(),
			row.CreatedAt.UTC().Format(time.RFC3339),
			fiat,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to write csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to flush csv")
	}
	return nil
}
