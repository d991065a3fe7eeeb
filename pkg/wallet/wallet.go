package wallet

import (
	"slices"
	"strings"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// Wallet is an immutable snapshot of a UTXO set.
//
// Construct wallets through [New] (or the import functions) so that every
// UTXO has passed boundary validation and outpoints are unique. Derived
// views (totals, groupings, selections) allocate fresh data and never
// mutate the snapshot.
type Wallet struct {
	Name  string `json:"name" bson:"name"`
	UTXOs []UTXO `json:"utxos" bson:"utxos"`
}

// New validates utxos and returns a wallet snapshot.
// It rejects invalid records and duplicate outpoints.
func New(name string, utxos []UTXO) (*Wallet, error) {
	if err := errors.ValidateWalletName(name); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(utxos))
	for i := range utxos {
		if err := utxos[i].Validate(); err != nil {
			return nil, err
		}
		op := utxos[i].OutPoint()
		if seen[op] {
			return nil, errors.New(errors.ErrCodeInvalidWallet, "duplicate outpoint %s", op)
		}
		seen[op] = true
	}

	return &Wallet{Name: name, UTXOs: slices.Clone(utxos)}, nil
}

// TotalSats returns the total value of the snapshot in satoshis.
func (w *Wallet) TotalSats() int64 {
	var total int64
	for i := range w.UTXOs {
		total += w.UTXOs[i].Amount
	}
	return total
}

// TotalBTC returns the total value of the snapshot in bitcoin.
func (w *Wallet) TotalBTC() float64 {
	return float64(w.TotalSats()) / SatoshisPerBTC
}

// Tags returns the sorted union of tags across all UTXOs.
func (w *Wallet) Tags() []string {
	return TagUnion(w.UTXOs)
}

// Find returns the UTXO with the given "txid:vout" outpoint, or false.
func (w *Wallet) Find(outpoint string) (UTXO, bool) {
	for i := range w.UTXOs {
		if w.UTXOs[i].OutPoint() == outpoint {
			return w.UTXOs[i], true
		}
	}
	return UTXO{}, false
}

// Select resolves a list of outpoints into UTXOs, preserving order.
// Unknown outpoints are an error: a simulation over outputs the wallet does
// not own is meaningless.
func (w *Wallet) Select(outpoints []string) ([]UTXO, error) {
	selected := make([]UTXO, 0, len(outpoints))
	for _, op := range outpoints {
		u, ok := w.Find(op)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "outpoint %s not in wallet %q", op, w.Name)
		}
		selected = append(selected, u)
	}
	return selected, nil
}

// FilterByTag returns the UTXOs carrying tag (case-insensitive).
func (w *Wallet) FilterByTag(tag string) []UTXO {
	var out []UTXO
	for i := range w.UTXOs {
		if w.UTXOs[i].HasTag(tag) {
			out = append(out, w.UTXOs[i])
		}
	}
	return out
}

// ByRisk groups UTXOs by their risk level.
func (w *Wallet) ByRisk() map[RiskLevel][]UTXO {
	groups := make(map[RiskLevel][]UTXO)
	for i := range w.UTXOs {
		groups[w.UTXOs[i].Risk] = append(groups[w.UTXOs[i].Risk], w.UTXOs[i])
	}
	return groups
}

// ByTag groups UTXOs by their first tag, using "untagged" for UTXOs with no
// tags. Tag keys are case-folded.
func (w *Wallet) ByTag() map[string][]UTXO {
	groups := make(map[string][]UTXO)
	for i := range w.UTXOs {
		key := "untagged"
		if len(w.UTXOs[i].Tags) > 0 {
			key = strings.ToLower(w.UTXOs[i].Tags[0])
		}
		groups[key] = append(groups[key], w.UTXOs[i])
	}
	return groups
}
