// Package wallet defines the UTXO snapshot model shared by the risk scorer,
// treemap engine, report builder, and stores.
//
// A [Wallet] is an immutable snapshot: state transitions are modeled as
// "new snapshot in, new derived view out" rather than in-place mutation,
// which keeps the scoring and layout functions pure and testable.
package wallet

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// SatoshisPerBTC is the number of satoshis in one bitcoin.
const SatoshisPerBTC = 100_000_000

// =============================================================================
// RiskLevel
// =============================================================================

// RiskLevel is the heuristic privacy-risk classification of a UTXO or
// candidate transaction. Levels are ordered: Low < Medium < High, so the
// scorer can escalate with a plain max.
type RiskLevel int

// Risk levels, in escalation order.
const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

var riskNames = [...]string{"low", "medium", "high"}

// String returns the lowercase label ("low", "medium", "high").
func (r RiskLevel) String() string {
	if r < RiskLow || r > RiskHigh {
		return fmt.Sprintf("RiskLevel(%d)", int(r))
	}
	return riskNames[r]
}

// ParseRiskLevel parses a risk label. The empty string parses as RiskLow so
// that imported records without an explicit label default to low.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(s) {
	case "", "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return RiskLow, errors.New(errors.ErrCodeInvalidInput, "invalid risk level: %q", s)
}

// MarshalJSON encodes the level as its lowercase label.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a lowercase label into the level.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRiskLevel(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// =============================================================================
// UTXO
// =============================================================================

// Acquisition holds optional acquisition metadata for a UTXO. It is carried
// through import/export and consumed by the report builder; the core scoring
// and layout functions ignore it.
type Acquisition struct {
	Date      time.Time `json:"date" bson:"date"`
	FiatValue float64   `json:"fiat_value,omitempty" bson:"fiat_value,omitempty"`
	Currency  string    `json:"currency,omitempty" bson:"currency,omitempty"`
	Auto      bool      `json:"auto,omitempty" bson:"auto,omitempty"` // auto-populated from price lookup
}

// UTXO is an unspent transaction output with annotation metadata.
// It is a value type: once imported and validated it is never mutated.
type UTXO struct {
	TxID      string    `json:"txid" bson:"txid"`
	Vout      uint32    `json:"vout" bson:"vout"`
	Address   string    `json:"address" bson:"address"`
	Amount    int64     `json:"amount_sat" bson:"amount_sat"` // satoshis
	Tags      []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Risk      RiskLevel `json:"risk" bson:"risk"`

	// Optional transfer context.
	Sender   string `json:"sender,omitempty" bson:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty" bson:"receiver,omitempty"`

	// Optional acquisition metadata (report-only).
	Acquisition *Acquisition `json:"acquisition,omitempty" bson:"acquisition,omitempty"`
}

// OutPoint returns the canonical "txid:vout" identifier of the output.
func (u *UTXO) OutPoint() string {
	return fmt.Sprintf("%s:%d", u.TxID, u.Vout)
}

// BTC returns the amount in bitcoin.
func (u *UTXO) BTC() float64 {
	return float64(u.Amount) / SatoshisPerBTC
}

// HasTag reports whether the UTXO carries tag. Matching is case-insensitive.
func (u *UTXO) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Validate checks the UTXO at the import boundary. The scorer and layout
// engine trust their inputs, so every record must pass through here first.
//
// Validate rejects:
//   - malformed txids and addresses
//   - negative or supply-exceeding amounts
//   - a zero creation timestamp
//   - empty, oversized, or duplicate tags
func (u *UTXO) Validate() error {
	if err := errors.ValidateTxID(u.TxID); err != nil {
		return err
	}
	if err := errors.ValidateAddress(u.Address); err != nil {
		return err
	}
	if err := errors.ValidateAmount(u.Amount); err != nil {
		return err
	}
	if u.CreatedAt.IsZero() {
		return errors.New(errors.ErrCodeInvalidUTXO, "%s: missing creation timestamp", u.OutPoint())
	}

	seen := make(map[string]bool, len(u.Tags))
	for _, tag := range u.Tags {
		if err := errors.ValidateTag(tag); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidUTXO, err, "%s: bad tag", u.OutPoint())
		}
		key := strings.ToLower(tag)
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidUTXO, "%s: duplicate tag %q", u.OutPoint(), tag)
		}
		seen[key] = true
	}

	return nil
}

// TagUnion returns the sorted, case-folded union of tags across utxos.
func TagUnion(utxos []UTXO) []string {
	set := make(map[string]bool)
	for i := range utxos {
		for _, t := range utxos[i].Tags {
			set[strings.ToLower(t)] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}
