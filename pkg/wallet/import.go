package wallet

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// ReadJSON decodes a wallet snapshot from r.
//
// The input must be a JSON object with a "name" and a "utxos" array:
//
//	{
//	  "name": "main",
//	  "utxos": [
//	    {"txid": "...", "vout": 0, "address": "...", "amount_sat": 25000000,
//	     "tags": ["exchange"], "created_at": "2024-01-15T00:00:00Z", "risk": "low"}
//	  ]
//	}
//
// Optional UTXO fields: risk (defaults to "low"), sender, receiver,
// acquisition. Every record passes through [UTXO.Validate]; ReadJSON returns
// an error for malformed JSON, invalid records, or duplicate outpoints.
// Errors are wrapped with context describing which record caused the
// problem. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Wallet, error) {
	var data Wallet
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Name == "" {
		data.Name = "imported"
	}
	return New(data.Name, data.UTXOs)
}

// WriteJSON encodes a wallet snapshot as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(wal *Wallet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wal); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON file at path and returns the decoded wallet.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (*Wallet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "wallet file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a wallet snapshot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(wal *Wallet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(wal, f)
}
