package wallet

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

func TestReadJSONDefaultsName(t *testing.T) {
	in := `{"utxos": []}`
	w, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if w.Name != "imported" {
		t.Errorf("Name = %q, want %q", w.Name, "imported")
	}
}

func TestReadJSONRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not json", in: "{nope"},
		{name: "bad txid", in: `{"name":"m","utxos":[{"txid":"short","vout":0,"address":"bc1qreadjsontest01","amount_sat":1,"created_at":"2024-01-01T00:00:00Z"}]}`},
		{name: "bad risk label", in: `{"name":"m","utxos":[{"txid":"` + strings.Repeat("a", 64) + `","vout":0,"address":"bc1qreadjsontest01","amount_sat":1,"created_at":"2024-01-01T00:00:00Z","risk":"extreme"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadJSON() accepted malformed input, want error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	u := validUTXO(0)
	u.Tags = []string{"exchange"}
	u.Risk = RiskMedium
	u.Acquisition = &Acquisition{Date: u.CreatedAt, FiatValue: 1234.56, Currency: "usd"}
	orig, err := New("roundtrip", []UTXO{u, validUTXO(1)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Name != orig.Name || len(got.UTXOs) != len(orig.UTXOs) {
		t.Fatalf("round trip changed shape: %+v", got)
	}
	if got.UTXOs[0].Risk != RiskMedium {
		t.Errorf("Risk = %v, want %v", got.UTXOs[0].Risk, RiskMedium)
	}
	if got.UTXOs[0].Acquisition == nil || got.UTXOs[0].Acquisition.FiatValue != 1234.56 {
		t.Errorf("Acquisition not preserved: %+v", got.UTXOs[0].Acquisition)
	}
}

func TestImportExportFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.json")

	orig, err := New("files", []UTXO{validUTXO(0)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got.Name != "files" || len(got.UTXOs) != 1 {
		t.Errorf("ImportJSON() = %+v, want the exported wallet", got)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("ImportJSON() succeeded on a missing file, want error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
