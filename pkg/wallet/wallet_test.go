package wallet

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

func validUTXO(i int) UTXO {
	return UTXO{
		TxID:      fmt.Sprintf("%064x", i+1),
		Vout:      uint32(i),
		Address:   fmt.Sprintf("bc1qwallettest%05d", i),
		Amount:    int64(i+1) * 10_000,
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
	}
}

func TestUTXOValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UTXO)
		wantErr bool
	}{
		{name: "valid", mutate: func(*UTXO) {}},
		{name: "short txid", mutate: func(u *UTXO) { u.TxID = "abc123" }, wantErr: true},
		{name: "uppercase txid", mutate: func(u *UTXO) { u.TxID = strings.ToUpper(u.TxID) }, wantErr: true},
		{name: "non-hex txid", mutate: func(u *UTXO) { u.TxID = strings.Repeat("z", 64) }, wantErr: true},
		{name: "short address", mutate: func(u *UTXO) { u.Address = "bc1qshort" }, wantErr: true},
		{name: "address with space", mutate: func(u *UTXO) { u.Address = "bc1q addr with space" }, wantErr: true},
		{name: "negative amount", mutate: func(u *UTXO) { u.Amount = -1 }, wantErr: true},
		{name: "zero amount allowed", mutate: func(u *UTXO) { u.Amount = 0 }},
		{name: "amount above supply", mutate: func(u *UTXO) { u.Amount = 21_000_000*SatoshisPerBTC + 1 }, wantErr: true},
		{name: "zero timestamp", mutate: func(u *UTXO) { u.CreatedAt = time.Time{} }, wantErr: true},
		{name: "empty tag", mutate: func(u *UTXO) { u.Tags = []string{""} }, wantErr: true},
		{name: "oversized tag", mutate: func(u *UTXO) { u.Tags = []string{strings.Repeat("x", 65)} }, wantErr: true},
		{name: "duplicate tags case-folded", mutate: func(u *UTXO) { u.Tags = []string{"Exchange", "exchange"} }, wantErr: true},
		{name: "distinct tags", mutate: func(u *UTXO) { u.Tags = []string{"exchange", "kyc"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUTXO(0)
			tt.mutate(&u)
			err := u.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUTXOAccessors(t *testing.T) {
	u := UTXO{TxID: strings.Repeat("ab", 32), Vout: 3, Amount: 150_000_000, Tags: []string{"Exchange"}}

	if got, want := u.OutPoint(), strings.Repeat("ab", 32)+":3"; got != want {
		t.Errorf("OutPoint() = %q, want %q", got, want)
	}
	if u.BTC() != 1.5 {
		t.Errorf("BTC() = %v, want 1.5", u.BTC())
	}
	if !u.HasTag("exchange") {
		t.Error("HasTag() should match case-insensitively")
	}
	if u.HasTag("kyc") {
		t.Error("HasTag() matched an absent tag")
	}
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    RiskLevel
		wantErr bool
	}{
		{in: "", want: RiskLow},
		{in: "low", want: RiskLow},
		{in: "Medium", want: RiskMedium},
		{in: "HIGH", want: RiskHigh},
		{in: "extreme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRiskLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRiskLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRiskLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRejectsDuplicateOutpoints(t *testing.T) {
	u := validUTXO(0)
	_, err := New("main", []UTXO{u, u})
	if err == nil {
		t.Fatal("New() accepted duplicate outpoints, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidWallet) {
		t.Errorf("New() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidWallet)
	}
}

func TestNewRejectsBadName(t *testing.T) {
	for _, name := range []string{"../escape", "a/b", "a\\b", "nul\x00byte", strings.Repeat("n", 129)} {
		if _, err := New(name, nil); err == nil {
			t.Errorf("New(%q) accepted invalid name, want error", name)
		}
	}
}

func TestWalletTotals(t *testing.T) {
	w, err := New("main", []UTXO{validUTXO(0), validUTXO(1), validUTXO(2)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := w.TotalSats(); got != 60_000 {
		t.Errorf("TotalSats() = %d, want 60000", got)
	}
	if got := w.TotalBTC(); got != 0.0006 {
		t.Errorf("TotalBTC() = %v, want 0.0006", got)
	}
}

func TestWalletSelect(t *testing.T) {
	a, b := validUTXO(0), validUTXO(1)
	w, err := New("main", []UTXO{a, b})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := w.Select([]string{b.OutPoint(), a.OutPoint()})
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if len(got) != 2 || got[0].OutPoint() != b.OutPoint() || got[1].OutPoint() != a.OutPoint() {
		t.Errorf("Select() did not preserve request order: %v", got)
	}

	_, err = w.Select([]string{strings.Repeat("f", 64) + ":0"})
	if err == nil {
		t.Fatal("Select() accepted unknown outpoint, want error")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Select() error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestWalletGroupings(t *testing.T) {
	u0, u1, u2 := validUTXO(0), validUTXO(1), validUTXO(2)
	u0.Tags = []string{"Exchange", "kyc"}
	u1.Tags = []string{"personal"}
	u1.Risk = RiskHigh
	w, err := New("main", []UTXO{u0, u1, u2})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if got := w.Tags(); !reflect.DeepEqual(got, []string{"exchange", "kyc", "personal"}) {
		t.Errorf("Tags() = %v, want sorted case-folded union", got)
	}

	byTag := w.ByTag()
	if len(byTag["exchange"]) != 1 || len(byTag["personal"]) != 1 || len(byTag["untagged"]) != 1 {
		t.Errorf("ByTag() = %v, want one UTXO per first tag plus untagged", byTag)
	}

	byRisk := w.ByRisk()
	if len(byRisk[RiskLow]) != 2 || len(byRisk[RiskHigh]) != 1 {
		t.Errorf("ByRisk() grouped %d low / %d high, want 2 / 1", len(byRisk[RiskLow]), len(byRisk[RiskHigh]))
	}

	if got := w.FilterByTag("KYC"); len(got) != 1 {
		t.Errorf("FilterByTag() = %v, want one match", got)
	}
}

func TestTagUnion(t *testing.T) {
	u0, u1 := validUTXO(0), validUTXO(1)
	u0.Tags = []string{"B", "a"}
	u1.Tags = []string{"b", "c"}
	got := TagUnion([]UTXO{u0, u1})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("TagUnion() = %v, want [a b c]", got)
	}
}
