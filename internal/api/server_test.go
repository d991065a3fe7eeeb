package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return NewServer(runner, nil, logger)
}

func apiUTXO(i int) wallet.UTXO {
	return wallet.UTXO{
		TxID:      fmt.Sprintf("%064x", i+1),
		Vout:      0,
		Address:   fmt.Sprintf("bc1qapitestaddr%04d", i),
		Amount:    int64(i+1) * 25_000_000,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*10),
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := testServer(t).Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestAssessEndpoint(t *testing.T) {
	h := testServer(t).Router()

	rec := postJSON(t, h, "/api/v1/assess", map[string]any{
		"inputs":           []wallet.UTXO{apiUTXO(0), apiUTXO(1)},
		"output_addresses": []string{"bc1qapidest000001", "bc1qapidest000001"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var assessment struct {
		Label   string   `json:"label"`
		Reasons []string `json:"reasons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &assessment); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if assessment.Label != "high" {
		t.Errorf("label = %q, want high for reused addresses", assessment.Label)
	}
	if len(assessment.Reasons) == 0 {
		t.Error("reasons empty")
	}
}

func TestAssessEndpointEmptyInputs(t *testing.T) {
	h := testServer(t).Router()

	rec := postJSON(t, h, "/api/v1/assess", map[string]any{
		"inputs":           []wallet.UTXO{},
		"output_addresses": []string{"bc1qapidest000001"},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != "EMPTY_INPUTS" {
		t.Errorf("code = %q, want EMPTY_INPUTS", body.Code)
	}
	if body.Error == "" {
		t.Error("error message empty")
	}
}

func TestAssessEndpointMalformedBody(t *testing.T) {
	h := testServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := testServer(t).Router()

	rec := postJSON(t, h, "/api/v1/layout", map[string]any{
		"wallet": map[string]any{
			"name":  "api",
			"utxos": []wallet.UTXO{apiUTXO(0), apiUTXO(1)},
		},
		"options": map[string]any{
			"formats":  []string{"svg", "json"},
			"group_by": "tag",
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		SnapshotHash string            `json:"snapshot_hash"`
		View         pipeline.View     `json:"view"`
		Artifacts    map[string][]byte `json:"artifacts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.SnapshotHash == "" {
		t.Error("snapshot_hash empty")
	}
	if len(body.View.Tiles) != 1 {
		t.Errorf("tiles = %d, want one untagged group", len(body.View.Tiles))
	}
	svg, ok := body.Artifacts["svg"]
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg artifact missing or malformed")
	}
}

func TestLayoutEndpointRejectsInvalidWallet(t *testing.T) {
	h := testServer(t).Router()

	bad := apiUTXO(0)
	bad.TxID = "nope"
	rec := postJSON(t, h, "/api/v1/layout", map[string]any{
		"wallet": map[string]any{"name": "api", "utxos": []wallet.UTXO{bad}},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestReportEndpoint(t *testing.T) {
	h := testServer(t).Router()

	rec := postJSON(t, h, "/api/v1/report", map[string]any{
		"wallet": map[string]any{
			"name":  "api",
			"utxos": []wallet.UTXO{apiUTXO(0), apiUTXO(1)},
		},
		"currency": "eur",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Wallet    string          `json:"wallet"`
		Currency  string          `json:"currency"`
		TotalBTC  float64         `json:"total_btc"`
		TotalFiat *float64        `json:"total_fiat"`
		Rows      []json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Wallet != "api" || body.Currency != "eur" {
		t.Errorf("wallet/currency = %q/%q, want api/eur", body.Wallet, body.Currency)
	}
	if body.TotalBTC != 0.75 {
		t.Errorf("total_btc = %v, want 0.75", body.TotalBTC)
	}
	if body.TotalFiat != nil {
		t.Errorf("total_fiat = %v, want null without a price source", *body.TotalFiat)
	}
	if len(body.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(body.Rows))
	}
}
