package api

import (
	"encoding/json"
	"net/http"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/report"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/risk"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// assessRequest is the body for POST /api/v1/assess.
type assessRequest struct {
	Inputs          []wallet.UTXO `json:"inputs"`
	OutputAddresses []string      `json:"output_addresses"`
	Profile         *risk.Profile `json:"profile,omitempty"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if !s.decode(w, r, &req) {
		return
	}

	profile := risk.DefaultProfile()
	if req.Profile != nil {
		profile = *req.Profile
	}

	assessment, err := profile.Assess(req.Inputs, req.OutputAddresses)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, assessment)
}

// layoutRequest is the body for POST /api/v1/layout.
type layoutRequest struct {
	Wallet  wallet.Wallet    `json:"wallet"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse carries the view plus rendered artifacts. Binary formats
// are base64-encoded by the JSON encoder.
type layoutResponse struct {
	SnapshotHash string             `json:"snapshot_hash"`
	View         pipeline.View      `json:"view"`
	Artifacts    map[string][]byte  `json:"artifacts,omitempty"`
	Stats        pipeline.Stats     `json:"stats"`
	Cache        pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	snapshot, err := wallet.New(req.Wallet.Name, req.Wallet.UTXOs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), snapshot, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, layoutResponse{
		SnapshotHash: result.SnapshotHash,
		View:         result.View,
		Artifacts:    result.Artifacts,
		Stats:        result.Stats,
		Cache:        result.CacheInfo,
	})
}

// reportRequest is the body for POST /api/v1/report.
type reportRequest struct {
	Wallet   wallet.Wallet `json:"wallet"`
	Currency string        `json:"currency,omitempty"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !s.decode(w, r, &req) {
		return
	}

	snapshot, err := wallet.New(req.Wallet.Name, req.Wallet.UTXOs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rep, err := report.Build(r.Context(), snapshot, s.prices, req.Currency)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// decode reads a JSON request body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}
