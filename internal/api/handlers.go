package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"subnetter/internal/history"
	"subnetter/internal/subnet"
)

// calcRequest is the POST body for /api/v1/subnet. GET uses the input and
// mask query parameters instead.
type calcRequest struct {
	Input string `json:"input"`
	Mask  string `json:"mask,omitempty"`
}

// GET/POST /api/v1/subnet
// Computes the subnet record for one address/mask pair and appends it to
// the history.
func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req calcRequest
	switch r.Method {
	case http.MethodGet:
		req.Input = r.URL.Query().Get("input")
		req.Mask = r.URL.Query().Get("mask")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErr(ctx, w, http.StatusBadRequest, "invalid json body", err.Error())
			return
		}
	default:
		s.writeErr(ctx, w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	if strings.TrimSpace(req.Input) == "" {
		s.writeErr(ctx, w, http.StatusBadRequest, "input is required", "")
		return
	}

	addr, prefix, err := subnet.Parse(req.Input, req.Mask)
	if err != nil {
		s.writeParseErr(ctx, w, err)
		return
	}
	result := subnet.Compute(addr, prefix)
	if s.metrics != nil {
		s.metrics.RecordCalculation()
	}

	entry, err := s.store.Insert(ctx, history.Entry{
		Input:  strings.TrimSpace(req.Input),
		Mask:   strings.TrimSpace(req.Mask),
		Result: result,
	})
	if err != nil {
		// History is best-effort; the computation already succeeded.
		s.logger.WarnContext(ctx, "history insert failed", "error", err)
	}

	s.logger.InfoContext(ctx, "subnet computed",
		"input", req.Input,
		"cidr", result.CIDR,
		"network", result.Network,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     entry.ID,
		"result": result,
	})
}

// GET /api/v1/subnet/export?input=...&mask=...
// Returns the record as a two-column CSV: a field,value header followed by
// one name,value line per result field, in record field order.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		s.writeErr(ctx, w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	input := r.URL.Query().Get("input")
	mask := r.URL.Query().Get("mask")
	if strings.TrimSpace(input) == "" {
		s.writeErr(ctx, w, http.StatusBadRequest, "input is required", "")
		return
	}

	addr, prefix, err := subnet.Parse(input, mask)
	if err != nil {
		s.writeParseErr(ctx, w, err)
		return
	}
	result := subnet.Compute(addr, prefix)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=subnet_result.csv")

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "value"}); err != nil {
		s.writeErr(ctx, w, http.StatusInternalServerError, "failed to write csv", err.Error())
		return
	}
	for _, f := range result.Fields() {
		if err := cw.Write([]string{f[0], f[1]}); err != nil {
			s.writeErr(ctx, w, http.StatusInternalServerError, "failed to write csv", err.Error())
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.WarnContext(ctx, "csv flush failed", "error", err)
	}
}

// GET /api/v1/history?limit=N
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.writeErr(ctx, w, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = parsed
	}

	entries, err := s.store.List(ctx, limit)
	if err != nil {
		s.writeErr(ctx, w, http.StatusInternalServerError, "internal error", err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}
