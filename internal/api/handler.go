// internal/api/handler.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/usmankz/coinsight/internal/api/response"
	"github.com/usmankz/coinsight/internal/catalog"
	"github.com/usmankz/coinsight/internal/chart"
	"github.com/usmankz/coinsight/internal/core"
	"github.com/usmankz/coinsight/internal/engine"
	"github.com/usmankz/coinsight/internal/metrics"
	"github.com/usmankz/coinsight/internal/repo"
)

// Refresher triggers one refresh cycle; overlapping triggers are no-ops.
type Refresher interface {
	RunCycle()
}

// Handler serves the calculator API from the current repository snapshot.
type Handler struct {
	repository *repo.QuoteRepository
	refresher  Refresher
	metrics    *metrics.Registry
}

// NewHandler creates a new calculator API handler. refresher and reg may be nil.
func NewHandler(repository *repo.QuoteRepository, refresher Refresher, reg *metrics.Registry) *Handler {
	return &Handler{repository: repository, refresher: refresher, metrics: reg}
}

// Quotes returns the latest asset quotes with snapshot metadata.
func (h *Handler) Quotes(w http.ResponseWriter, r *http.Request) {
	if !h.repository.Ready() {
		response.FromError(w, core.ErrDataNotReady)
		return
	}
	s := h.repository.Snapshot()
	response.JSON(w, http.StatusOK, map[string]any{
		"quotes":     s.Quotes,
		"source":     s.Source,
		"stale":      s.Stale,
		"fetched_at": s.FetchedAt,
	})
}

// Rates returns the latest exchange rate table.
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	if !h.repository.Ready() {
		response.FromError(w, core.ErrDataNotReady)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"base":       "usd",
		"rates":      h.repository.Rates(),
		"currencies": catalog.CurrencyCodes(),
	})
}

// Ticker returns the rolling ticker rows in display order.
func (h *Handler) Ticker(w http.ResponseWriter, r *http.Request) {
	if !h.repository.Ready() {
		response.FromError(w, core.ErrDataNotReady)
		return
	}
	response.JSON(w, http.StatusOK, engine.Ticker(h.repository.Snapshot()))
}

// roiRequest accepts the raw form values the calculator UI submits. Numbers
// arrive as JSON numbers or as strings; both are tolerated.
type roiRequest struct {
	AssetID         string      `json:"asset_id"`
	Amount          json.Number `json:"amount"`
	PeriodDays      json.Number `json:"period_days"`
	AnnualGrowthPct json.Number `json:"annual_growth_pct"`
	Currency        string      `json:"currency"`
}

// ROI computes a single-asset projection.
func (h *Handler) ROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if err := decodeJSON(r, &req); err != nil {
		h.recordCalc("roi", "invalid")
		response.FromError(w, err)
		return
	}

	in := core.ProjectionInput{
		AssetID:  strings.ToLower(strings.TrimSpace(req.AssetID)),
		Currency: normalizeCurrency(req.Currency),
	}

	var err error
	if in.Amount, err = parseNumber(req.Amount, "amount"); err != nil {
		h.recordCalc("roi", "invalid")
		response.FromError(w, err)
		return
	}
	period, err := parseNumber(req.PeriodDays, "period_days")
	if err != nil {
		h.recordCalc("roi", "invalid")
		response.FromError(w, err)
		return
	}
	in.PeriodDays = int(period)

	if req.AnnualGrowthPct != "" {
		growth, err := parseNumber(req.AnnualGrowthPct, "annual_growth_pct")
		if err != nil {
			h.recordCalc("roi", "invalid")
			response.FromError(w, err)
			return
		}
		in.AnnualGrowthPct = &growth
	}

	result, err := engine.CalculateROI(h.repository.Snapshot(), in)
	if err != nil {
		h.recordCalc("roi", "error")
		response.FromError(w, err)
		return
	}
	h.recordCalc("roi", "ok")
	response.JSON(w, http.StatusOK, result)
}

type convertRequest struct {
	AssetID  string      `json:"asset_id"`
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

// Convert computes an asset-to-fiat conversion.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decodeJSON(r, &req); err != nil {
		h.recordCalc("convert", "invalid")
		response.FromError(w, err)
		return
	}

	amount, err := parseNumber(req.Amount, "amount")
	if err != nil {
		h.recordCalc("convert", "invalid")
		response.FromError(w, err)
		return
	}

	result, err := engine.Convert(h.repository.Snapshot(), core.ConversionInput{
		AssetID:  strings.ToLower(strings.TrimSpace(req.AssetID)),
		Amount:   amount,
		Currency: normalizeCurrency(req.Currency),
	})
	if err != nil {
		h.recordCalc("convert", "error")
		response.FromError(w, err)
		return
	}
	h.recordCalc("convert", "ok")
	response.JSON(w, http.StatusOK, result)
}

type compareRequest struct {
	Amount     json.Number `json:"amount"`
	PeriodDays json.Number `json:"period_days"`
	Assets     []string    `json:"assets"`
}

// Compare computes per-asset projections for the selected assets.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		h.recordCalc("compare", "invalid")
		response.FromError(w, err)
		return
	}

	entries, err := h.compare(req)
	if err != nil {
		h.recordCalc("compare", "error")
		response.FromError(w, err)
		return
	}
	h.recordCalc("compare", "ok")
	response.JSON(w, http.StatusOK, entries)
}

// CompareChart renders the comparison as a PNG bar chart. Inputs arrive as
// query parameters so the image URL can sit directly in an <img> tag.
func (h *Handler) CompareChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := compareRequest{
		Amount:     json.Number(q.Get("amount")),
		PeriodDays: json.Number(q.Get("period_days")),
	}
	if assets := q.Get("assets"); assets != "" {
		req.Assets = strings.Split(assets, ",")
	}

	entries, err := h.compare(req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	if len(entries) == 0 {
		response.FromError(w, core.ErrDataNotReady)
		return
	}

	amount, _ := req.Amount.Float64()
	period, _ := strconv.Atoi(req.PeriodDays.String())
	img, err := chart.Comparison(entries, amount, period)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// Refresh triggers one refresh cycle out of band. The scheduler's
// single-flight guard makes overlapping triggers harmless.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		response.Error(w, http.StatusNotImplemented, core.ErrDataNotReady)
		return
	}
	h.refresher.RunCycle()
	response.JSON(w, http.StatusAccepted, map[string]any{"status": "refresh triggered"})
}

// Health reports liveness and data readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"ready":  h.repository.Ready(),
	}
	if h.repository.Ready() {
		s := h.repository.Snapshot()
		status["stale"] = s.Stale
		status["source"] = s.Source
	}
	response.JSON(w, http.StatusOK, status)
}

func (h *Handler) compare(req compareRequest) ([]core.ComparisonEntry, error) {
	amount, err := parseNumber(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	period, err := parseNumber(req.PeriodDays, "period_days")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.Assets))
	for _, id := range req.Assets {
		if id = strings.ToLower(strings.TrimSpace(id)); id != "" {
			ids = append(ids, id)
		}
	}

	return engine.Compare(h.repository.Snapshot(), amount, int(period), ids)
}

func (h *Handler) recordCalc(kind, status string) {
	if h.metrics != nil {
		h.metrics.RecordCalculation(kind, status)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return core.ValidationError("request body is not valid JSON")
	}
	return nil
}

func parseNumber(n json.Number, field string) (float64, error) {
	if n == "" {
		return 0, core.ValidationError(field + " is required")
	}
	f, err := n.Float64()
	if err != nil {
		return 0, core.ValidationError(field + " must be a number")
	}
	return f, nil
}

func normalizeCurrency(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "usd"
	}
	return code
}
