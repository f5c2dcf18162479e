package api

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/mawc/internal/calculation"
	"github.com/rgehrsitz/mawc/internal/domain"
)

const maxBodyBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers. The rate table is loaded
// once at startup and only read afterwards.
type Handler struct {
	Engine *calculation.CalculationEngine
	Table  domain.RateTable
}

// NewHandler creates a handler serving the given rate table.
func NewHandler(engine *calculation.CalculationEngine, table domain.RateTable) *Handler {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Handler{Engine: engine, Table: table}
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		RatePeriods: len(h.Table.Rates),
		LastUpdated: h.Table.LastUpdated,
	})
}

// GetRateTable handles GET /api/rate-table. Rows are returned in date order.
func (h *Handler) GetRateTable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.RateTable{
		LastUpdated: h.Table.LastUpdated,
		Rates:       h.Table.Sorted(),
	})
}

// LookupRate handles GET /api/rate-table/lookup?date=YYYY-MM-DD.
func (h *Handler) LookupRate(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	period, err := calculation.GetStateMinMax(date, h.Table.Rates)
	recordCalculation("lookup", err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

// CalculateRates handles POST /api/rates.
func (h *Handler) CalculateRates(w http.ResponseWriter, r *http.Request) {
	var req RatesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.DateOfInjury.IsZero() {
		writeError(w, http.StatusBadRequest, "date_of_injury is required", nil)
		return
	}

	opts := calculation.RateOptions{
		EarningCapacity: req.EarningCapacity,
		DateOfInjury:    req.DateOfInjury,
		StateTable:      h.Table.Rates,
	}

	var resp RatesResponse
	if req.Type != "" {
		bt, err := domain.ParseBenefitType(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid benefit type", err)
			return
		}
		rate, err := calculation.CalculateWeeklyRate(bt, req.AWW, opts)
		recordCalculation("rate", err)
		if err != nil {
			writeCalculationError(w, err)
			return
		}
		resp.Rates = []domain.WeeklyRateResult{rate}
	} else {
		rates, skipped, err := calculation.CalculateAllRates(req.AWW, opts)
		recordCalculation("rates", err)
		if err != nil {
			writeCalculationError(w, err)
			return
		}
		resp.Rates = rates.Ordered()
		resp.Skipped = skipped
	}

	// A successful rate calculation implies the lookup succeeds.
	resp.RatePeriod, _ = calculation.GetStateMinMax(req.DateOfInjury, h.Table.Rates)
	for _, rate := range resp.Rates {
		appliedRules.WithLabelValues(string(rate.AppliedRule)).Inc()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Weeks handles GET /api/weeks?start=&end=&mode=.
func (h *Handler) Weeks(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start", err)
		return
	}
	end, err := queryDate(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end", err)
		return
	}
	mode, err := calculation.ParseWeekMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	weeks, err := calculation.WeeksBetween(start, end, mode)
	recordCalculation("weeks", err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, WeeksResponse{Start: start, End: end, Mode: mode, WeekCalculation: weeks})
}

// EvaluateClaim handles POST /api/claims/evaluate.
func (h *Handler) EvaluateClaim(w http.ResponseWriter, r *http.Request) {
	var claim domain.Claim
	if err := decodeBody(w, r, &claim); err != nil {
		writeError(w, http.StatusBadRequest, "invalid claim", err)
		return
	}

	report, err := h.Engine.Evaluate(&claim, h.Table)
	recordCalculation("evaluate", err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	for _, rate := range report.Rates {
		appliedRules.WithLabelValues(string(rate.AppliedRule)).Inc()
	}
	writeJSON(w, http.StatusOK, report)
}

// GetSchedule handles GET /api/schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ScheduleResponse{
		Entries:          calculation.Schedule(),
		Pools:            calculation.CombinedPools(),
		CombinedMaxWeeks: calculation.GetCombinedMaxWeeks(),
	})
}

func queryDate(r *http.Request, name string) (domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return domain.Date{}, fmt.Errorf("query parameter %q is required", name)
	}
	return domain.ParseDate(raw)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// calculationErrors lists the caller-correctable failures reported as 400.
var calculationErrors = []error{
	calculation.ErrInvalidAWW,
	calculation.ErrNoApplicableRate,
	calculation.ErrInvalidDateRange,
	calculation.ErrInvalidWeekMode,
	calculation.ErrMissingEarningCapacity,
	calculation.ErrNegativeEarningCapacity,
	calculation.ErrUnknownBenefitType,
	calculation.ErrInvalidLedgerEntry,
}

func writeCalculationError(w http.ResponseWriter, err error) {
	for _, target := range calculationErrors {
		if errors.Is(err, target) {
			writeError(w, http.StatusBadRequest, target.Error(), err)
			return
		}
	}
	writeError(w, http.StatusBadRequest, "invalid input", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
