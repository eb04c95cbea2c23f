package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"p9e.in/quarry/models"
	"p9e.in/quarry/utils"
)

// ReportAPI exposes the stored reports as JSON for integrations that do not
// go through the HTML form.
type ReportAPI struct {
	store ReportStore
}

func NewReportAPI(store ReportStore) *ReportAPI {
	return &ReportAPI{store: store}
}

// List returns one page of reports, newest first.
func (a *ReportAPI) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	reports, total, err := a.store.List(page, pageSize)
	if err != nil {
		slog.Error("list reports", "error", err)
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total":   total,
		"reports": reports,
	})
}

// Get returns a single report by id.
func (a *ReportAPI) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := a.store.ByID(id)
	if err != nil {
		if errors.Is(err, models.ErrReportNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		slog.Error("fetch report", "id", id, "error", err)
		http.Error(w, "failed to fetch report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// Create accepts one report as JSON. The same day-number rule applies as on
// the form path: the field must be present, but any integer (zero included)
// is a valid day label.
func (a *ReportAPI) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		models.Report
		DayNumber *int `json:"dayNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.DayNumber == nil {
		http.Error(w, utils.ErrDayNumberRequired.Error(), http.StatusBadRequest)
		return
	}
	report := payload.Report
	report.DayNumber = *payload.DayNumber

	if err := a.store.Create(&report); err != nil {
		slog.Error("persist report", "error", err)
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// Batch inserts many reports at once, skipping ids that already exist.
func (a *ReportAPI) Batch(w http.ResponseWriter, r *http.Request) {
	var batch []models.Report
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.store.CreateBatch(batch); err != nil {
		slog.Error("batch persist reports", "count", len(batch), "error", err)
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Stats summarises the four charted series over the whole store.
func (a *ReportAPI) Stats(w http.ResponseWriter, r *http.Request) {
	reports, err := a.store.All()
	if err != nil {
		slog.Error("fetch reports for stats", "error", err)
		http.Error(w, "failed to compute statistics", http.StatusInternalServerError)
		return
	}

	levels := make([]float64, len(reports))
	changes := make([]float64, len(reports))
	rainfall := make([]float64, len(reports))
	powerCut := make([]float64, len(reports))
	for i, rep := range reports {
		levels[i] = rep.Level.Today
		changes[i] = rep.Level.Change
		rainfall[i] = rep.Rainfall.AmountMM
		powerCut[i] = rep.PowerCut.TotalHours
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]utils.StatisticalSummary{
		"quarry_level":  utils.Summarize(levels),
		"quarry_change": utils.Summarize(changes),
		"rainfall":      utils.Summarize(rainfall),
		"power_cut":     utils.Summarize(powerCut),
	})
}
