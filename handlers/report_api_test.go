package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"p9e.in/quarry/utils"
)

func TestReportAPIList(t *testing.T) {
	store := &fakeStore{reports: sampleReports(1.2, 1.5, 1.1)}
	api := NewReportAPI(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	rec := httptest.NewRecorder()
	api.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp struct {
		Total   int64             `json:"total"`
		Reports []json.RawMessage `json:"reports"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 3 || len(resp.Reports) != 3 {
		t.Errorf("total=%d len=%d, expected 3/3", resp.Total, len(resp.Reports))
	}
}

func TestReportAPICreateRequiresDayNumber(t *testing.T) {
	store := &fakeStore{}
	api := NewReportAPI(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports",
		strings.NewReader(`{"quarryLevel":{"today":1.5}}`))
	rec := httptest.NewRecorder()
	api.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}
	if len(store.reports) != 0 {
		t.Errorf("store has %d reports, expected 0", len(store.reports))
	}
}

func TestReportAPICreateAcceptsZeroDayNumber(t *testing.T) {
	// Zero is a valid day label on the form path ("0" parses), so an
	// explicit zero must be accepted here too; only absence is rejected.
	store := &fakeStore{}
	api := NewReportAPI(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports",
		strings.NewReader(`{"dayNumber":0,"quarryLevel":{"today":1.5}}`))
	rec := httptest.NewRecorder()
	api.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, expected 201", rec.Code)
	}
	if len(store.reports) != 1 || store.reports[0].DayNumber != 0 {
		t.Errorf("stored reports = %+v, expected one report with day number 0", store.reports)
	}
}

func TestReportAPICreate(t *testing.T) {
	store := &fakeStore{}
	api := NewReportAPI(store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports",
		strings.NewReader(`{"dayNumber":7,"rainfall":{"amountMm":2.5}}`))
	rec := httptest.NewRecorder()
	api.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, expected 201", rec.Code)
	}
	if len(store.reports) != 1 || store.reports[0].Rainfall.AmountMM != 2.5 {
		t.Errorf("stored reports = %+v", store.reports)
	}
}

func TestReportAPIStats(t *testing.T) {
	store := &fakeStore{reports: sampleReports(1, 2, 3)}
	api := NewReportAPI(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/stats", nil)
	rec := httptest.NewRecorder()
	api.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp map[string]utils.StatisticalSummary
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	lvl, ok := resp["quarry_level"]
	if !ok {
		t.Fatal("quarry_level summary missing")
	}
	if lvl.Count != 3 || lvl.Mean != 2 {
		t.Errorf("quarry_level summary = %+v, expected count 3 mean 2", lvl)
	}
}
