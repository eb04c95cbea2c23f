package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExportHeadersShape(t *testing.T) {
	headers := exportHeaders()
	if len(headers) != 54 {
		t.Fatalf("export has %d columns, expected 54", len(headers))
	}
	if headers[0] != "report_date" || headers[1] != "day_number" {
		t.Errorf("identifying columns out of order: %v", headers[:2])
	}
	if headers[2] != "pump_name_1" || headers[9] != "pump_name_2" {
		t.Errorf("pump columns out of order: %v", headers[2:10])
	}
	if headers[len(headers)-1] != "power_cut_cum_hrs" {
		t.Errorf("last column = %q, expected power_cut_cum_hrs", headers[len(headers)-1])
	}
}

func TestExportRecordMatchesHeaders(t *testing.T) {
	reports := sampleReports(1.5)
	record := exportRecord(reports[0])
	if len(record) != len(exportHeaders()) {
		t.Fatalf("record has %d fields, headers have %d", len(record), len(exportHeaders()))
	}
	if record[0] != "2024-05-10" {
		t.Errorf("record date = %q, expected 2024-05-10", record[0])
	}
}

func TestCSVExportEndpoint(t *testing.T) {
	store := &fakeStore{reports: sampleReports(1.2, 1.5)}
	e := NewReportExport(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/csv", nil)
	rec := httptest.NewRecorder()
	e.CSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, expected text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, expected attachment", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("exported %d rows, expected header + 2 reports", len(rows))
	}
}

func TestExcelExportEndpoint(t *testing.T) {
	store := &fakeStore{reports: sampleReports(1.2)}
	e := NewReportExport(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/excel", nil)
	rec := httptest.NewRecorder()
	e.Excel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("exported workbook is empty")
	}
}
