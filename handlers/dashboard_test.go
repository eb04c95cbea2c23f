package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"p9e.in/quarry/models"
)

// fakeStore is an in-memory ReportStore for handler tests.
type fakeStore struct {
	reports   []models.Report
	createErr error
}

func (f *fakeStore) Create(r *models.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.reports = append(f.reports, *r)
	return nil
}

func (f *fakeStore) CreateBatch(reports []models.Report) error {
	f.reports = append(f.reports, reports...)
	return nil
}

func (f *fakeStore) Recent(limit int) ([]models.Report, error) {
	if len(f.reports) < limit {
		limit = len(f.reports)
	}
	return f.reports[:limit], nil
}

func (f *fakeStore) ByID(id string) (*models.Report, error) {
	return nil, models.ErrReportNotFound
}

func (f *fakeStore) List(page, pageSize int) ([]models.Report, int64, error) {
	return f.reports, int64(len(f.reports)), nil
}

func (f *fakeStore) All() ([]models.Report, error) {
	return f.reports, nil
}

func testTemplate(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := template.ParseGlob("../templates/*.html")
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return tmpl
}

func TestDashboardShowEmptyStore(t *testing.T) {
	h := NewDashboard(&fakeStore{}, testTemplate(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "No reports yet") {
		t.Error("empty state message missing from dashboard")
	}
	if strings.Contains(body, "data:image/png") {
		t.Error("no chart should be rendered for an empty store")
	}
}

func TestDashboardShowWithReports(t *testing.T) {
	store := &fakeStore{reports: sampleReports(1.2, 1.5, 1.1)}
	h := NewDashboard(store, testTemplate(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	body := rec.Body.String()
	if got := strings.Count(body, "data:image/png;base64,"); got != 4 {
		t.Errorf("dashboard embeds %d chart images, expected 4", got)
	}
	if !strings.Contains(body, "2024-05-10") {
		t.Error("report dates missing from dashboard table")
	}
}

func TestDashboardShowFirstReport(t *testing.T) {
	// The day the very first report lands, the dashboard must still render
	// all four charts rather than erroring on one-point series.
	store := &fakeStore{reports: sampleReports(1.2)}
	h := NewDashboard(store, testTemplate(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if got := strings.Count(rec.Body.String(), "data:image/png;base64,"); got != 4 {
		t.Errorf("dashboard embeds %d chart images, expected 4", got)
	}
}

func TestDashboardShowRendersFlash(t *testing.T) {
	h := NewDashboard(&fakeStore{}, testTemplate(t))

	req := httptest.NewRequest(http.MethodGet, "/?error=day_number+is+required", nil)
	rec := httptest.NewRecorder()
	h.Show(rec, req)

	if !strings.Contains(rec.Body.String(), "day_number is required") {
		t.Error("error flash missing from dashboard")
	}
}

func TestDashboardSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	h := NewDashboard(store, testTemplate(t))

	form := url.Values{}
	form.Set("report_date", "2024-05-01")
	form.Set("day_number", "12")
	form.Set("pump_name_1", "P1")
	form.Set("run_hrs_1", "10.5")
	form.Set("rainfall_mm", "3.2")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, expected 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q, expected /", loc)
	}
	if len(store.reports) != 1 {
		t.Fatalf("store has %d reports, expected 1", len(store.reports))
	}
	saved := store.reports[0]
	if saved.DayNumber != 12 || saved.Pumps[0].RunHours != 10.5 || saved.Rainfall.AmountMM != 3.2 {
		t.Errorf("stored report fields mismatch: %+v", saved)
	}
}

func TestDashboardSubmitRejectsMissingDayNumber(t *testing.T) {
	store := &fakeStore{}
	h := NewDashboard(store, testTemplate(t))

	form := url.Values{}
	form.Set("report_date", "2024-05-01")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, expected 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Errorf("redirect location %q carries no error flash", loc)
	}
	if len(store.reports) != 0 {
		t.Errorf("store has %d reports, expected 0 after rejected submission", len(store.reports))
	}
}

func TestDashboardSubmitSurfacesPersistenceFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection reset")}
	h := NewDashboard(store, testTemplate(t))

	form := url.Values{}
	form.Set("day_number", "5")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, expected 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Errorf("redirect location %q carries no error flash", loc)
	}
}
