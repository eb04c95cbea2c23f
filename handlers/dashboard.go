package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"p9e.in/quarry/models"
)

// RecentReportCount is how many of the latest reports the dashboard shows
// and charts.
const RecentReportCount = 7

// ReportStore is the slice of models.ReportService the handlers need.
type ReportStore interface {
	Create(r *models.Report) error
	CreateBatch(reports []models.Report) error
	Recent(limit int) ([]models.Report, error)
	ByID(id string) (*models.Report, error)
	List(page, pageSize int) ([]models.Report, int64, error)
	All() ([]models.Report, error)
}

// DashboardView is everything the index template renders: the raw recent
// rows for the table, the derived chart artifacts, and an optional flash.
type DashboardView struct {
	Reports []models.Report
	Charts  map[string]template.URL
	Error   string
}

// PumpSlots enumerates the numbered pump slots for the entry form.
func (DashboardView) PumpSlots() []int {
	slots := make([]int, models.PumpCount)
	for i := range slots {
		slots[i] = i + 1
	}
	return slots
}

// Dashboard serves the single entry form + trend page.
type Dashboard struct {
	store ReportStore
	tmpl  *template.Template
}

func NewDashboard(store ReportStore, tmpl *template.Template) *Dashboard {
	return &Dashboard{store: store, tmpl: tmpl}
}

// Show handles GET /: the last 7 reports plus the four trend charts. An
// empty store renders the empty state with no charts attempted.
func (h *Dashboard) Show(w http.ResponseWriter, r *http.Request) {
	view, err := h.buildDashboard()
	if err != nil {
		slog.Error("build dashboard", "error", err)
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}
	view.Error = r.URL.Query().Get("error")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index", view); err != nil {
		slog.Error("render dashboard", "error", err)
	}
}

// Submit handles POST /: validate, persist one row atomically, then
// redirect back to GET / so a browser refresh cannot resubmit the form.
// Failures redirect too, but carry a visible flash instead of pretending
// the row was saved.
func (h *Dashboard) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("parse submission form", "error", err)
		h.redirectWithError(w, r, "could not read the submitted form")
		return
	}

	report, err := models.ReportFromForm(r.PostForm)
	if err != nil {
		slog.Warn("rejected report submission", "error", err)
		h.redirectWithError(w, r, err.Error())
		return
	}

	if err := h.store.Create(report); err != nil {
		slog.Error("persist report", "day_number", report.DayNumber, "error", err)
		h.redirectWithError(w, r, "saving the report failed, please try again")
		return
	}

	slog.Info("report stored", "id", report.ID, "day_number", report.DayNumber, "report_date", report.DateLabel())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Dashboard) buildDashboard() (*DashboardView, error) {
	reports, err := h.store.Recent(RecentReportCount)
	if err != nil {
		return nil, err
	}
	charts, err := BuildCharts(reports)
	if err != nil {
		return nil, err
	}
	return &DashboardView{Reports: reports, Charts: charts}, nil
}

func (h *Dashboard) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
