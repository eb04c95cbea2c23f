package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/quarry/models"
)

// ReportExport serves the stored reports as downloadable files.
type ReportExport struct {
	store ReportStore
}

func NewReportExport(store ReportStore) *ReportExport {
	return &ReportExport{store: store}
}

// Excel exports every stored report as a spreadsheet download.
func (e *ReportExport) Excel(w http.ResponseWriter, r *http.Request) {
	reports, err := e.store.All()
	if err != nil {
		slog.Error("fetch reports for export", "error", err)
		http.Error(w, "failed to fetch reports", http.StatusInternalServerError)
		return
	}

	f, err := createExcelFile(reports)
	if err != nil {
		slog.Error("build excel export", "error", err)
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quarry_reports_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// CSV exports every stored report as comma-separated values.
func (e *ReportExport) CSV(w http.ResponseWriter, r *http.Request) {
	reports, err := e.store.All()
	if err != nil {
		slog.Error("fetch reports for export", "error", err)
		http.Error(w, "failed to fetch reports", http.StatusInternalServerError)
		return
	}

	data, err := createCSVFile(reports)
	if err != nil {
		slog.Error("build csv export", "error", err)
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quarry_reports_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// exportHeaders lists the columns in the order the entry form names them.
func exportHeaders() []string {
	headers := []string{"report_date", "day_number"}
	for i := 1; i <= models.PumpCount; i++ {
		headers = append(headers,
			fmt.Sprintf("pump_name_%d", i),
			fmt.Sprintf("run_hrs_%d", i),
			fmt.Sprintf("amp_%d", i),
			fmt.Sprintf("pr_ksc_%d", i),
			fmt.Sprintf("power_drawn_kw_%d", i),
			fmt.Sprintf("flow_m3hr_%d", i),
			fmt.Sprintf("volume_%d", i),
		)
	}
	return append(headers,
		"quarry_lvl_previous", "quarry_lvl_today", "quarry_lvl_change",
		"series2f_inflow", "series2a_inflow", "drain_inflow", "total_inflow", "net_flow",
		"rainfall_mm", "rainfall_start", "rainfall_stop", "rainfall_diff",
		"power_cut_on", "power_cut_off", "power_cut_diff", "power_cut_total_hrs", "power_cut_cum_hrs",
	)
}

func exportRecord(r models.Report) []string {
	record := []string{r.DateLabel(), strconv.Itoa(r.DayNumber)}
	for _, p := range r.Pumps {
		record = append(record,
			p.Name,
			formatFloat(p.RunHours),
			formatFloat(p.Amperage),
			formatFloat(p.PressureKsc),
			formatFloat(p.PowerKW),
			formatFloat(p.FlowM3Hr),
			formatFloat(p.Volume),
		)
	}
	return append(record,
		formatFloat(r.Level.Previous), formatFloat(r.Level.Today), formatFloat(r.Level.Change),
		formatFloat(r.Inflow.Series2F), formatFloat(r.Inflow.Series2A),
		formatFloat(r.Inflow.Drain), formatFloat(r.Inflow.Total), formatFloat(r.Inflow.Net),
		formatFloat(r.Rainfall.AmountMM), deref(r.Rainfall.Start), deref(r.Rainfall.Stop), formatFloat(r.Rainfall.Diff),
		deref(r.PowerCut.On), deref(r.PowerCut.Off), formatFloat(r.PowerCut.Diff),
		formatFloat(r.PowerCut.TotalHours), formatFloat(r.PowerCut.CumulativeHours),
	)
}

func createExcelFile(reports []models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Reports"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Daily Quarry Reports")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	const headerRow = 4
	headers := exportHeaders()
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, report := range reports {
		for col, value := range exportRecord(report) {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+rowIdx)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return f, nil
}

func createCSVFile(reports []models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(exportHeaders())
	for _, report := range reports {
		writer.Write(exportRecord(report))
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
