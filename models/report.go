package models

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"p9e.in/quarry/utils"
)

// PumpCount is the fixed number of pump slots on the daily report form.
const PumpCount = 5

// PumpReading holds one pump's metrics for a single report day.
type PumpReading struct {
	Name        string  `json:"name"`
	RunHours    float64 `json:"runHours"`
	Amperage    float64 `json:"amperage"`
	PressureKsc float64 `json:"pressureKsc"`
	PowerKW     float64 `json:"powerDrawnKw"`
	FlowM3Hr    float64 `json:"flowM3PerHr"`
	Volume      float64 `json:"volume"`
}

// QuarryLevel holds the water level readings for the day.
type QuarryLevel struct {
	Previous float64 `json:"previous"`
	Today    float64 `json:"today"`
	Change   float64 `json:"change"`
}

// Inflow holds the measured inflow components and the entered net flow.
type Inflow struct {
	Series2F float64 `json:"series2f"`
	Series2A float64 `json:"series2a"`
	Drain    float64 `json:"drain"`
	Total    float64 `json:"total"`
	Net      float64 `json:"net"`
}

// Rainfall holds the day's rainfall reading. Start and Stop are entered
// free-form and kept verbatim; nil means the field was left blank.
type Rainfall struct {
	AmountMM float64 `json:"amountMm"`
	Start    *string `json:"start,omitempty"`
	Stop     *string `json:"stop,omitempty"`
	Diff     float64 `json:"diff"`
}

// PowerCut holds the day's power outage readings. CumulativeHours is a
// running total maintained by the submitter, not computed here.
type PowerCut struct {
	On              *string `json:"on,omitempty"`
	Off             *string `json:"off,omitempty"`
	Diff            float64 `json:"diff"`
	TotalHours      float64 `json:"totalHrs"`
	CumulativeHours float64 `json:"cumulativeHrs"`
}

// Report is one submitted day's full set of quarry operational readings.
// There is no update or delete path: corrections are entered as a new row.
type Report struct {
	ID         uuid.UUID              `json:"id"`
	ReportDate *time.Time             `json:"reportDate,omitempty"`
	DayNumber  int                    `json:"dayNumber"`
	Pumps      [PumpCount]PumpReading `json:"pumps"`
	Level      QuarryLevel            `json:"quarryLevel"`
	Inflow     Inflow                 `json:"inflow"`
	Rainfall   Rainfall               `json:"rainfall"`
	PowerCut   PowerCut               `json:"powerCut"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// DateLabel formats the report date for chart axes and tables.
func (r Report) DateLabel() string {
	if r.ReportDate == nil {
		return ""
	}
	return r.ReportDate.Format("2006-01-02")
}

// ReportFromForm builds a Report from a submitted form. Every numeric field
// goes through the tolerant coercion and defaults to 0; the four time-of-day
// fields become NULL when blank. Only day_number and a malformed report_date
// can reject the submission.
func ReportFromForm(form url.Values) (*Report, error) {
	day, err := utils.ParseDayNumber(form.Get("day_number"))
	if err != nil {
		return nil, err
	}

	r := &Report{DayNumber: day}

	if raw := form.Get("report_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("report_date %q is not a valid date", raw)
		}
		r.ReportDate = &d
	}

	for i := 0; i < PumpCount; i++ {
		n := i + 1
		r.Pumps[i] = PumpReading{
			Name:        form.Get(fmt.Sprintf("pump_name_%d", n)),
			RunHours:    utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("run_hrs_%d", n)), 0),
			Amperage:    utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("amp_%d", n)), 0),
			PressureKsc: utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("pr_ksc_%d", n)), 0),
			PowerKW:     utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("power_drawn_kw_%d", n)), 0),
			FlowM3Hr:    utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("flow_m3hr_%d", n)), 0),
			Volume:      utils.ParseFloatOrDefault(form.Get(fmt.Sprintf("volume_%d", n)), 0),
		}
	}

	r.Level = QuarryLevel{
		Previous: utils.ParseFloatOrDefault(form.Get("quarry_lvl_previous"), 0),
		Today:    utils.ParseFloatOrDefault(form.Get("quarry_lvl_today"), 0),
		Change:   utils.ParseFloatOrDefault(form.Get("quarry_lvl_change"), 0),
	}
	r.Inflow = Inflow{
		Series2F: utils.ParseFloatOrDefault(form.Get("series2f_inflow"), 0),
		Series2A: utils.ParseFloatOrDefault(form.Get("series2a_inflow"), 0),
		Drain:    utils.ParseFloatOrDefault(form.Get("drain_inflow"), 0),
		Total:    utils.ParseFloatOrDefault(form.Get("total_inflow"), 0),
		Net:      utils.ParseFloatOrDefault(form.Get("net_flow"), 0),
	}
	r.Rainfall = Rainfall{
		AmountMM: utils.ParseFloatOrDefault(form.Get("rainfall_mm"), 0),
		Start:    utils.NullableString(form.Get("rainfall_start")),
		Stop:     utils.NullableString(form.Get("rainfall_stop")),
		Diff:     utils.ParseFloatOrDefault(form.Get("rainfall_diff"), 0),
	}
	r.PowerCut = PowerCut{
		On:              utils.NullableString(form.Get("power_cut_on")),
		Off:             utils.NullableString(form.Get("power_cut_off")),
		Diff:            utils.ParseFloatOrDefault(form.Get("power_cut_diff"), 0),
		TotalHours:      utils.ParseFloatOrDefault(form.Get("power_cut_total_hrs"), 0),
		CumulativeHours: utils.ParseFloatOrDefault(form.Get("power_cut_cum_hrs"), 0),
	}

	return r, nil
}
