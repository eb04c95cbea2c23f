package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportRow is the flat storage shape of a Report: one wide row per
// submission, with the five pump slots spread across numbered columns the
// way the entry form names them. This file is the only place the structured
// Report and the 54-column row are converted into each other.
type ReportRow struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportDate *time.Time `gorm:"column:report_date;type:date;index" json:"reportDate"`
	DayNumber  int        `gorm:"column:day_number;not null" json:"dayNumber"`

	PumpName1     string  `gorm:"column:pump_name_1;not null;default:''"`
	RunHrs1       float64 `gorm:"column:run_hrs_1;not null;default:0"`
	Amp1          float64 `gorm:"column:amp_1;not null;default:0"`
	PrKsc1        float64 `gorm:"column:pr_ksc_1;not null;default:0"`
	PowerDrawnKw1 float64 `gorm:"column:power_drawn_kw_1;not null;default:0"`
	FlowM3Hr1     float64 `gorm:"column:flow_m3hr_1;not null;default:0"`
	Volume1       float64 `gorm:"column:volume_1;not null;default:0"`

	PumpName2     string  `gorm:"column:pump_name_2;not null;default:''"`
	RunHrs2       float64 `gorm:"column:run_hrs_2;not null;default:0"`
	Amp2          float64 `gorm:"column:amp_2;not null;default:0"`
	PrKsc2        float64 `gorm:"column:pr_ksc_2;not null;default:0"`
	PowerDrawnKw2 float64 `gorm:"column:power_drawn_kw_2;not null;default:0"`
	FlowM3Hr2     float64 `gorm:"column:flow_m3hr_2;not null;default:0"`
	Volume2       float64 `gorm:"column:volume_2;not null;default:0"`

	PumpName3     string  `gorm:"column:pump_name_3;not null;default:''"`
	RunHrs3       float64 `gorm:"column:run_hrs_3;not null;default:0"`
	Amp3          float64 `gorm:"column:amp_3;not null;default:0"`
	PrKsc3        float64 `gorm:"column:pr_ksc_3;not null;default:0"`
	PowerDrawnKw3 float64 `gorm:"column:power_drawn_kw_3;not null;default:0"`
	FlowM3Hr3     float64 `gorm:"column:flow_m3hr_3;not null;default:0"`
	Volume3       float64 `gorm:"column:volume_3;not null;default:0"`

	PumpName4     string  `gorm:"column:pump_name_4;not null;default:''"`
	RunHrs4       float64 `gorm:"column:run_hrs_4;not null;default:0"`
	Amp4          float64 `gorm:"column:amp_4;not null;default:0"`
	PrKsc4        float64 `gorm:"column:pr_ksc_4;not null;default:0"`
	PowerDrawnKw4 float64 `gorm:"column:power_drawn_kw_4;not null;default:0"`
	FlowM3Hr4     float64 `gorm:"column:flow_m3hr_4;not null;default:0"`
	Volume4       float64 `gorm:"column:volume_4;not null;default:0"`

	PumpName5     string  `gorm:"column:pump_name_5;not null;default:''"`
	RunHrs5       float64 `gorm:"column:run_hrs_5;not null;default:0"`
	Amp5          float64 `gorm:"column:amp_5;not null;default:0"`
	PrKsc5        float64 `gorm:"column:pr_ksc_5;not null;default:0"`
	PowerDrawnKw5 float64 `gorm:"column:power_drawn_kw_5;not null;default:0"`
	FlowM3Hr5     float64 `gorm:"column:flow_m3hr_5;not null;default:0"`
	Volume5       float64 `gorm:"column:volume_5;not null;default:0"`

	QuarryLvlPrevious float64 `gorm:"column:quarry_lvl_previous;not null;default:0"`
	QuarryLvlToday    float64 `gorm:"column:quarry_lvl_today;not null;default:0"`
	QuarryLvlChange   float64 `gorm:"column:quarry_lvl_change;not null;default:0"`

	Series2fInflow float64 `gorm:"column:series2f_inflow;not null;default:0"`
	Series2aInflow float64 `gorm:"column:series2a_inflow;not null;default:0"`
	DrainInflow    float64 `gorm:"column:drain_inflow;not null;default:0"`
	TotalInflow    float64 `gorm:"column:total_inflow;not null;default:0"`
	NetFlow        float64 `gorm:"column:net_flow;not null;default:0"`

	RainfallMm    float64 `gorm:"column:rainfall_mm;not null;default:0"`
	RainfallStart *string `gorm:"column:rainfall_start"`
	RainfallStop  *string `gorm:"column:rainfall_stop"`
	RainfallDiff  float64 `gorm:"column:rainfall_diff;not null;default:0"`

	PowerCutOn       *string `gorm:"column:power_cut_on"`
	PowerCutOff      *string `gorm:"column:power_cut_off"`
	PowerCutDiff     float64 `gorm:"column:power_cut_diff;not null;default:0"`
	PowerCutTotalHrs float64 `gorm:"column:power_cut_total_hrs;not null;default:0"`
	PowerCutCumHrs   float64 `gorm:"column:power_cut_cum_hrs;not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ReportRow) TableName() string {
	return "quarry_reports"
}

// Flatten spreads a Report across the numbered storage columns.
func Flatten(r *Report) ReportRow {
	row := ReportRow{
		ID:         r.ID,
		ReportDate: r.ReportDate,
		DayNumber:  r.DayNumber,

		QuarryLvlPrevious: r.Level.Previous,
		QuarryLvlToday:    r.Level.Today,
		QuarryLvlChange:   r.Level.Change,

		Series2fInflow: r.Inflow.Series2F,
		Series2aInflow: r.Inflow.Series2A,
		DrainInflow:    r.Inflow.Drain,
		TotalInflow:    r.Inflow.Total,
		NetFlow:        r.Inflow.Net,

		RainfallMm:    r.Rainfall.AmountMM,
		RainfallStart: r.Rainfall.Start,
		RainfallStop:  r.Rainfall.Stop,
		RainfallDiff:  r.Rainfall.Diff,

		PowerCutOn:       r.PowerCut.On,
		PowerCutOff:      r.PowerCut.Off,
		PowerCutDiff:     r.PowerCut.Diff,
		PowerCutTotalHrs: r.PowerCut.TotalHours,
		PowerCutCumHrs:   r.PowerCut.CumulativeHours,

		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for i, dst := range row.pumpSlots() {
		p := r.Pumps[i]
		*dst.name = p.Name
		*dst.runHrs = p.RunHours
		*dst.amp = p.Amperage
		*dst.prKsc = p.PressureKsc
		*dst.powerKw = p.PowerKW
		*dst.flow = p.FlowM3Hr
		*dst.volume = p.Volume
	}
	return row
}

// Unflatten rebuilds the structured Report from a storage row.
func Unflatten(row *ReportRow) Report {
	r := Report{
		ID:         row.ID,
		ReportDate: row.ReportDate,
		DayNumber:  row.DayNumber,

		Level: QuarryLevel{
			Previous: row.QuarryLvlPrevious,
			Today:    row.QuarryLvlToday,
			Change:   row.QuarryLvlChange,
		},
		Inflow: Inflow{
			Series2F: row.Series2fInflow,
			Series2A: row.Series2aInflow,
			Drain:    row.DrainInflow,
			Total:    row.TotalInflow,
			Net:      row.NetFlow,
		},
		Rainfall: Rainfall{
			AmountMM: row.RainfallMm,
			Start:    row.RainfallStart,
			Stop:     row.RainfallStop,
			Diff:     row.RainfallDiff,
		},
		PowerCut: PowerCut{
			On:              row.PowerCutOn,
			Off:             row.PowerCutOff,
			Diff:            row.PowerCutDiff,
			TotalHours:      row.PowerCutTotalHrs,
			CumulativeHours: row.PowerCutCumHrs,
		},

		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for i, src := range row.pumpSlots() {
		r.Pumps[i] = PumpReading{
			Name:        *src.name,
			RunHours:    *src.runHrs,
			Amperage:    *src.amp,
			PressureKsc: *src.prKsc,
			PowerKW:     *src.powerKw,
			FlowM3Hr:    *src.flow,
			Volume:      *src.volume,
		}
	}
	return r
}

// pumpSlot points at one pump's group of numbered columns so Flatten and
// Unflatten cannot disagree on the column-to-slot mapping.
type pumpSlot struct {
	name    *string
	runHrs  *float64
	amp     *float64
	prKsc   *float64
	powerKw *float64
	flow    *float64
	volume  *float64
}

func (row *ReportRow) pumpSlots() [PumpCount]pumpSlot {
	return [PumpCount]pumpSlot{
		{&row.PumpName1, &row.RunHrs1, &row.Amp1, &row.PrKsc1, &row.PowerDrawnKw1, &row.FlowM3Hr1, &row.Volume1},
		{&row.PumpName2, &row.RunHrs2, &row.Amp2, &row.PrKsc2, &row.PowerDrawnKw2, &row.FlowM3Hr2, &row.Volume2},
		{&row.PumpName3, &row.RunHrs3, &row.Amp3, &row.PrKsc3, &row.PowerDrawnKw3, &row.FlowM3Hr3, &row.Volume3},
		{&row.PumpName4, &row.RunHrs4, &row.Amp4, &row.PrKsc4, &row.PowerDrawnKw4, &row.FlowM3Hr4, &row.Volume4},
		{&row.PumpName5, &row.RunHrs5, &row.Amp5, &row.PrKsc5, &row.PowerDrawnKw5, &row.FlowM3Hr5, &row.Volume5},
	}
}
