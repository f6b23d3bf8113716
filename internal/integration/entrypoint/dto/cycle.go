package dto

import (
	"github.com/caresync/backend/internal/application/usecase/cycle"
	domaincycle "github.com/caresync/backend/internal/domain/cycle"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// ProfileResponse represents the effective cycle profile.
type ProfileResponse struct {
	AverageCycleLength int    `json:"average_cycle_length"`
	PeriodDuration     int    `json:"period_duration"`
	LutealPhaseLength  int    `json:"luteal_phase_length"`
	LastPeriodStart    string `json:"last_period_start"`
}

// DayInfoResponse represents one day relative to the cycle.
type DayInfoResponse struct {
	Date                string `json:"date"`
	CycleDay            int    `json:"cycle_day"`
	Phase               string `json:"phase"`
	IsPMS               bool   `json:"is_pms"`
	DaysUntilNextPeriod int    `json:"days_until_next_period"`
}

// PredictionResponse represents the forward-looking estimates.
type PredictionResponse struct {
	NextPeriodDate           string  `json:"next_period_date"`
	NextPeriodProbability    float64 `json:"next_period_probability"`
	OvulationDate            string  `json:"ovulation_date"`
	OvulationProbability     float64 `json:"ovulation_probability"`
	FertileWindowStart       string  `json:"fertile_window_start"`
	FertileWindowEnd         string  `json:"fertile_window_end"`
	FertileWindowProbability float64 `json:"fertile_window_probability"`
}

// DashboardHistoryResponse summarizes the history behind the prediction.
type DashboardHistoryResponse struct {
	SampleSize      int     `json:"sample_size"`
	RegularityScore float64 `json:"regularity_score"`
	CycleLengths    []int   `json:"cycle_lengths"`
}

// DashboardResponse represents the body of GET /dashboard.
type DashboardResponse struct {
	Today               string                   `json:"today"`
	Day                 DayInfoResponse          `json:"day"`
	Prediction          PredictionResponse       `json:"prediction"`
	Profile             ProfileResponse          `json:"profile"`
	History             DashboardHistoryResponse `json:"history"`
	DaysSinceLastPeriod int                      `json:"days_since_last_period"`
	InsufficientHistory bool                     `json:"insufficient_history"`
	IrregularCycle      bool                     `json:"irregular_cycle"`
	DataStale           bool                     `json:"data_stale"`
	CycleLooksLong      bool                     `json:"cycle_looks_long"`
}

// CalendarDayResponse represents one calendar cell.
type CalendarDayResponse struct {
	Date              string `json:"date"`
	InMonth           bool   `json:"in_month"`
	IsToday           bool   `json:"is_today"`
	CycleDay          int    `json:"cycle_day"`
	Phase             string `json:"phase"`
	IsPMS             bool   `json:"is_pms"`
	IsLoggedPeriod    bool   `json:"is_logged_period"`
	IsPredictedPeriod bool   `json:"is_predicted_period"`
	IsFertile         bool   `json:"is_fertile"`
	IsOvulation       bool   `json:"is_ovulation"`
	HasLog            bool   `json:"has_log"`
}

// CalendarResponse represents the body of GET /calendar.
type CalendarResponse struct {
	Month     string                `json:"month"`
	GridStart string                `json:"grid_start"`
	GridEnd   string                `json:"grid_end"`
	Today     string                `json:"today"`
	Days      []CalendarDayResponse `json:"days"`
	Profile   ProfileResponse       `json:"profile"`
}

// PhaseWindowResponse represents the cycle days a phase covers.
type PhaseWindowResponse struct {
	Phase    string `json:"phase"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

// PhaseResponse represents the body of GET /cycle/phase.
type PhaseResponse struct {
	Day     DayInfoResponse       `json:"day"`
	Windows []PhaseWindowResponse `json:"windows"`
	Profile ProfileResponse       `json:"profile"`
}

// CycleSummaryResponse represents one observed cycle.
type CycleSummaryResponse struct {
	Start      string `json:"start"`
	Length     *int   `json:"length"`
	PeriodDays int    `json:"period_days"`
	Ongoing    bool   `json:"ongoing"`
}

// SymptomFrequencyResponse represents how often a symptom was logged.
type SymptomFrequencyResponse struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// HistoryResponse represents the body of GET /cycle/history.
type HistoryResponse struct {
	Cycles                []CycleSummaryResponse     `json:"cycles"`
	AverageCycleLength    int                        `json:"average_cycle_length"`
	AveragePeriodDuration int                        `json:"average_period_duration"`
	RegularityScore       float64                    `json:"regularity_score"`
	SampleSize            int                        `json:"sample_size"`
	IrregularCycle        bool                       `json:"irregular_cycle"`
	InsufficientHistory   bool                       `json:"insufficient_history"`
	LoggedDays            int                        `json:"logged_days"`
	Symptoms              []SymptomFrequencyResponse `json:"symptoms"`
}

// ToProfileResponse converts a profile summary to a ProfileResponse DTO.
func ToProfileResponse(p cycle.ProfileSummary) ProfileResponse {
	return ProfileResponse{
		AverageCycleLength: p.AverageCycleLength,
		PeriodDuration:     p.PeriodDuration,
		LutealPhaseLength:  p.LutealPhaseLength,
		LastPeriodStart:    valueobject.FormatDate(p.LastPeriodStart),
	}
}

// ToDayInfoResponse converts a DayInfo to a DayInfoResponse DTO.
func ToDayInfoResponse(d domaincycle.DayInfo) DayInfoResponse {
	return DayInfoResponse{
		Date:                valueobject.FormatDate(d.Date),
		CycleDay:            d.CycleDay,
		Phase:               string(d.Phase),
		IsPMS:               d.IsPMS,
		DaysUntilNextPeriod: d.DaysUntilNextPeriod,
	}
}

// ToPredictionResponse converts a PredictionResult to a PredictionResponse DTO.
func ToPredictionResponse(p valueobject.PredictionResult) PredictionResponse {
	return PredictionResponse{
		NextPeriodDate:           valueobject.FormatDate(p.NextPeriodDate),
		NextPeriodProbability:    p.NextPeriodProbability,
		OvulationDate:            valueobject.FormatDate(p.OvulationDate),
		OvulationProbability:     p.OvulationProbability,
		FertileWindowStart:       valueobject.FormatDate(p.FertileWindowStart),
		FertileWindowEnd:         valueobject.FormatDate(p.FertileWindowEnd),
		FertileWindowProbability: p.FertileWindowProbability,
	}
}

// ToDashboardResponse converts a dashboard output to a DashboardResponse DTO.
func ToDashboardResponse(out *cycle.DashboardOutput) DashboardResponse {
	lengths := out.History.CycleLengths
	if lengths == nil {
		lengths = []int{}
	}
	return DashboardResponse{
		Today:      valueobject.FormatDate(out.Today),
		Day:        ToDayInfoResponse(out.Day),
		Prediction: ToPredictionResponse(out.Prediction),
		Profile:    ToProfileResponse(out.Profile),
		History: DashboardHistoryResponse{
			SampleSize:      out.History.SampleSize,
			RegularityScore: out.History.RegularityScore,
			CycleLengths:    lengths,
		},
		DaysSinceLastPeriod: out.DaysSinceLastPeriod,
		InsufficientHistory: out.InsufficientHistory,
		IrregularCycle:      out.IrregularCycle,
		DataStale:           out.DataStale,
		CycleLooksLong:      out.CycleLooksLong,
	}
}

// ToCalendarResponse converts a calendar output to a CalendarResponse DTO.
func ToCalendarResponse(out *cycle.GetCalendarOutput) CalendarResponse {
	days := make([]CalendarDayResponse, len(out.Days))
	for i, d := range out.Days {
		days[i] = CalendarDayResponse{
			Date:              valueobject.FormatDate(d.Date),
			InMonth:           d.InMonth,
			IsToday:           d.IsToday,
			CycleDay:          d.CycleDay,
			Phase:             string(d.Phase),
			IsPMS:             d.IsPMS,
			IsLoggedPeriod:    d.IsLoggedPeriod,
			IsPredictedPeriod: d.IsPredictedPeriod,
			IsFertile:         d.IsFertile,
			IsOvulation:       d.IsOvulation,
			HasLog:            d.HasLog,
		}
	}
	return CalendarResponse{
		Month:     out.Month.Format("2006-01"),
		GridStart: valueobject.FormatDate(out.GridStart),
		GridEnd:   valueobject.FormatDate(out.GridEnd),
		Today:     valueobject.FormatDate(out.Today),
		Days:      days,
		Profile:   ToProfileResponse(out.Profile),
	}
}

// ToPhaseResponse converts a phase output to a PhaseResponse DTO.
func ToPhaseResponse(out *cycle.GetPhaseOutput) PhaseResponse {
	windows := make([]PhaseWindowResponse, len(out.Windows))
	for i, w := range out.Windows {
		windows[i] = PhaseWindowResponse{Phase: string(w.Phase), StartDay: w.StartDay, EndDay: w.EndDay}
	}
	return PhaseResponse{
		Day:     ToDayInfoResponse(out.Day),
		Windows: windows,
		Profile: ToProfileResponse(out.Profile),
	}
}

// ToHistoryResponse converts a history output to a HistoryResponse DTO.
func ToHistoryResponse(out *cycle.GetHistoryOutput) HistoryResponse {
	cycles := make([]CycleSummaryResponse, len(out.Cycles))
	for i, c := range out.Cycles {
		item := CycleSummaryResponse{
			Start:      valueobject.FormatDate(c.Start),
			PeriodDays: c.PeriodDays,
			Ongoing:    c.Ongoing,
		}
		if !c.Ongoing {
			length := c.Length
			item.Length = &length
		}
		cycles[i] = item
	}

	symptoms := make([]SymptomFrequencyResponse, len(out.Symptoms))
	for i, s := range out.Symptoms {
		symptoms[i] = SymptomFrequencyResponse{Name: s.Name, Count: s.Count, Percentage: s.Percentage}
	}

	return HistoryResponse{
		Cycles:                cycles,
		AverageCycleLength:    out.AverageCycleLength,
		AveragePeriodDuration: out.AveragePeriodDuration,
		RegularityScore:       out.RegularityScore,
		SampleSize:            out.SampleSize,
		IrregularCycle:        out.IrregularCycle,
		InsufficientHistory:   out.InsufficientHistory,
		LoggedDays:            out.LoggedDays,
		Symptoms:              symptoms,
	}
}
