package cycle

import (
	"math"
	"sort"
	"time"

	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// CycleSummary describes one observed cycle.
type CycleSummary struct {
	Start time.Time
	// Length is zero for the ongoing cycle.
	Length     int
	PeriodDays int
	Ongoing    bool
}

// SymptomFrequency counts how often a symptom was logged.
type SymptomFrequency struct {
	Name       string
	Count      int
	Percentage float64
}

// SummarizeCycles returns observed cycles from log entries, most recent first.
func SummarizeCycles(entries []*entity.LogEntry) []CycleSummary {
	sorted := sortEntries(entries)
	starts := DetectPeriodStarts(sorted)

	flowDays := make(map[time.Time]bool, len(sorted))
	for _, e := range sorted {
		if e.HasFlow() {
			flowDays[valueobject.DateOf(e.Date)] = true
		}
	}

	summaries := make([]CycleSummary, 0, len(starts))
	for i, start := range starts {
		s := CycleSummary{Start: start, PeriodDays: 1}
		if i+1 < len(starts) {
			s.Length = valueobject.DaysBetween(start, starts[i+1])
		} else {
			s.Ongoing = true
		}

		days := 0
		for d := start; flowDays[d]; d = d.AddDate(0, 0, 1) {
			days++
		}
		if days > 0 {
			s.PeriodDays = days
		}

		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Start.After(summaries[j].Start)
	})
	return summaries
}

// SymptomFrequencies counts symptoms across logged days. Percentages are
// relative to the number of days with any data, rounded to one decimal.
// Results are ordered by count, then name.
func SymptomFrequencies(entries []*entity.LogEntry) []SymptomFrequency {
	counts := make(map[string]int)
	loggedDays := 0

	for _, e := range sortEntries(entries) {
		if !e.HasData() {
			continue
		}
		loggedDays++
		for _, name := range entity.NormalizeSymptoms(e.Symptoms) {
			counts[name]++
		}
	}

	result := make([]SymptomFrequency, 0, len(counts))
	for name, count := range counts {
		pct := 0.0
		if loggedDays > 0 {
			pct = math.Round(float64(count)/float64(loggedDays)*1000) / 10
		}
		result = append(result, SymptomFrequency{Name: name, Count: count, Percentage: pct})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}
