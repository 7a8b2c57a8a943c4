// Package stats derives the stat-card entries shown at the top of the
// dashboard from a lead summary and an activity series.
package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leadflow/leadtop/internal/leads"
)

// Polarity is the display framing of a trend.
type Polarity int

const (
	PolarityNeutral Polarity = iota
	PolarityPositive
	PolarityNegative
	PolarityWarning
)

func (p Polarity) String() string {
	switch p {
	case PolarityPositive:
		return "positive"
	case PolarityNegative:
		return "negative"
	case PolarityWarning:
		return "warning"
	default:
		return "neutral"
	}
}

// Entry is one display-ready statistic.
type Entry struct {
	ID         string
	Title      string
	Raw        int
	Value      string
	TrendValue string
	TrendLabel string
	Polarity   Polarity
}

// Source selects where an entry's value comes from.
type Source int

const (
	SourceTotalLeads Source = iota
	SourceCallsMade
	SourceMeetings
	SourceSeriesSum
)

// Template is the static configuration of one stat slot.
type Template struct {
	ID         string
	Title      string
	Source     Source
	Suffix     string
	TrendValue string
	TrendLabel string
}

// Templates are the four slots, in display order. The trend values are
// static copy; they are not computed from data.
var Templates = [4]Template{
	{ID: "total-leads", Title: "Total Leads", Source: SourceTotalLeads, TrendValue: "+24", TrendLabel: "new this week"},
	{ID: "calls-made", Title: "Calls Made", Source: SourceCallsMade, TrendValue: "+18", TrendLabel: "vs yesterday"},
	{ID: "meetings", Title: "Meetings", Source: SourceMeetings, TrendValue: "+5", TrendLabel: "scheduled"},
	{ID: "conversion-rate", Title: "Conversion Rate", Source: SourceSeriesSum, Suffix: "%", TrendValue: "+3.2%", TrendLabel: "from meetings"},
}

// SeriesField names the activity field summed for the conversion-rate slot.
type SeriesField string

const (
	FieldLeads          SeriesField = "leads"
	FieldCallsCompleted SeriesField = "callsCompleted"
)

// ErrUnknownField is returned by ParseSeriesField.
var ErrUnknownField = errors.New("unknown activity field")

// ParseSeriesField accepts the JSON field names of leads.ActivityPoint.
func ParseSeriesField(name string) (SeriesField, error) {
	switch SeriesField(strings.TrimSpace(name)) {
	case FieldLeads, "":
		return FieldLeads, nil
	case FieldCallsCompleted:
		return FieldCallsCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Value returns the bound field of p.
func (f SeriesField) Value(p leads.ActivityPoint) int {
	if f == FieldCallsCompleted {
		return p.CallsCompleted
	}
	return p.Leads
}

// Aggregator computes entries with a configured series field.
type Aggregator struct {
	Field SeriesField
}

func NewAggregator(field SeriesField) Aggregator {
	return Aggregator{Field: field}
}

// Compute uses the default "leads" field binding.
func Compute(summary *leads.Summary, series []leads.ActivityPoint) []Entry {
	return Aggregator{Field: FieldLeads}.Compute(summary, series)
}

// Compute returns the four entries in Templates order. summary must not be
// nil; a nil series sums to zero.
func (a Aggregator) Compute(summary *leads.Summary, series []leads.ActivityPoint) []Entry {
	values := [...]int{
		SourceTotalLeads: summary.TotalLeads,
		SourceCallsMade:  summary.CallsMade,
		SourceMeetings:   summary.MeetingsScheduled,
		SourceSeriesSum:  a.sum(series),
	}

	out := make([]Entry, 0, len(Templates))
	for _, tpl := range Templates {
		raw := values[tpl.Source]
		out = append(out, Entry{
			ID:         tpl.ID,
			Title:      tpl.Title,
			Raw:        raw,
			Value:      strconv.Itoa(raw) + tpl.Suffix,
			TrendValue: tpl.TrendValue,
			TrendLabel: tpl.TrendLabel,
			Polarity:   ClassifyTrend(tpl.TrendValue),
		})
	}
	return out
}

func (a Aggregator) sum(series []leads.ActivityPoint) int {
	total := 0
	for _, p := range series {
		total += a.Field.Value(p)
	}
	return total
}

// ClassifyTrend maps a trend template to its polarity by its leading sign.
// A leading "-" is framed as a warning rather than a hard negative.
func ClassifyTrend(trend string) Polarity {
	switch {
	case strings.HasPrefix(trend, "+"):
		return PolarityPositive
	case strings.HasPrefix(trend, "-"):
		return PolarityWarning
	default:
		return PolarityNeutral
	}
}
