package leads

import (
	"time"
)

// Snapshot holds everything the dashboard renders for one refresh.
type Snapshot struct {
	Timestamp time.Time
	Summary   Summary
	Activity  []ActivityPoint
	Leads     []Lead
	Host      HostInfo
}

// Summary is the headline lead counters.
type Summary struct {
	TotalLeads        int    `json:"totalLeads"`
	CallsMade         int    `json:"callsMade"`
	MeetingsScheduled int    `json:"meetingsScheduled"`
	LastUpdated       string `json:"lastUpdated"`
}

// ActivityPoint is one bucket (usually a weekday) of the activity series.
type ActivityPoint struct {
	Name           string `json:"name"`
	Leads          int    `json:"leads"`
	CallsCompleted int    `json:"callsCompleted"`
}

// Lead is one row of the recent-leads table.
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Score   int    `json:"score"` // 0-100
	Source  string `json:"source"`
}

// HostInfo describes the machine serving the dashboard.
type HostInfo struct {
	Hostname string
	Uptime   uint64 // seconds
}

// Provider defines the interface for fetching dashboard data.
type Provider interface {
	Init() error
	GetSnapshot() (*Snapshot, error)
	Shutdown()
}
