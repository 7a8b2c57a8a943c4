package leads

import (
	"math/rand"
	"os"
	"time"
)

// Fixture values shown in mock mode.
var (
	MockSummary = Summary{
		TotalLeads:        847,
		CallsMade:         342,
		MeetingsScheduled: 67,
		LastUpdated:       "2 minutes ago",
	}

	MockActivity = []ActivityPoint{
		{Name: "Mon", Leads: 12, CallsCompleted: 45},
		{Name: "Tue", Leads: 19, CallsCompleted: 52},
		{Name: "Wed", Leads: 15, CallsCompleted: 48},
		{Name: "Thu", Leads: 22, CallsCompleted: 61},
		{Name: "Fri", Leads: 18, CallsCompleted: 55},
		{Name: "Sat", Leads: 8, CallsCompleted: 20},
		{Name: "Sun", Leads: 5, CallsCompleted: 12},
	}

	MockLeads = []Lead{
		{ID: "L-1001", Name: "Sarah Chen", Company: "Northwind", Status: "qualified", Score: 92, Source: "referral"},
		{ID: "L-1002", Name: "Marcus Webb", Company: "Contoso", Status: "contacted", Score: 78, Source: "website"},
		{ID: "L-1003", Name: "Priya Patel", Company: "Fabrikam", Status: "new", Score: 65, Source: "linkedin"},
		{ID: "L-1004", Name: "Diego Alvarez", Company: "Tailspin", Status: "meeting", Score: 88, Source: "event"},
		{ID: "L-1005", Name: "Emma Novak", Company: "Litware", Status: "new", Score: 41, Source: "website"},
		{ID: "L-1006", Name: "Kenji Sato", Company: "Adatum", Status: "qualified", Score: 83, Source: "referral"},
		{ID: "L-1007", Name: "Olivia Brooks", Company: "Proseware", Status: "lost", Score: 22, Source: "cold-call"},
		{ID: "L-1008", Name: "Noah Fischer", Company: "Wingtip", Status: "contacted", Score: 57, Source: "linkedin"},
		{ID: "L-1009", Name: "Amara Okafor", Company: "Woodgrove", Status: "meeting", Score: 90, Source: "event"},
		{ID: "L-1010", Name: "Lucas Moreau", Company: "Lamna", Status: "new", Score: 36, Source: "website"},
	}
)

// MockProvider serves the fixtures with a little drift on each refresh so the
// dashboard looks live.
type MockProvider struct {
	last Snapshot
	rng  *rand.Rand
}

func (m *MockProvider) Init() error {
	m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	hostname, _ := os.Hostname()
	m.last = Snapshot{
		Timestamp: time.Now(),
		Summary:   MockSummary,
		Activity:  append([]ActivityPoint(nil), MockActivity...),
		Leads:     append([]Lead(nil), MockLeads...),
		Host:      HostInfo{Hostname: hostname},
	}
	return nil
}

func (m *MockProvider) GetSnapshot() (*Snapshot, error) {
	if m.rng == nil {
		if err := m.Init(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	m.last.Timestamp = now

	// Counters only ever grow.
	m.last.Summary.TotalLeads += m.rng.Intn(2)
	m.last.Summary.CallsMade += m.rng.Intn(3)
	if m.rng.Intn(10) == 0 {
		m.last.Summary.MeetingsScheduled++
	}
	m.last.Summary.LastUpdated = now.Format("15:04:05")

	for i := range m.last.Leads {
		score := m.last.Leads[i].Score + m.rng.Intn(5) - 2
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		m.last.Leads[i].Score = score
	}

	out := m.last
	out.Activity = append([]ActivityPoint(nil), m.last.Activity...)
	out.Leads = append([]Lead(nil), m.last.Leads...)
	return &out, nil
}

func (m *MockProvider) Shutdown() {}
