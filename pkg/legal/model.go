package legal

import "time"

// ProcessSummary is one judicial case as returned by the list endpoint.
// Immutable once mapped from the API payload.
type ProcessSummary struct {
	Code            string    `json:"internal_code"`
	Status          string    `json:"status"`
	Tag             string    `json:"tag,omitempty"`
	Registration    string    `json:"registration_number,omitempty"`
	Court           string    `json:"court,omitempty"`
	City            string    `json:"city,omitempty"`
	LastPerformance string    `json:"last_performance,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProcessSet partitions the processes of one client document.
// Slice order is the display order shown to the user, so it must stay
// stable for the lifetime of the menu built from it.
type ProcessSet struct {
	Active    []ProcessSummary `json:"active"`
	Finalized []ProcessSummary `json:"finalized"`
}

func (s *ProcessSet) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Active) + len(s.Finalized)
}

// Party is one litigant on either side of a process.
type Party struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
}

// Performance is one dated event in a process history (filing, hearing,
// ruling, ...).
type Performance struct {
	Type        string    `json:"performance_type"`
	Responsible string    `json:"responsible,omitempty"`
	Observation string    `json:"observation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProcessDetail is the full record behind a summary. Status and
// NextMilestone are derived from the performance history at mapping time.
type ProcessDetail struct {
	ProcessSummary
	Plaintiffs    []Party       `json:"plaintiffs"`
	Defendants    []Party       `json:"defendants"`
	Performances  []Performance `json:"performances"`
	NextMilestone string        `json:"next_milestone,omitempty"`
}
