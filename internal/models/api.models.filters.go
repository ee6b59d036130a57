package models

// AlertFilters defines the available filter options for stored alerts
type AlertFilters struct {
	AnimalID string        `json:"animal_id" schema:"animal_id"`
	Kind     AlertKind     `json:"kind" schema:"kind"`
	Severity AlertSeverity `json:"severity" schema:"severity"`
}

// HistoryQuery selects a suffix of an animal's location history
type HistoryQuery struct {
	Since int64 `json:"since" schema:"since"` // ms since epoch, inclusive
}

// SummaryQuery selects the analytics window for a movement summary
type SummaryQuery struct {
	WindowDays int `json:"window_days" schema:"window_days"`
}
