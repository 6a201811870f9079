package domain

// SortKey orders fingerprint rows.
type SortKey string

const (
	SortBySeverity  SortKey = "severity"
	SortByFlags     SortKey = "flags"
	SortByPoor      SortKey = "poor"
	SortByRetrieved SortKey = "retrieved"
)

var SortKeys = []SortKey{SortBySeverity, SortByFlags, SortByPoor, SortByRetrieved}

func (k SortKey) Valid() bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// InteractionMode controls whether non-matching marks are dimmed or removed.
type InteractionMode string

const (
	ModeHighlight InteractionMode = "highlight"
	ModeFilter    InteractionMode = "filter"
)

func (m InteractionMode) Valid() bool {
	return m == ModeHighlight || m == ModeFilter
}
