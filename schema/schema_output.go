package schema

// DisplayCell is one formatted value of a display row.
type DisplayCell struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   string `json:"value"`
	Numeric bool   `json:"numeric"`
}

// DisplayRow is a record formatted for rendering.
type DisplayRow struct {
	ID        string        `json:"id"`
	Rank      int           `json:"rank"`
	RankLabel string        `json:"rank_label"`
	Badge     BadgeTier     `json:"badge,omitempty"`
	Name      string        `json:"name"`
	Cells     []DisplayCell `json:"cells"`
}

// Cell returns the cell with the given key.
func (r DisplayRow) Cell(key string) (DisplayCell, bool) {
	for _, c := range r.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return DisplayCell{}, false
}

// BoardSummary holds the metric cards of one leaderboard.
type BoardSummary struct {
	Variant      VariantName        `json:"variant"`
	Title        string             `json:"title"`
	Records      int                `json:"records"`
	Average      float64            `json:"average"`
	TopName      string             `json:"top_name"`
	TopAggregate float64            `json:"top_aggregate"`
	MetricTotals map[string]float64 `json:"metric_totals,omitempty"`
	Unit         string             `json:"unit,omitempty"`
	Precision    int                `json:"precision"`
}

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	Target        string           `json:"target,omitempty"`
	SchemaVersion uint             `json:"schema_version"`
	Tables        map[string]int64 `json:"tables"`
}
