package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the backend of the record store.
	DatabaseBackend string

	// VariantName identifies one leaderboard schema.
	VariantName string

	// Formula selects how the aggregate score of a record is derived.
	Formula string

	// FieldKind classifies a leaderboard field for sorting, formatting and storage.
	FieldKind string

	// Direction is the sort direction of a leaderboard column.
	Direction string

	// BadgeTier is the decoration shown next to the top three ranks.
	BadgeTier string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
)

// All leaderboard variants supported.
const (
	ModelsVariant   VariantName = "models"
	LogicKorVariant VariantName = "logickor"
	RAGVariant      VariantName = "rag"
)

// All aggregate formulas supported.
const (
	FlatMean     Formula = "flat_mean"      // sum / N over the score fields
	DomainSum    Formula = "domain_sum"     // sum over the domain score fields
	TwoLevelMean Formula = "two_level_mean" // mean of per-category (singleton+multiturn)/2
)

// All field kinds supported.
const (
	RankKind      FieldKind = "rank"
	NameKind      FieldKind = "name"
	TextKind      FieldKind = "text"
	ScoreKind     FieldKind = "score"
	PairKind      FieldKind = "pair"
	SplitKind     FieldKind = "split" // mean of one half across all pair fields
	MetricKind    FieldKind = "metric"
	AggregateKind FieldKind = "aggregate"
)

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Badge tiers for the podium ranks.
const (
	TrophyBadge   BadgeTier = "trophy"
	StarBadge     BadgeTier = "star"
	SparklesBadge BadgeTier = "sparkles"
	NoBadge       BadgeTier = ""
)

// Filter types understood by the pipeline besides a category value.
const (
	FilterAll   = "all"
	FilterTop10 = "top10"
)

// Pair halves, also used as the derived split field keys.
const (
	SingletonHalf = "singleton"
	MultiturnHalf = "multiturn"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// ValidDirections lists all valid sort directions.
var ValidDirections = map[Direction]struct{}{
	Asc:  {},
	Desc: {},
}

// IsNumeric reports whether values of this kind are numbers.
func (k FieldKind) IsNumeric() bool {
	switch k {
	case ScoreKind, PairKind, SplitKind, MetricKind, AggregateKind:
		return true
	default:
		return false
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}
