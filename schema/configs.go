package schema

// AnalysisOptions tunes the pure analysis pass. Zero values are replaced by
// the package defaults, so an empty Options struct is always valid.
type AnalysisOptions struct {
	// AnomalySigma is the k in mean + k*stddev per-hour anomaly baselines.
	AnomalySigma float64

	// NightAlertRatio is the night-mean over period-peak fraction above
	// which the night consumption alert fires.
	NightAlertRatio float64

	// EmissionFactor converts kWh to kg of CO2. Regionally overridable.
	EmissionFactor float64
}

// Normalized returns a copy with defaults applied to zero fields.
func (o AnalysisOptions) Normalized() AnalysisOptions {
	if o.AnomalySigma <= 0 {
		o.AnomalySigma = DefaultAnomalySigma
	}
	if o.NightAlertRatio <= 0 {
		o.NightAlertRatio = DefaultNightAlertRatio
	}
	if o.EmissionFactor <= 0 {
		o.EmissionFactor = DefaultEmissionFactor
	}
	return o
}

// CatalogBackend identifies the database engine behind the history catalog.
type CatalogBackend string

// Supported catalog backends.
const (
	SQLiteBackend     CatalogBackend = "sqlite"
	MySQLBackend      CatalogBackend = "mysql"
	PostgreSQLBackend CatalogBackend = "postgresql"
	NoneBackend       CatalogBackend = "none"
)

// ValidCatalogBackends is the allow-list for backend validation.
var ValidCatalogBackends = map[CatalogBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// OutputMode selects how CLI surfaces render results.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// ValidOutputModes is the allow-list for output validation.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}
