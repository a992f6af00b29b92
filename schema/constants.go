package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for prediction history.
	DatabaseBackend string

	// Season is a categorical season value.
	Season string

	// Month is a categorical month value.
	Month string

	// Weather is a categorical weather severity tier.
	Weather string

	// Weekday is a categorical day-of-week value.
	Weekday string

	// EncodingOutcome tags how a categorical value was encoded.
	EncodingOutcome string

	// ComputeOutcome tags how a prediction was computed.
	ComputeOutcome string

	// OutcomeKind classifies the result of a service call.
	OutcomeKind string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Seasons. Fall has no indicator column and encodes as the baseline.
const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Months.
const (
	Jan Month = "Jan"
	Feb Month = "Feb"
	Mar Month = "Mar"
	Apr Month = "Apr"
	May Month = "May"
	Jun Month = "Jun"
	Jul Month = "Jul"
	Aug Month = "Aug"
	Sep Month = "Sep"
	Oct Month = "Oct"
	Nov Month = "Nov"
	Dec Month = "Dec"
)

// Weather tiers. Clear has no indicator column and encodes as the baseline.
const (
	Clear         Weather = "Clear"
	LightRainfall Weather = "Light_rainfall"
	Thunderstorm  Weather = "Thunderstorm"

	// LegacyThunderstorm is the spelling used by older web forms.
	LegacyThunderstorm Weather = "Thunderstrom"
)

// Weekdays.
const (
	Mon   Weekday = "Mon"
	Tue   Weekday = "Tue"
	Wed   Weekday = "Wed"
	Thurs Weekday = "Thurs"
	Fri   Weekday = "Fri"
	Sat   Weekday = "Sat"
	Sun   Weekday = "Sun"
)

// Encoding outcomes for a categorical field.
const (
	Matched  EncodingOutcome = "matched"
	Baseline EncodingOutcome = "baseline"
)

// Compute outcomes for a prediction.
const (
	ComputeOk           ComputeOutcome = "ok"
	ComputeFallbackZero ComputeOutcome = "fallback_zero"
)

// Outcome kinds for a service call.
const (
	OutcomeSuccess    OutcomeKind = "success"
	OutcomeValidation OutcomeKind = "validation"
	OutcomeMalformed  OutcomeKind = "malformed"
	OutcomeInternal   OutcomeKind = "internal"
)

// Request field names.
const (
	FieldYear        = "year"
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldWindspeed   = "windspeed"
	FieldSeason      = "season"
	FieldMonth       = "month"
	FieldWeather     = "weather"
	FieldWeekday     = "weekday"
	FieldHoliday     = "holiday"
	FieldWorkingDay  = "workingday"
)

// RequiredFields lists the required request fields in validation order.
var RequiredFields = []string{
	FieldYear,
	FieldTemperature,
	FieldHumidity,
	FieldWindspeed,
	FieldSeason,
	FieldMonth,
	FieldWeather,
	FieldWeekday,
}

// Defaults for optional request fields.
const (
	DefaultHoliday    = 0.0
	DefaultWorkingDay = 1.0
)

// Default scaling constants. These are approximations of the fitted scaler.
const (
	DefaultTempMax      = 40.0
	DefaultHumidityMax  = 100.0
	DefaultWindspeedMax = 50.0
	DefaultScaleFactor  = 1000.0
)

// AllSeasons lists seasons with an indicator column, in column order.
var AllSeasons = []Season{Spring, Summer, Winter}

// AllMonths lists months in column order.
var AllMonths = []Month{Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec}

// AllWeather lists weather tiers with an indicator column, in column order.
var AllWeather = []Weather{LightRainfall, Thunderstorm}

// AllWeekdays lists weekdays in column order.
var AllWeekdays = []Weekday{Mon, Tue, Wed, Thurs, Fri, Sat, Sun}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
