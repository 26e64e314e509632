package models

// FieldType is the semantic type a response field must carry.
type FieldType int

const (
	// TypeString accepts any string, including the empty one.
	TypeString FieldType = iota
	TypeNonEmptyString
	// TypeNumber accepts JSON integers and floating point numbers.
	TypeNumber
	// TypeStringList is a non-empty ordered sequence of strings.
	TypeStringList
	TypeObject
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNonEmptyString:
		return "non-empty string"
	case TypeNumber:
		return "number"
	case TypeStringList:
		return "non-empty list of strings"
	case TypeObject:
		return "object"
	}
	return "unknown"
}

// Field is one required entry of a schema manifest. Path is relative to the
// object the manifest is applied to.
type Field struct {
	Path string
	Type FieldType
}

var RequestFields = []Field{
	{Path: "type", Type: TypeString},
	{Path: "query", Type: TypeNonEmptyString},
	{Path: "unit", Type: TypeNonEmptyString},
}

var LocationFields = []Field{
	{Path: "name", Type: TypeNonEmptyString},
	{Path: "country", Type: TypeNonEmptyString},
	{Path: "region", Type: TypeString},
	{Path: "lat", Type: TypeString},
	{Path: "lon", Type: TypeString},
	{Path: "timezone_id", Type: TypeString},
}

var CurrentFields = []Field{
	{Path: "temperature", Type: TypeNumber},
	{Path: "weather_descriptions", Type: TypeStringList},
	{Path: "wind_speed", Type: TypeNumber},
	{Path: "wind_degree", Type: TypeNumber},
	{Path: "pressure", Type: TypeNumber},
	{Path: "humidity", Type: TypeNumber},
	{Path: "cloudcover", Type: TypeNumber},
	{Path: "feelslike", Type: TypeNumber},
	{Path: "visibility", Type: TypeNumber},
}

// DailyFields applies to every dated entry of the historical and forecast
// sections.
var DailyFields = []Field{
	{Path: "date", Type: TypeNonEmptyString},
	{Path: "mintemp", Type: TypeNumber},
	{Path: "maxtemp", Type: TypeNumber},
	{Path: "avgtemp", Type: TypeNumber},
}

// Section is a top-level key of a response together with its manifest.
// Dated sections hold one DailyFields object per date key.
type Section struct {
	Key    string
	Fields []Field
	Dated  bool
}

// Schema is the static shape contract of one endpoint kind.
type Schema struct {
	Kind     Kind
	Sections []Section
}

var (
	requestSection  = Section{Key: "request", Fields: RequestFields}
	locationSection = Section{Key: "location", Fields: LocationFields}
)

var CurrentSchema = Schema{
	Kind: KindCurrent,
	Sections: []Section{
		requestSection,
		locationSection,
		{Key: "current", Fields: CurrentFields},
	},
}

var HistoricalSchema = Schema{
	Kind: KindHistorical,
	Sections: []Section{
		requestSection,
		locationSection,
		{Key: "historical", Fields: DailyFields, Dated: true},
	},
}

var ForecastSchema = Schema{
	Kind: KindForecast,
	Sections: []Section{
		requestSection,
		locationSection,
		{Key: "forecast", Fields: DailyFields, Dated: true},
	},
}

// SchemaFor returns the manifest of the given endpoint kind.
func SchemaFor(kind Kind) (Schema, bool) {
	switch kind {
	case KindCurrent:
		return CurrentSchema, true
	case KindHistorical:
		return HistoricalSchema, true
	case KindForecast:
		return ForecastSchema, true
	}
	return Schema{}, false
}
