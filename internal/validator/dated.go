package validator

import (
	"time"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/models"
)

var historicalSection = models.Section{Key: "historical", Fields: models.DailyFields, Dated: true}
var forecastSection = models.Section{Key: "forecast", Fields: models.DailyFields, Dated: true}

// ValidateHistoricalDate checks that the historical section holds a valid
// entry for the requested date.
func ValidateHistoricalDate(payload map[string]any, date string) error {
	section, err := datedSection(payload, historicalSection)
	if err != nil {
		return err
	}
	if _, ok := section[date]; !ok {
		return missing("historical." + date)
	}
	return validateEntry(section, historicalSection, date)
}

// ValidateForecastDays checks that the forecast section holds exactly days
// entries, each keyed by its own calendar date.
func ValidateForecastDays(payload map[string]any, days int) error {
	section, err := datedSection(payload, forecastSection)
	if err != nil {
		return err
	}
	if len(section) != days {
		return apierr.Field(apierr.KindResponseStructure, "forecast",
			"expected %d forecast entries, got %d", days, len(section))
	}
	for date := range section {
		if err := validateEntry(section, forecastSection, date); err != nil {
			return err
		}
	}
	return nil
}

func datedSection(payload map[string]any, s models.Section) (map[string]any, error) {
	raw, ok := payload[s.Key]
	if !ok {
		return nil, missing(s.Key)
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, wrongType(s.Key, models.TypeObject, raw)
	}
	return section, nil
}

func validateEntry(section map[string]any, s models.Section, date string) error {
	path := s.Key + "." + date
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apierr.Field(apierr.KindResponseStructure, path, "entry key %q is not a YYYY-MM-DD date", date)
	}

	entry, ok := section[date].(map[string]any)
	if !ok {
		return wrongType(path, models.TypeObject, section[date])
	}
	if err := checkTypes(entry, path, s.Fields); err != nil {
		return err
	}
	if got := entry["date"].(string); got != date {
		return apierr.Field(apierr.KindResponseStructure, path+".date",
			"entry keyed %q reports date %q", date, got)
	}
	return nil
}
