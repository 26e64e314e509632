package stub

import (
	"strings"
)

// City is one location the stub knows about. Temperatures are derived from
// BaseTemp, in Celsius.
type City struct {
	Name       string
	Country    string
	Region     string
	Lat        string
	Lon        string
	TimezoneID string
	// UTCOffset is in hours, formatted the way the provider does ("-4.0").
	UTCOffset string
	BaseTemp  float64
	Aliases   []string
}

var DefaultCatalog = []City{
	{
		Name: "London", Country: "United Kingdom", Region: "City of London, Greater London",
		Lat: "51.517", Lon: "-0.106", TimezoneID: "Europe/London", UTCOffset: "1.0", BaseTemp: 14,
	},
	{
		Name: "New York", Country: "United States of America", Region: "New York",
		Lat: "40.714", Lon: "-74.006", TimezoneID: "America/New_York", UTCOffset: "-4.0", BaseTemp: 18,
		Aliases: []string{"NYC", "New York City"},
	},
	{
		Name: "Tokyo", Country: "Japan", Region: "Tokyo",
		Lat: "35.690", Lon: "139.692", TimezoneID: "Asia/Tokyo", UTCOffset: "9.0", BaseTemp: 20,
	},
	{
		Name: "Paris", Country: "France", Region: "Ile-de-France",
		Lat: "48.867", Lon: "2.333", TimezoneID: "Europe/Paris", UTCOffset: "2.0", BaseTemp: 16,
	},
	{
		Name: "Cluj-Napoca", Country: "Romania", Region: "Cluj",
		Lat: "46.767", Lon: "23.600", TimezoneID: "Europe/Bucharest", UTCOffset: "3.0", BaseTemp: 11,
		Aliases: []string{"Cluj"},
	},
}

// lookup resolves "Name" or "Name, Country" against the catalog, ignoring case.
func lookup(cities []City, query string) (City, bool) {
	name, country, _ := strings.Cut(query, ",")
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)

	for _, c := range cities {
		if country != "" && !strings.EqualFold(country, c.Country) {
			continue
		}
		if strings.EqualFold(name, c.Name) {
			return c, true
		}
		for _, alias := range c.Aliases {
			if strings.EqualFold(name, alias) {
				return c, true
			}
		}
	}

	return City{}, false
}
