package models

import (
	"sort"
)

type RequestInfo struct {
	Type     string `json:"type" example:"City"`
	Query    string `json:"query" example:"London, United Kingdom"`
	Language string `json:"language" example:"en"`
	Unit     string `json:"unit" example:"m"`
}

type Location struct {
	Name           string `json:"name" example:"London"`
	Country        string `json:"country" example:"United Kingdom"`
	Region         string `json:"region" example:"City of London, Greater London"`
	Lat            string `json:"lat" example:"51.517"`
	Lon            string `json:"lon" example:"-0.106"`
	TimezoneID     string `json:"timezone_id" example:"Europe/London"`
	Localtime      string `json:"localtime" example:"2024-12-24 10:15"`
	LocaltimeEpoch int64  `json:"localtime_epoch" example:"1735035300"`
	UTCOffset      string `json:"utc_offset" example:"0.0"`
}

type CurrentWeather struct {
	ObservationTime     string   `json:"observation_time" example:"10:15 AM"`
	Temperature         float64  `json:"temperature" example:"8"`
	WeatherCode         int      `json:"weather_code" example:"116"`
	WeatherIcons        []string `json:"weather_icons"`
	WeatherDescriptions []string `json:"weather_descriptions"`
	WindSpeed           float64  `json:"wind_speed" example:"13"`
	WindDegree          float64  `json:"wind_degree" example:"240"`
	WindDir             string   `json:"wind_dir" example:"WSW"`
	Pressure            float64  `json:"pressure" example:"1021"`
	Precip              float64  `json:"precip" example:"0"`
	Humidity            float64  `json:"humidity" example:"81"`
	Cloudcover          float64  `json:"cloudcover" example:"50"`
	Feelslike           float64  `json:"feelslike" example:"5"`
	UVIndex             float64  `json:"uv_index" example:"1"`
	Visibility          float64  `json:"visibility" example:"10"`
	IsDay               string   `json:"is_day" example:"yes"`
}

// DailyWeather is one dated entry of the historical or forecast section.
type DailyWeather struct {
	Date      string  `json:"date" example:"2024-12-24"`
	DateEpoch int64   `json:"date_epoch" example:"1735000000"`
	MinTemp   float64 `json:"mintemp" example:"3"`
	MaxTemp   float64 `json:"maxtemp" example:"7"`
	AvgTemp   float64 `json:"avgtemp" example:"5"`
	TotalSnow float64 `json:"totalsnow" example:"0"`
	SunHour   float64 `json:"sunhour" example:"4.5"`
	UVIndex   float64 `json:"uv_index" example:"1"`
}

// WeatherResponse is a validated provider answer. Payload keeps the decoded
// document for diagnostics.
type WeatherResponse struct {
	Kind       Kind                    `json:"-"`
	Request    RequestInfo             `json:"request"`
	Location   Location                `json:"location"`
	Current    *CurrentWeather         `json:"current,omitempty"`
	Historical map[string]DailyWeather `json:"historical,omitempty"`
	Forecast   map[string]DailyWeather `json:"forecast,omitempty"`
	Payload    map[string]any          `json:"-"`
}

// Days returns the dated entries of the response in chronological order.
func (w *WeatherResponse) Days() []DailyWeather {
	section := w.Forecast
	if w.Kind == KindHistorical {
		section = w.Historical
	}

	dates := make([]string, 0, len(section))
	for date := range section {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]DailyWeather, 0, len(dates))
	for _, date := range dates {
		days = append(days, section[date])
	}
	return days
}

// FilterByDate returns the index of the entry with the matching date, or -1 if not found
func FilterByDate(data []DailyWeather, date string) int {
	for i, wd := range data {
		if wd.Date == date {
			return i
		}
	}
	return -1
}
