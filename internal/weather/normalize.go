package weather

import (
	"math"
	"time"
)

const (
	maxForecastDays = 5
	hourlyWindow    = 24

	// Upstream local timestamps come without a zone suffix.
	localTimeLayout = "2006-01-02T15:04"
)

// Normalize turns one resolved location and one raw forecast response into
// the unified view model. Pure and deterministic; short or missing upstream
// series degrade to empty or zero-valued output rather than failing.
func Normalize(loc ResolvedLocation, raw RawForecast) WeatherData {
	return WeatherData{
		Location: LocationInfo{
			Name:       loc.Name,
			Country:    loc.Country,
			Localtime:  raw.Current.Time,
			TimezoneID: raw.Timezone,
			Latitude:   loc.Latitude,
			Longitude:  loc.Longitude,
		},
		Current: CurrentConditions{
			TempC:     raw.Current.Temperature,
			TempF:     CToF(raw.Current.Temperature),
			Condition: Condition{Text: CodeToText(raw.Current.WeatherCode)},
			Humidity:  raw.Current.Humidity,
			WindKph:   raw.Current.WindSpeed,
			Cloud:     raw.Current.CloudCover,
			IsDay:     raw.Current.IsDay,
		},
		Forecast: normalizeDaily(raw.Daily),
		Hourly:   normalizeHourly(raw.Hourly, raw.Current.Time),
	}
}

// normalizeDaily keeps at most the first maxForecastDays entries, pairing
// every Celsius value with its Fahrenheit counterpart. A missing
// precipitation probability reads as a 0% chance of rain.
func normalizeDaily(d RawDaily) []DayForecast {
	n := len(d.Time)
	if n > maxForecastDays {
		n = maxForecastDays
	}

	out := make([]DayForecast, 0, n)
	for i := 0; i < n; i++ {
		var maxC, minC float64
		if i < len(d.TemperatureMax) {
			maxC = d.TemperatureMax[i]
		}
		if i < len(d.TemperatureMin) {
			minC = d.TemperatureMin[i]
		}

		day := DayForecast{
			Date:      d.Time[i],
			MaxTempC:  maxC,
			MaxTempF:  CToF(maxC),
			MinTempC:  minC,
			MinTempF:  CToF(minC),
			Condition: Condition{Text: CodeToText(0)},
		}
		if i < len(d.WeatherCode) {
			day.Condition.Text = CodeToText(d.WeatherCode[i])
		}
		if i < len(d.PrecipProbMax) {
			day.DailyChanceOfRain = int(math.Round(d.PrecipProbMax[i]))
		}

		out = append(out, day)
	}
	return out
}

// normalizeHourly slices the forward-looking window: it starts at the first
// sample whose timestamp is at or after the current sample's time and takes
// up to hourlyWindow entries, fewer at the tail of the data.
func normalizeHourly(h RawHourly, currentTime string) []HourlyForecast {
	start := firstAtOrAfter(h.Time, currentTime)
	if start < 0 {
		return []HourlyForecast{}
	}

	end := start + hourlyWindow
	if end > len(h.Time) {
		end = len(h.Time)
	}

	out := make([]HourlyForecast, 0, end-start)
	for i := start; i < end; i++ {
		var tempC float64
		if i < len(h.Temperature) {
			tempC = h.Temperature[i]
		}

		entry := HourlyForecast{
			Time:      h.Time[i],
			TempC:     tempC,
			TempF:     CToF(tempC),
			Condition: CodeToText(0),
		}
		if i < len(h.WeatherCode) {
			entry.Condition = CodeToText(h.WeatherCode[i])
		}
		if i < len(h.IsDay) {
			entry.IsDay = h.IsDay[i]
		}

		out = append(out, entry)
	}
	return out
}

// firstAtOrAfter compares chronologically, not by equality: hourly samples
// sit on fixed clock boundaries while "now" usually falls between two of
// them. Returns -1 when no sample qualifies or ref cannot be parsed.
func firstAtOrAfter(times []string, ref string) int {
	refT, err := time.Parse(localTimeLayout, ref)
	if err != nil {
		return -1
	}
	for i, s := range times {
		t, err := time.Parse(localTimeLayout, s)
		if err != nil {
			continue
		}
		if !t.Before(refT) {
			return i
		}
	}
	return -1
}
