package weather

// ResolvedLocation is the output of a location resolver: enough to request
// a forecast for the place and label the result. Immutable once produced.
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"` // IANA zone, e.g. "Europe/Paris"
}

// Place is the partial result of reverse geocoding: a display name and a
// country, with no coordinates or timezone attached.
type Place struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// RawForecast mirrors the upstream forecast payload: one current sample plus
// index-aligned hourly and daily series. It is transient and not retained
// past normalization.
type RawForecast struct {
	Timezone string     `json:"timezone"`
	Current  RawCurrent `json:"current"`
	Hourly   RawHourly  `json:"hourly"`
	Daily    RawDaily   `json:"daily"`
}

type RawCurrent struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature_2m"`
	Humidity    float64 `json:"relative_humidity_2m"`
	WeatherCode int     `json:"weather_code"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	CloudCover  float64 `json:"cloud_cover"`
	IsDay       int     `json:"is_day"`
}

// RawHourly holds parallel sequences. All are expected to be index-aligned,
// but the normalizer tolerates length mismatches.
type RawHourly struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	WeatherCode []int     `json:"weather_code"`
	IsDay       []int     `json:"is_day"`
}

type RawDaily struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	PrecipProbMax  []float64 `json:"precipitation_probability_max"`
}

// Condition carries the human-readable condition text.
type Condition struct {
	Text string `json:"text"`
}

// WeatherData is the unified view model produced from one resolved location
// and one raw forecast. It is created fresh on every successful fetch and
// replaces the previous value wholesale.
type WeatherData struct {
	Location LocationInfo      `json:"location"`
	Current  CurrentConditions `json:"current"`
	Forecast []DayForecast     `json:"forecast"`
	Hourly   []HourlyForecast  `json:"hourly"`
}

// LocationInfo labels a WeatherData with where and when it applies.
// Localtime and TimezoneID are copied verbatim from the raw response.
type LocationInfo struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Localtime  string  `json:"localtime"`
	TimezoneID string  `json:"tz_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type CurrentConditions struct {
	TempC     float64   `json:"temp_c"`
	TempF     float64   `json:"temp_f"`
	Condition Condition `json:"condition"`
	Humidity  float64   `json:"humidity"`
	WindKph   float64   `json:"wind_kph"`
	Cloud     float64   `json:"cloud"`
	IsDay     int       `json:"is_day"`
}

type DayForecast struct {
	Date              string    `json:"date"` // YYYY-MM-DD
	MaxTempC          float64   `json:"maxtemp_c"`
	MaxTempF          float64   `json:"maxtemp_f"`
	MinTempC          float64   `json:"mintemp_c"`
	MinTempF          float64   `json:"mintemp_f"`
	Condition         Condition `json:"condition"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
}

type HourlyForecast struct {
	Time      string  `json:"time"`
	TempC     float64 `json:"temp_c"`
	TempF     float64 `json:"temp_f"`
	Condition string  `json:"condition"`
	IsDay     int     `json:"is_day"`
}
