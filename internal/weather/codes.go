package weather

// CToF converts a Celsius temperature to Fahrenheit. No rounding happens
// here; rounding is a presentation concern.
func CToF(c float64) float64 {
	return c*9/5 + 32
}

// CodeToText maps a WMO weather code to condition text. The code space is
// open-ended, so unmapped codes degrade to "Clear" instead of failing.
func CodeToText(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code == 1:
		return "Mainly clear"
	case code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code >= 85 && code <= 86:
		return "Snow showers"
	case code == 95:
		return "Thunderstorm"
	case code == 96 || code == 99:
		return "Thunderstorm (hail)"
	default:
		return "Clear"
	}
}
