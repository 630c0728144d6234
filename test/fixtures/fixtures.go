// Package fixtures provides provider and weatherstack payloads for tests.
package fixtures

import "fmt"

// AstroJSON returns a complete provider /astro body.
func AstroJSON(name, phase string, illumination float64) string {
	return fmt.Sprintf(`{
  "name": %q,
  "region": "Washington",
  "country": "United States of America",
  "date": "2026-10-16",
  "astro": {
    "sunrise": "07:28 AM",
    "sunset": "06:16 PM",
    "moonrise": "05:41 PM",
    "moonset": "08:02 AM",
    "moon_phase": %q,
    "moon_illumination": %v
  },
  "expires_at": "2026-10-17T07:00:00Z"
}`, name, phase, illumination)
}

// SeattleFullMoon is the canonical Seattle answer used across tests.
func SeattleFullMoon() string {
	return AstroJSON("Seattle", "Full Moon", 87)
}

// AstroMissingIllumination drops astro.moon_illumination.
func AstroMissingIllumination() string {
	return `{
  "name": "Seattle", "region": "Washington", "country": "United States of America",
  "date": "2026-10-16",
  "astro": {
    "sunrise": "07:28 AM", "sunset": "06:16 PM",
    "moonrise": "05:41 PM", "moonset": "08:02 AM",
    "moon_phase": "Full Moon"
  }
}`
}

// WeatherstackForecast returns a forecast body for one day as weatherstack
// shapes it: location block plus a forecast map keyed by date.
func WeatherstackForecast(name, localtime, timezoneID string) string {
	return fmt.Sprintf(`{
  "request": {"type": "City", "query": "%[1]s", "language": "en", "unit": "m"},
  "location": {
    "name": %[1]q,
    "country": "Norway",
    "region": "Oslo",
    "lat": "59.917",
    "lon": "10.750",
    "timezone_id": %[3]q,
    "localtime": %[2]q,
    "localtime_epoch": 1792152000,
    "utc_offset": "2.0"
  },
  "current": {"temperature": 9},
  "forecast": {
    "2026-10-16": {
      "date": "2026-10-16",
      "date_epoch": 1792108800,
      "astro": {
        "sunrise": "08:01 AM",
        "sunset": "06:05 PM",
        "moonrise": "06:55 PM",
        "moonset": "10:12 AM",
        "moon_phase": "Waning Gibbous",
        "moon_illumination": 93
      },
      "mintemp": 4,
      "maxtemp": 11,
      "avgtemp": 7,
      "totalsnow": 0,
      "sunhour": 5.2,
      "uv_index": 1
    }
  }
}`, name, localtime, timezoneID)
}

// WeatherstackError returns weatherstack's error envelope.
func WeatherstackError(code int, kind, info string) string {
	return fmt.Sprintf(`{"success": false, "error": {"code": %d, "type": %q, "info": %q}}`, code, kind, info)
}
