package journey

import (
	"fmt"
	"time"
)

// formatDistance renders meters the way the Distance Matrix API does ("850 m", "12.3 km").
func formatDistance(meters int) string {
	const metersPerKm = 1000
	if meters < metersPerKm {
		return fmt.Sprintf("%d m", meters)
	}

	return fmt.Sprintf("%.1f km", float64(meters)/metersPerKm)
}

// formatDuration renders a duration as "1 min", "16 mins" or "1 hour 5 mins".
func formatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}

	hours, minutes := minutes/60, minutes%60
	switch {
	case hours == 0:
		return plural(minutes, "min")
	case minutes == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(minutes, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
