package render

import (
	"fmt"
	"strings"
	"time"
)

// Duration formats d as days, hours and minutes: "3d 6h 05m", "18h 00m",
// "50m". Seconds are dropped.
func Duration(d time.Duration) string {
	if d < 0 {
		return "-" + Duration(-d)
	}
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	mins := int(d % time.Hour / time.Minute)

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
		parts = append(parts, fmt.Sprintf("%02dm", mins))
	} else {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}

// LocalTime formats t as "Mon Jan 2 15:04 MST" in its own zone.
func LocalTime(t time.Time) string {
	return t.Format("Mon Jan 2 15:04 MST")
}
