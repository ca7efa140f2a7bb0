package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders a scan duration in a human-readable form.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2f sec", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := d.Seconds() - float64(minutes)*60
		return fmt.Sprintf("%d min %.0f sec", minutes, seconds)
	}
}
