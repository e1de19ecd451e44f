package utils

import (
	"fmt"
	"time"
)

// FormatCountdown renders a remaining duration as m:ss, clamped at 0:00.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
