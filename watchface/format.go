package watchface

import (
	"fmt"
	"time"
)

// maxCount is the largest step count shown.
const maxCount = 65535

// FormatTime formats now as "HH:MM" in the 24 or 12 hour clock. The
// 12 hour clock keeps the leading zero.
func FormatTime(now time.Time, is24h bool) string {
	if is24h {
		return now.Format("15:04")
	}
	return now.Format("03:04")
}

// FormatDate formats now as "MM-DD-YY".
func FormatDate(now time.Time) string {
	return now.Format("01-02-06")
}

// FormatSteps formats today's step count and the daily average.
func FormatSteps(today, avg int) string {
	return fmt.Sprintf("Steps: %d\nAvg: %d", saturate(today), saturate(avg))
}

func saturate(n int) int {
	return min(max(n, 0), maxCount)
}
