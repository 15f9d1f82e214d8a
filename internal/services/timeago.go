package services

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders the distance between a unix-millisecond timestamp and
// now as a coarse label. Months are 30 days and years 365 days.
func FormatTimeAgo(timestamp int64, now time.Time) string {
	seconds := (now.UnixMilli() - timestamp) / 1000
	if seconds < 60 {
		return "just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := hours / 24
	switch {
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	}
	return fmt.Sprintf("%dy ago", days/365)
}
