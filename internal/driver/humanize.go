package driver

import "fmt"

const (
	kilobyte = 1024
	megabyte = kilobyte * kilobyte
)

// humanizeBytes converts a byte count to a short human-readable string,
// e.g. 750 -> "750B", 4096 -> "4.0K", 5*1024*1024 -> "5.0M".
func humanizeBytes(n int64) string {
	switch {
	case n >= megabyte:
		return fmt.Sprintf("%.1fM", float64(n)/megabyte)
	case n >= kilobyte:
		return fmt.Sprintf("%.1fK", float64(n)/kilobyte)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

const (
	millisPerSecond = 1000
	millisPerMinute = millisPerSecond * 60
)

// humanizeMillis converts a duration in milliseconds to a short
// human-readable string, e.g. 750 -> "750ms", 4500 -> "4.50s", 90000 -> "1m 30s".
func humanizeMillis(ms int64) string {
	switch {
	case ms > millisPerMinute:
		return fmt.Sprintf("%dm %ds", ms/millisPerMinute, (ms%millisPerMinute)/millisPerSecond)
	case ms > millisPerSecond:
		return fmt.Sprintf("%.2fs", float64(ms)/millisPerSecond)
	default:
		return fmt.Sprintf("%dms", ms)
	}
}
