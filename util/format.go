package util

import "fmt"

var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// FormatSize converts bytes to a human-readable string (KB, MB, GB).
// Negative sizes mean "unknown".
func FormatSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		return "?"
	}
	if sizeBytes < 1024 {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	size := float64(sizeBytes) / 1024
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// FormatSpeed converts bytes per second to a human-readable string.
func FormatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond < 1024 {
		return fmt.Sprintf("%.1f B/s", bytesPerSecond)
	}
	return FormatSize(int64(bytesPerSecond)) + "/s"
}
