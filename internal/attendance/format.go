package attendance

import "fmt"

// FormatHours renders hours as "Xh Ym".
func FormatHours(hours float64) string {
	h, m := SplitHours(hours)
	return fmt.Sprintf("%dh %dm", h, m)
}
