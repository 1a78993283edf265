package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Minutes renders a fractional minute count the way the stat cards show
// it: "42m" under an hour, "1h 5m" above. The remainder is rounded
// independently of the hour count, so 119.6 minutes reads "1h 60m".
func Minutes(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", int(math.Round(minutes)))
	}
	hours := int(minutes / 60)
	remainder := int(math.Round(math.Mod(minutes, 60)))
	return fmt.Sprintf("%dh %dm", hours, remainder)
}

// Count renders a word count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
