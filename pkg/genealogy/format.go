package genealogy

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatUSD formats v as US dollars with thousands separators and at most
// two decimals, trailing zeros dropped: 34600000 -> "$34,600,000",
// 67566.44 -> "$67,566.44".
func FormatUSD(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	v = math.Round(v*100) / 100
	return sign + "$" + humanize.CommafWithDigits(v, 2)
}

// TraitList joins traits the way agents introduce them: "a, b, c".
func TraitList(traits []string) string {
	return strings.Join(traits, ", ")
}
