package format

import "strings"

// Surface selects the date convention of a screen.
type Surface int

const (
	// SurfaceDetail is the client detail page and the PDF report.
	SurfaceDetail Surface = iota
	// SurfaceHistory is the global transaction history.
	SurfaceHistory
)

// UnknownDate is shown on the detail surface for missing dates.
const UnknownDate = "Inconnue"

// FormatDisplayDate turns a YYYY-MM-DD value into the surface's day-first form.
// Anything that is not shaped like an ISO date is returned as is.
func FormatDisplayDate(date *string, unknown bool, surface Surface) string {
	if unknown || date == nil || *date == "" {
		if surface == SurfaceHistory {
			return ""
		}
		return UnknownDate
	}

	y, m, d, ok := splitISODate(*date)
	if !ok {
		return *date
	}
	if surface == SurfaceHistory {
		return d + " / " + m + " / " + y
	}
	return d + "/" + m + "/" + y
}

func splitISODate(s string) (year, month, day string, ok bool) {
	if len(s) > 10 {
		s = s[:10]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return "", "", "", false
	}
	for _, p := range parts {
		for _, c := range p {
			if c < '0' || c > '9' {
				return "", "", "", false
			}
		}
	}
	return parts[0], parts[1], parts[2], true
}
