package timeutil

import "time"

// Local is the business timezone (Morocco, Africa/Casablanca).
var Local *time.Location

func init() {
	var err error
	Local, err = time.LoadLocation("Africa/Casablanca")
	if err != nil {
		// Fallback when the tz database is missing
		Local = time.FixedZone("WEST", 1*60*60)
	}
}

// Common layouts
const (
	DateLayout    = "2006-01-02"
	DisplayLayout = "02/01/2006 15:04"
)

// Now returns the current time in the business timezone
func Now() time.Time {
	return time.Now().In(Local)
}

// Today is the current date as YYYY-MM-DD, the default for new records.
func Today() string {
	return Now().Format(DateLayout)
}

// FormatLocal formats t in the business timezone
func FormatLocal(t time.Time, layout string) string {
	return t.In(Local).Format(layout)
}
