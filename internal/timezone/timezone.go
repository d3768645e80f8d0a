package timezone

import "time"

// The shop runs on Durban time.
const DefaultTimezone = "Africa/Johannesburg"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today returns the current calendar date as the "2006-01-02" wire string.
func Today() string {
	return Now().Format("2006-01-02")
}
