// Package slot holds the fixed catalog of bookable decoration windows.
package slot

import "fmt"

const (
	firstStartHour = 9
	lastStartHour  = 18
	WindowHours    = 4
)

// Window is one bookable time range, formatted HH:MM.
type Window struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

var catalog = buildCatalog()

// ten 4-hour windows: 09:00-13:00 through 18:00-22:00
func buildCatalog() []Window {
	windows := make([]Window, 0, lastStartHour-firstStartHour+1)
	for h := firstStartHour; h <= lastStartHour; h++ {
		windows = append(windows, Window{
			StartTime: fmt.Sprintf("%02d:00", h),
			EndTime:   fmt.Sprintf("%02d:00", h+WindowHours),
		})
	}
	return windows
}

// Catalog returns a copy of the windows, identical for every date and location.
func Catalog() []Window {
	out := make([]Window, len(catalog))
	copy(out, catalog)
	return out
}

// Find reports whether start/end is exactly one of the catalog windows.
func Find(startTime, endTime string) (Window, bool) {
	for _, w := range catalog {
		if w.StartTime == startTime && w.EndTime == endTime {
			return w, true
		}
	}
	return Window{}, false
}
