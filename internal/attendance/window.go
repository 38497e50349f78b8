package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type WindowKind int

const (
	WindowAll WindowKind = iota
	WindowDays
	WindowDate
)

// Window is the reporting period: trailing N days, all time, or one calendar date.
type Window struct {
	Kind WindowKind
	Days int
	Date time.Time
}

func All() Window { return Window{Kind: WindowAll} }

// LastDays returns a trailing window; n <= 0 means all time.
func LastDays(n int) Window {
	if n <= 0 {
		return All()
	}
	return Window{Kind: WindowDays, Days: n}
}

func OnDate(d time.Time) Window { return Window{Kind: WindowDate, Date: d} }

// QueryDays is the day-count sent upstream. Zero means no server-side filter.
func (w Window) QueryDays() int {
	if w.Kind == WindowDays {
		return w.Days
	}
	return 0
}

func (w Window) String() string {
	switch w.Kind {
	case WindowDays:
		return strconv.Itoa(w.Days)
	case WindowDate:
		return w.Date.Format(dateLayout)
	}
	return "all"
}

const dateLayout = "2006-01-02"

// ParseWindow reads the window query values. date wins over days when both are set.
func ParseWindow(days, date string, defaultDays int, loc *time.Location) (Window, error) {
	if date = strings.TrimSpace(date); date != "" {
		d, err := time.ParseInLocation(dateLayout, date, loc)
		if err != nil {
			return Window{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
		}
		return OnDate(d), nil
	}
	days = strings.ToLower(strings.TrimSpace(days))
	switch days {
	case "":
		return LastDays(defaultDays), nil
	case "all", "0":
		return All(), nil
	}
	n, err := strconv.Atoi(days)
	if err != nil || n < 0 {
		return Window{}, fmt.Errorf("invalid window %q", days)
	}
	return LastDays(n), nil
}
