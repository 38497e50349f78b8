package attendance

import "time"

// CalendarDate is the local calendar day of t, formatted YYYY-MM-DD.
func CalendarDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// WeekStart returns the Monday 00:00 of the week containing t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
}
