package marketdata

import "time"

// Calendar decides which dates are trading sessions.
//
// Fields:
//   - Fixed: holidays observed on the same month/day every year ("MM-DD").
//   - GoodFriday: close the Friday before Easter Sunday.
type Calendar struct {
	Fixed      []string
	GoodFriday bool
}

// DefaultCalendar is a US equity calendar limited to fixed-date closures and
// Good Friday; floating Monday holidays are not modelled.
func DefaultCalendar() Calendar {
	return Calendar{
		Fixed:      []string{"01-01", "06-19", "07-04", "12-25"},
		GoodFriday: true,
	}
}

// IsTradingDay returns false on weekends and configured holidays.
func (c Calendar) IsTradingDay(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	key := d.Format("01-02")
	for _, h := range c.Fixed {
		if h == key {
			return false
		}
	}

	if c.GoodFriday {
		gf := easterSunday(d.Year(), d.Location()).AddDate(0, 0, -2)
		if sameDate(gf, d) {
			return false
		}
	}
	return true
}

// NextTradingDays returns the n trading days strictly after the given date,
// ascending, at midnight in its location.
func (c Calendar) NextTradingDays(after time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	d := truncateToDate(after)
	for len(out) < n {
		d = d.AddDate(0, 0, 1)
		if c.IsTradingDay(d) {
			out = append(out, d)
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// easterSunday uses the anonymous Gregorian (Meeus/Jones/Butcher) computus.
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
