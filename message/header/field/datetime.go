package field

import (
	"fmt"
	"strings"
	"time"
)

// ZoneKind tells which form a Zone was written in.
type ZoneKind int

// These are the forms of a zone.
const (
	ZoneOffset   ZoneKind = iota // +HHMM or -HHMM
	ZoneName                     // UT, GMT, EST, ...
	ZoneMilitary                 // a single letter
)

// Zone is the time zone of a DateTime as written. For ZoneOffset, Offset holds
// the four digits as a signed decimal number, so -0600 is -600. For the other
// kinds, Name holds the zone name or letter.
//
// Unknown is set for -0000, which RFC 5322 reserves for a time whose local
// zone is not known. Its offset is 0 like +0000.
type Zone struct {
	Kind    ZoneKind
	Offset  int
	Name    string
	Unknown bool
}

var namedZones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EST": -500,
	"EDT": -400,
	"CST": -600,
	"CDT": -500,
	"MST": -700,
	"MDT": -600,
	"PST": -800,
	"PDT": -700,
}

// IsNamedZone reports whether name is one of the zone names RFC 5322 allows,
// ignoring case.
func IsNamedZone(name string) bool {
	_, ok := namedZones[strings.ToUpper(name)]
	return ok
}

// Seconds returns the offset from UTC in seconds. Military zones are treated as
// UTC because their meaning was never settled.
func (z Zone) Seconds() int {
	hhmm := z.Offset
	if z.Kind == ZoneName {
		hhmm = namedZones[strings.ToUpper(z.Name)]
	} else if z.Kind == ZoneMilitary {
		hhmm = 0
	}

	sign := 1
	if hhmm < 0 {
		sign, hhmm = -1, -hhmm
	}
	return sign * (hhmm/100*3600 + hhmm%100*60)
}

// String returns the zone as written.
func (z Zone) String() string {
	if z.Kind == ZoneOffset {
		if z.Unknown {
			return "-0000"
		}
		return fmt.Sprintf("%+05d", z.Offset)
	}
	return z.Name
}

// DateTime is a date and time as written in a header. Nothing is normalized:
// Year holds the digits written, so an obsolete two-digit year stays two
// digits. Weekday and Second are nil when absent.
type DateTime struct {
	Weekday *time.Weekday
	Day     int
	Month   time.Month
	Year    int
	Hour    int
	Minute  int
	Second  *int
	Zone    Zone
}

// FullYear applies the RFC 5322 rules for obsolete years: 0 to 49 are in the
// 2000s and 50 to 999 in the 1900s.
func (d DateTime) FullYear() int {
	switch {
	case d.Year < 50:
		return d.Year + 2000
	case d.Year < 1000:
		return d.Year + 1900
	}
	return d.Year
}

// Time converts d into a time.Time in a fixed zone with the offset of d.Zone.
func (d DateTime) Time() time.Time {
	sec := 0
	if d.Second != nil {
		sec = *d.Second
	}

	loc := time.FixedZone(d.Zone.String(), d.Zone.Seconds())
	return time.Date(d.FullYear(), d.Month, d.Day, d.Hour, d.Minute, sec, 0, loc)
}

// String returns the date-time in RFC 5322 form.
func (d DateTime) String() string {
	s := ""
	if d.Weekday != nil {
		s = d.Weekday.String()[:3] + ", "
	}

	s += fmt.Sprintf("%d %s %02d %02d:%02d", d.Day, d.Month.String()[:3], d.Year, d.Hour, d.Minute)
	if d.Second != nil {
		s += fmt.Sprintf(":%02d", *d.Second)
	}

	return s + " " + d.Zone.String()
}
