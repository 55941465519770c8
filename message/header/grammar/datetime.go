package grammar

import (
	"strconv"
	"strings"
	"time"

	"github.com/zostay/go-rfc5322/internal/scanner"
	"github.com/zostay/go-rfc5322/message/header/field"
	"github.com/zostay/go-rfc5322/parser"
)

var (
	dayNames = map[string]time.Weekday{
		"mon": time.Monday,
		"tue": time.Tuesday,
		"wed": time.Wednesday,
		"thu": time.Thursday,
		"fri": time.Friday,
		"sat": time.Saturday,
		"sun": time.Sunday,
	}

	monthNames = map[string]time.Month{
		"jan": time.January,
		"feb": time.February,
		"mar": time.March,
		"apr": time.April,
		"may": time.May,
		"jun": time.June,
		"jul": time.July,
		"aug": time.August,
		"sep": time.September,
		"oct": time.October,
		"nov": time.November,
		"dec": time.December,
	}
)

// name matches three letters found in names, ignoring case.
func name[T any](names map[string]T) parser.Parser[T] {
	return parser.Bind(parser.Repeat(3, 3, scanner.IsAlpha), func(s string) parser.Parser[T] {
		if v, ok := names[strings.ToLower(s)]; ok {
			return parser.Return(v)
		}
		return parser.Nothing[T]()
	})
}

func number(lo, hi int) parser.Parser[int] {
	return parser.Map(parser.Repeat(lo, hi, scanner.IsDigit), func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	})
}

func zone(s string) (field.Zone, bool) {
	if field.IsNamedZone(s) {
		return field.Zone{Kind: field.ZoneName, Name: s}, true
	}
	if len(s) == 1 && s != "J" && s != "j" {
		return field.Zone{Kind: field.ZoneMilitary, Name: s}, true
	}
	return field.Zone{}, false
}

func (g *Grammar) buildDateTime() {
	cfws := scanner.OptCFWS()

	dayOfWeek := parser.Skip(scanner.Token(name(dayNames)), parser.Char(','))

	day := scanner.Token(number(1, 2))
	month := parser.Then(cfws, name(monthNames))

	// The modern year needs whitespace on both sides. Without it, fall back
	// to the obsolete year of two or more digits.
	year := parser.Alt(
		parser.Then(scanner.FWS(), parser.Skip(number(4, -1), scanner.FWS())),
		scanner.Token(number(2, -1)),
	)

	two := scanner.Token(number(2, 2))
	second := parser.Maybe(parser.Then(parser.Char(':'), two))

	offset := parser.Bind(parser.Satisfy(func(c byte) bool { return c == '+' || c == '-' }),
		func(sign byte) parser.Parser[field.Zone] {
			return parser.Map(number(4, 4), func(n int) field.Zone {
				z := field.Zone{Kind: field.ZoneOffset, Offset: n}
				if sign == '-' {
					z.Offset = -n
					z.Unknown = n == 0
				}
				return z
			})
		},
	)

	named := parser.Bind(parser.TakeWhile1(scanner.IsAlpha), func(s string) parser.Parser[field.Zone] {
		if z, ok := zone(s); ok {
			return parser.Return(z)
		}
		return parser.Nothing[field.Zone]()
	})

	tz := parser.Between(cfws, parser.Alt(offset, named), cfws)

	g.dateTime = parser.Bind(parser.Maybe(dayOfWeek), func(wd *time.Weekday) parser.Parser[field.DateTime] {
		return parser.Bind(day, func(d int) parser.Parser[field.DateTime] {
			return parser.Bind(month, func(m time.Month) parser.Parser[field.DateTime] {
				return parser.Bind(year, func(y int) parser.Parser[field.DateTime] {
					return parser.Bind(two, func(hh int) parser.Parser[field.DateTime] {
						return parser.Then(parser.Char(':'), parser.Bind(two, func(mm int) parser.Parser[field.DateTime] {
							return parser.Bind(second, func(ss *int) parser.Parser[field.DateTime] {
								return parser.Map(tz, func(z field.Zone) field.DateTime {
									return field.DateTime{
										Weekday: wd,
										Day:     d,
										Month:   m,
										Year:    y,
										Hour:    hh,
										Minute:  mm,
										Second:  ss,
										Zone:    z,
									}
								})
							})
						}))
					})
				})
			})
		})
	})
}
