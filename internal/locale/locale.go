// Package locale serves the localized text the formatter needs: month,
// weekday and era names, day periods, canned date/time templates, zone
// names, digits and the preferred week rule.
//
// Data lives in embedded YAML files, one per locale. A lookup walks the
// BCP 47 parent chain of the requested tag (fr-CA → fr → root) and returns
// the first file that defines the key, so a regional file only carries
// what differs from its parent.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"civcal/internal/calendar"
	appLog "civcal/internal/log"
)

//go:embed data/*.yaml
var embedded embed.FS

// Width selects among the name forms a locale provides.
type Width string

const (
	Wide        Width = "wide"
	Abbreviated Width = "abbreviated"
	Narrow      Width = "narrow"
)

// Style names a canned template.
type Style string

const (
	Full     Style = "full"
	Long     Style = "long"
	Medium   Style = "medium"
	Short    Style = "short"
	Numeric  Style = "numeric"
	Complete Style = "complete"
)

type weekData struct {
	FirstDay int `yaml:"first_day"`
	MinDays  int `yaml:"min_days"`
}

// ZoneNames holds the display names of one zone.
type ZoneNames struct {
	LongStandard  string `yaml:"long_standard"`
	LongDaylight  string `yaml:"long_daylight"`
	ShortStandard string `yaml:"short_standard"`
	ShortDaylight string `yaml:"short_daylight"`
}

type calendarData struct {
	Months     map[Width][]string `yaml:"months"`
	Weekdays   map[Width][]string `yaml:"weekdays"`
	Eras       map[Width][]string `yaml:"eras"`
	Quarters   map[Width][]string `yaml:"quarters"`
	DayPeriods map[string]string  `yaml:"day_periods"`
	Date       map[Style]string   `yaml:"date"`
	Time       map[Style]string   `yaml:"time"`
	DateTime   map[Style]string   `yaml:"datetime"`
}

type resource struct {
	Locale        string                   `yaml:"locale"`
	Aliases       []string                 `yaml:"aliases"`
	Digits        string                   `yaml:"digits"`
	Week          *weekData                `yaml:"week"`
	GMTFormat     string                   `yaml:"gmt_format"`
	GMTZeroFormat string                   `yaml:"gmt_zero_format"`
	Calendars     map[string]*calendarData `yaml:"calendars"`
	Zones         map[string]ZoneNames     `yaml:"zones"`
}

// Table is a set of loaded locale resources. It is read-only after Load and
// safe for concurrent use.
type Table struct {
	byTag map[string]*resource
	root  *resource
}

// Load reads every *.yaml file at the top of fsys. One file must declare
// the root locale ("und").
func Load(fsys fs.FS) (*Table, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("locale: list resources: %w", err)
	}
	t := &Table{byTag: make(map[string]*resource)}
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("locale: read %s: %w", name, err)
		}
		var r resource
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("locale: parse %s: %w", name, err)
		}
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("locale: %s: %w", name, err)
		}
		tag, err := language.Parse(r.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale: %s: bad locale %q: %w", name, r.Locale, err)
		}
		if tag == language.Und {
			t.root = &r
			continue
		}
		t.byTag[tag.String()] = &r
		for _, a := range r.Aliases {
			at, err := language.Parse(a)
			if err != nil {
				return nil, fmt.Errorf("locale: %s: bad alias %q: %w", name, a, err)
			}
			t.byTag[at.String()] = &r
		}
	}
	if t.root == nil {
		return nil, fmt.Errorf("locale: no root resource")
	}
	return t, nil
}

func (r *resource) validate() error {
	if r.Digits != "" && len([]rune(r.Digits)) != 10 {
		return fmt.Errorf("digits must list ten runes, got %q", r.Digits)
	}
	if r.Week != nil {
		if r.Week.FirstDay < calendar.Sunday || r.Week.FirstDay > calendar.Saturday {
			return fmt.Errorf("week.first_day %d out of range", r.Week.FirstDay)
		}
		if r.Week.MinDays < 1 || r.Week.MinDays > 7 {
			return fmt.Errorf("week.min_days %d out of range", r.Week.MinDays)
		}
	}
	return nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded resources.
func Default() *Table {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "data")
		if err == nil {
			defaultTable, err = Load(sub)
		}
		if err != nil {
			panic(err)
		}
	})
	return defaultTable
}

// ParseTag accepts BCP 47 tags as well as POSIX-style identifiers such as
// "ar_EG" or "en_US_POSIX". The empty string is the root locale.
func ParseTag(id string) (language.Tag, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return language.Und, nil
	}
	id = strings.ReplaceAll(id, "_", "-")
	// The POSIX variant only affects number formatting, which has no data here.
	if len(id) > 6 && strings.EqualFold(id[len(id)-6:], "-posix") {
		id = id[:len(id)-6]
	}
	return language.Parse(id)
}

// Locale returns the bundle for id. Unknown or malformed identifiers
// resolve to the root locale.
func (t *Table) Locale(id string) *Locale {
	tag, err := ParseTag(id)
	if err != nil {
		appLog.Debug("locale: unparsable identifier, using root", "id", id, "err", err)
		tag = language.Und
	}
	return t.Bundle(tag)
}

// Bundle builds the fallback chain for tag.
func (t *Table) Bundle(tag language.Tag) *Locale {
	l := &Locale{id: tag}
	seen := make(map[*resource]bool)
	for cur, i := tag, 0; cur != language.Und && i < 8; cur, i = cur.Parent(), i+1 {
		if r, ok := t.byTag[cur.String()]; ok && !seen[r] {
			l.chain = append(l.chain, r)
			seen[r] = true
		}
		// Parent may skip the language+script form.
		if base, script, _ := cur.Raw(); script.String() != "Zzzz" {
			if st, err := language.Compose(base, script); err == nil {
				if r, ok := t.byTag[st.String()]; ok && !seen[r] {
					l.chain = append(l.chain, r)
					seen[r] = true
				}
			}
		}
	}
	if len(l.chain) == 0 && tag != language.Und {
		appLog.Debug("locale: no resources, falling back to root", "tag", tag.String())
	}
	l.chain = append(l.chain, t.root)
	return l
}

// Lookup resolves a single key for tag and system. Keys are dotted paths:
//
//	months.wide.7        weekdays.abbreviated.1   eras.abbreviated.1
//	quarters.wide.2      day_periods.pm           date.full
//	time.short           datetime.medium          digits
//	gmt_format           zones.Europe/London.long_daylight
//	week.first_day
func (t *Table) Lookup(tag language.Tag, system calendar.SystemID, key string) (string, bool) {
	return t.Bundle(tag).Lookup(system, key)
}

// Tags lists the locales the table carries data for, root excluded.
func (t *Table) Tags() []string {
	out := make([]string, 0, len(t.byTag))
	for k, r := range t.byTag {
		if k == canonical(r.Locale) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func canonical(s string) string {
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	return tag.String()
}

// Locale is a resolved fallback chain for one tag. It is immutable.
type Locale struct {
	id    language.Tag
	chain []*resource
}

// Tag returns the requested tag, which may be more specific than any file
// in the chain.
func (l *Locale) Tag() language.Tag { return l.id }

// ID is the requested tag in BCP 47 form; the root locale reads "und".
func (l *Locale) ID() string { return l.id.String() }

// Resolved names the most specific resource file in the chain.
func (l *Locale) Resolved() string { return l.chain[0].Locale }

// Current makes a fixed Locale usable wherever a Source is expected.
func (l *Locale) Current() *Locale { return l }

// Lookup implements the dotted-key lookup described on Table.Lookup.
func (l *Locale) Lookup(system calendar.SystemID, key string) (string, bool) {
	parts := strings.Split(key, ".")
	switch parts[0] {
	case "digits":
		d := l.Digits()
		return string(d[:]), true
	case "gmt_format":
		return l.GMTFormat(), true
	case "gmt_zero_format":
		return l.GMTZeroFormat(), true
	case "week":
		if len(parts) != 2 {
			return "", false
		}
		r := l.WeekRule()
		switch parts[1] {
		case "first_day":
			return strconv.Itoa(r.FirstWeekday), true
		case "min_days":
			return strconv.Itoa(r.MinDaysInFirstWeek), true
		}
		return "", false
	case "zones":
		if len(parts) < 3 {
			return "", false
		}
		id := strings.Join(parts[1:len(parts)-1], ".")
		z, ok := l.zoneNames(id)
		if !ok {
			return "", false
		}
		v := map[string]string{
			"long_standard":  z.LongStandard,
			"long_daylight":  z.LongDaylight,
			"short_standard": z.ShortStandard,
			"short_daylight": z.ShortDaylight,
		}[parts[len(parts)-1]]
		return v, v != ""
	case "months", "weekdays", "eras", "quarters":
		if len(parts) != 3 {
			return "", false
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return "", false
		}
		names := l.names(system, parts[0], Width(parts[1]))
		i := n - offsetFor(parts[0])
		if i < 0 || i >= len(names) {
			return "", false
		}
		return names[i], true
	case "day_periods":
		if len(parts) != 2 {
			return "", false
		}
		return l.calString(system, func(c *calendarData) string { return c.DayPeriods[parts[1]] })
	case "date", "time", "datetime":
		if len(parts) != 2 {
			return "", false
		}
		s := Style(parts[1])
		return l.calString(system, func(c *calendarData) string {
			switch parts[0] {
			case "date":
				return c.Date[s]
			case "time":
				return c.Time[s]
			}
			return c.DateTime[s]
		})
	}
	return "", false
}

// offsetFor is the index of the first name: eras are numbered from 0,
// everything else from 1.
func offsetFor(kind string) int {
	if kind == "eras" {
		return 0
	}
	return 1
}

// inherits reports whether a non-Gregorian system borrows key kind from the
// Gregorian tables of the same locale when it has no entry of its own.
func inherits(kind string) bool {
	switch kind {
	case "weekdays", "quarters", "day_periods", "time", "datetime":
		return true
	}
	return false
}

func (l *Locale) calString(system calendar.SystemID, get func(*calendarData) string) (string, bool) {
	systems := []string{string(system)}
	if system != calendar.GregorianID {
		systems = append(systems, string(calendar.GregorianID))
	}
	for _, sys := range systems {
		for _, r := range l.chain {
			if c := r.Calendars[sys]; c != nil {
				if v := get(c); v != "" {
					return v, true
				}
			}
		}
	}
	return "", false
}

func (l *Locale) names(system calendar.SystemID, kind string, width Width) []string {
	pick := func(c *calendarData) map[Width][]string {
		switch kind {
		case "months":
			return c.Months
		case "weekdays":
			return c.Weekdays
		case "eras":
			return c.Eras
		}
		return c.Quarters
	}
	systems := []string{string(system)}
	if system != calendar.GregorianID && inherits(kind) {
		systems = append(systems, string(calendar.GregorianID))
	}
	widths := []Width{width}
	if width != Abbreviated {
		widths = append(widths, Abbreviated)
	}
	for _, w := range widths {
		for _, sys := range systems {
			for _, r := range l.chain {
				if c := r.Calendars[sys]; c != nil {
					if v := pick(c)[w]; len(v) > 0 {
						return v
					}
				}
			}
		}
	}
	return nil
}

// MonthNames returns the names of months 1…n in order.
func (l *Locale) MonthNames(system calendar.SystemID, width Width) []string {
	return l.names(system, "months", width)
}

// WeekdayNames returns Sunday…Saturday.
func (l *Locale) WeekdayNames(system calendar.SystemID, width Width) []string {
	return l.names(system, "weekdays", width)
}

// EraNames returns era 0 then era 1.
func (l *Locale) EraNames(system calendar.SystemID, width Width) []string {
	return l.names(system, "eras", width)
}

func (l *Locale) QuarterNames(system calendar.SystemID, width Width) []string {
	return l.names(system, "quarters", width)
}

func nth(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return strconv.Itoa(i + 1)
	}
	return names[i]
}

func (l *Locale) MonthName(system calendar.SystemID, width Width, month int) string {
	return nth(l.MonthNames(system, width), month-1)
}

func (l *Locale) WeekdayName(system calendar.SystemID, width Width, weekday int) string {
	return nth(l.WeekdayNames(system, width), weekday-1)
}

func (l *Locale) EraName(system calendar.SystemID, width Width, era int) string {
	names := l.EraNames(system, width)
	if era < 0 || era >= len(names) {
		return strconv.Itoa(era)
	}
	return names[era]
}

func (l *Locale) QuarterName(system calendar.SystemID, width Width, q int) string {
	return nth(l.QuarterNames(system, width), q-1)
}

// DayPeriods returns the AM and PM markers.
func (l *Locale) DayPeriods(system calendar.SystemID) (am, pm string) {
	am, _ = l.Lookup(system, "day_periods.am")
	pm, _ = l.Lookup(system, "day_periods.pm")
	return am, pm
}

// DatePattern returns the date template for style, "" if none exists.
func (l *Locale) DatePattern(system calendar.SystemID, style Style) string {
	v, _ := l.Lookup(system, "date."+string(style))
	return v
}

func (l *Locale) TimePattern(system calendar.SystemID, style Style) string {
	v, _ := l.Lookup(system, "time."+string(style))
	return v
}

// DateTimePattern returns the glue template joining a time ({0}) and a
// date ({1}).
func (l *Locale) DateTimePattern(system calendar.SystemID, style Style) string {
	v, ok := l.Lookup(system, "datetime."+string(style))
	if !ok {
		return "{1} {0}"
	}
	return v
}

// Digits returns the ten decimal digits the locale writes numbers with.
func (l *Locale) Digits() [10]rune {
	var out [10]rune
	src := "0123456789"
	for _, r := range l.chain {
		if r.Digits != "" {
			src = r.Digits
			break
		}
	}
	copy(out[:], []rune(src))
	return out
}

// WeekRule returns the locale's preferred first weekday and minimal days.
func (l *Locale) WeekRule() calendar.WeekRule {
	for _, r := range l.chain {
		if r.Week != nil {
			return calendar.WeekRule{FirstWeekday: r.Week.FirstDay, MinDaysInFirstWeek: r.Week.MinDays}
		}
	}
	return calendar.USWeekRule
}

// GMTFormat is the localized offset template, {0} standing for the offset.
func (l *Locale) GMTFormat() string {
	for _, r := range l.chain {
		if r.GMTFormat != "" {
			return r.GMTFormat
		}
	}
	return "GMT{0}"
}

// GMTZeroFormat is written for a zero offset.
func (l *Locale) GMTZeroFormat() string {
	for _, r := range l.chain {
		if r.GMTZeroFormat != "" {
			return r.GMTZeroFormat
		}
	}
	return "GMT"
}

func (l *Locale) zoneNames(id string) (ZoneNames, bool) {
	var out ZoneNames
	found := false
	for _, r := range l.chain {
		z, ok := r.Zones[id]
		if !ok {
			continue
		}
		found = true
		fill(&out.LongStandard, z.LongStandard)
		fill(&out.LongDaylight, z.LongDaylight)
		fill(&out.ShortStandard, z.ShortStandard)
		fill(&out.ShortDaylight, z.ShortDaylight)
	}
	return out, found
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// ZoneName returns the localized name of zone id. long selects the long
// form, dst the daylight variant.
func (l *Locale) ZoneName(id string, long, dst bool) (string, bool) {
	z, ok := l.zoneNames(id)
	if !ok {
		return "", false
	}
	var v string
	switch {
	case long && dst:
		v = z.LongDaylight
	case long:
		v = z.LongStandard
	case dst:
		v = z.ShortDaylight
	default:
		v = z.ShortStandard
	}
	return v, v != ""
}

// ZoneMatch is one parseable zone name.
type ZoneMatch struct {
	Name   string
	ZoneID string
	DST    bool
}

// ZoneNameList lists every zone name reachable through the chain, for
// parsing. Nearer locales come first.
func (l *Locale) ZoneNameList() []ZoneMatch {
	var out []ZoneMatch
	seen := make(map[string]bool)
	add := func(name, id string, dst bool) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, ZoneMatch{Name: name, ZoneID: id, DST: dst})
	}
	for _, r := range l.chain {
		for id, z := range r.Zones {
			add(z.LongStandard, id, false)
			add(z.LongDaylight, id, true)
			add(z.ShortStandard, id, false)
			add(z.ShortDaylight, id, true)
		}
	}
	return out
}
