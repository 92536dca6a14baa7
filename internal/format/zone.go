package format

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"civcal/internal/calendar"
	"civcal/internal/locale"
	"civcal/internal/tz"
)

func (s *state) zone(tok token) string {
	secs, n := s.offset.Seconds, tok.count
	switch tok.letter {
	case 'z':
		if name, ok := s.loc.ZoneName(s.zoneID, n >= 4, s.offset.DST); ok {
			return name
		}
		return localizedGMT(s.loc, secs, n >= 4)
	case 'v':
		if name, ok := s.loc.ZoneName(s.zoneID, n >= 4, false); ok {
			return name
		}
		return localizedGMT(s.loc, secs, n >= 4)
	case 'O':
		return localizedGMT(s.loc, secs, n >= 4)
	case 'Z':
		switch {
		case n <= 3:
			return isoOffset(secs, 2, false)
		case n == 4:
			return localizedGMT(s.loc, secs, true)
		}
		return isoOffset(secs, 5, true)
	case 'X':
		return isoOffset(secs, n, true)
	case 'x':
		return isoOffset(secs, n, false)
	}
	// V and its longer forms: the zone identifier.
	return s.zoneID
}

// localizedGMT writes an offset in the locale's GMT format: "GMT-7" in the
// short form, "GMT-07:00" in the long one.
func localizedGMT(loc *locale.Locale, secs int, long bool) string {
	if secs == 0 {
		return loc.GMTZeroFormat()
	}
	sign := "+"
	if secs < 0 {
		sign, secs = "-", -secs
	}
	h, m, sec := secs/3600, secs%3600/60, secs%60
	var off string
	if long {
		off = fmt.Sprintf("%s%02d:%02d", sign, h, m)
	} else {
		off = fmt.Sprintf("%s%d", sign, h)
		if m != 0 || sec != 0 {
			off += fmt.Sprintf(":%02d", m)
		}
	}
	if sec != 0 {
		off += fmt.Sprintf(":%02d", sec)
	}
	return strings.Replace(loc.GMTFormat(), "{0}", localize(off, loc.Digits()), 1)
}

// isoOffset writes the ISO 8601 offset forms of the X and x letters:
//
//	1  -08, +0530     2  -0800     3  -08:00
//	4  -0800[ss]      5  -08:00[:ss]
//
// utcZ writes a zero offset as "Z".
func isoOffset(secs, count int, utcZ bool) string {
	if secs == 0 && utcZ {
		return "Z"
	}
	sign := "+"
	if secs < 0 {
		sign, secs = "-", -secs
	}
	h, m, sec := secs/3600, secs%3600/60, secs%60
	colon := count == 3 || count >= 5
	sep := ""
	if colon {
		sep = ":"
	}
	out := fmt.Sprintf("%s%02d", sign, h)
	if count == 1 && m == 0 {
		return out
	}
	out += fmt.Sprintf("%s%02d", sep, m)
	if count >= 4 && sec != 0 {
		out += fmt.Sprintf("%s%02d", sep, sec)
	}
	return out
}

// zoneMatch is the outcome of reading a zone from input.
type zoneMatch struct {
	zone calendar.Zone
	// dst is set when the text named a standard or daylight variant.
	dst   *bool
	width int
}

// parseZone reads a zone at the start of in: "Z", ISO and RFC 822
// offsets, localized GMT forms, localized zone names, abbreviations and
// IANA identifiers, tried in that order.
func parseZone(in string, loc *locale.Locale, db *tz.Database) (zoneMatch, error) {
	if strings.HasPrefix(in, "Z") && !startsWithLetter(in[1:]) {
		return zoneMatch{zone: calendar.UTC, width: 1}, nil
	}
	if secs, w, ok := readOffset(in); ok {
		return zoneMatch{zone: fixedOffsetZone(secs), width: w}, nil
	}
	if m, ok := readGMT(in, loc); ok {
		return m, nil
	}
	if m, ok := readZoneName(in, loc, db); ok {
		return m, nil
	}
	word := zoneWord(in)
	if word == "" {
		return zoneMatch{}, calendar.ErrPatternMismatch
	}
	if id, ok := tz.Abbreviation(word); ok && strings.ToUpper(word) == word {
		z, err := db.Resolve(id)
		if err != nil {
			return zoneMatch{}, err
		}
		dst := tz.IsDaylightAbbreviation(word)
		return zoneMatch{zone: z, dst: &dst, width: len(word)}, nil
	}
	z, err := db.Resolve(word)
	if err != nil {
		return zoneMatch{}, err
	}
	return zoneMatch{zone: z, width: len(word)}, nil
}

func startsWithLetter(s string) bool {
	return s != "" && ((s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z'))
}

func fixedOffsetZone(secs int) calendar.Zone {
	if secs == 0 {
		return calendar.UTC
	}
	return calendar.FixedZone(isoOffset(secs, 5, false), secs)
}

// readOffset reads ±hh, ±hhmm, ±hh:mm with an optional seconds part. The
// Unicode minus sign counts as '-'.
func readOffset(in string) (secs, width int, ok bool) {
	sign := 0
	rest := in
	switch {
	case strings.HasPrefix(rest, "+"):
		sign, rest = 1, rest[1:]
	case strings.HasPrefix(rest, "-"):
		sign, rest = -1, rest[1:]
	case strings.HasPrefix(rest, "−"):
		sign, rest = -1, rest[len("−"):]
	default:
		return 0, 0, false
	}
	parts, used := readDigitGroups(rest)
	if len(parts) == 0 {
		return 0, 0, false
	}
	var h, m, sec int
	switch {
	case len(parts) == 1 && len(parts[0]) <= 2:
		h = atoi(parts[0])
	case len(parts) == 1 && len(parts[0]) == 4:
		h, m = atoi(parts[0][:2]), atoi(parts[0][2:])
	case len(parts) == 1 && len(parts[0]) == 6:
		h, m, sec = atoi(parts[0][:2]), atoi(parts[0][2:4]), atoi(parts[0][4:])
	case len(parts) >= 2 && len(parts[1]) == 2 && len(parts[0]) <= 2:
		h, m = atoi(parts[0]), atoi(parts[1])
		if len(parts) == 3 && len(parts[2]) == 2 {
			sec = atoi(parts[2])
		} else if len(parts) == 3 {
			return 0, 0, false
		}
	default:
		return 0, 0, false
	}
	if h > 18 || m > 59 || sec > 59 {
		return 0, 0, false
	}
	return sign * (h*3600 + m*60 + sec), len(in) - len(rest) + used, true
}

// readDigitGroups reads up to three colon-separated runs of ASCII digits.
func readDigitGroups(s string) ([]string, int) {
	var groups []string
	i := 0
	for len(groups) < 3 {
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i {
			if len(groups) > 0 {
				// The colon belonged to whatever follows.
				i--
			}
			break
		}
		groups = append(groups, s[i:j])
		i = j
		if i < len(s) && s[i] == ':' && len(groups) < 3 {
			i++
			continue
		}
		break
	}
	return groups, i
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// readGMT reads the localized GMT format as well as plain "GMT" and "UTC"
// prefixes, each optionally followed by an offset.
func readGMT(in string, loc *locale.Locale) (zoneMatch, bool) {
	prefixes := []string{"GMT", "UTC"}
	if p, _, ok := strings.Cut(loc.GMTFormat(), "{0}"); ok && p != "" {
		prefixes = append([]string{p}, prefixes...)
	}
	if z := loc.GMTZeroFormat(); z != "" {
		prefixes = append(prefixes, z)
	}
	for _, p := range prefixes {
		if !strings.HasPrefix(in, p) {
			continue
		}
		rest := delocalize(in[len(p):], loc.Digits())
		if secs, w, ok := readShortOffset(rest); ok {
			return zoneMatch{zone: fixedOffsetZone(secs), width: len(p) + byteWidth(in[len(p):], loc.Digits(), w)}, true
		}
		if startsWithLetter(rest) {
			continue
		}
		return zoneMatch{zone: calendar.UTC, width: len(p)}, true
	}
	return zoneMatch{}, false
}

// readShortOffset accepts the short GMT form ("-7", "+5:30") on top of
// the ISO forms readOffset knows.
func readShortOffset(s string) (int, int, bool) {
	if secs, w, ok := readOffset(s); ok {
		return secs, w, ok
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') || s[1] < '0' || s[1] > '9' {
		return 0, 0, false
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	return sign * int(s[1]-'0') * 3600, 2, true
}

// delocalize maps locale digits back to ASCII. Each replaced rune may be
// wider than one byte, so callers translate widths with byteWidth.
func delocalize(s string, digits [10]rune) string {
	if digits[0] == '0' {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if d := digitValue(r, digits); d >= 0 {
			b.WriteByte(byte('0' + d))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// byteWidth converts a byte count in delocalized text back to a byte count
// in the original text.
func byteWidth(orig string, digits [10]rune, n int) int {
	w, consumed := 0, 0
	for consumed < n && w < len(orig) {
		r, size := utf8.DecodeRuneInString(orig[w:])
		w += size
		if digitValue(r, digits) >= 0 {
			consumed++
		} else {
			consumed += size
		}
	}
	return w
}

func digitValue(r rune, digits [10]rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for i, d := range digits {
		if r == d {
			return i
		}
	}
	return -1
}

// readZoneName matches localized zone names, longest first, case
// insensitively.
func readZoneName(in string, loc *locale.Locale, db *tz.Database) (zoneMatch, bool) {
	names := loc.ZoneNameList()
	sort.SliceStable(names, func(i, j int) bool { return len(names[i].Name) > len(names[j].Name) })
	for _, n := range names {
		w, ok := matchFold(in, n.Name)
		if !ok {
			continue
		}
		z, err := db.Resolve(n.ZoneID)
		if err != nil {
			continue
		}
		dst := n.DST
		return zoneMatch{zone: z, dst: &dst, width: w}, true
	}
	return zoneMatch{}, false
}

// zoneWord is the longest prefix that could be an abbreviation or IANA
// identifier.
func zoneWord(in string) string {
	i := 0
	for i < len(in) {
		c := in[i]
		if isPatternLetter(c) || c == '/' || c == '_' || (i > 0 && (c == '-' || c == '+' || (c >= '0' && c <= '9'))) {
			i++
			continue
		}
		break
	}
	return in[:i]
}
