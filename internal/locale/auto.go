package locale

import (
	"os"
	"strings"
)

// Source yields the locale to use for one operation. A *Locale is a fixed
// source; AutoUpdating follows the host settings.
type Source interface {
	Current() *Locale
}

// AutoUpdating is the "current" locale. It re-reads its identifier on every
// call, so formatters holding it pick up a changed setting immediately.
type AutoUpdating struct {
	Table  *Table
	Source func() string
}

// Current implements Source.
func (a AutoUpdating) Current() *Locale {
	return a.Table.Locale(a.Source())
}

// Host returns an auto-updating locale that reads the POSIX environment.
func Host(t *Table) AutoUpdating {
	return AutoUpdating{Table: t, Source: SystemLocaleID}
}

// SystemLocaleID reads LC_ALL, LC_TIME and LANG in that order and strips
// the codeset and modifier ("fr_CA.UTF-8@euro" → "fr_CA"). The C and POSIX
// locales map to en_US_POSIX.
func SystemLocaleID() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return "en_US_POSIX"
		}
		return v
	}
	return ""
}
