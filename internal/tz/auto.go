package tz

import (
	"os"
	"path/filepath"
	"strings"

	"civcal/internal/calendar"
	appLog "civcal/internal/log"
)

// AutoUpdating is the "current" zone. It asks Source for an identifier on
// every call instead of keeping a snapshot, so a changed system setting
// takes effect on the next query. Unresolvable identifiers read as UTC.
type AutoUpdating struct {
	DB     *Database
	Source func() string
}

// Current returns an auto-updating zone backed by the host settings.
func Current(db *Database) AutoUpdating {
	return AutoUpdating{DB: db, Source: SystemZoneID}
}

func (a AutoUpdating) zone() calendar.Zone {
	id := a.Source()
	z, err := a.DB.Resolve(id)
	if err != nil {
		appLog.Debug("tz: current zone unresolvable, using UTC", "id", id, "err", err)
		return calendar.UTC
	}
	return z
}

func (a AutoUpdating) ID() string {
	return a.zone().ID()
}

func (a AutoUpdating) Offset(t calendar.Instant) calendar.ZoneOffset {
	return a.zone().Offset(t)
}

// SystemZoneID reads the host zone: $TZ first, then the /etc/localtime link.
func SystemZoneID() string {
	if v, ok := os.LookupEnv("TZ"); ok && v != "" {
		return strings.TrimPrefix(v, ":")
	}
	if target, err := filepath.EvalSymlinks("/etc/localtime"); err == nil {
		if _, id, found := strings.Cut(target, "zoneinfo/"); found {
			return id
		}
	}
	return "UTC"
}
