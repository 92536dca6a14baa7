package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"civcal/internal/calendar"
	"civcal/internal/config"
	"civcal/internal/format"
	"civcal/internal/ics"
	"civcal/internal/locale"
	appLog "civcal/internal/log"
	"civcal/internal/recur"
	"civcal/internal/tour"
	"civcal/internal/tz"
)

type flagConfig struct {
	configPath  string
	part        int
	momentsFile string
	horizonDays int
	watch       bool
	logLevel    string
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override the file and the environment.
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}
	if flags.momentsFile != "" {
		conf.MomentsFile = flags.momentsFile
	}
	level, _ := appLog.ParseLevel(conf.LogLevel)
	appLog.SetLevel(level)

	appLog.Info("civcal starting", "version", "0.1.0")
	appLog.Debug("effective config",
		"locale", conf.Locale,
		"timezone", conf.Timezone,
		"calendar", conf.Calendar,
		"week_start", conf.WeekStart,
		"clock", conf.Clock,
		"moments_file", conf.MomentsFile,
	)

	env := hostEnv(conf)
	if err := runTour(os.Stdout, env, flags.part); err != nil {
		appLog.Error("tour failed", err)
		os.Exit(1)
	}

	if conf.MomentsFile != "" {
		if err := listMoments(os.Stdout, conf, env, flags.horizonDays); err != nil {
			appLog.Error("listing moments failed", err, "path", conf.MomentsFile)
			os.Exit(1)
		}
	}

	if !flags.watch {
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runClock(ctx, os.Stdout, conf, env); err != nil {
		appLog.Error("clock failed", err, "clock", conf.Clock)
		os.Exit(1)
	}
	appLog.Info("civcal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.IntVar(&cfg.part, "part", 0, "Tutorial part to print (1 or 2, 0 for both, -1 for none)")
	flag.StringVar(&cfg.momentsFile, "moments", "", "iCalendar file of moments to list (overrides config if set)")
	flag.IntVar(&cfg.horizonDays, "horizon", 30, "Days ahead to list moment occurrences for")
	flag.BoolVar(&cfg.watch, "watch", false, "Keep running and print the time on the configured clock schedule")
	flag.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error (overrides config if set)")

	flag.Parse()

	return cfg
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "civcal.yaml"
	}
	return dir + "/civcal/config.yaml"
}

// hostEnv builds the tutorials' view of the host. Empty locale and zone
// settings follow the host on every use.
func hostEnv(conf *config.Config) tour.Env {
	zones := tz.Default()
	locales := locale.Default()

	env := tour.Env{
		Zones:   zones,
		Locales: locales,
		Week:    conf.WeekRule,
	}
	if conf.Locale != "" {
		env.Locale = locales.Locale(conf.Locale)
	} else {
		env.Locale = locale.Host(locales)
	}
	if conf.Timezone != "" {
		// Validate already resolved it once.
		z, _ := zones.Resolve(conf.Timezone)
		env.Zone = z
	} else {
		env.Zone = tz.Current(zones)
	}
	return env
}

func runTour(w io.Writer, env tour.Env, part int) error {
	switch part {
	case 0:
		if err := tour.Part1(w, env); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return tour.Part2(w, env)
	case 1:
		return tour.Part1(w, env)
	case 2:
		return tour.Part2(w, env)
	case -1:
		return nil
	default:
		return fmt.Errorf("unknown part %d", part)
	}
}

// userCalendar is the configured calendar system in the configured zone.
func userCalendar(conf *config.Config, env tour.Env) (*calendar.Calendar, error) {
	system, err := calendar.LookupSystem(conf.Calendar)
	if err != nil {
		return nil, err
	}
	week := conf.WeekRule(env.Locale.Current().WeekRule())
	return calendar.New(system, env.Zone, calendar.WithWeekRule(week)), nil
}

func listMoments(w io.Writer, conf *config.Config, env tour.Env, horizonDays int) error {
	f, err := os.Open(conf.MomentsFile)
	if err != nil {
		return err
	}
	defer f.Close()

	moments, err := ics.ReadMoments(f, env.Zones)
	if err != nil {
		return err
	}
	cal, err := userCalendar(conf, env)
	if err != nil {
		return err
	}

	now := calendar.FromTime(time.Now())
	window := recur.Config{RangeStart: now, RangeEnd: now.Add(float64(horizonDays) * 24 * 3600)}
	fmt.Fprintf(w, "\nMoments in the next %d days:\n", horizonDays)
	for _, m := range moments {
		res, err := recur.ExpandMoment(m, cal, window)
		if err != nil {
			appLog.Error("moment skipped", err, "uid", m.UID)
			continue
		}
		for _, occ := range res.Occurrences {
			fmt.Fprintf(w, "• %s: %s\n", occ.Name,
				format.Formatted(occ.At, cal, env.Locale, format.DateComplete, format.TimeShortened))
		}
		if res.Truncated {
			fmt.Fprintf(w, "• %s: …\n", m.Name)
		}
	}
	return nil
}

// runClock prints the current time on conf.Clock until ctx is done.
func runClock(ctx context.Context, w io.Writer, conf *config.Config, env tour.Env) error {
	cal, err := userCalendar(conf, env)
	if err != nil {
		return err
	}

	var opts []cron.Option
	if z, ok := env.Zone.(*tz.Zone); ok {
		opts = append(opts, cron.WithLocation(z.Location()))
	}
	c := cron.New(opts...)
	if _, err := c.AddFunc(conf.Clock, func() {
		now := calendar.FromTime(time.Now())
		fmt.Fprintf(w, "%s\n", format.Formatted(now, cal, env.Locale, format.DateComplete, format.TimeComplete))
	}); err != nil {
		return fmt.Errorf("clock %q: %w", conf.Clock, err)
	}

	c.Start()
	appLog.Info("clock started", "schedule", conf.Clock)
	<-ctx.Done()
	appLog.Info("signal received, shutting down")
	<-c.Stop().Done()
	return nil
}
