package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/flagx"
	"github.com/dmitrijs2005/garmin2obsidian/internal/timex"
)

// Args is the parsed command line.
type Args struct {
	ConfigFile string
	Date       string
	Version    bool
}

func newFlagSet(a *Args) *flag.FlagSet {
	fs := flag.NewFlagSet(common.AppName, flag.ContinueOnError)
	fs.StringVar(&a.ConfigFile, "config", "", "path to YAML or JSON config file")
	fs.StringVar(&a.ConfigFile, "c", "", "path to YAML or JSON config file (shorthand)")
	fs.StringVar(&a.Date, "date", "", "day to sync as YYYY-MM-DD (default: today)")
	fs.BoolVar(&a.Version, "version", false, "print build information and exit")
	return fs
}

// ParseArgs parses args (usually os.Args[1:]). Unknown flags, flags
// without a value and stray arguments are rejected with an error wrapping
// common.ErrConfiguration, so a mistyped -date never syncs the wrong day.
// -h yields an error matching flag.ErrHelp.
func ParseArgs(args []string) (*Args, error) {
	a := &Args{}
	if err := flagx.Parse(newFlagSet(a), args); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	return a, nil
}

// PrintUsage writes the flag summary to w.
func PrintUsage(w io.Writer) {
	fs := newFlagSet(&Args{})
	fs.SetOutput(w)
	fmt.Fprintf(w, "Usage of %s:\n", common.AppName)
	fs.PrintDefaults()
}

// applyArgs overlays cfg with the values given on the command line.
func applyArgs(cfg *Config, a *Args) error {
	if a.Date == "" {
		return nil
	}
	d, err := timex.ParseDate(a.Date, time.Local)
	if err != nil {
		return err
	}
	cfg.Date = d
	return nil
}
