package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/footsteps/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	ScrollOff       *int
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
	Theme           *string

	Capacity    *int
	MergeWindow *int
	MinDistance *int
	ClearOnSave *bool
	NoHighlight *bool
	Color       *string
}

// NewFlags defines the application's flags on fs. A nil fs means
// flag.CommandLine.
func NewFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	f := &Flags{set: fs}
	f.define()
	return f
}

func (f *Flags) define() {
	fs := f.set
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = fs.Int("tabwidth", 0, "Number of spaces per tab - Overrides config file")
	f.ScrollOff = fs.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Copy footstep locations to the system clipboard")
	f.Theme = fs.String("theme", "", "Theme file name under the themes directory")

	f.Capacity = fs.Int("capacity", 0, "Number of footsteps to remember - Overrides config file")
	f.MergeWindow = fs.Int("merge-window", 0, "Recent footsteps considered for merging - Overrides config file")
	f.MinDistance = fs.Int("min-distance", -1, "Hide highlights this close to the cursor - Overrides config file")
	f.ClearOnSave = fs.Bool("clear-on-save", false, "Forget a file's footsteps when it is saved")
	f.NoHighlight = fs.Bool("no-highlight", false, "Do not highlight footsteps")
	f.Color = fs.String("color", "", "Highlight color, rgb(r, g, b) or #rrggbb - Overrides config file")
}

// Parse parses args and returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f.set.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	f.set.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "theme":
			cfg.Editor.Theme = *f.Theme
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "capacity":
			if *f.Capacity > 0 {
				cfg.Footsteps.MaxChunksToRemember = *f.Capacity
			}
		case "merge-window":
			if *f.MergeWindow > 0 {
				cfg.Footsteps.MaxChunksConsideredForMerge = *f.MergeWindow
			}
		case "min-distance":
			if *f.MinDistance >= 0 {
				cfg.Footsteps.MinDistanceFromCursor = *f.MinDistance
			}
		case "clear-on-save":
			cfg.Footsteps.ClearOnSave = *f.ClearOnSave
		case "no-highlight":
			cfg.Footsteps.HighlightChanges = !*f.NoHighlight
		case "color":
			if *f.Color != "" {
				cfg.Footsteps.HighlightColor = *f.Color
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
