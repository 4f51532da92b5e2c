package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bethropolis/footsteps/internal/app"
	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := config.NewFlags(nil)
	files, err := flags.Parse(args)
	if err != nil {
		return 2
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return 0
	}

	configPath := *flags.ConfigFilePath
	cfg, cfgErr := config.LoadConfig(configPath, flags)

	output, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.Setup(cfg.Logger, output)
	if cfgErr != nil {
		logger.Warnf("Using default configuration: %v", cfgErr)
	}

	logger.Infof("Starting %s %s", config.AppName, version)
	logger.Debugf("Files: %v", files)

	editor, err := app.NewApp(cfg, configPath, flags, files)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return 1
	}
	logger.Infof("%s finished", config.AppName)
	return 0
}

// openLog opens the log destination. Without a configured path the log
// goes next to the config file, since stderr belongs to the terminal UI.
func openLog(path string) (io.Writer, func()) {
	if path == "" {
		cfgPath, err := config.DefaultPath()
		if err != nil {
			return io.Discard, func() {}
		}
		dir := filepath.Dir(cfgPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return io.Discard, func() {}
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}

	w, closer, err := logger.OpenOutput(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		return io.Discard, func() {}
	}
	return w, func() { closer() }
}
