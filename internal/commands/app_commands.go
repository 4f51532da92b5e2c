package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bethropolis/footsteps/internal/plugin"
)

// RegisterAppCommands registers the built-in commands: w, q, q!, wq, e, b,
// theme and themes.
func RegisterAppCommands(api plugin.EditorAPI, app AppAPI, themes ThemeAPI) error {
	cmds := map[string]plugin.CommandFunc{
		"w": func(args []string) error {
			if err := app.SaveBuffer(); err != nil {
				return err
			}
			api.SetStatusMessage("Saved %s", api.ActiveFile())
			return nil
		},
		"q":  func(args []string) error { return app.RequestQuit(false) },
		"q!": func(args []string) error { return app.RequestQuit(true) },
		"wq": func(args []string) error {
			if err := app.SaveBuffer(); err != nil {
				return err
			}
			return app.RequestQuit(false)
		},
		"e": func(args []string) error {
			if len(args) == 0 {
				return errors.New("usage: e <file>")
			}
			return app.OpenFile(strings.Join(args, " "))
		},
		"b":      bufferCommand(api, app),
		"theme":  themeCommand(api, themes),
		"themes": themeListCommand(api, themes),
	}

	var errs []error
	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			errs = append(errs, fmt.Errorf("registering ':%s': %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// bufferCommand switches to buffer n (one-based) or lists the open buffers.
func bufferCommand(api plugin.EditorAPI, app AppAPI) plugin.CommandFunc {
	return func(args []string) error {
		names := app.BufferNames()
		if len(args) == 0 {
			parts := make([]string, len(names))
			for i, name := range names {
				marker := ""
				if name == api.ActiveFile() {
					marker = "*"
				}
				parts[i] = fmt.Sprintf("%d%s %s", i+1, marker, filepath.Base(name))
			}
			api.SetStatusMessage("%s", strings.Join(parts, "  "))
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(names) {
			return fmt.Errorf("no buffer %s (have %d)", args[0], len(names))
		}
		return app.SwitchBuffer(n - 1)
	}
}

func themeCommand(api plugin.EditorAPI, themes ThemeAPI) plugin.CommandFunc {
	return func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", themes.GetTheme().Name)
			return nil
		}
		name := strings.Join(args, " ")
		if err := themes.SetTheme(name); err != nil {
			return fmt.Errorf("%w. Available: %s", err, strings.Join(themes.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", name)
		return nil
	}
}

func themeListCommand(api plugin.EditorAPI, themes ThemeAPI) plugin.CommandFunc {
	return func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(themes.ListThemes(), ", "))
		return nil
	}
}
