package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/plugins/footsteps"
)

// pluginConstructors lists the built-in plugins in initialization order.
var pluginConstructors = []func() plugin.Plugin{
	func() plugin.Plugin { return footsteps.New() },
}

// registerPlugins registers every built-in plugin with pm. A plugin that
// fails to register is skipped; the errors are returned joined.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return errors.New("plugin manager is nil")
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.DebugTagf("plugin", "Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			errs = append(errs, fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
