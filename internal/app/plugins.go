package app

import (
	"fmt"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/plugins/autosave"
	"github.com/bethropolis/tidemark/plugins/wordcount"
)

// pluginConstructors lists the built-in plugins.
var pluginConstructors = []func() plugin.Plugin{
	func() plugin.Plugin { return wordcount.New() },
	func() plugin.Plugin { return autosave.New() },
}

// registerPlugins registers all known plugins with the manager. It keeps
// going past failures and returns the first one.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
