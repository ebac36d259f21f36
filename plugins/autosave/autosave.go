package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically saves the buffer when it is modified and has a
// file name. Configured by [plugins.autosave] enabled and interval.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex // protects the fields below
	enabled  bool
	interval time.Duration
	saves    int

	runMu    sync.Mutex // serializes start and stop; protects stopChan
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration, registers :autosave and starts the saver
// loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	api.SubscribeEvent(event.TypeBufferSaved, func(e event.Event) bool {
		logger.DebugTagf(pluginName, "%s: buffer saved, next check in %v", pluginName, interval)
		return false
	})
	if err := api.RegisterCommand("autosave", p.executeToggle); err != nil {
		return err
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)
	if isEnabled {
		p.runMu.Lock()
		p.startLocked(interval)
		p.runMu.Unlock()
	}
	return nil
}

// executeToggle handles ":autosave [on|off]".
func (p *AutoSave) executeToggle(args []string) error {
	p.runMu.Lock()
	p.mutex.RLock()
	enabled, interval := p.enabled, p.interval
	p.mutex.RUnlock()

	want := !enabled
	if len(args) > 0 {
		want = args[0] == "on"
	}
	if want && !enabled {
		p.startLocked(interval)
	} else if !want && enabled {
		p.stopLocked()
	}
	p.runMu.Unlock()

	state := "off"
	if want {
		state = "on"
	}
	p.api.SetStatusMessage("Autosave %s (every %v)", state, interval)
	return nil
}

// startLocked launches the saver loop. The caller holds runMu.
func (p *AutoSave) startLocked(interval time.Duration) {
	if p.stopChan != nil {
		return
	}
	p.mutex.Lock()
	p.enabled = true
	p.mutex.Unlock()

	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval, p.stopChan)
	logger.Debugf("%s: Saver goroutine started.", p.Name())
}

// stopLocked stops the saver loop and waits for it. The caller holds runMu.
func (p *AutoSave) stopLocked() {
	p.mutex.Lock()
	p.enabled = false
	p.mutex.Unlock()

	if p.stopChan == nil {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	p.stopChan = nil
	logger.Debugf("%s: Saver goroutine stopped.", p.Name())
}

// Running reports whether the saver loop is active.
func (p *AutoSave) Running() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.stopChan != nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	p.stopLocked()
	return nil
}

// Saves returns how many automatic saves succeeded.
func (p *AutoSave) Saves() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.saves
}

func (p *AutoSave) saverLoop(interval time.Duration, stop <-chan struct{}) {
	defer p.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-stop:
			return
		}
	}
}

// saveIfModified saves a modified, named buffer.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		return
	}
	filePath := p.api.GetFilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}
	if err := p.api.Save(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		return
	}
	p.mutex.Lock()
	p.saves++
	p.mutex.Unlock()
	logger.Debugf("%s: Auto-save successful for '%s'", p.Name(), filePath)
}
