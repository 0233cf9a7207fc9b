// Package broadcaster fans transactions and status lookups out to a set of provider plugins
// and resolves them as soon as one of the plugins gives a usable answer.
package broadcaster

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers"
	"github.com/hashicorp/go-multierror"
)

type Options struct {
	// Client is the transport handed to every plugin; defaults to an *http.Client with provider.DefaultTimeout
	Client provider.Doer
	Debug  bool
	// Chain defaults to provider.ChainBtc
	Chain provider.Chain
	// DefaultRate is substituted for plugins which do not know a fee rate; defaults to provider.DefaultRate(Chain)
	DefaultRate float64
	// Plugins are tried before the Builtins, so they can replace a builtin of the same name
	Plugins []provider.Constructor
	// Builtins defaults to providers.Builtin() when nil
	Builtins []provider.Constructor
	// Providers holds per plugin overrides keyed by plugin name. provider.Disabled turns a plugin off.
	Providers map[string]provider.Config
}

type PluginFailure struct {
	Name string
	Err  error
}

type livePlugin struct {
	provider.Plugin
	name string
}

type Aggregator struct {
	plugins     []livePlugin
	failures    []PluginFailure
	chain       provider.Chain
	defaultRate float64
	debug       bool
}

// New instantiates every enabled plugin. Plugins which fail to construct are logged and left out,
// they never make New itself fail.
func New(options Options) *Aggregator {
	if options.Client == nil {
		options.Client = provider.NewHttpClient(provider.DefaultTimeout)
	}
	if options.Chain == "" {
		options.Chain = provider.ChainBtc
	}
	if options.DefaultRate <= 0 {
		options.DefaultRate = provider.DefaultRate(options.Chain)
	}
	builtins := options.Builtins
	if builtins == nil {
		builtins = providers.Builtin()
	}

	aggregator := &Aggregator{
		chain:       options.Chain,
		defaultRate: options.DefaultRate,
		debug:       options.Debug,
	}

	defaults := provider.Config{
		provider.KeyDebug:  options.Debug,
		provider.KeyClient: options.Client,
		provider.KeyChain:  options.Chain,
	}

	live := make(map[string]bool)
	for _, constructor := range slices.Concat(options.Plugins, builtins) {
		name := constructor.Name
		override := options.Providers[name]
		if override.IsDisabled() {
			logger.Debugf("Plugin %s disabled by config", name)
			continue
		}
		if !constructor.Supports(options.Chain) {
			logger.Debugf("Plugin %s does not support chain %s", name, options.Chain)
			continue
		}
		if live[name] {
			logger.Warnf("Plugin %s already registered, skipping", name)
			continue
		}

		plugin, err := instantiate(constructor, defaults.Merge(override))
		if err != nil {
			logger.Warnf("Plugin %s disabled: %v", name, err)
			aggregator.failures = append(aggregator.failures, PluginFailure{Name: name, Err: err})
			continue
		}

		if pluginName := plugin.Name(); pluginName != "" {
			name = pluginName
		}
		if live[name] {
			logger.Warnf("Plugin %s already registered, skipping", name)
			closePlugin(plugin)
			continue
		}
		live[name] = true
		live[constructor.Name] = true
		aggregator.plugins = append(aggregator.plugins, livePlugin{Plugin: plugin, name: name})
		logger.Debugf("Plugin %s enabled", name)
	}

	return aggregator
}

func instantiate(constructor provider.Constructor, config provider.Config) (plugin provider.Plugin, err error) {
	if constructor.New == nil {
		return nil, errors.New("no constructor")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	plugin, err = constructor.New(config)
	if err == nil && plugin == nil {
		err = errors.New("constructor returned no plugin")
	}
	return plugin, err
}

// Plugins returns the names of the live plugins in registration order.
func (aggregator *Aggregator) Plugins() []string {
	names := make([]string, len(aggregator.plugins))
	for i, plugin := range aggregator.plugins {
		names[i] = plugin.name
	}
	return names
}

// Failures returns the plugins which could not be constructed.
func (aggregator *Aggregator) Failures() []PluginFailure {
	return slices.Clone(aggregator.failures)
}

func (aggregator *Aggregator) Chain() provider.Chain {
	return aggregator.chain
}

func (aggregator *Aggregator) Close() {
	for _, plugin := range aggregator.plugins {
		closePlugin(plugin.Plugin)
	}
}

func closePlugin(plugin provider.Plugin) {
	if closer, ok := plugin.(provider.Closer); ok {
		closer.Close()
	}
}

// fanOut tracks one dispatch of an operation to all live plugins.
type fanOut struct {
	// done is closed once every attempt returned
	done   chan struct{}
	mutex  sync.Mutex
	thrown multierror.Error
}

func (f *fanOut) thrownErrors() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if len(f.thrown.Errors) == 0 {
		return nil
	}
	return &f.thrown
}

// dispatch runs attempt for every live plugin in its own goroutine. Errors and panics of an attempt
// are logged and collected, they never reach the caller. settled is called once all attempts returned.
// Attempts do not inherit the cancellation of ctx so they always run to completion.
func (aggregator *Aggregator) dispatch(
	ctx context.Context,
	action string,
	attempt func(ctx context.Context, plugin livePlugin) error,
	settled func(),
) *fanOut {
	f := &fanOut{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	var group sync.WaitGroup
	group.Add(len(aggregator.plugins))
	for _, plugin := range aggregator.plugins {
		go func() {
			defer group.Done()
			if err := safeCall(func() error { return attempt(ctx, plugin) }); err != nil {
				aggregator.logThrown(action, plugin.name, err)
				f.mutex.Lock()
				f.thrown.Errors = append(f.thrown.Errors, fmt.Errorf("%s: %w", plugin.name, err))
				f.mutex.Unlock()
			}
		}()
	}

	go func() {
		group.Wait()
		close(f.done)
		if settled != nil {
			settled()
		}
	}()

	return f
}

func safeCall(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return call()
}

func (aggregator *Aggregator) logThrown(action string, name string, err error) {
	if aggregator.debug {
		logger.Warnf("Error during %s via %s: %v", action, name, err)
	} else {
		logger.Debugf("Error during %s via %s: %v", action, name, err)
	}
}
