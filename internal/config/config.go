package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/build"
	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/internal/utils"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BurntSushi/toml"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultApiHost = "127.0.0.1"
	DefaultApiPort = 9004

	DefaultRateInterval = time.Minute
)

type helpOptions struct {
	ShowHelp    bool `short:"h" long:"help" description:"Display this help message"`
	ShowVersion bool `short:"v" long:"version" description:"Display version and exit"`
}

type ApiOptions struct {
	Host        string   `long:"api.host" description:"Host the REST API should listen on" toml:"host"`
	Port        int      `long:"api.port" short:"p" description:"Port the REST API should listen on" toml:"port"`
	CorsOrigins []string `long:"api.cors" description:"Origins allowed to access the REST API; may be given multiple times" toml:"cors"`
}

func (options *ApiOptions) Address() string {
	return fmt.Sprintf("%s:%d", options.Host, options.Port)
}

type Config struct {
	DataDir string `short:"d" long:"datadir" description:"Data directory of the broadcaster" toml:"datadir"`

	ConfigFile string `short:"c" long:"configfile" description:"Path to configuration file" toml:"-"`

	LogFile    string `short:"l" long:"logfile" description:"Path to the log file" toml:"logfile"`
	LogLevel   string `long:"loglevel" description:"Log level (fatal, error, warn, info, debug, silly)" toml:"loglevel"`
	LogMaxSize int    `long:"logmaxsize" description:"Maximum size of the log file in megabytes before it gets rotated" toml:"logmaxsize"`
	LogMaxAge  int    `long:"logmaxage" description:"Maximum age of old log files in days before they get deleted" toml:"logmaxage"`

	Log logger.Options `toml:"-"`

	Chain       string  `long:"chain" description:"Chain to broadcast on (BTC, L-BTC, BSV)" toml:"chain"`
	Debug       bool    `long:"debug" description:"Log every failure of the providers" toml:"debug"`
	DefaultRate float64 `long:"defaultrate" description:"Fee rate in sat/kB assumed for providers without one; 0 uses the chain default" toml:"defaultrate"`

	Timeout      time.Duration `long:"timeout" description:"Timeout for requests to the providers" toml:"timeout"`
	RateInterval time.Duration `long:"rateinterval" description:"Interval in which the fee rates of the providers are refreshed" toml:"rateinterval"`
	Proxy        string        `long:"proxy" description:"Proxy URL to use for all provider requests" toml:"proxy"`

	Disable []string `long:"disable" description:"Name of a provider to disable; may be given multiple times" toml:"disable"`

	// Providers holds the options of the individual providers, keyed by provider name
	Providers map[string]map[string]any `toml:"providers"`

	Api *ApiOptions `group:"API options" toml:"api"`

	Help *helpOptions `group:"Help Options" toml:"-"`
}

// LoadConfig parses the command line arguments and the config file.
// Command line arguments take precedence over the config file.
func LoadConfig(dataDir string, args []string) (*Config, error) {
	cfg := Config{
		DataDir: dataDir,

		LogLevel:   "info",
		LogMaxSize: 5,
		LogMaxAge:  30,

		Chain:        string(provider.ChainBtc),
		Timeout:      provider.DefaultTimeout,
		RateInterval: DefaultRateInterval,

		Api: &ApiOptions{
			Host: DefaultApiHost,
			Port: DefaultApiPort,
		},
	}

	parser := flags.NewParser(&cfg, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("could not parse arguments: %w", err)
	}

	if cfg.Help.ShowVersion {
		fmt.Println(build.GetVersion())
		fmt.Println("Built with: " + runtime.Version())
		os.Exit(0)
	}

	if cfg.Help.ShowHelp {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	cfg.DataDir = utils.ExpandHomeDir(cfg.DataDir)
	cfg.ConfigFile = utils.ExpandDefaultPath(cfg.DataDir, utils.ExpandHomeDir(cfg.ConfigFile), "broadcaster.toml")

	if cfg.ConfigFile != "" && utils.FileExists(cfg.ConfigFile) {
		if _, err := toml.DecodeFile(cfg.ConfigFile, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	// parse a second time to ensure cli flags go over config values
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, fmt.Errorf("could not parse arguments: %w", err)
	}

	chain, err := provider.ParseChain(cfg.Chain)
	if err != nil {
		return nil, err
	}
	cfg.Chain = string(chain)

	if cfg.Proxy != "" {
		if _, err := url.Parse(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
	}
	if cfg.RateInterval <= 0 {
		return nil, errors.New("rateinterval has to be positive")
	}

	cfg.LogFile = utils.ExpandDefaultPath(cfg.DataDir, utils.ExpandHomeDir(cfg.LogFile), "broadcaster.log")
	cfg.Log = logger.Options{
		Level: cfg.LogLevel,
		Logger: &lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxAge:   cfg.LogMaxAge,
			MaxSize:  cfg.LogMaxSize,
		},
	}

	if err := createDirIfNotExists(cfg.DataDir); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func createDirIfNotExists(dir string) error {
	if !utils.FileExists(dir) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("could not create directory: %w", err)
		}
	}
	return nil
}

func (cfg *Config) ParsedChain() provider.Chain {
	chain, _ := provider.ParseChain(cfg.Chain)
	return chain
}

// ProviderConfigs returns the per provider overrides, with the providers of Disable turned off.
func (cfg *Config) ProviderConfigs() map[string]provider.Config {
	configs := make(map[string]provider.Config, len(cfg.Providers)+len(cfg.Disable))
	for name, options := range cfg.Providers {
		configs[strings.ToLower(name)] = provider.Config(options)
	}
	for _, name := range cfg.Disable {
		configs[strings.ToLower(name)] = provider.Disabled
	}
	return configs
}

// HttpClient builds the transport shared by all providers.
func (cfg *Config) HttpClient() (*http.Client, error) {
	client := provider.NewHttpClient(cfg.Timeout)
	if cfg.Proxy != "" {
		proxy, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	}
	return client, nil
}
