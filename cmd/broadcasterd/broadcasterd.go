package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BoltzExchange/broadcaster/internal/config"
	"github.com/BoltzExchange/broadcaster/internal/logger"
	"github.com/BoltzExchange/broadcaster/internal/server"
	"github.com/BoltzExchange/broadcaster/internal/utils"
	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	logger.Init(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg); err != nil {
		logger.Fatal(err.Error())
	}
}

func loadConfig(args []string) (*config.Config, error) {
	dataDir, err := utils.GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("could not get data dir: %w", err)
	}
	cfg, err := config.LoadConfig(dataDir, args)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return cfg, nil
}

func Init(cfg *config.Config) (*broadcaster.Aggregator, error) {
	client, err := cfg.HttpClient()
	if err != nil {
		return nil, fmt.Errorf("could not create http client: %w", err)
	}

	aggregator := broadcaster.New(broadcaster.Options{
		Client:      client,
		Debug:       cfg.Debug,
		Chain:       cfg.ParsedChain(),
		DefaultRate: cfg.DefaultRate,
		Providers:   cfg.ProviderConfigs(),
	})

	for _, failure := range aggregator.Failures() {
		logger.Warnf("Could not start provider %s: %v", failure.Name, failure.Err)
	}
	if len(aggregator.Plugins()) == 0 {
		logger.Warn("No provider is enabled, every broadcast will fail")
	}
	return aggregator, nil
}

// Run serves the REST API until ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg *config.Config) error {
	logger.Infof("Starting broadcaster for chain %s", cfg.ParsedChain())

	aggregator, err := Init(cfg)
	if err != nil {
		return err
	}
	defer aggregator.Close()

	logger.Infof("Enabled providers: %v", aggregator.Plugins())

	rateCtx, cancelRates := context.WithCancel(ctx)
	defer cancelRates()
	go aggregator.WatchRates(rateCtx, cfg.RateInterval)

	api := server.NewServer(aggregator, server.Options{
		Address:     cfg.Api.Address(),
		CorsOrigins: cfg.Api.CorsOrigins,
	})
	errChannel := api.Start()

	select {
	case err := <-errChannel:
		if err != nil {
			return fmt.Errorf("could not start REST API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := api.Stop(shutdownCtx); err != nil {
		logger.Errorf("Could not stop REST API: %v", err)
	}
	return nil
}
