package providers_test

import (
	"net/http"
	"testing"

	"github.com/BoltzExchange/broadcaster/pkg/broadcaster"
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	require.Equal(t, []string{"mempool", "esplora", "boltz", "electrum", "whatsonchain", "arc"}, providers.Names())

	tests := []struct {
		chain    provider.Chain
		plugins  []string
		failures []string
	}{
		{provider.ChainBtc, []string{"mempool", "esplora", "boltz"}, []string{"electrum"}},
		{provider.ChainLiquid, []string{"mempool", "esplora", "boltz"}, []string{"electrum"}},
		{provider.ChainBsv, []string{"whatsonchain", "arc"}, nil},
	}

	for _, tc := range tests {
		t.Run(string(tc.chain), func(t *testing.T) {
			aggregator := broadcaster.New(broadcaster.Options{
				Client: http.DefaultClient,
				Chain:  tc.chain,
			})
			defer aggregator.Close()

			require.Equal(t, tc.plugins, aggregator.Plugins())
			var failures []string
			for _, failure := range aggregator.Failures() {
				failures = append(failures, failure.Name)
			}
			require.Equal(t, tc.failures, failures)
		})
	}
}

func TestBuiltinDisabled(t *testing.T) {
	aggregator := broadcaster.New(broadcaster.Options{
		Client: http.DefaultClient,
		Providers: map[string]provider.Config{
			"mempool":  provider.Disabled,
			"electrum": provider.Disabled,
		},
	})
	require.Equal(t, []string{"esplora", "boltz"}, aggregator.Plugins())
	require.Empty(t, aggregator.Failures())
}
