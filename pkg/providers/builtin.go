// Package providers lists the provider plugins which are available by default.
package providers

import (
	"github.com/BoltzExchange/broadcaster/pkg/provider"
	"github.com/BoltzExchange/broadcaster/pkg/providers/arc"
	"github.com/BoltzExchange/broadcaster/pkg/providers/boltz"
	"github.com/BoltzExchange/broadcaster/pkg/providers/electrum"
	"github.com/BoltzExchange/broadcaster/pkg/providers/esplora"
	"github.com/BoltzExchange/broadcaster/pkg/providers/mempool"
	"github.com/BoltzExchange/broadcaster/pkg/providers/whatsonchain"
)

// Builtin returns the constructors of all built-in plugins.
// Plugins which need configuration, like electrum, fail to construct unless it is provided.
func Builtin() []provider.Constructor {
	return []provider.Constructor{
		mempool.Constructor(),
		esplora.Constructor(),
		boltz.Constructor(),
		electrum.Constructor(),
		whatsonchain.Constructor(),
		arc.Constructor(),
	}
}

// Names returns the names of all built-in plugins.
func Names() []string {
	builtin := Builtin()
	names := make([]string, len(builtin))
	for i, constructor := range builtin {
		names[i] = constructor.Name
	}
	return names
}
