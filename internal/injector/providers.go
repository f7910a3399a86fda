package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/soccer/internal/config"
	"github.com/zeusync/soccer/internal/core/events/bus"
	"github.com/zeusync/soccer/internal/core/gameplay"
	"github.com/zeusync/soccer/internal/core/observability/log"
	"github.com/zeusync/soccer/internal/sim"
)

// App is everything the gameplay binary drives.
type App struct {
	Config config.Gameplay
	Log    *log.Logger
	Events bus.EventBus
	World  *sim.World
	Module *gameplay.Module
}

// Close releases the module subscriptions and flushes the logger.
func (a *App) Close() {
	a.Module.Close()
	_ = a.Log.Sync()
}

var ProviderSet = wire.NewSet(
	ProvideGameplayConfig,
	ProvideLogConfig,
	log.Provide,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.New,
	ProvideWorld,
	wire.Bind(new(gameplay.Perception), new(*sim.World)),
	wire.Bind(new(gameplay.Planner), new(*sim.World)),
	gameplay.NewModule,
	wire.Struct(new(App), "*"),
)

func ProvideGameplayConfig(cfg config.Config) config.Gameplay {
	return cfg.Gameplay
}

func ProvideLogConfig(cfg config.Config) log.Config {
	return cfg.Log
}

func ProvideWorld(cfg config.Gameplay) *sim.World {
	return sim.New(cfg.RosterSize, sim.DefaultConfig(cfg.TickRate))
}
