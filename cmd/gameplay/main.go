package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/soccer/internal/config"
	"github.com/zeusync/soccer/internal/core/frame"
	"github.com/zeusync/soccer/internal/core/geometry"
	"github.com/zeusync/soccer/internal/core/observability/log"
	"github.com/zeusync/soccer/internal/injector"
	"github.com/zeusync/soccer/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building gameplay:", err)
		os.Exit(1)
	}
	defer app.Close()

	if err = assignRoles(app); err != nil {
		app.Log.Error("role assignment failed", log.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stopCh := make(chan os.Signal, 1)
		signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stopCh)
		select {
		case sig := <-stopCh:
			app.Log.Info("signal received", log.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		return nil
	})
	g.Go(func() error { return run(ctx, app) })

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		app.Log.Error("gameplay stopped", log.Error(err))
	}
}

func assignRoles(app *injector.App) error {
	ball := func() frame.Ball { return app.Module.Frame().Ball() }
	ownGoal := geometry.Pt(-app.Config.FieldLength/2, 0)
	opponentGoal := geometry.Pt(app.Config.FieldLength/2, 0)
	for id := 0; id < app.Config.RosterSize; id++ {
		var err error
		switch id {
		case 0:
			err = app.Module.SetBehavior(id, sim.Striker{Ball: ball, Goal: opponentGoal, Strength: 200})
			if err == nil {
				err = app.Module.AssignRole(id, sim.RoleStriker)
			}
		case 1:
			err = app.Module.SetBehavior(id, sim.Defender{Ball: ball, Goal: ownGoal, Depth: 1.3})
			if err == nil {
				err = app.Module.AssignRole(id, sim.RoleDefender)
			}
		case 2:
			err = app.Module.SetBehavior(id, sim.Defender{Ball: ball, Goal: ownGoal, Depth: 0.5})
			if err == nil {
				err = app.Module.AssignRole(id, app.Config.GoalieRole)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, app *injector.App) error {
	ticker := time.NewTicker(app.Config.TickRate)
	defer ticker.Stop()

	app.Log.Info("gameplay started",
		log.Int("roster_size", app.Config.RosterSize),
		log.Duration("tick_rate", app.Config.TickRate))

	reportEvery := uint64(time.Second / app.Config.TickRate)
	if reportEvery == 0 {
		reportEvery = 1
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := app.Module.Tick(now); err != nil {
				app.Log.Warn("tick failed", log.Error(err))
				continue
			}
			view := app.Module.Frame()
			if view.Tick()%reportEvery == 0 {
				ball := view.Ball()
				app.Log.Info("status",
					log.Uint64("tick", view.Tick()),
					log.Float64("ball_x", ball.Pos.X),
					log.Float64("ball_y", ball.Pos.Y))
			}
		}
	}
}
