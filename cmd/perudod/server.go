package main

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/perudohq/perudod/cmd/perudod/shared"
	"github.com/perudohq/perudod/internal/randutil"
	"github.com/perudohq/perudod/internal/registry"
	"github.com/perudohq/perudod/internal/roomid"
	"github.com/perudohq/perudod/internal/server"
)

// ServerCmd contains server configuration
type ServerCmd struct {
	Addr       string `kong:"help='Server address, overrides the config file'"`
	Config     string `kong:"default='perudod.hcl',help='Path to HCL config file'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
	CodeLength int    `kong:"default='4',help='Room code length'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !c.Debug {
		logger.SetLevel(shared.ParseLevel(cfg.Server.LogLevel))
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	// The code generator gets its own source: registry.Create runs it
	// under the registry lock, separate from the gateway's lock.
	codes := roomid.NewGenerator(c.CodeLength, randutil.New(rng.Int64()))
	reg := registry.New(logger, nil, codes.Generate,
		registry.WithIdleTTL(cfg.IdleRoomTTL()))

	rules := cfg.GameRules()
	srv := server.NewServer(addr, logger)
	gateway := server.NewGateway(logger, reg, srv, rules, rng)
	srv.SetGateway(gateway)

	logger.Info("Starting perudod server",
		"addr", addr,
		"starting_dice", rules.StartingDiceCount,
		"highest_value", rules.HighestValue,
		"spot_on", rules.SpotOn,
		"wildcard", rules.WildcardEnabled,
	)

	ctx := shared.SetupSignalHandler(logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		reg.Run(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Stop()
	})

	return g.Wait()
}
