// Command seed-data fills a store with random sample athletes and jumps.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	app "github.com/taykof/vaultlog/internal/app"
	"github.com/taykof/vaultlog/internal/config"
	"github.com/taykof/vaultlog/internal/seed"
	"github.com/taykof/vaultlog/pkg/logger"
)

// Default configuration constants.
const (
	defaultAthletes = 5
	defaultJumps    = 12
)

func main() {
	var (
		athletes = flag.Int("athletes", defaultAthletes, "Number of athletes to create")
		jumps    = flag.Int("jumps", defaultJumps, "Number of jumps per athlete")
		seedVal  = flag.Int64("seed", time.Now().UnixNano(), "Random seed (fix for reproducible data)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	med, err := medium.Open(ctx, medium.Driver(cfg.MediumDriver), cfg.MediumPath())
	if err != nil {
		log.Error(ctx, "failed to open storage medium", logger.Error(err))
		os.Exit(1)
	}

	svc := app.New(app.WithLogger(log), app.WithMedium(med))
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	gen := seed.New(
		seed.WithAthleteCount(*athletes),
		seed.WithJumpsPerAthlete(*jumps),
		seed.WithSeed(*seedVal),
		seed.WithLogger(log),
	)
	if err := gen.Run(ctx, svc); err != nil {
		log.Error(ctx, "seeding failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "seeding complete",
		logger.Int("athletes", *athletes),
		logger.Int("jumpsPerAthlete", *jumps),
	)
}
