// Package seed populates a store with plausible sample data through the
// public service API, for manual testing of the surrounding application.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/repository"
	app "github.com/taykof/vaultlog/internal/app"
	"github.com/taykof/vaultlog/internal/domain/measure"
	"github.com/taykof/vaultlog/internal/domain/model"
	"github.com/taykof/vaultlog/pkg/logger"
)

// Default generation constants.
const (
	defaultAthletes       = 5
	defaultJumpsPer       = 12
	defaultSeed     int64 = 1

	barlessShare  = 0.25 // share of practice reps without a bar
	missShare     = 0.4
	metricShare   = 0.5
	historyWindow = 365 // days of jump history
)

var firstNames = []string{
	"Jane", "Armand", "Katie", "Mondo", "Sandi", "Renaud", "Nina", "Sam",
	"Holly", "Thiago", "Eliza", "KC",
}

var lastNames = []string{
	"Morris", "Duplantis", "Moon", "Kendricks", "Lavillenie", "Bradshaw",
	"Nilsen", "Guttormsen", "Newman", "Braz",
}

var sexes = []string{"female", "male", ""}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithAthleteCount sets how many athletes to create.
func WithAthleteCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.athletes = n
		}
	}
}

// WithJumpsPerAthlete sets how many jumps each athlete gets.
func WithJumpsPerAthlete(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.jumpsPer = n
		}
	}
}

// WithSeed fixes the random seed for reproducible data sets.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // sample data, not security
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// Generator creates random athletes with jump histories.
type Generator struct {
	athletes int
	jumpsPer int
	rng      *rand.Rand
	log      logger.Logger
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		athletes: defaultAthletes,
		jumpsPer: defaultJumpsPer,
		rng:      rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // sample data, not security
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run writes the generated data through svc. It stops on the first
// persistence failure.
func (g *Generator) Run(ctx context.Context, svc *app.Service) error {
	for i := 0; i < g.athletes; i++ {
		a, err := svc.AddAthlete(ctx, repository.AthleteInput{
			Name: g.name(i),
			Sex:  sexes[g.rng.Intn(len(sexes))],
		})
		if err != nil {
			return fmt.Errorf("seed athlete %d: %w", i, err)
		}
		for j := 0; j < g.jumpsPer; j++ {
			if _, err := svc.AddJump(ctx, g.jump(a.ID)); err != nil {
				return fmt.Errorf("seed jump %d for %s: %w", j, a.Name, err)
			}
		}
		g.log.Info(ctx, "seeded athlete",
			logger.String("name", a.Name), logger.Int("jumps", g.jumpsPer))
	}
	return nil
}

func (g *Generator) name(i int) string {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	return fmt.Sprintf("%s %s %d", first, last, i+1)
}

func (g *Generator) jump(athleteID string) repository.JumpInput {
	date := time.Now().AddDate(0, 0, -g.rng.Intn(historyWindow)).Format("2006-01-02")

	session := model.SessionPractice
	if g.rng.Intn(4) == 0 {
		session = model.SessionCompetition
	}

	barUp := true
	if session == model.SessionPractice && g.rng.Float64() < barlessShare {
		barUp = false
	}

	in := repository.JumpInput{
		AthleteID:   athleteID,
		Date:        date,
		SessionType: session,
		BarUp:       barUp,
	}
	if !barUp {
		return in
	}

	result := model.ResultMake
	if g.rng.Float64() < missShare {
		result = model.ResultMiss
	}
	in.Result = result

	// Heights between roughly 2.60 m and 5.00 m, entered the way a
	// person would type them in either unit system.
	cm := 260 + g.rng.Float64()*240
	if g.rng.Float64() < metricShare {
		in.BarUnit = measure.Metric
		in.BarRaw = measure.Format(cm, measure.Metric)
	} else {
		in.BarUnit = measure.Imperial
		in.BarRaw = measure.Format(cm, measure.Imperial)
	}
	return in
}
