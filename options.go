package twisty

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures Puzzle behavior.
type Option func(*config)

type config struct {
	rng    *rand.Rand
	logger logrus.FieldLogger
}

func defaultConfig() *config {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &config{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: discard,
	}
}

// WithRand sets the random source used by Scramble.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSeed makes Scramble deterministic for a given seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger for debug output. Puzzles are silent by default.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
