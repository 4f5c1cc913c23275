// Package numerator provides document auto-numbering backed by a
// sequence table.
package numerator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// Strategy defines the numbering generation strategy.
type Strategy int

const (
	// StrategyStrict uses an UPSERT ... RETURNING round trip for every
	// number. Sequential, gap-free; suitable for fiscal documents.
	StrategyStrict Strategy = iota

	// StrategyCached reserves ranges of numbers in memory. Much faster,
	// but restarts leave gaps; suitable for internal documents.
	StrategyCached
)

// Options configures number generation.
type Options struct {
	Strategy Strategy

	// RangeSize is how many numbers StrategyCached reserves per round
	// trip. Default 50.
	RangeSize int64
}

// DefaultOptions returns the strict strategy.
func DefaultOptions() *Options {
	return &Options{Strategy: StrategyStrict}
}

// Querier is the database dependency; satisfied by pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds the numbering pattern for one document type.
type Config struct {
	// Prefix added to all numbers (e.g. "ORD")
	Prefix string

	// IncludeYear adds the period year to the number
	IncludeYear bool

	// PadWidth is the minimum counter width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month" or "never"
	ResetPeriod string
}

// DefaultConfig returns yearly-reset numbering: PREFIX-YEAR-XXXXX.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

type cachedRange struct {
	current int64
	max     int64
}

// Service generates document numbers.
type Service struct {
	querier Querier

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

// New creates a numerator service.
func New(querier Querier) *Service {
	return &Service{
		querier: querier,
		ranges:  make(map[string]*cachedRange),
	}
}

// GetNextNumber generates the next document number for the given period,
// e.g. ORD-2026-00001.
func (s *Service) GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	key := s.buildKey(cfg, period)

	var num int64
	var err error
	switch opts.Strategy {
	case StrategyCached:
		num, err = s.getNextCached(ctx, key, opts)
	default:
		num, err = s.getNextStrict(ctx, key)
	}
	if err != nil {
		return "", err
	}

	return s.formatNumber(cfg, period, num), nil
}

// getNextStrict bumps the sequence by one and returns the new value.
func (s *Service) getNextStrict(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// getNextCached serves from the in-memory range, reserving a new range
// from the database when exhausted. current_val tracks the last number
// handed out, so a reservation of size N claims (old_val, old_val+N].
func (s *Service) getNextCached(ctx context.Context, key string, opts *Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}

		var newMax int64
		err := s.querier.QueryRow(ctx, `
			INSERT INTO sys_sequences (key, current_val)
			VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
			RETURNING current_val
		`, key, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// buildKey derives the sequence key, folding in the reset period.
func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%d_%02d", cfg.Prefix, period.Year(), period.Month())
	case "never":
		return cfg.Prefix
	default: // year
		return fmt.Sprintf("%s_%d", cfg.Prefix, period.Year())
	}
}

func (s *Service) formatNumber(cfg Config, period time.Time, num int64) string {
	pad := cfg.PadWidth
	if pad <= 0 {
		pad = 5
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%d-%0*d", cfg.Prefix, period.Year(), pad, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, pad, num)
}
