// Package evaluate runs the full S-box evaluation pipeline and assembles the report.
//
// The stages run in a fixed order: normalization, domain and range validation,
// then the Difference Distribution Table and the Walsh spectrum concurrently, then
// the bent classification. Stages whose preconditions fail are skipped and their
// metrics are reported as absent.
package evaluate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/core"
	"github.com/themarkrogers/ai-s-box/metrics/ddt"
	"github.com/themarkrogers/ai-s-box/metrics/domain"
	"github.com/themarkrogers/ai-s-box/metrics/normalize"
	"github.com/themarkrogers/ai-s-box/metrics/walsh"
)

// Evaluate normalizes table under params.Indexing and computes every metric that
// is well-defined for the result.
//
// Malformed tables (see normalize.ShapeError) and invalid params are errors. A
// table whose size or values do not match the claimed widths is not: the report
// records the inconsistency and leaves the affected metrics nil. A cancelled
// context returns ctx.Err() and no report.
func Evaluate(ctx context.Context, table sboxeval.Table, params sboxeval.Params, opts ...Option) (sboxeval.Report, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := core.ValidateParams(params); err != nil {
		return sboxeval.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return sboxeval.Report{}, err
	}

	start := time.Now()
	norm, err := normalize.Normalize(table, params.Indexing, cfg.parsers...)
	if err != nil {
		return sboxeval.Report{}, fmt.Errorf("normalize: %w", err)
	}
	cfg.logger.Debug("normalized table",
		"rows", norm.Rows,
		"cols", norm.Cols,
		"distinct_symbols", norm.DistinctSymbols,
		"ordinals", len(norm.Ordinals),
		"duration", time.Since(start))

	return run(ctx, norm, params, cfg)
}

// EvaluateSBox evaluates an already flattened S-box, skipping normalization.
// params.Indexing is ignored.
func EvaluateSBox(ctx context.Context, sbox sboxeval.SBox, params sboxeval.Params, opts ...Option) (sboxeval.Report, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := core.ValidateParams(params); err != nil {
		return sboxeval.Report{}, err
	}
	for x, y := range sbox {
		if y < 0 {
			return sboxeval.Report{}, fmt.Errorf("%w: S(%d) = %d is negative", core.ErrInvalidParams, x, y)
		}
	}
	if err := ctx.Err(); err != nil {
		return sboxeval.Report{}, err
	}

	distinct := make(map[int]struct{}, len(sbox))
	for _, y := range sbox {
		distinct[y] = struct{}{}
	}
	norm := normalize.Result{
		SBox:            sbox,
		DomainSize:      len(sbox),
		Rows:            1,
		Cols:            len(sbox),
		DistinctSymbols: len(distinct),
	}
	return run(ctx, norm, params, cfg)
}

func run(ctx context.Context, norm normalize.Result, params sboxeval.Params, cfg config) (sboxeval.Report, error) {
	n, m := params.InputBits, params.OutputBits
	log := cfg.logger.With("n", n, "m", m, "domain_size", norm.DomainSize)

	consistency, err := domain.Check(norm.SBox, norm.DomainSize, n, m)
	if err != nil {
		return sboxeval.Report{}, fmt.Errorf("domain check: %w", err)
	}
	log.Debug("checked consistency",
		"domain_consistent", consistency.DomainConsistent,
		"range_consistent", consistency.RangeConsistent,
		"max_output", consistency.MaxOutputValue)

	var (
		ddtTable *ddt.Table
		spectrum *walsh.Spectrum
	)
	g, gctx := errgroup.WithContext(ctx)
	if consistency.DomainConsistent {
		g.Go(func() error {
			start := time.Now()
			t, err := ddt.Compute(gctx, norm.SBox, n, m)
			if err != nil {
				return fmt.Errorf("ddt: %w", err)
			}
			ddtTable = t
			log.Debug("computed ddt", "output_size", t.OutputSize(), "dense", t.Dense(), "duration", time.Since(start))
			return nil
		})
	} else {
		log.Debug("skipping ddt", "reason", "domain inconsistent")
	}
	if consistency.Applicable() {
		g.Go(func() error {
			start := time.Now()
			s, err := walsh.Compute(gctx, norm.SBox, n, m, cfg.algorithm)
			if err != nil {
				return fmt.Errorf("walsh: %w", err)
			}
			spectrum = s
			log.Debug("computed walsh spectrum", "algorithm", cfg.algorithm, "duration", time.Since(start))
			return nil
		})
	} else {
		log.Debug("skipping walsh spectrum", "reason", "domain or range inconsistent")
	}
	if err := g.Wait(); err != nil {
		return sboxeval.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return sboxeval.Report{}, err
	}

	report := Synthesize(Inputs{
		Params:      params,
		Normalized:  norm,
		Consistency: consistency,
		DDT:         ddtTable,
		Walsh:       spectrum,
	})
	log.Debug("evaluation complete", "is_bent", report.IsBent, "fingerprint", report.Fingerprint)
	return report, nil
}
