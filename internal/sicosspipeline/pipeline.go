/*
Package sicosspipeline - run orchestrator (spec.md §2, §5, §6.1-§6.3)

FILE: internal/sicosspipeline/pipeline.go

Pipeline wires the seven stages (extract -> consolidate -> calculate -> cap
-> validate -> aggregate -> persist). Consolidation is whole-batch (it has
to see every employee's concepts to check completeness); calculate/cap/
validate are per-employee pure functions and run data-parallel across a
bounded worker pool, grounded on the teacher's semaphore + errgroup shape in
agent/executor.go (Execute's parallel branch).
*/
package sicosspipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sicoss/internal/extract"
	sicosserrors "sicoss/internal/errors"
	"sicoss/internal/sicossaggregate"
	"sicoss/internal/sicosscalc"
	"sicoss/internal/sicosscap"
	"sicoss/internal/sicossconsolidate"
	"sicoss/internal/sicossmodel"
	"sicoss/internal/sicosspersist"
	"sicoss/internal/sicossvalidate"
)

// Report is what the pipeline returns for one run, the shape ApiFacade's
// "completo"/"resumen"/"solo_totales" response formats are all derived from
// (§6.3).
type Report struct {
	Period     sicossmodel.FiscalPeriod
	Rows       []sicossmodel.EmployeeRow
	Records    []sicossmodel.SicossRecord
	Totals     sicossaggregate.Totals
	Persisted  sicosspersist.Stats
	StartedAt  time.Time
	FinishedAt time.Time
}

// Pipeline is the orchestrator. MaxConcurrency bounds how many employees'
// calculate/cap/validate chain runs at once; it comes from
// AppConfig.MaxConcurrentEmployees.
type Pipeline struct {
	Extractor      extract.ExtractorSet
	Calculator     *sicosscalc.Calculator
	CapEngine      *sicosscap.Engine
	Validator      *sicossvalidate.Validator
	Aggregator     *sicossaggregate.Aggregator
	Persister      *sicosspersist.Persister
	MaxConcurrency int
	Log            *logrus.Logger
}

// New builds a Pipeline with the default stage implementations. Callers
// that need to override a stage (tests, alternate storage) can construct
// Pipeline directly instead.
func New(ex extract.ExtractorSet, persister *sicosspersist.Persister, maxConcurrency int, log *logrus.Logger) *Pipeline {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Pipeline{
		Extractor:      ex,
		Calculator:     sicosscalc.New(),
		CapEngine:      sicosscap.New(),
		Validator:      sicossvalidate.New(),
		Aggregator:     sicossaggregate.New(),
		Persister:      persister,
		MaxConcurrency: maxConcurrency,
		Log:            log,
	}
}

// Run executes one full computation over period, optionally scoped to a
// single employee. persist controls whether Persister's transaction runs at
// all (§6.3's guardar_en_bd); when false the report is still fully computed
// and aggregated, just not written. Cancellation is checked at the I/O
// boundaries (extract, persist) and between every employee's stage chain.
func (p *Pipeline) Run(ctx context.Context, period sicossmodel.FiscalPeriod, cfg sicossmodel.SicossConfig, nroLegajo *sicossmodel.EmployeeId, persist bool) (Report, error) {
	started := time.Now()

	if err := cfg.Validate(); err != nil {
		return Report{}, sicosserrors.Wrap(err, sicosserrors.ErrInvalidConfig)
	}

	extracted, err := p.Extractor.Extract(ctx, period, nroLegajo)
	if err != nil {
		return Report{}, err // already an AppError from the extractor
	}

	consolidator := sicossconsolidate.New(p.Log)
	rows, err := consolidator.Consolidate(extracted.Legajos, extracted.Conceptos)
	if err != nil {
		return Report{}, sicosserrors.Wrap(err, sicosserrors.ErrConsolidationIncomplete)
	}

	otraByLegajo := make(map[sicossmodel.EmployeeId]sicossmodel.OtraActividad, len(extracted.OtraActividad))
	for _, oa := range extracted.OtraActividad {
		otraByLegajo[oa.NroLegaj] = oa
	}

	finished, records, err := p.processEmployees(ctx, rows, otraByLegajo, cfg, period)
	if err != nil {
		return Report{}, err
	}

	totals := p.Aggregator.Aggregate(finished)

	var stats sicosspersist.Stats
	if persist {
		stats, err = p.Persister.Persist(ctx, period, records)
		if err != nil {
			return Report{}, err
		}
	}

	return Report{
		Period:     period,
		Rows:       finished,
		Records:    records,
		Totals:     totals,
		Persisted:  stats,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}, nil
}

// processEmployees runs calculate/cap/validate for each row concurrently,
// bounded by p.MaxConcurrency, and checks I1 and I3-I7 on each finished row.
func (p *Pipeline) processEmployees(
	ctx context.Context,
	rows []sicossmodel.EmployeeRow,
	otraByLegajo map[sicossmodel.EmployeeId]sicossmodel.OtraActividad,
	cfg sicossmodel.SicossConfig,
	period sicossmodel.FiscalPeriod,
) ([]sicossmodel.EmployeeRow, []sicossmodel.SicossRecord, error) {
	finished := make([]sicossmodel.EmployeeRow, len(rows))
	records := make([]sicossmodel.SicossRecord, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, p.MaxConcurrency)

	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			if err := gctx.Err(); err != nil {
				return err
			}

			oa := otraByLegajo[row.Legajo.NroLegaj]
			calculated := p.Calculator.Calculate(row, oa, cfg)
			capped := p.CapEngine.Apply(calculated, cfg)

			if err := checkInvariants(capped); err != nil {
				return sicosserrors.Wrap(err, sicosserrors.ErrInvariantViolation)
			}

			validated := p.Validator.Validate(capped, cfg)
			finished[i] = validated
			records[i] = toRecord(period, validated)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	validRecords := make([]sicossmodel.SicossRecord, 0, len(records))
	for i, rec := range records {
		if finished[i].Valid {
			validRecords = append(validRecords, rec)
		}
	}

	return finished, validRecords, nil
}
