/*
Package extract - ExtractorSet (spec.md §2 step 1, §6.1)

FILE: internal/extract/extract.go

ExtractorSet is an interface, not an algorithm (spec.md: "Interface only; no
algorithm") -- the raw SQL against the HR schema is an external collaborator.
This file defines the interface and the GORM-backed implementation that
queries the source views the HR system exposes.
*/
package extract

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	sicosserrors "sicoss/internal/errors"
	"sicoss/internal/sicossmodel"
)

// Result bundles the four tables ExtractorSet produces for one fiscal
// period and optional single-employee filter (spec.md §6.1).
type Result struct {
	Legajos         []sicossmodel.Legajo
	Conceptos       []sicossmodel.Concepto
	OtraActividad   []sicossmodel.OtraActividad
	ObraSocialCodes []sicossmodel.ObraSocialCode
}

// ExtractorSet is the interface the pipeline depends on. NroLegajo, when
// non-nil, scopes every query to a single employee.
type ExtractorSet interface {
	Extract(ctx context.Context, period sicossmodel.FiscalPeriod, nroLegajo *sicossmodel.EmployeeId) (Result, error)
}

// legajoRow, conceptoRow, otraActividadRow and obraSocialRow are the GORM
// row shapes read from the HR source views. Table names are placeholders
// for the views the source system is assumed to expose (spec.md §1:
// "source views/tables are assumed").
type legajoRow struct {
	NroLegaj                int64
	PeriodoFiscal           string
	Cuil                    string
	Apnom                   string
	CodSituacion            string
	CodCondicion            string
	CodActividad            string
	CodZona                 string
	CodModContratacion      string
	CodObraSocial           string
	Regimen                 string
	Conyuge                 bool
	Hijos                   int
	Adherentes              int
	Licencia                bool
	TrabajadorConvencionado string
	ProvinciaLocalidad      string
}

func (legajoRow) TableName() string { return "hr_source.v_sicoss_legajos" }

type conceptoRow struct {
	NroLegaj      int64
	PeriodoFiscal string
	CodnConce     int
	ImppConce   float64
	TiposGrupos string // comma-separated small ints, e.g. "1,6"
	TipoConce   string
	NroOrimp    int
	Escalafon   string
}

func (conceptoRow) TableName() string { return "hr_source.v_sicoss_conceptos" }

type otraActividadRow struct {
	NroLegaj           int64
	PeriodoFiscal      string
	ImporteJubilatorio float64
	ImporteOtros       float64
}

func (otraActividadRow) TableName() string { return "hr_source.v_sicoss_otra_actividad" }

type obraSocialRow struct {
	NroLegaj      int64
	PeriodoFiscal string
	CodOS         string
}

func (obraSocialRow) TableName() string { return "hr_source.v_sicoss_obra_social" }

// GormExtractorSet implements ExtractorSet against a GORM connection.
type GormExtractorSet struct {
	db         *gorm.DB
	maxRetries int
	backoff    time.Duration
}

// New builds a GormExtractorSet with the default retry policy (3 attempts,
// exponential backoff starting at 200ms) from spec.md §7's ExtractionFailed
// contract.
func New(db *gorm.DB) *GormExtractorSet {
	return &GormExtractorSet{db: db, maxRetries: 3, backoff: 200 * time.Millisecond}
}

// Extract implements ExtractorSet.
func (e *GormExtractorSet) Extract(ctx context.Context, period sicossmodel.FiscalPeriod, nroLegajo *sicossmodel.EmployeeId) (Result, error) {
	var legajoRows []legajoRow
	if err := e.withRetry(ctx, func() error {
		q := e.db.WithContext(ctx).Where("periodo_fiscal = ?", period.String())
		if nroLegajo != nil {
			q = q.Where("nro_legaj = ?", int64(*nroLegajo))
		}
		return q.Find(&legajoRows).Error
	}); err != nil {
		return Result{}, sicosserrors.Wrap(err, sicosserrors.ErrExtractionFailed)
	}

	if len(legajoRows) == 0 {
		return Result{}, nil // NotFound: empty result, success=true (§6.1)
	}

	var conceptoRows []conceptoRow
	if err := e.withRetry(ctx, func() error {
		q := e.db.WithContext(ctx).Where("periodo_fiscal = ?", period.String())
		if nroLegajo != nil {
			q = q.Where("nro_legaj = ?", int64(*nroLegajo))
		}
		return q.Find(&conceptoRows).Error
	}); err != nil {
		return Result{}, sicosserrors.Wrap(err, sicosserrors.ErrExtractionFailed)
	}

	var otraActividadRows []otraActividadRow
	if err := e.withRetry(ctx, func() error {
		q := e.db.WithContext(ctx).Where("periodo_fiscal = ?", period.String())
		if nroLegajo != nil {
			q = q.Where("nro_legaj = ?", int64(*nroLegajo))
		}
		return q.Find(&otraActividadRows).Error
	}); err != nil {
		return Result{}, sicosserrors.Wrap(err, sicosserrors.ErrExtractionFailed)
	}

	var obraSocialRows []obraSocialRow
	if err := e.withRetry(ctx, func() error {
		q := e.db.WithContext(ctx).Where("periodo_fiscal = ?", period.String())
		if nroLegajo != nil {
			q = q.Where("nro_legaj = ?", int64(*nroLegajo))
		}
		return q.Find(&obraSocialRows).Error
	}); err != nil {
		return Result{}, sicosserrors.Wrap(err, sicosserrors.ErrExtractionFailed)
	}

	return Result{
		Legajos:         toLegajos(legajoRows),
		Conceptos:       toConceptos(conceptoRows),
		OtraActividad:   toOtraActividad(otraActividadRows),
		ObraSocialCodes: toObraSocialCodes(obraSocialRows),
	}, nil
}

// withRetry calls fn up to e.maxRetries times in all, with exponential backoff,
// respecting context cancellation between attempts (spec.md §7:
// "TransientDbError -> retried with exponential backoff up to 3 attempts").
func (e *GormExtractorSet) withRetry(ctx context.Context, fn func() error) error {
	wait := e.backoff
	var lastErr error
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if attempt == e.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return lastErr
}
