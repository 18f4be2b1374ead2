/*
Package sicosspersist - Persister (spec.md §4.6)

FILE: internal/sicosspersist/persist.go

Maps the wide SicossRecord to the suc.afip_mapuche_sicoss reporting table
and writes it in one transactional, batched bulk insert. On any row-level
failure the whole transaction rolls back; no partial period is ever visible.
*/
package sicosspersist

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	sicosserrors "sicoss/internal/errors"
	"sicoss/internal/sicossmodel"
)

// sicossTableRow is the GORM row shape for suc.afip_mapuche_sicoss. Field
// order mirrors sicossmodel.SicossRecord; this struct (and nothing else) is
// the name-to-column map spec.md §9 calls for.
type sicossTableRow struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	PeriodoFiscal string `gorm:"column:periodo_fiscal;size:6;not null"`
	Cuil          string `gorm:"column:cuil;size:11;not null"`
	Apnom         string `gorm:"column:apnom;size:40;not null"`

	Conyuge   bool `gorm:"column:conyuge;not null"`
	CantHijos int  `gorm:"column:cant_hijos;not null"`
	CantAdh   int  `gorm:"column:cant_adh;not null"`

	CodSituacion string  `gorm:"column:cod_situacion;not null"`
	CodCond      string  `gorm:"column:cod_cond;not null"`
	CodAct       string  `gorm:"column:cod_act;not null"`
	CodZona      string  `gorm:"column:cod_zona;not null"`
	PorcAporte   float64 `gorm:"column:porc_aporte;not null"`
	CodModCont   string  `gorm:"column:cod_mod_cont;not null"`
	CodOS        string  `gorm:"column:cod_os;not null"`

	RemTotal float64 `gorm:"column:rem_total;not null"`
	RemImpo1 float64 `gorm:"column:rem_impo1;not null"`
	RemImpo2 float64 `gorm:"column:rem_impo2;not null"`
	RemImpo3 float64 `gorm:"column:rem_impo3;not null"`
	RemImpo4 float64 `gorm:"column:rem_impo4;not null"`
	RemImpo5 float64 `gorm:"column:rem_impo5;not null"`
	RemImpo6 float64 `gorm:"column:rem_impo6;not null"`
	RemImpo7 float64 `gorm:"column:rem_impo7;not null"`
	RemImpo8 float64 `gorm:"column:rem_impo8;not null"`
	RemImpo9 float64 `gorm:"column:rem_impo9;not null"`
	SAC      float64 `gorm:"column:sac;not null"`
	NoRemun  float64 `gorm:"column:no_remun;not null"`

	TipoDeOperacion          int    `gorm:"column:tipo_de_operacion;not null"`
	PrioridadTipoDeActividad int    `gorm:"column:prioridad_tipo_de_actividad;not null"`
	TrabajadorConvencionado  string `gorm:"column:trabajador_convencionado;not null"`

	SitRev1       string `gorm:"column:sit_rev1;not null"`
	SitRev2       string `gorm:"column:sit_rev2;not null"`
	SitRev3       string `gorm:"column:sit_rev3;not null"`
	DiaIniSitRev1 int    `gorm:"column:dia_ini_sit_rev1;not null"`
	DiaIniSitRev2 int    `gorm:"column:dia_ini_sit_rev2;not null"`
	DiaIniSitRev3 int    `gorm:"column:dia_ini_sit_rev3;not null"`

	FechaProcesamiento  time.Time `gorm:"column:fecha_procesamiento;not null"`
	VersionSistema      string    `gorm:"column:version_sistema;not null"`
	MetodoProcesamiento string    `gorm:"column:metodo_procesamiento;not null"`
}

func (sicossTableRow) TableName() string { return "suc.afip_mapuche_sicoss" }

// Stats is the result shape spec.md §4.6 requires Persister to return.
type Stats struct {
	LegajosGuardados int
	Duracion         time.Duration
	TablaDestino     string
	Periodo          string
}

// Persister implements §4.6.
type Persister struct {
	db        *gorm.DB
	batchSize int
}

// New builds a Persister. batchSize must be >= 1000 per spec.md §4.6; a
// smaller value is clamped up to 1000.
func New(db *gorm.DB, batchSize int) *Persister {
	if batchSize < 1000 {
		batchSize = 1000
	}
	return &Persister{db: db, batchSize: batchSize}
}

// Persist validates and bulk-inserts records for period in one transaction.
// Any row-level failure rolls back the whole transaction; the returned
// error is a PersistenceFailed AppError naming the offending row index.
func (p *Persister) Persist(ctx context.Context, period sicossmodel.FiscalPeriod, records []sicossmodel.SicossRecord) (Stats, error) {
	start := time.Now()

	rows := make([]sicossTableRow, len(records))
	for i, rec := range records {
		row, err := toTableRow(rec)
		if err != nil {
			return Stats{}, sicosserrors.Wrap(
				fmt.Errorf("row %d: %w", i, err),
				sicosserrors.ErrPersistenceFailed,
			)
		}
		rows[i] = row
	}

	txErr := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return tx.CreateInBatches(rows, p.batchSize).Error
	})
	if txErr != nil {
		return Stats{}, sicosserrors.Wrap(txErr, sicosserrors.ErrPersistenceFailed)
	}

	return Stats{
		LegajosGuardados: len(rows),
		Duracion:         time.Since(start),
		TablaDestino:     sicossTableRow{}.TableName(),
		Periodo:          period.String(),
	}, nil
}
