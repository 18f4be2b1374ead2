/*
Package sicosspersist - row validation and mapping

FILE: internal/sicosspersist/convert.go

toTableRow is the static field-by-field mapping from SicossRecord onto the
suc.afip_mapuche_sicoss row shape, plus the per-row validation spec.md §4.6
requires before any row reaches the transaction: NOT NULL presence, cuil
exactly 11 digits, apnom truncated to 40 chars.
*/
package sicosspersist

import (
	"fmt"
	"strings"

	"sicoss/internal/sicossmodel"
)

const apnomMaxLen = 40

// toTableRow validates rec and maps it onto a sicossTableRow. Any violation
// returns an error naming the offending field; Persist attaches the row
// index before wrapping it as ErrPersistenceFailed.
func toTableRow(rec sicossmodel.SicossRecord) (sicossTableRow, error) {
	if err := validateRecord(rec); err != nil {
		return sicossTableRow{}, err
	}

	apnom := rec.Apnom
	if len(apnom) > apnomMaxLen {
		apnom = apnom[:apnomMaxLen]
	}

	porcAporte, _ := rec.PorcAporte.Float64()
	remTotal, _ := rec.RemTotal.Float64()
	remImpo1, _ := rec.RemImpo1.Float64()
	remImpo2, _ := rec.RemImpo2.Float64()
	remImpo3, _ := rec.RemImpo3.Float64()
	remImpo4, _ := rec.RemImpo4.Float64()
	remImpo5, _ := rec.RemImpo5.Float64()
	remImpo6, _ := rec.RemImpo6.Float64()
	remImpo7, _ := rec.RemImpo7.Float64()
	remImpo8, _ := rec.RemImpo8.Float64()
	remImpo9, _ := rec.RemImpo9.Float64()
	sac, _ := rec.SAC.Float64()
	noRemun, _ := rec.NoRemun.Float64()

	return sicossTableRow{
		PeriodoFiscal: rec.PeriodoFiscal,
		Cuil:          rec.Cuil,
		Apnom:         apnom,

		Conyuge:   rec.Conyuge,
		CantHijos: rec.CantHijos,
		CantAdh:   rec.CantAdh,

		CodSituacion: rec.CodSituacion,
		CodCond:      rec.CodCond,
		CodAct:       rec.CodAct,
		CodZona:      rec.CodZona,
		PorcAporte:   porcAporte,
		CodModCont:   rec.CodModCont,
		CodOS:        rec.CodOS,

		RemTotal: remTotal,
		RemImpo1: remImpo1,
		RemImpo2: remImpo2,
		RemImpo3: remImpo3,
		RemImpo4: remImpo4,
		RemImpo5: remImpo5,
		RemImpo6: remImpo6,
		RemImpo7: remImpo7,
		RemImpo8: remImpo8,
		RemImpo9: remImpo9,
		SAC:      sac,
		NoRemun:  noRemun,

		TipoDeOperacion:          rec.TipoDeOperacion,
		PrioridadTipoDeActividad: int(rec.PrioridadTipoDeActividad),
		TrabajadorConvencionado:  rec.TrabajadorConvencionado,

		SitRev1:       rec.SitRev1,
		SitRev2:       rec.SitRev2,
		SitRev3:       rec.SitRev3,
		DiaIniSitRev1: rec.DiaIniSitRev1,
		DiaIniSitRev2: rec.DiaIniSitRev2,
		DiaIniSitRev3: rec.DiaIniSitRev3,

		FechaProcesamiento:  rec.FechaProcesamiento,
		VersionSistema:      rec.VersionSistema,
		MetodoProcesamiento: rec.MetodoProcesamiento,
	}, nil
}

// validateRecord enforces the NOT NULL / width / format constraints spec.md
// §4.6 lists for the destination table.
func validateRecord(rec sicossmodel.SicossRecord) error {
	if len(rec.PeriodoFiscal) != 6 {
		return fmt.Errorf("periodo_fiscal %q must be 6 digits (YYYYMM)", rec.PeriodoFiscal)
	}
	if len(rec.Cuil) != 11 {
		return fmt.Errorf("cuil %q must be exactly 11 digits, got %d", rec.Cuil, len(rec.Cuil))
	}
	for _, r := range rec.Cuil {
		if r < '0' || r > '9' {
			return fmt.Errorf("cuil %q must be exactly 11 digits", rec.Cuil)
		}
	}
	if strings.TrimSpace(rec.Apnom) == "" {
		return fmt.Errorf("apnom must not be empty")
	}
	if rec.CodSituacion == "" {
		return fmt.Errorf("cod_situacion must not be empty")
	}
	if rec.VersionSistema == "" {
		return fmt.Errorf("version_sistema must not be empty")
	}
	if rec.MetodoProcesamiento == "" {
		return fmt.Errorf("metodo_procesamiento must not be empty")
	}
	return nil
}
