/*
Package sicosspipeline - EmployeeRow -> SicossRecord mapping

FILE: internal/sicosspipeline/record.go

toRecord is the final step of the per-employee chain: it flattens the
EmployeeRow the stages have been threading into the wide SicossRecord shape
Persister writes. rem_impo2/3/7/8 are legacy AFIP columns spec.md never
assigns a computation to; they are carried as zero, matching the other
wire-compatibility-only fields (sit_rev1..3).
*/
package sicosspipeline

import (
	"sicoss/internal/sicossmodel"
)

func toRecord(period sicossmodel.FiscalPeriod, row sicossmodel.EmployeeRow) sicossmodel.SicossRecord {
	l := row.Legajo
	return sicossmodel.SicossRecord{
		PeriodoFiscal: period.String(),
		Cuil:          l.Cuil,
		Apnom:         l.Apnom,

		Conyuge:   l.Conyuge,
		CantHijos: l.Hijos,
		CantAdh:   l.Adherentes,

		CodSituacion: l.CodSituacion,
		CodCond:      l.CodCondicion,
		CodAct:       l.CodActividad,
		CodZona:      l.CodZona,
		PorcAporte:   row.PorcAporteAdicionalJubilacion,
		CodModCont:   l.CodModContratacion,
		CodOS:        l.CodObraSocial,

		RemTotal: row.RemTotal(),
		RemImpo1: row.Imponible1,
		RemImpo2: sicossmodel.Zero,
		RemImpo3: sicossmodel.Zero,
		RemImpo4: row.Imponible4,
		RemImpo5: row.Imponible5,
		RemImpo6: row.Imponible6,
		RemImpo7: sicossmodel.Zero,
		RemImpo8: sicossmodel.Zero,
		RemImpo9: row.Imponible9,
		SAC:      row.SAC(),
		NoRemun:  row.NoRemun(),

		TipoDeOperacion:          row.TipoDeOperacion,
		PrioridadTipoDeActividad: row.PrioridadActividad,
		TrabajadorConvencionado:  row.TrabajadorConvencionado,

		FechaProcesamiento:  row.FechaProcesamiento,
		VersionSistema:      row.VersionSistema,
		MetodoProcesamiento: row.MetodoProcesamiento,
	}
}
