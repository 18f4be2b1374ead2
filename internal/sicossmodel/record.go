/*
Package sicossmodel - SICOSS core domain types

FILE: internal/sicossmodel/record.go

SicossRecord is the wide per-employee output row (spec.md §3). Persister
maps it onto the suc.afip_mapuche_sicoss reporting table.
*/
package sicossmodel

import "time"

// SicossRecord is one employee's finished row, ready for persistence.
type SicossRecord struct {
	// identity
	PeriodoFiscal string
	Cuil          string
	Apnom         string

	// family
	Conyuge   bool
	CantHijos int
	CantAdh   int

	// classification
	CodSituacion string
	CodCond      string
	CodAct       string
	CodZona      string
	PorcAporte   Money
	CodModCont   string
	CodOS        string

	// bases
	RemTotal  Money
	RemImpo1  Money
	RemImpo2  Money
	RemImpo3  Money
	RemImpo4  Money
	RemImpo5  Money
	RemImpo6  Money
	RemImpo7  Money
	RemImpo8  Money
	RemImpo9  Money
	SAC       Money
	NoRemun   Money

	// categoric
	TipoDeOperacion         int
	PrioridadTipoDeActividad ActivityPriority
	TrabajadorConvencionado string

	// revista (employment-status history; not computed by the core and left
	// at zero values, carried for wire compatibility)
	SitRev1       string
	SitRev2       string
	SitRev3       string
	DiaIniSitRev1 int
	DiaIniSitRev2 int
	DiaIniSitRev3 int

	// meta
	FechaProcesamiento  time.Time
	VersionSistema      string
	MetodoProcesamiento string
}
