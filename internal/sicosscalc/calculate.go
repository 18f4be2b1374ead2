/*
Package sicosscalc - Calculator (spec.md §4.2)

FILE: internal/sicosscalc/calculate.go

Calculator is a pure per-employee function: no cross-employee dependency,
consolidated row + OtraActividad + SicossConfig in, an EmployeeRow with the
secondary bases (Imponible_4/5/6/9), TipoDeOperacion, PrioridadActividad,
AsignacionesFamiliares and config passthrough stamped on, out.
*/
package sicosscalc

import (
	"time"

	"sicoss/internal/sicossmodel"
)

// Calculator implements spec.md §4.2. Clock is overridable for tests;
// production callers leave it nil and get time.Now.
type Calculator struct {
	Clock func() time.Time
}

// New builds a Calculator using the wall clock.
func New() *Calculator {
	return &Calculator{Clock: time.Now}
}

// Calculate runs §4.2 for one employee. otraActividad may be the zero value
// when the employee has no prior-employer contributions on record.
func (c *Calculator) Calculate(row sicossmodel.EmployeeRow, otraActividad sicossmodel.OtraActividad, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	now := time.Now
	if c.Clock != nil {
		now = c.Clock
	}

	// Imponible_4: starts at ImporteImponibleSinSAC; CapEngine truncates it
	// against the "otros aportes" cap, crediting OtraActividad.ImporteOtros.
	row.Imponible4 = row.ImporteImponibleSinSAC

	// Imponible_5: Remuner78805, unconditionally (I1's baseline before any
	// cap truncation runs).
	row.Imponible5 = row.Remuner78805

	// Imponible_1 starts equal to Remuner78805; CapEngine truncates it.
	row.Imponible1 = row.Remuner78805

	priority := derivePriority(row.ContributingGroups)
	row.PrioridadActividad = priority

	// Imponible_6: investigator-only statutory floor (I5, S4).
	if priority.IsInvestigator() {
		row.Imponible6 = row.ImporteInvestigador
		if row.Imponible6.LessThan(sicossmodel.InvestigatorFloorAmount) {
			row.Imponible6 = sicossmodel.InvestigatorFloorAmount
		}
		row.TipoDeOperacion = sicossmodel.TipoOperacionInvestigador
	} else {
		row.Imponible6 = sicossmodel.Zero
		row.TipoDeOperacion = sicossmodel.TipoOperacionGeneral
	}

	// Imponible_9: ART base, pre cap-band re-clamp (done by CapEngine after
	// Imponible_4 settles).
	row.Imponible9 = row.Imponible4

	if cfg.AsignacionFamiliar {
		conyugeAmount := sicossmodel.Zero
		if row.Legajo.Conyuge {
			conyugeAmount = sicossmodel.MoneyFromFloat(500)
		}
		hijosAmount := sicossmodel.MoneyFromFloat(1000).Mul(sicossmodel.MoneyFromFloat(float64(row.Legajo.Hijos)))
		row.AsignacionesFamiliares = hijosAmount.Add(conyugeAmount).Add(row.ImporteAsignacionesFamiliares)
	} else {
		row.AsignacionesFamiliares = sicossmodel.Zero
	}

	row.InformarBecarios = cfg.InformarBecarios
	row.ARTConTope = cfg.ARTConTope
	row.ConceptosNoRemunEnART = cfg.ConceptosNoRemunEnART
	row.PorcAporteAdicionalJubilacion = cfg.PorcAporteAdicionalJubilacion
	row.TrabajadorConvencionado = row.Legajo.TrabajadorConvencionado

	row.FechaProcesamiento = now()
	row.VersionSistema = cfg.VersionSistema
	row.MetodoProcesamiento = "sicosspipeline"

	// OtraActividad is credited against T_JPer/T_OA by CapEngine; Calculator
	// only attaches it to the row.
	row.OtraActividad = otraActividad

	return row
}
