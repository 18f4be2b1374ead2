/*
Package sicossmodel - SICOSS core domain types

FILE: internal/sicossmodel/row.go

EmployeeRow is the single evolving per-employee value threaded through the
pipeline stages (consolidate -> calculate -> cap -> validate -> aggregate).
Per spec.md §9's redesign guidance each stage returns a new EmployeeRow
rather than mutating a shared dataframe in place; §5 allows this because
every stage but Aggregator is per-employee independent.
*/
package sicossmodel

import "time"

// EmployeeRow carries one employee's state across every pipeline stage.
// Field groups mirror spec.md §4's stage boundaries.
type EmployeeRow struct {
	Legajo Legajo

	// ConceptConsolidator outputs (§4.1).
	ImporteSAC                    Money
	ImporteSACDoce                Money
	ImporteHorasExtras            Money
	ImporteZonaDesfavorable       Money
	ImporteVacaciones             Money
	ImportePremios                Money
	ImporteAdicionales            Money
	ImporteImponibleBecario       Money
	ImporteNoRemun                Money
	ImporteSeguroVida             Money
	ImporteInvestigador           Money
	ImporteAsignacionesFamiliares Money

	ImporteImponiblePatronal Money
	ImporteSACPatronal       Money
	ImporteImponibleSinSAC   Money
	ImporteBruto             Money

	// ContributingGroups is the distinct set of group tags seen across this
	// employee's concepts, in no particular order. Calculator uses it to
	// derive PrioridadActividad (§4.2: "derived from the set of contributing
	// concept types; tie-break by highest numeric class").
	ContributingGroups []GroupTag

	// Calculator + CapEngine shared mutable bases (§4.2, §4.3).
	// Remuner78805 and Imponible1 move together through ordinary cap
	// truncation (I1: rem_impo1 == Remuner78805). The differential-category
	// branch (I6) is the one documented exception: it zeroes Imponible1
	// only, leaving Remuner78805 (and therefore rem_total, I2) untouched.
	Remuner78805 Money
	Imponible1   Money
	Imponible4   Money
	Imponible5   Money
	Imponible6   Money
	Imponible9   Money

	TipoDeOperacion        int
	PrioridadActividad     ActivityPriority
	AsignacionesFamiliares Money

	// OtraActividad carries prior-employer contributions credited against
	// the personal caps; Calculator attaches it, CapEngine consumes it
	// (§4.2, §4.3).
	OtraActividad OtraActividad

	// Config passthrough stamped by Calculator (§4.2).
	InformarBecarios              bool
	ARTConTope                    bool
	ConceptosNoRemunEnART         bool
	PorcAporteAdicionalJubilacion Money
	TrabajadorConvencionado       string

	// Meta stamped by Calculator.
	FechaProcesamiento   time.Time
	VersionSistema       string
	MetodoProcesamiento  string

	// DifferentialApplied records whether CapEngine's differential-category
	// branch fired (I6), for diagnostics and tests.
	DifferentialApplied bool

	// CapsReportedOnly records that trunca_tope was off: caps were evaluated
	// but no value was truncated, per §4.3's tie-break. Downstream reporting
	// concern only; core invariants are unaffected when this is true.
	CapsReportedOnly bool

	// Validator output (§4.4).
	Valid      bool
	ReasonCode string
}

// SAC returns the current SAC total reported to persistence (sac column).
func (r EmployeeRow) SAC() Money {
	return r.ImporteSAC
}

// NoRemun returns the non-remunerative total reported to persistence.
func (r EmployeeRow) NoRemun() Money {
	return r.ImporteNoRemun
}

// RemTotal is rem_total = Remuner78805 + no_remun (invariant I2). This uses
// Remuner78805, not Imponible1, so it survives the differential-category
// zeroing of rem_impo1 (I6, scenario S3).
func (r EmployeeRow) RemTotal() Money {
	return r.Remuner78805.Add(r.ImporteNoRemun)
}
