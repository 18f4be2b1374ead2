/*
Package sicosscap - CapEngine (spec.md §4.3)

FILE: internal/sicosscap/differential.go

The differential-category predicate. Pure function of the consolidated row
and config. Differential activity codes come from configuration; the
investigator priority classes of branch (a) are a fixed table below.
*/
package sicosscap

import "sicoss/internal/sicossmodel"

// investigatorDifferentialClasses names the investigator priority classes
// that denote the differential regime rather than the base investigator
// regime (branch (a)). Groups 48/49 ("Sub A"/"Sub B") are the differential
// investigator subtypes in the group catalog; the plain investigator
// classes (38-42) do not, by themselves, trigger the differential branch.
var investigatorDifferentialClasses = map[sicossmodel.ActivityPriority]bool{
	48: true,
	49: true,
}

// differentialCategoryApplies evaluates §4.3's three-branch predicate.
func differentialCategoryApplies(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) bool {
	// (a) Investigator priority class indicates differential regime.
	if investigatorDifferentialClasses[row.PrioridadActividad] {
		return true
	}

	// (b) activity code is in the configured differential set.
	if cfg.IsDifferentialActivity(row.Legajo.CodActividad) {
		return true
	}

	// (c) all remunerative mass consumed by prior caps, and check_sin_activo
	// demands zeroing.
	if cfg.CheckSinActivo && row.Imponible1.IsZero() && row.Imponible4.IsZero() && row.ImporteSAC.IsZero() {
		return true
	}

	return false
}
