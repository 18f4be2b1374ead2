/*
Package sicosspipeline - invariant checks (spec.md §4.3)

FILE: internal/sicosspipeline/invariants.go

checkInvariants runs I1 and I3-I7 against one finished EmployeeRow (I2 holds
by construction of EmployeeRow.RemTotal and is not checked), post-CapEngine,
pre-Validator. A violation is a programming-error signal, not a data
problem: it means a stage produced a row the rest of the pipeline's own
contract says cannot happen, so it is surfaced as ErrInvariantViolation
rather than silently persisted.
*/
package sicosspipeline

import (
	"fmt"

	"sicoss/internal/sicossmodel"
)

const bandTolerance = "0.00000001" // guards against decimal rounding at the band edges

func checkInvariants(row sicossmodel.EmployeeRow) error {
	tol, _ := sicossmodel.ParseMoney(bandTolerance)

	// I1: rem_impo1 == Remuner78805, EXCEPT when the differential-category
	// rule fired (I6), which is the one documented exception.
	if !row.DifferentialApplied && !row.Imponible1.Equal(row.Remuner78805) {
		return invariantErr("I1", "rem_impo1 (%s) != Remuner78805 (%s)", row.Imponible1, row.Remuner78805)
	}

	// I3: 0 <= rem_impo4 <= rem_impo5 * 1.10
	if row.Imponible4.IsNegative() {
		return invariantErr("I3", "rem_impo4 (%s) is negative", row.Imponible4)
	}
	band3 := row.Imponible5.Mul(sicossmodel.MoneyFromFloat(1.10)).Add(tol)
	if row.Imponible4.GreaterThan(band3) {
		return invariantErr("I3", "rem_impo4 (%s) exceeds rem_impo5*1.10 (%s)", row.Imponible4, band3)
	}

	// I4: 0 <= rem_impo9 <= rem_impo4 * 1.05
	if row.Imponible9.IsNegative() {
		return invariantErr("I4", "rem_impo9 (%s) is negative", row.Imponible9)
	}
	band4 := row.Imponible4.Mul(sicossmodel.MoneyFromFloat(1.05)).Add(tol)
	if row.Imponible9.GreaterThan(band4) {
		return invariantErr("I4", "rem_impo9 (%s) exceeds rem_impo4*1.05 (%s)", row.Imponible9, band4)
	}

	// I5: Investigator priority => rem_impo6 >= floor and TipoDeOperacion == 2.
	if row.PrioridadActividad.IsInvestigator() {
		if row.Imponible6.LessThan(sicossmodel.InvestigatorFloorAmount) {
			return invariantErr("I5", "rem_impo6 (%s) below investigator floor (%s)", row.Imponible6, sicossmodel.InvestigatorFloorAmount)
		}
		if row.TipoDeOperacion != sicossmodel.TipoOperacionInvestigador {
			return invariantErr("I5", "tipo_de_operacion (%d) != 2 for investigator priority", row.TipoDeOperacion)
		}
	}

	// I6: differential rule fired => rem_impo1 == 0.
	if row.DifferentialApplied && !row.Imponible1.IsZero() {
		return invariantErr("I6", "differential rule applied but rem_impo1 (%s) != 0", row.Imponible1)
	}

	// I7: every monetary field is clamped into [0, ceiling]. CapEngine
	// already applies ClampMoney; this re-checks the fields that feed
	// persistence directly.
	for name, v := range map[string]sicossmodel.Money{
		"rem_impo1": row.Imponible1,
		"rem_impo4": row.Imponible4,
		"rem_impo5": row.Imponible5,
		"rem_impo6": row.Imponible6,
		"rem_impo9": row.Imponible9,
		"sac":       row.SAC(),
		"no_remun":  row.NoRemun(),
	} {
		if v.IsNegative() || v.GreaterThan(sicossmodel.MoneyCeiling) {
			return invariantErr("I7", "%s (%s) outside [0, %s]", name, v, sicossmodel.MoneyCeiling)
		}
	}

	return nil
}

func invariantErr(code, format string, args ...interface{}) error {
	return fmt.Errorf("invariant %s violated: %s", code, fmt.Sprintf(format, args...))
}
