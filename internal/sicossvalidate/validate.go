/*
Package sicossvalidate - Validator (spec.md §4.4)

FILE: internal/sicossvalidate/validate.go

Inclusion predicate evaluated per employee after CapEngine. Only
valid=true rows reach Persister.
*/
package sicossvalidate

import "sicoss/internal/sicossmodel"

// Reason codes attached to excluded rows, for diagnostics.
const (
	ReasonIncludedOK        = "ok"
	ReasonLicenciaNoActivo  = "licencia_sin_actividad"
	ReasonRetroOnly         = "retro_sin_actividad_actual"
	ReasonSinActivo         = "sin_actividad"
)

// Validator implements §4.4's inclusion predicate.
type Validator struct{}

// New builds a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate attaches Valid and ReasonCode to row. Evaluation order matches
// §4.4's listed order; the first matching exclusion wins.
func (v *Validator) Validate(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	if cfg.CheckLic && row.Legajo.Licencia && allRemunerativeBasesZero(row) {
		row.Valid = false
		row.ReasonCode = ReasonLicenciaNoActivo
		return row
	}

	if cfg.CheckRetro && isRetroOnly(row) {
		row.Valid = false
		row.ReasonCode = ReasonRetroOnly
		return row
	}

	if cfg.CheckSinActivo && row.Imponible1.IsZero() && row.Imponible4.IsZero() && row.ImporteSAC.IsZero() {
		row.Valid = false
		row.ReasonCode = ReasonSinActivo
		return row
	}

	row.Valid = true
	row.ReasonCode = ReasonIncludedOK
	return row
}

// allRemunerativeBasesZero reports whether every remunerative base on row
// is zero -- the "licencia with no pay" exclusion condition.
func allRemunerativeBasesZero(row sicossmodel.EmployeeRow) bool {
	return row.Imponible1.IsZero() &&
		row.Imponible4.IsZero() &&
		row.Imponible5.IsZero() &&
		row.Imponible6.IsZero() &&
		row.Imponible9.IsZero() &&
		row.ImporteSAC.IsZero()
}

// isRetroOnly reports whether row reflects a retroactive-only adjustment
// with no current-period activity: the legajo's cod_condicion is the retro
// marker and all remunerative bases are zero. Concepts are not inspected.
func isRetroOnly(row sicossmodel.EmployeeRow) bool {
	const retroCondition = "RETRO"
	return row.Legajo.CodCondicion == retroCondition && allRemunerativeBasesZero(row)
}
