/*
Package sicosscap - CapEngine (spec.md §4.3, "the hard part")

FILE: internal/sicosscap/cap.go

CapEngine walks one employee through the Open -> CappedPatronal ->
CappedPersonal -> CappedOtros -> Final state machine, applying the
statutory caps and the differential-category rule to the remunerative
bases. Pure function of (EmployeeRow, SicossConfig); no cross-employee
state.
*/
package sicosscap

import (
	"sicoss/internal/sicossmodel"
)

// artMultiplier and bandMultiplier implement the I3/I4 consistency bands.
var (
	artMultiplier  = sicossmodel.MoneyFromFloat(1.05)
	bandMultiplier = sicossmodel.MoneyFromFloat(1.10)
)

// Engine applies §4.3's cap state machine.
type Engine struct{}

// New builds a CapEngine.
func New() *Engine {
	return &Engine{}
}

// Apply runs the full state machine for one employee and returns the
// truncated row. cfg must already have passed SicossConfig.Validate
// (InvalidCapConfig is a pre-flight, fatal concern, not CapEngine's).
func (e *Engine) Apply(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	if !cfg.TruncaTope {
		row.CapsReportedOnly = e.capsWouldTrigger(row, cfg)
		row = e.applyDifferential(row, cfg)
		return e.clampAll(row)
	}

	row = e.stateOpen(row, cfg)
	row = e.stateCappedPatronal(row, cfg)
	row = e.stateCappedPersonal(row, cfg)
	row = e.reclampBands(row)
	row = e.applyDifferential(row, cfg)
	return e.clampAll(row)
}

// stateOpen: patronal truncation against T_JP. Remuner78805 and Imponible1
// (rem_impo1) move together with the truncated patronal total here (I1) --
// the only state that may split them is applyDifferential's I6 exception.
func (e *Engine) stateOpen(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	if row.ImporteImponiblePatronal.GreaterThan(cfg.TopeJubilatorioPatronal) {
		room := cfg.TopeJubilatorioPatronal.Sub(row.ImporteSACPatronal)
		if room.IsNegative() {
			room = sicossmodel.Zero
		}
		row.ImporteImponibleSinSAC = minMoney(row.ImporteImponibleSinSAC, room)
		row.ImporteSACPatronal = minMoney(row.ImporteSACPatronal, cfg.TopeJubilatorioPatronal)

		row.ImporteImponiblePatronal = row.ImporteImponibleSinSAC.Add(row.ImporteSACPatronal)
		row.Imponible1 = row.ImporteImponiblePatronal
		row.Remuner78805 = row.ImporteImponiblePatronal
	}
	return row
}

// stateCappedPatronal: personal truncation of Imponible_1 against T_JPer,
// crediting OtraActividad.ImporteJubilatorio. Remuner78805 is truncated in
// lockstep (I1) -- ordinary cap truncation never splits the two.
func (e *Engine) stateCappedPatronal(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	room := cfg.TopeJubilatorioPersonal.Sub(row.OtraActividad.ImporteJubilatorio)
	if row.Imponible1.GreaterThan(cfg.TopeJubilatorioPersonal) && row.Imponible1.GreaterThan(room) {
		row.Imponible1 = maxMoney(sicossmodel.Zero, room)
		row.Remuner78805 = row.Imponible1
	}
	return row
}

// stateCappedPersonal: truncates Imponible_4 against T_OA, crediting
// OtraActividad.ImporteOtros.
func (e *Engine) stateCappedPersonal(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	total := row.Imponible4.Add(row.OtraActividad.ImporteOtros)
	if total.GreaterThan(cfg.TopeOtrosAportesPersonales) {
		room := cfg.TopeOtrosAportesPersonales.Sub(row.OtraActividad.ImporteOtros)
		row.Imponible4 = maxMoney(sicossmodel.Zero, room)
	}
	return row
}

// reclampBands enforces I3 (Imponible_4 vs Imponible_5) then re-derives
// Imponible_9's ART band (I4) now that Imponible_4 has settled, per §4.3's
// tie-break ordering.
func (e *Engine) reclampBands(row sicossmodel.EmployeeRow) sicossmodel.EmployeeRow {
	if row.Imponible4.GreaterThan(row.Imponible5.Mul(bandMultiplier)) {
		row.Imponible4 = row.Imponible5
	}
	artCeiling := row.Imponible4.Mul(artMultiplier)
	if row.Imponible9.GreaterThan(artCeiling) {
		row.Imponible9 = artCeiling
	}
	return row
}

// applyDifferential zeroes Imponible_1 only (I6) when the differential-
// category predicate holds.
func (e *Engine) applyDifferential(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) sicossmodel.EmployeeRow {
	if differentialCategoryApplies(row, cfg) {
		row.Imponible1 = sicossmodel.Zero
		row.DifferentialApplied = true
	}
	return row
}

// capsWouldTrigger reports whether any cap would have fired, for the
// trunca_tope=false reporting-only path. No row value is changed by this
// check; it only feeds the CapsReportedOnly diagnostic flag.
func (e *Engine) capsWouldTrigger(row sicossmodel.EmployeeRow, cfg sicossmodel.SicossConfig) bool {
	if row.ImporteImponiblePatronal.GreaterThan(cfg.TopeJubilatorioPatronal) {
		return true
	}
	if row.Imponible1.GreaterThan(cfg.TopeJubilatorioPersonal) {
		return true
	}
	if row.Imponible4.Add(row.OtraActividad.ImporteOtros).GreaterThan(cfg.TopeOtrosAportesPersonales) {
		return true
	}
	return false
}

// clampAll enforces I7: every monetary output lies in [0, 5e7].
func (e *Engine) clampAll(row sicossmodel.EmployeeRow) sicossmodel.EmployeeRow {
	row.ImporteSAC = sicossmodel.ClampMoney(row.ImporteSAC)
	row.ImporteSACDoce = sicossmodel.ClampMoney(row.ImporteSACDoce)
	row.ImporteHorasExtras = sicossmodel.ClampMoney(row.ImporteHorasExtras)
	row.ImporteZonaDesfavorable = sicossmodel.ClampMoney(row.ImporteZonaDesfavorable)
	row.ImporteVacaciones = sicossmodel.ClampMoney(row.ImporteVacaciones)
	row.ImportePremios = sicossmodel.ClampMoney(row.ImportePremios)
	row.ImporteAdicionales = sicossmodel.ClampMoney(row.ImporteAdicionales)
	row.ImporteImponibleBecario = sicossmodel.ClampMoney(row.ImporteImponibleBecario)
	row.ImporteNoRemun = sicossmodel.ClampMoney(row.ImporteNoRemun)
	row.ImporteSeguroVida = sicossmodel.ClampMoney(row.ImporteSeguroVida)
	row.ImporteInvestigador = sicossmodel.ClampMoney(row.ImporteInvestigador)
	row.ImporteImponiblePatronal = sicossmodel.ClampMoney(row.ImporteImponiblePatronal)
	row.ImporteSACPatronal = sicossmodel.ClampMoney(row.ImporteSACPatronal)
	row.ImporteImponibleSinSAC = sicossmodel.ClampMoney(row.ImporteImponibleSinSAC)
	row.ImporteBruto = sicossmodel.ClampMoney(row.ImporteBruto)
	row.Remuner78805 = sicossmodel.ClampMoney(row.Remuner78805)
	row.Imponible1 = sicossmodel.ClampMoney(row.Imponible1)
	row.Imponible4 = sicossmodel.ClampMoney(row.Imponible4)
	row.Imponible5 = sicossmodel.ClampMoney(row.Imponible5)
	row.Imponible6 = sicossmodel.ClampMoney(row.Imponible6)
	row.Imponible9 = sicossmodel.ClampMoney(row.Imponible9)
	return row
}

func minMoney(a, b sicossmodel.Money) sicossmodel.Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

func maxMoney(a, b sicossmodel.Money) sicossmodel.Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
