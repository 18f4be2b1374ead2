/*
Package sicossmodel - SICOSS core domain types

FILE: internal/sicossmodel/config.go

SicossConfig is the single immutable configuration value driving CapEngine,
Calculator and Validator (spec.md §9: "no dynamic kwargs" -- explicitly
enumerated fields, loaded once per run and never mutated).
*/
package sicossmodel

// SicossConfig aggregates every knob named in spec.md §4.3 and §9.
type SicossConfig struct {
	// Caps (topes), §4.3.
	TopeJubilatorioPatronal     Money
	TopeJubilatorioPersonal     Money
	TopeOtrosAportesPersonales  Money
	TruncaTope                  bool

	// Validator inclusion switches, §4.4.
	CheckLic       bool
	CheckRetro     bool
	CheckSinActivo bool

	// Calculator switches, §4.2.
	AsignacionFamiliar             bool
	TrabajadorConvencionado        bool
	InformarBecarios               bool
	ARTConTope                     bool
	ConceptosNoRemunEnART           bool
	PorcAporteAdicionalJubilacion  Money

	// Differential-category membership, §4.3 / §9 Open Questions: this is
	// configuration, not code; implementers must accept it as input.
	DifferentialActivityCodes []string

	// VersionSistema is stamped onto every output row's meta columns.
	VersionSistema string
}

// Validate enforces §4.3's InvalidCapConfig failure mode: any cap < 0 is
// fatal pre-flight.
func (c SicossConfig) Validate() error {
	if c.TopeJubilatorioPatronal.IsNegative() {
		return ErrInvalidCapConfigField("tope_jubilatorio_patronal")
	}
	if c.TopeJubilatorioPersonal.IsNegative() {
		return ErrInvalidCapConfigField("tope_jubilatorio_personal")
	}
	if c.TopeOtrosAportesPersonales.IsNegative() {
		return ErrInvalidCapConfigField("tope_otros_aportes_personales")
	}
	if c.PorcAporteAdicionalJubilacion.IsNegative() {
		return ErrInvalidCapConfigField("porc_aporte_adicional_jubilacion")
	}
	return nil
}

// IsDifferentialActivity reports whether activityCode belongs to the
// configured differential-category set (predicate branch (b), §4.3).
func (c SicossConfig) IsDifferentialActivity(activityCode string) bool {
	for _, code := range c.DifferentialActivityCodes {
		if code == activityCode {
			return true
		}
	}
	return false
}

// capConfigError is a lightweight sentinel kept local to this package so
// sicossmodel has no dependency on internal/errors; the pipeline layer maps
// it onto the InvalidConfig AppError.
type capConfigError struct{ field string }

func (e capConfigError) Error() string {
	return "invalid cap config: " + e.field + " must be >= 0"
}

// ErrInvalidCapConfigField builds the sentinel error for a negative cap field.
func ErrInvalidCapConfigField(field string) error {
	return capConfigError{field: field}
}
