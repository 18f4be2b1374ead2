package sicosscap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sicoss/internal/sicossmodel"
)

func m(f float64) sicossmodel.Money { return sicossmodel.MoneyFromFloat(f) }

func baseConfig() sicossmodel.SicossConfig {
	return sicossmodel.SicossConfig{
		TopeJubilatorioPatronal:    m(1_000_000),
		TopeJubilatorioPersonal:    m(1_000_000),
		TopeOtrosAportesPersonales: m(1_000_000),
		TruncaTope:                 true,
	}
}

// S1: happy path, no cap triggered.
func TestApply_S1_HappyPath(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Remuner78805:             m(500_000),
		Imponible1:               m(500_000),
		Imponible4:               m(500_000),
		Imponible5:               m(500_000),
		Imponible9:               m(500_000),
		ImporteImponiblePatronal: m(500_000),
		ImporteImponibleSinSAC:   m(500_000),
		ImporteNoRemun:           m(50_000),
	}
	cfg := baseConfig()

	out := New().Apply(row, cfg)

	assert.True(t, out.Imponible1.Equal(m(500_000)))
	assert.True(t, out.Imponible4.Equal(m(500_000)))
	assert.True(t, out.Imponible5.Equal(m(500_000)))
	assert.True(t, out.Imponible9.Equal(m(500_000)))
	assert.False(t, out.DifferentialApplied)
}

// S2: patronal cap truncates SAC and base.
func TestApply_S2_PatronalCapTruncates(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Remuner78805:             m(1_200_000),
		Imponible1:               m(1_200_000),
		Imponible5:               m(1_200_000),
		ImporteImponiblePatronal: m(1_200_000),
		ImporteSACPatronal:       m(300_000),
		ImporteImponibleSinSAC:   m(900_000),
	}
	cfg := baseConfig()
	cfg.TopeJubilatorioPatronal = m(800_000)

	out := New().Apply(row, cfg)

	assert.True(t, out.ImporteSACPatronal.Equal(m(300_000)))
	assert.True(t, out.ImporteImponibleSinSAC.Equal(m(500_000)), "800000-300000")
	assert.True(t, out.Imponible1.Equal(m(800_000)), "rem_impo1 must follow the patronal-truncated total")
	assert.True(t, out.Remuner78805.Equal(m(800_000)), "I1: Remuner78805 moves with rem_impo1 under ordinary cap truncation")
}

// S3: differential category zeroes rem_impo1 only.
func TestApply_S3_DifferentialZeroesImponible1Only(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Legajo:                   sicossmodel.Legajo{CodActividad: "DIFF-1"},
		Remuner78805:             m(900_000),
		Imponible1:               m(900_000),
		Imponible4:               m(900_000),
		Imponible5:               m(900_000),
		Imponible9:               m(900_000),
		ImporteSAC:               m(100_000),
		ImporteNoRemun:           m(40_000),
		ImporteImponiblePatronal: m(900_000),
	}
	cfg := baseConfig()
	cfg.DifferentialActivityCodes = []string{"DIFF-1"}

	out := New().Apply(row, cfg)

	assert.True(t, out.Imponible1.IsZero(), "rem_impo1 must be zeroed")
	assert.True(t, out.ImporteSAC.Equal(m(100_000)), "sac must survive")
	assert.True(t, out.ImporteNoRemun.Equal(m(40_000)), "no_remun must survive")
	assert.True(t, out.Imponible4.Equal(m(900_000)), "imponible_4 must survive")
	assert.True(t, out.RemTotal().Equal(m(940_000)), "rem_total retains Remuner78805+no_remun")
	assert.True(t, out.DifferentialApplied)
}

// S4: investigator floor is Calculator's job, but CapEngine must not touch
// Imponible_6 (it's outside the state machine's field set).
func TestApply_S4_LeavesImponible6Alone(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Imponible6:         sicossmodel.InvestigatorFloorAmount,
		PrioridadActividad: 38,
	}
	out := New().Apply(row, baseConfig())
	assert.True(t, out.Imponible6.Equal(sicossmodel.InvestigatorFloorAmount))
}

// S5: ART re-clamp after Imponible_4 truncation.
func TestApply_S5_ArtReclamp(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Imponible4: m(700_000),
		Imponible5: m(700_000),
		Imponible9: m(600_000),
	}
	cfg := baseConfig()
	cfg.TopeOtrosAportesPersonales = m(500_000)

	out := New().Apply(row, cfg)

	assert.True(t, out.Imponible4.Equal(m(500_000)))
	assert.True(t, out.Imponible9.LessThanOrEqual(m(525_000)), "1.05*500000")
}

func TestApply_TruncaTopeFalse_ReportsOnly(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		ImporteImponiblePatronal: m(1_200_000),
		ImporteImponibleSinSAC:   m(900_000),
		ImporteSACPatronal:       m(300_000),
	}
	cfg := baseConfig()
	cfg.TopeJubilatorioPatronal = m(800_000)
	cfg.TruncaTope = false

	out := New().Apply(row, cfg)

	assert.True(t, out.CapsReportedOnly)
	assert.True(t, out.ImporteImponibleSinSAC.Equal(m(900_000)), "no truncation when trunca_tope is off")
}

func TestApply_I3Band_Imponible4ClampedToImponible5(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Imponible4: m(200_000),
		Imponible5: m(100_000), // 200000 > 100000*1.10
		Imponible9: m(50_000),
	}
	out := New().Apply(row, baseConfig())
	assert.True(t, out.Imponible4.Equal(m(100_000)))
}

func TestApply_ClampsNegativeAndCeiling(t *testing.T) {
	row := sicossmodel.EmployeeRow{
		Imponible1:   m(-10),
		Remuner78805: sicossmodel.MoneyCeiling.Add(m(1)),
	}
	out := New().Apply(row, baseConfig())
	assert.True(t, out.Imponible1.IsZero())
	assert.True(t, out.Remuner78805.Equal(sicossmodel.MoneyCeiling))
}

func TestDifferentialCategoryApplies_SinActivoBranch(t *testing.T) {
	row := sicossmodel.EmployeeRow{}
	cfg := sicossmodel.SicossConfig{CheckSinActivo: true}
	assert.True(t, differentialCategoryApplies(row, cfg))
}

func TestDifferentialCategoryApplies_NotTriggered(t *testing.T) {
	row := sicossmodel.EmployeeRow{Imponible1: m(1)}
	cfg := sicossmodel.SicossConfig{CheckSinActivo: true}
	assert.False(t, differentialCategoryApplies(row, cfg))
}
